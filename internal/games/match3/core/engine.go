package core

import (
	"io"

	"github.com/charmbracelet/log"
)

// Outcome classifies what a selection or swap request did.
type Outcome uint8

const (
	OutcomeSelected Outcome = iota
	OutcomeDeselected
	OutcomeSwapped
	OutcomeRejected
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeDeselected:
		return "deselected"
	case OutcomeSwapped:
		return "swapped"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Result is returned by every engine operation.
type Result struct {
	Outcome Outcome
	Events  []Event // Ordered, to be replayed by the presentation layer
	Score   int     // Score after the operation
	Waves   int     // Cascade waves resolved by the operation
}

// Stats counts what happened during a session.
type Stats struct {
	Swaps          int // Committed swaps
	Rejected       int // Adjacent swaps refused for not matching
	Waves          int // Total cascade waves, including the start-up cascade
	Cleared        int // Total tiles cleared
	LongestCascade int // Most waves triggered by one call
}

// Engine owns one board, its selection and its score.
// It is not safe for concurrent use.
type Engine struct {
	cfg       Config
	grid      *Grid
	resolver  *Resolver
	logger    *log.Logger
	selected  Cell
	hasSelect bool
	score     int
	stats     Stats
}

// Option customizes an Engine.
type Option func(*options)

type options struct {
	src    Source
	grid   *Grid
	logger *log.Logger
}

// WithSource sets the random source used for fills and refills.
func WithSource(src Source) Option {
	return func(o *options) {
		o.src = src
	}
}

// WithGrid starts the engine from a copy of g instead of a random fill.
// Empty cells in g are filled from the source.
func WithGrid(g *Grid) Option {
	return func(o *options) {
		o.grid = g
	}
}

// WithLogger sets the logger that receives debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New validates cfg and creates an engine with a filled board.
// The board may contain matches until RunCascade is called.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.src == nil {
		o.src = NewSource(0)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	var grid *Grid
	if o.grid != nil {
		if o.grid.Rows() != cfg.Rows || o.grid.Columns() != cfg.Columns {
			return nil, &ConfigError{Field: "layout", Message: "grid size does not match rows and columns"}
		}
		grid = o.grid.Clone()
	} else {
		var err error
		grid, err = NewGrid(cfg.Rows, cfg.Columns)
		if err != nil {
			return nil, err
		}
	}

	resolver := NewResolver(cfg, o.src)
	resolver.SeedIDs(grid)
	spawned := resolver.Fill(grid, 0)

	e := &Engine{
		cfg:      cfg,
		grid:     grid,
		resolver: resolver,
		logger:   o.logger,
		score:    cfg.StartingScore,
	}
	e.logger.Debug("board filled", "rows", cfg.Rows, "columns", cfg.Columns, "spawned", len(spawned))
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Grid returns a copy of the current board.
func (e *Engine) Grid() *Grid {
	return e.grid.Clone()
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Selection returns the selected cell, if any.
func (e *Engine) Selection() (Cell, bool) {
	return e.selected, e.hasSelect
}

// Stats returns the session counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Select makes c the current selection. A previous selection on another
// cell is reported as Deselected first.
func (e *Engine) Select(c Cell) (Result, error) {
	if err := e.grid.check(c); err != nil {
		return Result{}, err
	}
	var events []Event
	if e.hasSelect && e.selected != c {
		events = append(events, Deselected{Cell: e.selected})
	}
	events = append(events, Selected{Cell: c})

	e.selected, e.hasSelect = c, true
	e.logger.Debug("selected", "cell", c)
	return Result{
		Outcome: OutcomeSelected,
		Events:  events,
		Score:   e.score,
	}, nil
}

// Deselect clears the current selection. It is a no-op without one.
func (e *Engine) Deselect() Result {
	res := Result{Outcome: OutcomeDeselected, Score: e.score}
	if !e.hasSelect {
		return res
	}
	res.Events = []Event{Deselected{Cell: e.selected}}
	e.logger.Debug("deselected", "cell", e.selected)
	e.hasSelect = false
	return res
}

// TrySwap treats c as the second cell of a swap.
//
// Without a selection, or when c is not adjacent to it, c becomes the new
// selection. A cell is not adjacent to itself, so choosing the selected
// cell again keeps it selected; Deselect clears the selection. An adjacent
// cell whose swap would not produce a match is rejected and the board is
// left unchanged. Otherwise the swap is committed and the cascade runs to
// completion before TrySwap returns.
func (e *Engine) TrySwap(c Cell) (Result, error) {
	if err := e.grid.check(c); err != nil {
		return Result{}, err
	}
	if !e.hasSelect {
		return e.Select(c)
	}
	if !c.Adjacent(e.selected) {
		return e.Select(c)
	}

	a := e.selected
	if !CanSwap(e.grid, a, c, e.cfg.MatchCount) {
		e.stats.Rejected++
		e.logger.Debug("swap rejected", "a", a, "b", c, "policy", e.cfg.RejectPolicy)
		res := Result{
			Outcome: OutcomeRejected,
			Events:  []Event{SwapRejected{A: a, B: c}},
			Score:   e.score,
		}
		if e.cfg.RejectPolicy == RejectDeselects {
			res.Events = append(res.Events, Deselected{Cell: a})
			e.hasSelect = false
		}
		return res, nil
	}

	//nolint:errcheck // Both cells were bounds-checked above
	e.grid.Swap(a, c)
	e.hasSelect = false
	e.stats.Swaps++
	e.logger.Debug("swapped", "a", a, "b", c)

	events := []Event{Deselected{Cell: a}, Swapped{A: a, B: c}}
	res := e.RunCascade()
	res.Outcome = OutcomeSwapped
	res.Events = append(events, res.Events...)
	return res, nil
}

// RunCascade resolves every match on the board. It is called once after
// New to settle the initial fill and internally after each committed swap.
func (e *Engine) RunCascade() Result {
	cascade := e.resolver.Resolve(e.grid, e.score)
	e.score = cascade.Score

	e.stats.Waves += cascade.Waves
	e.stats.Cleared += cascade.Cleared
	if cascade.Waves > e.stats.LongestCascade {
		e.stats.LongestCascade = cascade.Waves
	}
	if cascade.Waves > 0 {
		e.logger.Debug("cascade resolved", "waves", cascade.Waves, "cleared", cascade.Cleared, "score", e.score)
	}

	return Result{
		Outcome: OutcomeSwapped,
		Events:  cascade.Events,
		Score:   e.score,
		Waves:   cascade.Waves,
	}
}

// Hint returns a legal swap, preferring the lowest, leftmost cell.
func (e *Engine) Hint() (Swap, bool) {
	swaps := FindSwaps(e.grid, e.cfg.MatchCount)
	if len(swaps) == 0 {
		return Swap{}, false
	}
	return swaps[0], true
}

// Stuck reports whether no legal swap remains on the board.
func (e *Engine) Stuck() bool {
	return !HasLegalSwap(e.grid, e.cfg.MatchCount)
}
