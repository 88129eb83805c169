package match3

import (
	"time"

	"github.com/vovakirdan/tilematch/internal/games/match3/core"
)

// Mark is a transient highlight drawn on a tile during playback.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkSwapped
	MarkRejected
	MarkCleared
	MarkFallen
	MarkSpawned
)

// ViewCell is what the screen shows for one board cell.
type ViewCell struct {
	Type     core.TileType
	Occupied bool
	Mark     Mark
}

// Playback replays engine events onto a board the player can see.
// The engine resolves a whole cascade at once; playback spreads it over
// ticks so each wave is visible.
type Playback struct {
	rows      int
	columns   int
	cells     []ViewCell
	queue     []core.Event
	wait      int
	stepTicks int
	swapTicks int
	score     int
	selected  core.Cell
	hasSelect bool
}

// DelayTicks converts a delay to whole ticks at the given rate, rounding up.
func DelayTicks(d time.Duration, tickRate int) int {
	if d <= 0 || tickRate <= 0 {
		return 0
	}
	return int((d*time.Duration(tickRate) + time.Second - 1) / time.Second)
}

// NewPlayback creates a playback showing g with the given score.
func NewPlayback(g *core.Grid, score, stepTicks, swapTicks int) *Playback {
	p := &Playback{
		rows:      g.Rows(),
		columns:   g.Columns(),
		cells:     make([]ViewCell, g.Rows()*g.Columns()),
		stepTicks: stepTicks,
		swapTicks: swapTicks,
		score:     score,
	}
	for _, c := range g.Cells() {
		tile, ok, _ := g.Get(c) // Cells only yields in-bounds cells
		p.cells[p.index(c)] = ViewCell{Type: tile.Type, Occupied: ok}
	}
	return p
}

func (p *Playback) index(c core.Cell) int {
	return c.Row*p.columns + c.Col
}

// Cell returns the displayed state of c.
func (p *Playback) Cell(c core.Cell) ViewCell {
	if c.Row < 0 || c.Row >= p.rows || c.Col < 0 || c.Col >= p.columns {
		return ViewCell{}
	}
	return p.cells[p.index(c)]
}

// Score returns the displayed score.
func (p *Playback) Score() int {
	return p.score
}

// Selection returns the displayed selection.
func (p *Playback) Selection() (core.Cell, bool) {
	return p.selected, p.hasSelect
}

// Busy reports whether events are still waiting to be shown.
func (p *Playback) Busy() bool {
	return p.wait > 0 || len(p.queue) > 0
}

// Enqueue appends events to the replay queue.
func (p *Playback) Enqueue(events ...core.Event) {
	p.queue = append(p.queue, events...)
}

// Tick advances playback by one simulation tick.
// Each tick applies at most one delayed group of events.
func (p *Playback) Tick() {
	if p.wait > 0 {
		p.wait--
		if p.wait > 0 {
			return
		}
	}

	for len(p.queue) > 0 {
		delay := p.applyGroup()
		if delay > 0 {
			p.wait = delay
			return
		}
	}
	p.settle()
}

// Flush applies every queued event immediately.
func (p *Playback) Flush() {
	for len(p.queue) > 0 {
		p.applyGroup()
	}
	p.wait = 0
	p.settle()
}

// applyGroup applies the next run of related events and returns how many
// ticks the result should stay on screen.
func (p *Playback) applyGroup() int {
	first := p.queue[0]
	n := 1
	for n < len(p.queue) && sameGroup(first, p.queue[n]) {
		n++
	}
	group := p.queue[:n]
	p.queue = p.queue[n:]

	switch first.(type) {
	case core.Selected, core.Deselected, core.ScoreChanged:
		for _, ev := range group {
			p.apply(ev)
		}
		return 0
	case core.Swapped, core.SwapRejected:
		p.settle()
		for _, ev := range group {
			p.apply(ev)
		}
		return p.swapTicks
	default:
		p.settle()
		for _, ev := range group {
			p.apply(ev)
		}
		return p.stepTicks
	}
}

// sameGroup reports whether b is shown in the same frame as a.
func sameGroup(a, b core.Event) bool {
	switch a := a.(type) {
	case core.Moved:
		m, ok := b.(core.Moved)
		return ok && m.Wave == a.Wave
	case core.Spawned:
		s, ok := b.(core.Spawned)
		return ok && s.Wave == a.Wave
	default:
		return false
	}
}

func (p *Playback) apply(ev core.Event) {
	switch ev := ev.(type) {
	case core.Selected:
		p.selected, p.hasSelect = ev.Cell, true
	case core.Deselected:
		p.hasSelect = false
	case core.Swapped:
		ia, ib := p.index(ev.A), p.index(ev.B)
		p.cells[ia], p.cells[ib] = p.cells[ib], p.cells[ia]
		p.cells[ia].Mark = MarkSwapped
		p.cells[ib].Mark = MarkSwapped
	case core.SwapRejected:
		p.cells[p.index(ev.A)].Mark = MarkRejected
		p.cells[p.index(ev.B)].Mark = MarkRejected
	case core.Cleared:
		for _, c := range ev.Cells {
			p.cells[p.index(c)].Mark = MarkCleared
		}
	case core.Moved:
		from, to := p.index(ev.From), p.index(ev.To)
		p.cells[to] = p.cells[from]
		p.cells[to].Mark = MarkFallen
		p.cells[from] = ViewCell{}
	case core.Spawned:
		p.cells[p.index(ev.Cell)] = ViewCell{Type: ev.Tile.Type, Occupied: true, Mark: MarkSpawned}
	case core.ScoreChanged:
		p.score = ev.Score
	}
}

// settle removes cleared tiles and drops every highlight.
func (p *Playback) settle() {
	for i := range p.cells {
		if p.cells[i].Mark == MarkCleared {
			p.cells[i] = ViewCell{}
			continue
		}
		p.cells[i].Mark = MarkNone
	}
}
