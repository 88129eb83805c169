// Package match3 provides the tile-matching game for the terminal.
// Rules live in match3/core; this package moves a cursor, feeds the
// engine and replays its events on screen.
package match3

import (
	"io"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tilematch/internal/core"
	"github.com/vovakirdan/tilematch/internal/config"
	"github.com/vovakirdan/tilematch/internal/games/match3/core"
	"github.com/vovakirdan/tilematch/internal/games/match3/layouts"
	"github.com/vovakirdan/tilematch/internal/registry"
)

// Mode selects the board the game starts with.
type Mode string

const (
	ModeClassic Mode = "classic" // Board size from config
	ModeMini    Mode = "mini"    // 6x6 board
)

const miniBoardSize = 6

// Game implements the tile-matching game.
type Game struct {
	mode     Mode
	cfg      config.Match3Config
	engine   *core.Engine
	playback *Playback
	logger   *log.Logger

	// Captured from the package-level settings when the game is created
	configPath string
	difficulty config.DifficultyPreset
	layoutPath string

	cursor   core.Cell
	hint     core.Swap
	showHint bool

	// Screen and timing
	screenW  int
	screenH  int
	tickRate int
	seed     int64
	tick     uint64

	// Status
	paused   bool
	gameOver bool
	tooSmall bool
	err      error // Configuration or layout failure shown instead of a board
}

// Package-level variables for configuration
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	layoutPath       string
	gameLogger       = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.DifficultyPreset(preset)
}

// SetLayout sets a layout file for the next game. An empty path means a
// random board.
func SetLayout(path string) {
	layoutPath = path
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	gameLogger = l
}

// New creates a classic game.
func New() *Game {
	return newGame(ModeClassic)
}

// NewMini creates a game on a small board.
func NewMini() *Game {
	return newGame(ModeMini)
}

func newGame(mode Mode) *Game {
	return &Game{
		mode:       mode,
		logger:     gameLogger,
		configPath: configPath,
		difficulty: difficultyPreset,
		layoutPath: layoutPath,
	}
}

// SetDifficulty overrides the difficulty preset for this game only.
// It takes effect on the next Reset.
func (g *Game) SetDifficulty(preset config.DifficultyPreset) {
	g.difficulty = preset
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_mini", func() registry.Game {
		return NewMini()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeMini {
		return "match3_mini"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeMini {
		return "Match-3 (Mini)"
	}
	return "Match-3"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	g.seed = cfg.Seed
	g.tick = 0
	g.paused = false
	g.gameOver = false
	g.showHint = false
	g.err = nil

	if err := g.newBoard(); err != nil {
		g.logger.Error("cannot start game", "game", g.ID(), "err", err)
		g.err = err
		g.engine = nil
		g.playback = nil
	}

	g.checkScreenSize()
}

// newBoard loads configuration, builds the engine and settles the
// starting board without animation.
func (g *Game) newBoard() error {
	fileCfg, err := config.Load(g.configPath, g.difficulty)
	if err != nil {
		return err
	}
	g.cfg = fileCfg

	engineCfg, err := fileCfg.Engine()
	if err != nil {
		return err
	}
	if g.mode == ModeMini {
		engineCfg.Rows = miniBoardSize
		engineCfg.Columns = miniBoardSize
	}

	opts := []core.Option{
		core.WithSource(core.NewSource(g.seed)),
		core.WithLogger(g.logger),
	}
	if g.layoutPath != "" {
		layout, err := layouts.LoadFile(g.layoutPath)
		if err != nil {
			return err
		}
		layout.Apply(&engineCfg)
		grid, err := layout.Grid()
		if err != nil {
			return err
		}
		opts = append(opts, core.WithGrid(grid))
	}

	engine, err := core.New(engineCfg, opts...)
	if err != nil {
		return err
	}
	engine.RunCascade()

	g.engine = engine
	g.playback = NewPlayback(
		engine.Grid(),
		engine.Score(),
		DelayTicks(fileCfg.Playback.StepDelay, g.tickRate),
		DelayTicks(fileCfg.Playback.SwapDelay, g.tickRate),
	)
	g.cursor = core.At(engineCfg.Rows/2, engineCfg.Columns/2)
	g.gameOver = engine.Stuck()

	g.logger.Info("board ready",
		"game", g.ID(),
		"rows", engineCfg.Rows,
		"columns", engineCfg.Columns,
		"types", len(engineCfg.Types),
		"layout", g.layoutPath,
		"difficulty", g.difficulty,
	)
	return nil
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	if g.engine == nil {
		g.tooSmall = false
		return
	}
	w, h := boardSize(g.engine.Config())
	g.tooSmall = g.screenW < w+2 || g.screenH < h+hudHeight+footerHeight
}

// Resize adapts to a new screen size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.err != nil || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	// Input waits until the last cascade has been shown
	if g.playback.Busy() {
		g.playback.Tick()
		return platformcore.StepResult{State: g.State()}
	}

	if g.gameOver {
		return platformcore.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return platformcore.StepResult{State: g.State()}
}

// handleInput applies one frame of player input.
func (g *Game) handleInput(in platformcore.InputFrame) {
	rows, cols := g.engine.Config().Rows, g.engine.Config().Columns

	// Row 0 is the bottom of the board, so screen up is a higher row
	switch {
	case in.Has(platformcore.ActionUp):
		g.cursor.Row = min(g.cursor.Row+1, rows-1)
	case in.Has(platformcore.ActionDown):
		g.cursor.Row = max(g.cursor.Row-1, 0)
	case in.Has(platformcore.ActionLeft):
		g.cursor.Col = max(g.cursor.Col-1, 0)
	case in.Has(platformcore.ActionRight):
		g.cursor.Col = min(g.cursor.Col+1, cols-1)
	}

	switch {
	case in.Has(platformcore.ActionConfirm):
		g.trySwap()
	case in.Has(platformcore.ActionBack):
		g.playback.Enqueue(g.engine.Deselect().Events...)
		g.playback.Tick()
	case in.Has(platformcore.ActionHint):
		if g.cfg.Rules.Hints {
			g.hint, g.showHint = g.engine.Hint()
		}
	}
}

// trySwap feeds the cursor cell to the engine and queues the result.
func (g *Game) trySwap() {
	res, err := g.engine.TrySwap(g.cursor)
	if err != nil {
		// The cursor is clamped to the board, so this is a bug
		g.logger.Error("swap failed", "cell", g.cursor, "err", err)
		return
	}

	g.playback.Enqueue(res.Events...)
	g.playback.Tick()

	if res.Outcome == core.OutcomeSwapped {
		g.showHint = false
		if g.engine.Stuck() {
			g.logger.Info("no moves left", "game", g.ID(), "score", g.engine.Score())
			g.gameOver = true
		}
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.engine == nil {
		return platformcore.GameState{Paused: true}
	}
	busy := g.playback.Busy()
	return platformcore.GameState{
		Score:    g.playback.Score(),
		GameOver: g.gameOver && !busy,
		Paused:   g.paused || g.tooSmall,
		Busy:     busy,
	}
}

// RunStats returns the engine counters for the run history.
func (g *Game) RunStats() platformcore.RunStats {
	if g.engine == nil {
		return platformcore.RunStats{Seed: g.seed}
	}
	s := g.engine.Stats()
	cfg := g.engine.Config()
	return platformcore.RunStats{
		Score:          g.engine.Score(),
		Swaps:          s.Swaps,
		Rejected:       s.Rejected,
		Waves:          s.Waves,
		Cleared:        s.Cleared,
		LongestCascade: s.LongestCascade,
		Seed:           g.seed,
		Rows:           cfg.Rows,
		Columns:        cfg.Columns,
	}
}

// Err returns the configuration or layout error that stopped the game, if any.
func (g *Game) Err() error {
	return g.err
}
