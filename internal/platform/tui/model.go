package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilematch/internal/core"
	"github.com/vovakirdan/tilematch/internal/registry"
	"github.com/vovakirdan/tilematch/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	runSaved   bool // Whether the current run has been recorded
	inSession  bool // Back returns to the session menu when paused or over
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.inSession && m.keys.MapKeyToMenuAction(msg) == MenuActionBack &&
		(m.gameState.GameOver || m.gameState.Paused) {
		m.recordRun()
		m.backToMenu = true
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.recordRun()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// BackToMenu returns true if the player asked to leave the game.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the player asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// A fresh game has nothing to lose, so it is rebuilt for the new size.
	// Games in progress keep their board and re-check the size instead.
	if m.gameState.Score == 0 && !m.gameState.GameOver && !m.gameState.Busy {
		m.game.Reset(m.config)
	} else if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	}

	return m, nil
}

// resizer is implemented by games that can adapt to a new screen size
// without starting over.
type resizer interface {
	Resize(w, h int)
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && !m.gameState.Busy {
		m.recordRun()
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.recordRun()
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordRun stores the current run once. Runs that never scored are skipped.
func (m *Model) recordRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true

	id, err := SaveRun(m.store, m.game, finalScore(m.game))
	if err != nil {
		m.logger.Warn("cannot save run", "game", m.game.ID(), "err", err)
		return
	}
	if id != "" {
		m.logger.Info("run saved", "game", m.game.ID(), "run", id)
	}
}

// finalScore is the score a run ends with. Games that report run statistics
// give their settled score, which can be ahead of the one still being shown.
func finalScore(game registry.Game) int {
	if reporter, ok := game.(registry.StatsReporter); ok {
		return reporter.RunStats().Score
	}
	return game.State().Score
}

// SaveRun records the game's score and, when the game reports them, its
// run statistics. It returns the new run ID, or "" when nothing was saved.
func SaveRun(store *storage.Store, game registry.Game, score int) (string, error) {
	if store == nil || score <= 0 {
		return "", nil
	}

	reporter, ok := game.(registry.StatsReporter)
	if !ok {
		if _, err := store.SaveScore(game.ID(), score); err != nil {
			return "", err
		}
		return "", nil
	}

	stats := reporter.RunStats()
	return store.SaveRun(storage.RunRecord{
		GameID:         game.ID(),
		Score:          score,
		Swaps:          stats.Swaps,
		Rejected:       stats.Rejected,
		Waves:          stats.Waves,
		Cleared:        stats.Cleared,
		LongestCascade: stats.LongestCascade,
		Seed:           stats.Seed,
		Rows:           stats.Rows,
		Columns:        stats.Columns,
	})
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".tilematch", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)

	d, ok := m.game.(stateDumper)
	if !ok {
		return
	}
	data, err := d.DumpState()
	if err != nil {
		m.logger.Warn("cannot dump game state", "err", err)
		return
	}
	statePath := strings.TrimSuffix(path, ".txt") + ".yaml"
	if err := os.WriteFile(statePath, data, 0o600); err != nil {
		m.logger.Warn("cannot dump game state", "err", err)
	}
}

// stateDumper is implemented by games that can write their state next to
// a screenshot.
type stateDumper interface {
	DumpState() ([]byte, error)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
