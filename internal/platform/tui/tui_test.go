package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilematch/internal/config"
	"github.com/vovakirdan/tilematch/internal/core"
	"github.com/vovakirdan/tilematch/internal/registry"
	"github.com/vovakirdan/tilematch/internal/storage"
)

// stubGame is a minimal registry.Game whose state the tests set directly.
type stubGame struct {
	id     string
	state  core.GameState
	resets int
	steps  []core.InputFrame
}

func (g *stubGame) ID() string               { return g.id }
func (g *stubGame) Title() string            { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, g.id) }
func (g *stubGame) State() core.GameState    { return g.state }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, in.Clone())
	return core.StepResult{State: g.state}
}

// statsGame also reports run statistics.
type statsGame struct {
	stubGame
	stats core.RunStats
}

func (g *statsGame) RunStats() core.RunStats { return g.stats }

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{id: "stub"} })
	registry.Register("stub_stats", func() registry.Game { return &statsGame{stubGame: stubGame{id: "stub_stats"}} })
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRuntimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"vim down", runes("j"), core.ActionDown, false},
		{"wasd left", runes("a"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space confirms", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionConfirm, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"escape cancels", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"b cancels", runes("b"), core.ActionBack, false},
		{"hint", runes("?"), core.ActionHint, false},
		{"pause", runes("p"), core.ActionPause, false},
		{"restart", runes("r"), core.ActionRestart, false},
		{"q quits", runes("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runes("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	assert.False(t, km.MapKeyToFrame(runes("l"), &frame))
	assert.False(t, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyEnter}, &frame))
	assert.True(t, frame.Has(core.ActionRight))
	assert.True(t, frame.Has(core.ActionConfirm))

	assert.True(t, km.MapKeyToFrame(runes("q"), &frame))
	assert.False(t, frame.Has(core.ActionQuit), "quit is not a game action")
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(runes("k")))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, MenuActionLeft, km.MapKeyToMenuAction(runes("h")))
	assert.Equal(t, MenuActionRight, km.MapKeyToMenuAction(runes("l")))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionBack, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, MenuActionScoreboard, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(runes("q")))
	assert.Equal(t, MenuActionNone, km.MapKeyToMenuAction(runes("x")))
}

func pressMenu(t *testing.T, m MenuModel, msg tea.KeyMsg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	require.True(t, ok)
	return mm
}

func TestMenuSelectsBoard(t *testing.T) {
	m := NewMenuModel(nil, testRuntimeConfig(), "")
	require.Len(t, m.items, 2)
	assert.Equal(t, "stub", m.items[0].GameID)

	m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, m.Selected())
	assert.Equal(t, "stub_stats", m.Selected().GameID)

	res := m.Result()
	assert.Equal(t, "stub_stats", res.GameID)
	assert.False(t, res.Quit)
	assert.False(t, res.WantsScoreboard)
}

func TestMenuCyclesDifficulty(t *testing.T) {
	m := NewMenuModel(nil, testRuntimeConfig(), config.DifficultyHard)
	assert.Equal(t, config.DifficultyHard, m.Difficulty())

	m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, config.DifficultyPreset(""), m.Difficulty())
	assert.Contains(t, m.View(), "from config")

	m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, config.DifficultyEasy, m.Difficulty())
	assert.Contains(t, m.View(), "Difficulty: easy")
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := pressMenu(t, NewMenuModel(nil, testRuntimeConfig(), ""), tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.Result().WantsScoreboard)

	m = pressMenu(t, NewMenuModel(nil, testRuntimeConfig(), ""), runes("q"))
	assert.True(t, m.IsQuitting())
	assert.True(t, m.Result().Quit)
	assert.Empty(t, m.View())
}

func TestMenuShowsHighScores(t *testing.T) {
	store := openTestStore(t)
	_, err := store.SaveScore("stub", 420)
	require.NoError(t, err)

	m := NewMenuModel(store, testRuntimeConfig(), "")
	assert.Equal(t, 420, m.items[0].HighScore)
	assert.Contains(t, m.View(), "(best 420)")
}

func TestSaveRunWithStats(t *testing.T) {
	store := openTestStore(t)
	game := &statsGame{
		stubGame: stubGame{id: "stub_stats"},
		stats: core.RunStats{
			Swaps: 7, Rejected: 2, Waves: 9, Cleared: 30,
			LongestCascade: 3, Seed: 42, Rows: 8, Columns: 8,
		},
	}

	id, err := SaveRun(store, game, 150)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	run, err := store.RunByID(id)
	require.NoError(t, err)
	assert.Equal(t, "stub_stats", run.GameID)
	assert.Equal(t, 150, run.Score)
	assert.Equal(t, 7, run.Swaps)
	assert.Equal(t, 3, run.LongestCascade)
	assert.Equal(t, int64(42), run.Seed)

	best, err := store.HighScore("stub_stats")
	require.NoError(t, err)
	assert.Equal(t, 150, best)
}

func TestSaveRunScoreOnly(t *testing.T) {
	store := openTestStore(t)

	id, err := SaveRun(store, &stubGame{id: "stub"}, 80)
	require.NoError(t, err)
	assert.Empty(t, id)

	best, err := store.HighScore("stub")
	require.NoError(t, err)
	assert.Equal(t, 80, best)
}

func TestSaveRunSkipsEmptyRuns(t *testing.T) {
	store := openTestStore(t)

	id, err := SaveRun(store, &stubGame{id: "stub"}, 0)
	require.NoError(t, err)
	assert.Empty(t, id)

	id, err = SaveRun(nil, &stubGame{id: "stub"}, 100)
	require.NoError(t, err)
	assert.Empty(t, id)

	scores, err := store.TopScores("stub", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func updateModel(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	require.True(t, ok)
	return mm, cmd
}

func TestModelForwardsInputOnTick(t *testing.T) {
	game := &stubGame{id: "stub"}
	m := NewModel(game, nil, nil, testRuntimeConfig())
	m.Init()
	assert.Equal(t, 1, game.resets)

	m, _ = updateModel(t, m, runes("l"))
	m, cmd := updateModel(t, m, TickMsg{})
	assert.NotNil(t, cmd)

	require.Len(t, game.steps, 1)
	assert.True(t, game.steps[0].Has(core.ActionRight))
	assert.Contains(t, m.View(), "stub")
}

func TestModelRestartStartsNewBoard(t *testing.T) {
	game := &stubGame{id: "stub"}
	m := NewModel(game, nil, nil, testRuntimeConfig())
	m.Init()

	m, _ = updateModel(t, m, runes("r"))
	_, _ = updateModel(t, m, TickMsg{})
	assert.Equal(t, 2, game.resets)
	assert.Empty(t, game.steps, "restart replaces the tick")
}

func TestModelRecordsRunOnceAtGameOver(t *testing.T) {
	store := openTestStore(t)
	game := &statsGame{
		stubGame: stubGame{id: "stub_stats", state: core.GameState{Score: 60, GameOver: true}},
		stats:    core.RunStats{Score: 60},
	}
	m := NewModel(game, store, nil, testRuntimeConfig())
	m.Init()

	m, _ = updateModel(t, m, TickMsg{})
	m, _ = updateModel(t, m, TickMsg{})
	_, _ = updateModel(t, m, runes("q"))

	runs, err := store.RecentRuns("stub_stats", 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestModelRecordsSettledScore(t *testing.T) {
	store := openTestStore(t)
	// The display still counts up while the run already settled at 90
	game := &statsGame{
		stubGame: stubGame{id: "stub_stats", state: core.GameState{Score: 30, Busy: true}},
		stats:    core.RunStats{Score: 90, Swaps: 2},
	}
	m := NewModel(game, store, nil, testRuntimeConfig())
	m.Init()

	_, _ = updateModel(t, m, runes("q"))

	runs, err := store.RecentRuns("stub_stats", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 90, runs[0].Score)
	assert.Equal(t, 2, runs[0].Swaps)
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{id: "stub"}, nil, nil, testRuntimeConfig())
	m.Init()

	m, cmd := updateModel(t, m, runes("q"))
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestModelBackToMenuInSession(t *testing.T) {
	game := &stubGame{id: "stub"}
	m := NewModel(game, nil, nil, testRuntimeConfig())
	m.inSession = true
	m.Init()

	// Back during play is a game action
	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.BackToMenu())

	game.state.GameOver = true
	m, _ = updateModel(t, m, TickMsg{})
	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())
}

func TestSessionModelStartsGameAndReturnsToMenu(t *testing.T) {
	s := NewSessionModel(nil, nil, testRuntimeConfig(), config.DifficultyEasy)

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	require.NotNil(t, s.gameModel)
	assert.Equal(t, "stub", s.gameModel.game.ID())
	assert.Equal(t, config.DifficultyEasy, s.preset)

	s.gameModel.game.(*stubGame).state.Paused = true
	next, _ = s.Update(TickMsg{})
	s = next.(SessionModel)
	next, _ = s.Update(runes("b"))
	s = next.(SessionModel)

	assert.Nil(t, s.gameModel)
	assert.Contains(t, s.View(), "Select a board")
}

func updateScoreboard(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	require.True(t, ok)
	return sb
}

func TestScoreboardViewsAndDetails(t *testing.T) {
	store := openTestStore(t)
	_, err := store.SaveRun(storage.RunRecord{GameID: "stub", Score: 90, Swaps: 4, Seed: 7, Rows: 8, Columns: 8})
	require.NoError(t, err)

	m := NewScoreboardModel(store, 100, 30)
	assert.Equal(t, "stub", m.boardID())
	require.Len(t, m.scores, 1)
	assert.Contains(t, m.View(), "HIGH SCORES")
	assert.Contains(t, m.View(), "Best 90")

	m = updateScoreboard(t, m, runes("v"))
	require.Len(t, m.runs, 1)
	assert.Contains(t, m.View(), "RECENT RUNS")

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.detail)
	assert.Equal(t, int64(7), m.detail.Seed)
	assert.Contains(t, m.View(), "8 rows x 8 columns")

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.detail)
	assert.False(t, m.IsGoingBack())

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.IsGoingBack())
}

func TestScoreboardSwitchesBoards(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	assert.Contains(t, m.View(), "No runs recorded yet")

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "stub_stats", m.boardID())
	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "stub", m.boardID())

	m = updateScoreboard(t, m, runes("q"))
	assert.True(t, m.IsQuitting())
}
