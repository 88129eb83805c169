package core_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilematch/internal/games/match3/core"
	"github.com/vovakirdan/tilematch/internal/games/match3/mocks"
)

func smallConfig() core.Config {
	return core.Config{
		Rows:           3,
		Columns:        3,
		MatchCount:     3,
		Types:          []core.TileType{R, G, B, Y},
		IncreaseAmount: 10,
	}
}

// newStableEngine starts from stableBoard. The source refills the top row
// with Y R B after the (0,2)-(1,2) swap.
func newStableEngine(t *testing.T, cfg core.Config) *core.Engine {
	t.Helper()
	e, err := core.New(cfg,
		core.WithGrid(stableBoard(t)),
		core.WithSource(mocks.NewMockSource(3, 0, 2)),
	)
	require.NoError(t, err)
	return e
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*core.Config)
		field  string
	}{
		{"zero rows", func(c *core.Config) { c.Rows = 0 }, "rows"},
		{"negative columns", func(c *core.Config) { c.Columns = -2 }, "columns"},
		{"match count one", func(c *core.Config) { c.MatchCount = 1 }, "match_count"},
		{"no types", func(c *core.Config) { c.Types = nil }, "types"},
		{"duplicate type", func(c *core.Config) { c.Types = []core.TileType{R, R, G} }, "types"},
		{"unknown type", func(c *core.Config) { c.Types = []core.TileType{R, G, core.TileTypeCount} }, "types"},
		{"fewer types than run", func(c *core.Config) { c.Types = []core.TileType{R, G} }, "types"},
		{"negative increase", func(c *core.Config) { c.IncreaseAmount = -1 }, "increase_amount"},
		{"bad policy", func(c *core.Config) { c.RejectPolicy = 9 }, "reject_policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := core.DefaultConfig()
			tt.mutate(&cfg)

			_, err := core.New(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidConfig))

			var cfgErr *core.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestNewRejectsMismatchedGrid(t *testing.T) {
	cfg := smallConfig()
	cfg.Rows = 4

	_, err := core.New(cfg, core.WithGrid(stableBoard(t)))
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestNewFillsBoard(t *testing.T) {
	e, err := core.New(core.DefaultConfig(), core.WithSource(core.NewSource(7)))
	require.NoError(t, err)

	g := e.Grid()
	assert.Equal(t, 8, g.Rows())
	assert.Equal(t, 8, g.Columns())
	assert.True(t, g.Full())
	assert.Equal(t, 0, e.Score())
}

func TestEngineStartingScore(t *testing.T) {
	cfg := smallConfig()
	cfg.StartingScore = 100
	e := newStableEngine(t, cfg)

	assert.Equal(t, 100, e.Score())
}

func TestEngineSelectAndDeselect(t *testing.T) {
	e := newStableEngine(t, smallConfig())

	res, err := e.Select(core.At(1, 1))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeSelected, res.Outcome)
	assert.Equal(t, []core.Event{core.Selected{Cell: core.At(1, 1)}}, res.Events)

	sel, ok := e.Selection()
	assert.True(t, ok)
	assert.Equal(t, core.At(1, 1), sel)

	res = e.Deselect()
	assert.Equal(t, core.OutcomeDeselected, res.Outcome)
	assert.Equal(t, []core.Event{core.Deselected{Cell: core.At(1, 1)}}, res.Events)
	_, ok = e.Selection()
	assert.False(t, ok)

	// Nothing to clear
	res = e.Deselect()
	assert.Empty(t, res.Events)
}

func TestEngineSelectOutOfBounds(t *testing.T) {
	e := newStableEngine(t, smallConfig())

	_, err := e.Select(core.At(3, 0))
	assert.ErrorIs(t, err, core.ErrOutOfBounds)

	_, err = e.TrySwap(core.At(0, -1))
	assert.ErrorIs(t, err, core.ErrOutOfBounds)
}

func TestTrySwapWithoutSelectionSelects(t *testing.T) {
	e := newStableEngine(t, smallConfig())

	res, err := e.TrySwap(core.At(0, 2))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeSelected, res.Outcome)

	sel, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, core.At(0, 2), sel)
}

func TestTrySwapSameCellReselects(t *testing.T) {
	e := newStableEngine(t, smallConfig())
	before := e.Grid()

	_, err := e.Select(core.At(0, 2))
	require.NoError(t, err)

	res, err := e.TrySwap(core.At(0, 2))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeSelected, res.Outcome)
	assert.Equal(t, []core.Event{core.Selected{Cell: core.At(0, 2)}}, res.Events)
	assert.True(t, e.Grid().Equal(before))

	sel, ok := e.Selection()
	assert.True(t, ok)
	assert.Equal(t, core.At(0, 2), sel)
}

func TestTrySwapNonAdjacentReselects(t *testing.T) {
	e := newStableEngine(t, smallConfig())
	before := e.Grid()

	_, err := e.Select(core.At(0, 0))
	require.NoError(t, err)

	res, err := e.TrySwap(core.At(2, 2))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeSelected, res.Outcome)
	assert.Equal(t, []core.Event{
		core.Deselected{Cell: core.At(0, 0)},
		core.Selected{Cell: core.At(2, 2)},
	}, res.Events)
	assert.True(t, e.Grid().Equal(before))

	sel, _ := e.Selection()
	assert.Equal(t, core.At(2, 2), sel)
}

func TestTrySwapRejectedDeselects(t *testing.T) {
	e := newStableEngine(t, smallConfig())
	before := e.Grid()

	_, err := e.Select(core.At(1, 0))
	require.NoError(t, err)

	res, err := e.TrySwap(core.At(1, 1))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeRejected, res.Outcome)
	assert.Equal(t, []core.Event{
		core.SwapRejected{A: core.At(1, 0), B: core.At(1, 1)},
		core.Deselected{Cell: core.At(1, 0)},
	}, res.Events)
	assert.True(t, e.Grid().Equal(before))

	_, ok := e.Selection()
	assert.False(t, ok)
	assert.Equal(t, 1, e.Stats().Rejected)
	assert.Equal(t, 0, e.Stats().Swaps)
}

func TestTrySwapRejectedKeepsSelection(t *testing.T) {
	cfg := smallConfig()
	cfg.RejectPolicy = core.RejectKeepsSelection
	e := newStableEngine(t, cfg)

	_, err := e.Select(core.At(1, 0))
	require.NoError(t, err)

	res, err := e.TrySwap(core.At(1, 1))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeRejected, res.Outcome)
	assert.Equal(t, []core.Event{core.SwapRejected{A: core.At(1, 0), B: core.At(1, 1)}}, res.Events)

	sel, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, core.At(1, 0), sel)
}

func TestTrySwapCommitsAndCascades(t *testing.T) {
	e := newStableEngine(t, smallConfig())

	_, err := e.Select(core.At(0, 2))
	require.NoError(t, err)

	res, err := e.TrySwap(core.At(1, 2))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeSwapped, res.Outcome)
	assert.Equal(t, 1, res.Waves)
	assert.Equal(t, 10, res.Score)
	assert.Equal(t, 10, e.Score())

	require.GreaterOrEqual(t, len(res.Events), 3)
	assert.Equal(t, core.Deselected{Cell: core.At(0, 2)}, res.Events[0])
	assert.Equal(t, core.Swapped{A: core.At(0, 2), B: core.At(1, 2)}, res.Events[1])
	assert.Equal(t, core.Cleared{Wave: 1, Cells: []core.Cell{core.At(0, 0), core.At(0, 1), core.At(0, 2)}}, res.Events[2])
	assert.Equal(t, core.ScoreChanged{Wave: 1, Score: 10, Delta: 10}, res.Events[len(res.Events)-1])

	// Y R B
	// B Y G
	// G B G
	assert.Equal(t, "YRB\nBYG\nGBG", e.Grid().String())

	_, ok := e.Selection()
	assert.False(t, ok)
	assert.Equal(t, core.Stats{Swaps: 1, Waves: 1, Cleared: 3, LongestCascade: 1}, e.Stats())
}

func TestRunCascadeSettlesFixedLayout(t *testing.T) {
	g := mustGrid(t, []core.TileType{R}, []core.TileType{R}, []core.TileType{R}, []core.TileType{G})
	e, err := core.New(columnConfig(), core.WithGrid(g), core.WithSource(mocks.NewMockSource(2, 0, 2)))
	require.NoError(t, err)

	res := e.RunCascade()
	assert.Equal(t, 1, res.Waves)
	assert.Equal(t, 10, e.Score())
	assert.True(t, core.FindMatches(e.Grid(), 3).Empty())
}

func TestEngineGridIsCopy(t *testing.T) {
	e := newStableEngine(t, smallConfig())

	g := e.Grid()
	require.NoError(t, g.Clear(core.At(0, 0)))
	assert.True(t, e.Grid().Full())
}

func TestEngineHintAndStuck(t *testing.T) {
	e := newStableEngine(t, smallConfig())

	hint, ok := e.Hint()
	require.True(t, ok)
	assert.True(t, core.CanSwap(e.Grid(), hint.A, hint.B, 3))
	assert.False(t, e.Stuck())

	dead := mustGrid(t,
		[]core.TileType{R, G, B},
		[]core.TileType{Y, P, R},
		[]core.TileType{G, B, Y},
	)
	cfg := smallConfig()
	cfg.Types = []core.TileType{R, G, B, Y, P}
	e, err := core.New(cfg, core.WithGrid(dead))
	require.NoError(t, err)

	_, ok = e.Hint()
	assert.False(t, ok)
	assert.True(t, e.Stuck())
}

func TestEngineLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	e, err := core.New(smallConfig(), core.WithGrid(stableBoard(t)), core.WithLogger(logger))
	require.NoError(t, err)
	_, err = e.Select(core.At(0, 0))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "board filled")
	assert.Contains(t, buf.String(), "selected")
}

// Properties checked over many random boards.

func TestEnginePropertiesRandomBoards(t *testing.T) {
	sizes := []struct{ rows, columns, types int }{
		{3, 3, 3},
		{5, 4, 3},
		{8, 8, 6},
		{6, 9, 4},
		{1, 7, 3},
	}

	for _, size := range sizes {
		for seed := int64(1); seed <= 20; seed++ {
			cfg := core.Config{
				Rows:           size.rows,
				Columns:        size.columns,
				MatchCount:     3,
				Types:          core.FirstTileTypes(size.types),
				IncreaseAmount: 5,
			}
			e, err := core.New(cfg, core.WithSource(core.NewSource(seed)))
			require.NoError(t, err)

			res := e.RunCascade()
			assertStable(t, e)
			assert.Equal(t, 5*res.Waves, e.Score())

			// Play out a few hinted swaps
			for turn := 0; turn < 10; turn++ {
				hint, ok := e.Hint()
				if !ok {
					break
				}
				scoreBefore := e.Score()

				_, err := e.Select(hint.A)
				require.NoError(t, err)
				res, err := e.TrySwap(hint.B)
				require.NoError(t, err)

				require.Equal(t, core.OutcomeSwapped, res.Outcome)
				assert.GreaterOrEqual(t, res.Waves, 1)
				assert.Equal(t, scoreBefore+5*res.Waves, e.Score())
				assertStable(t, e)
			}
		}
	}
}

func TestEngineAdjacencyGateRandomBoards(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		e, err := core.New(core.DefaultConfig(), core.WithSource(core.NewSource(seed)))
		require.NoError(t, err)
		e.RunCascade()

		for _, target := range []core.Cell{core.At(2, 2), core.At(0, 2), core.At(2, 0), core.At(3, 4)} {
			before := e.Grid()
			e.Deselect()
			_, err := e.Select(core.At(0, 0))
			require.NoError(t, err)

			res, err := e.TrySwap(target)
			require.NoError(t, err)
			assert.NotEqual(t, core.OutcomeSwapped, res.Outcome)
			assert.True(t, e.Grid().Equal(before))
		}
	}
}

func assertStable(t *testing.T, e *core.Engine) {
	t.Helper()
	g := e.Grid()
	assert.True(t, g.Full(), "board has empty cells:\n%s", g)
	assert.True(t, core.FindMatches(g, e.Config().MatchCount).Empty(), "board has matches:\n%s", g)
}
