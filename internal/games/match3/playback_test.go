package match3

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilematch/internal/games/match3/core"
	"github.com/vovakirdan/tilematch/internal/games/match3/mocks"
)

func TestDelayTicks(t *testing.T) {
	tests := []struct {
		name     string
		delay    time.Duration
		tickRate int
		want     int
	}{
		{"zero delay", 0, 60, 0},
		{"exact tick", 100 * time.Millisecond, 10, 1},
		{"rounds up", 150 * time.Millisecond, 10, 2},
		{"default step", 250 * time.Millisecond, 60, 15},
		{"default swap", 500 * time.Millisecond, 60, 30},
		{"exact multiple at 30fps", 100 * time.Millisecond, 30, 3},
		{"partial tick at 60fps", time.Millisecond, 60, 1},
		{"no tick rate", time.Second, 0, 0},
		{"negative delay", -time.Second, 60, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DelayTicks(tt.delay, tt.tickRate))
		})
	}
}

// columnCascade resolves a single column R R R G (bottom to top) and
// returns the board before and after together with the events.
func columnCascade(t *testing.T) (before, after *core.Grid, events []core.Event) {
	t.Helper()

	g, err := core.GridFromTypes([][]core.TileType{
		{core.TileRed}, {core.TileRed}, {core.TileRed}, {core.TileGreen},
	})
	require.NoError(t, err)
	before = g.Clone()

	cfg := core.Config{
		Rows:           4,
		Columns:        1,
		MatchCount:     3,
		Types:          []core.TileType{core.TileRed, core.TileGreen, core.TileBlue},
		IncreaseAmount: 10,
	}
	r := core.NewResolver(cfg, mocks.NewMockSource(2, 0, 2))
	r.SeedIDs(g)
	cascade := r.Resolve(g, 0)
	require.Equal(t, 1, cascade.Waves)

	return before, g, cascade.Events
}

func assertShows(t *testing.T, p *Playback, g *core.Grid) {
	t.Helper()
	for _, c := range g.Cells() {
		tile, ok, err := g.Get(c)
		require.NoError(t, err)
		vc := p.Cell(c)
		assert.Equal(t, ok, vc.Occupied, "cell %s", c)
		if ok {
			assert.Equal(t, tile.Type, vc.Type, "cell %s", c)
		}
		assert.Equal(t, MarkNone, vc.Mark, "cell %s", c)
	}
}

func TestNewPlaybackShowsGrid(t *testing.T) {
	before, _, _ := columnCascade(t)

	p := NewPlayback(before, 30, 1, 1)
	assert.False(t, p.Busy())
	assert.Equal(t, 30, p.Score())
	assertShows(t, p, before)
	assert.Equal(t, ViewCell{}, p.Cell(core.At(9, 9)))
}

func TestPlaybackSpreadsWaveOverTicks(t *testing.T) {
	before, after, events := columnCascade(t)

	p := NewPlayback(before, 0, 2, 1)
	p.Enqueue(events...)

	// Clear: matched tiles are highlighted but still on screen
	p.Tick()
	assert.True(t, p.Busy())
	for row := 0; row < 3; row++ {
		assert.Equal(t, MarkCleared, p.Cell(core.At(row, 0)).Mark)
	}
	p.Tick()
	assert.Equal(t, MarkCleared, p.Cell(core.At(0, 0)).Mark)

	// Collapse: the green tile falls to the bottom
	p.Tick()
	bottom := p.Cell(core.At(0, 0))
	assert.Equal(t, core.TileGreen, bottom.Type)
	assert.Equal(t, MarkFallen, bottom.Mark)
	assert.False(t, p.Cell(core.At(3, 0)).Occupied)
	assert.Zero(t, p.Score())
	p.Tick()

	// Refill
	p.Tick()
	for row := 1; row < 4; row++ {
		assert.Equal(t, MarkSpawned, p.Cell(core.At(row, 0)).Mark)
	}
	assert.True(t, p.Busy())
	p.Tick()

	// Score follows the refill without its own delay
	p.Tick()
	assert.False(t, p.Busy())
	assert.Equal(t, 10, p.Score())
	assertShows(t, p, after)
}

func TestPlaybackFlush(t *testing.T) {
	before, after, events := columnCascade(t)

	p := NewPlayback(before, 0, 5, 5)
	p.Enqueue(events...)
	p.Tick()
	require.True(t, p.Busy())

	p.Flush()
	assert.False(t, p.Busy())
	assert.Equal(t, 10, p.Score())
	assertShows(t, p, after)
}

func TestPlaybackSelection(t *testing.T) {
	before, _, _ := columnCascade(t)
	p := NewPlayback(before, 0, 3, 3)

	p.Enqueue(core.Selected{Cell: core.At(1, 0)})
	p.Tick()
	c, ok := p.Selection()
	assert.True(t, ok)
	assert.Equal(t, core.At(1, 0), c)
	assert.False(t, p.Busy(), "selection changes are instant")

	p.Enqueue(core.Deselected{Cell: core.At(1, 0)})
	p.Tick()
	_, ok = p.Selection()
	assert.False(t, ok)
}

func TestPlaybackSwapAndReject(t *testing.T) {
	before, _, _ := columnCascade(t)
	p := NewPlayback(before, 0, 0, 1)

	p.Enqueue(core.SwapRejected{A: core.At(2, 0), B: core.At(3, 0)})
	p.Tick()
	assert.Equal(t, MarkRejected, p.Cell(core.At(2, 0)).Mark)
	assert.Equal(t, core.TileGreen, p.Cell(core.At(3, 0)).Type)
	p.Tick()
	assert.False(t, p.Busy())
	assert.Equal(t, MarkNone, p.Cell(core.At(2, 0)).Mark)

	p.Enqueue(core.Swapped{A: core.At(2, 0), B: core.At(3, 0)})
	p.Tick()
	assert.Equal(t, core.TileGreen, p.Cell(core.At(2, 0)).Type)
	assert.Equal(t, core.TileRed, p.Cell(core.At(3, 0)).Type)
	assert.Equal(t, MarkSwapped, p.Cell(core.At(3, 0)).Mark)
}
