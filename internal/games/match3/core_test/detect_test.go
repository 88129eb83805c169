package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilematch/internal/games/match3/core"
)

func TestFindMatchesTopRowOnly(t *testing.T) {
	// A = red, B = green
	g := mustGrid(t,
		[]core.TileType{R, R, G},
		[]core.TileType{G, G, R},
		[]core.TileType{R, R, R},
	)

	m := core.FindMatches(g, 3)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []core.Cell{core.At(2, 0), core.At(2, 1), core.At(2, 2)}, m.Cells())
	for c := 0; c < 3; c++ {
		assert.False(t, m.Contains(core.At(0, c)))
		assert.False(t, m.Contains(core.At(1, c)))
	}
}

func TestFindMatchesCrossCountsOnce(t *testing.T) {
	g := mustGrid(t,
		[]core.TileType{G, R, G},
		[]core.TileType{R, R, R},
		[]core.TileType{B, R, B},
	)

	m := core.FindMatches(g, 3)

	// Row 1 plus column 1, sharing the centre
	assert.Equal(t, 5, m.Len())
	assert.True(t, m.Contains(core.At(1, 1)))
	assert.Len(t, core.FindRuns(g, 3), 2)
}

func TestFindRunsReportsMaximalRuns(t *testing.T) {
	g := mustGrid(t, []core.TileType{B, B, B, B, B, G})

	runs := core.FindRuns(g, 3)
	require.Len(t, runs, 1)
	assert.Equal(t, core.Run{Start: core.At(0, 0), Length: 5, Axis: core.Horizontal, Type: B}, runs[0])
}

func TestFindRunsVertical(t *testing.T) {
	g := mustGrid(t,
		[]core.TileType{G},
		[]core.TileType{Y},
		[]core.TileType{Y},
		[]core.TileType{Y},
	)

	runs := core.FindRuns(g, 3)
	require.Len(t, runs, 1)
	assert.Equal(t, core.Vertical, runs[0].Axis)
	assert.Equal(t, core.At(1, 0), runs[0].Start)
	assert.Equal(t, []core.Cell{core.At(1, 0), core.At(2, 0), core.At(3, 0)}, runs[0].Cells())
}

func TestFindMatchesEmptyCellBreaksRun(t *testing.T) {
	g := mustGrid(t, []core.TileType{P, P, P, P})
	require.NoError(t, g.Clear(core.At(0, 1)))

	assert.True(t, core.FindMatches(g, 3).Empty())

	require.NoError(t, g.Clear(core.At(0, 0)))
	require.NoError(t, g.Clear(core.At(0, 2)))
	require.NoError(t, g.Clear(core.At(0, 3)))
	assert.True(t, core.FindMatches(g, 2).Empty(), "empty cells never match each other")
}

func TestFindMatchesMatchCount(t *testing.T) {
	g := mustGrid(t, []core.TileType{R, R, R, G, G})

	assert.Equal(t, 3, core.FindMatches(g, 3).Len())
	assert.True(t, core.FindMatches(g, 4).Empty())
	assert.Equal(t, 5, core.FindMatches(g, 2).Len())
}

func TestFindMatchesBoardSmallerThanRun(t *testing.T) {
	g := mustGrid(t, []core.TileType{R, R}, []core.TileType{R, R})

	assert.True(t, core.FindMatches(g, 3).Empty())
	assert.False(t, core.HasMatch(g, 3))
}
