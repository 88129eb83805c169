package core

import "sort"

// DefaultMatchCount is the run length that counts as a match.
const DefaultMatchCount = 3

// Axis is the direction a run extends in.
type Axis uint8

const (
	Horizontal Axis = iota // Along a row, rightward
	Vertical               // Along a column, upward
)

// String returns the string representation of an axis.
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Run is a maximal contiguous sequence of same-type tiles along one axis.
type Run struct {
	Start  Cell
	Length int
	Axis   Axis
	Type   TileType
}

// Cells returns every cell covered by the run.
func (r Run) Cells() []Cell {
	cells := make([]Cell, r.Length)
	for i := range cells {
		if r.Axis == Vertical {
			cells[i] = At(r.Start.Row+i, r.Start.Col)
		} else {
			cells[i] = At(r.Start.Row, r.Start.Col+i)
		}
	}
	return cells
}

// FindRuns returns every run of at least matchCount tiles.
// Rows are scanned first (bottom to top), then columns (left to right).
// Each slot is visited once per axis. Empty cells end a run and never
// start one.
func FindRuns(g *Grid, matchCount int) []Run {
	if matchCount < 2 {
		matchCount = 2
	}
	var runs []Run

	for r := 0; r < g.rows; r++ {
		start := 0
		for start < g.columns {
			t, ok := g.typeAt(r, start)
			end := start + 1
			if ok {
				for end < g.columns {
					next, nok := g.typeAt(r, end)
					if !nok || next != t {
						break
					}
					end++
				}
				if end-start >= matchCount {
					runs = append(runs, Run{Start: At(r, start), Length: end - start, Axis: Horizontal, Type: t})
				}
			}
			start = end
		}
	}

	for c := 0; c < g.columns; c++ {
		start := 0
		for start < g.rows {
			t, ok := g.typeAt(start, c)
			end := start + 1
			if ok {
				for end < g.rows {
					next, nok := g.typeAt(end, c)
					if !nok || next != t {
						break
					}
					end++
				}
				if end-start >= matchCount {
					runs = append(runs, Run{Start: At(start, c), Length: end - start, Axis: Vertical, Type: t})
				}
			}
			start = end
		}
	}

	return runs
}

// MatchSet is the set of cells that belong to at least one run.
type MatchSet map[Cell]struct{}

// Contains reports whether c is part of the set.
func (m MatchSet) Contains(c Cell) bool {
	_, ok := m[c]
	return ok
}

// Len returns the number of matched cells.
func (m MatchSet) Len() int {
	return len(m)
}

// Empty reports whether no cell matched.
func (m MatchSet) Empty() bool {
	return len(m) == 0
}

// Cells returns the matched cells in row-major order, bottom row first.
func (m MatchSet) Cells() []Cell {
	cells := make([]Cell, 0, len(m))
	for c := range m {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})
	return cells
}

// FindMatches returns all cells that are part of a run of at least
// matchCount same-type tiles. A cell in both a horizontal and a vertical
// run is reported once.
func FindMatches(g *Grid, matchCount int) MatchSet {
	set := make(MatchSet)
	for _, run := range FindRuns(g, matchCount) {
		for _, c := range run.Cells() {
			set[c] = struct{}{}
		}
	}
	return set
}

// HasMatch reports whether the grid contains any run of matchCount tiles.
func HasMatch(g *Grid, matchCount int) bool {
	return len(FindRuns(g, matchCount)) > 0
}
