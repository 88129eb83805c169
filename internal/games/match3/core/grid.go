package core

import "strings"

// slot holds an optional tile. Empty slots only exist mid-cascade.
type slot struct {
	tile     Tile
	occupied bool
}

// Grid is a fixed-size board of tile slots.
// Slots are stored in row-major order: index = row*columns + col.
type Grid struct {
	rows    int
	columns int
	slots   []slot
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(rows, columns int) (*Grid, error) {
	if rows <= 0 {
		return nil, &ConfigError{Field: "rows", Message: "must be positive"}
	}
	if columns <= 0 {
		return nil, &ConfigError{Field: "columns", Message: "must be positive"}
	}
	return &Grid{
		rows:    rows,
		columns: columns,
		slots:   make([]slot, rows*columns),
	}, nil
}

// GridFromTypes builds a fully occupied grid from rows of tile types.
// layout[0] is the bottom row. Tiles get IDs 1..n in row-major order.
func GridFromTypes(layout [][]TileType) (*Grid, error) {
	if len(layout) == 0 {
		return nil, &ConfigError{Field: "rows", Message: "must be positive"}
	}
	g, err := NewGrid(len(layout), len(layout[0]))
	if err != nil {
		return nil, err
	}
	var id TileID
	for r, row := range layout {
		if len(row) != g.columns {
			return nil, &ConfigError{Field: "columns", Message: "rows must have equal length"}
		}
		for c, t := range row {
			id++
			g.slots[g.index(At(r, c))] = slot{tile: Tile{ID: id, Type: t}, occupied: true}
		}
	}
	return g, nil
}

// index converts a cell to a flat array index.
func (g *Grid) index(c Cell) int {
	return c.Row*g.columns + c.Col
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns.
func (g *Grid) Columns() int {
	return g.columns
}

// InBounds reports whether the cell lies within the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.columns
}

func (g *Grid) check(c Cell) error {
	if !g.InBounds(c) {
		return &BoundsError{Cell: c, Rows: g.rows, Columns: g.columns}
	}
	return nil
}

// Get returns the tile at c and whether the cell is occupied.
func (g *Grid) Get(c Cell) (Tile, bool, error) {
	if err := g.check(c); err != nil {
		return Tile{}, false, err
	}
	s := g.slots[g.index(c)]
	return s.tile, s.occupied, nil
}

// Set places a tile at c, replacing any occupant.
func (g *Grid) Set(c Cell, t Tile) error {
	if err := g.check(c); err != nil {
		return err
	}
	g.slots[g.index(c)] = slot{tile: t, occupied: true}
	return nil
}

// Clear empties the cell at c.
func (g *Grid) Clear(c Cell) error {
	if err := g.check(c); err != nil {
		return err
	}
	g.slots[g.index(c)] = slot{}
	return nil
}

// Swap exchanges the occupants of two cells. Adjacency is not required here.
func (g *Grid) Swap(a, b Cell) error {
	if err := g.check(a); err != nil {
		return err
	}
	if err := g.check(b); err != nil {
		return err
	}
	ia, ib := g.index(a), g.index(b)
	g.slots[ia], g.slots[ib] = g.slots[ib], g.slots[ia]
	return nil
}

// IsAdjacent reports whether a and b share an edge.
func (g *Grid) IsAdjacent(a, b Cell) bool {
	return a.Adjacent(b)
}

// typeAt returns the type at an in-bounds cell, or false when empty.
func (g *Grid) typeAt(row, col int) (TileType, bool) {
	s := g.slots[row*g.columns+col]
	return s.tile.Type, s.occupied
}

// EmptyCount returns the number of unoccupied cells.
func (g *Grid) EmptyCount() int {
	count := 0
	for _, s := range g.slots {
		if !s.occupied {
			count++
		}
	}
	return count
}

// Full reports whether every cell is occupied.
func (g *Grid) Full() bool {
	return g.EmptyCount() == 0
}

// Cells returns all cells in row-major order, bottom row first.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, len(g.slots))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.columns; c++ {
			cells = append(cells, At(r, c))
		}
	}
	return cells
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	slots := make([]slot, len(g.slots))
	copy(slots, g.slots)
	return &Grid{
		rows:    g.rows,
		columns: g.columns,
		slots:   slots,
	}
}

// Equal returns true if two grids have the same dimensions and occupants.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.columns != other.columns {
		return false
	}
	for i, s := range g.slots {
		if s != other.slots[i] {
			return false
		}
	}
	return true
}

// Types returns the tile types row by row, bottom row first.
// Empty cells are reported as TileTypeCount.
func (g *Grid) Types() [][]TileType {
	out := make([][]TileType, g.rows)
	for r := range out {
		out[r] = make([]TileType, g.columns)
		for c := range out[r] {
			t, ok := g.typeAt(r, c)
			if !ok {
				t = TileTypeCount
			}
			out[r][c] = t
		}
	}
	return out
}

// String renders the grid top row first, one character per cell,
// '.' for empty cells.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.columns + 1) * g.rows)
	for r := g.rows - 1; r >= 0; r-- {
		for c := 0; c < g.columns; c++ {
			t, ok := g.typeAt(r, c)
			if !ok {
				sb.WriteRune('.')
				continue
			}
			sb.WriteRune(t.Char())
		}
		if r > 0 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
