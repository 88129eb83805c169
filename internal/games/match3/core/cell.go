package core

import "fmt"

// Cell addresses a grid slot. Row 0 is the bottom row; rows grow upward.
type Cell struct {
	Row int
	Col int
}

// At is a convenience constructor for Cell.
func At(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Manhattan returns the Manhattan distance to another cell.
func (c Cell) Manhattan(other Cell) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Adjacent reports whether two cells share an edge.
// Diagonal neighbours and the cell itself are not adjacent.
func (c Cell) Adjacent(other Cell) bool {
	return c.Manhattan(other) == 1
}

// Less orders cells row-major, bottom row first.
func (c Cell) Less(other Cell) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// TileID identifies a tile for tracking across moves. Zero means no tile.
type TileID uint64

// Tile is an immutable occupant of a cell.
type Tile struct {
	ID   TileID
	Type TileType
}

// String returns a string representation of the tile.
func (t Tile) String() string {
	return fmt.Sprintf("#%d:%s", t.ID, t.Type)
}
