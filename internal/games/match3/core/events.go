package core

// Event is a discrete change the presentation layer must replay in order.
type Event interface {
	match3Event()
}

// Selected is emitted when a cell becomes the current selection.
type Selected struct {
	Cell Cell
}

func (Selected) match3Event() {}

// Deselected is emitted when the current selection is cleared.
type Deselected struct {
	Cell Cell // The cell that was selected
}

func (Deselected) match3Event() {}

// Swapped is emitted when a legal swap is committed to the grid.
type Swapped struct {
	A Cell
	B Cell
}

func (Swapped) match3Event() {}

// SwapRejected is emitted when an adjacent swap would not produce a match.
// The grid is unchanged.
type SwapRejected struct {
	A Cell
	B Cell
}

func (SwapRejected) match3Event() {}

// Cleared is emitted once per wave with every matched cell, row-major.
type Cleared struct {
	Wave  int
	Cells []Cell
}

func (Cleared) match3Event() {}

// Moved is emitted for every tile that falls during a collapse.
type Moved struct {
	Wave int
	From Cell
	To   Cell
	Tile TileID
}

func (Moved) match3Event() {}

// Spawned is emitted for every tile created by a fill or refill.
// Wave is 0 for the initial board fill.
type Spawned struct {
	Wave int
	Cell Cell
	Tile Tile
}

func (Spawned) match3Event() {}

// ScoreChanged is emitted after each wave completes.
type ScoreChanged struct {
	Wave  int
	Score int
	Delta int
}

func (ScoreChanged) match3Event() {}
