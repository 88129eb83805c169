package core

// Swap is a pair of adjacent cells whose occupants would be exchanged.
type Swap struct {
	A Cell
	B Cell
}

// CanSwap reports whether swapping a and b is legal: the cells must be
// adjacent and the swapped board must contain at least one match.
// The grid is swapped speculatively and always restored before returning.
func CanSwap(g *Grid, a, b Cell, matchCount int) bool {
	if !a.Adjacent(b) || !g.InBounds(a) || !g.InBounds(b) {
		return false
	}
	if err := g.Swap(a, b); err != nil {
		return false
	}
	legal := HasMatch(g, matchCount)
	//nolint:errcheck // Both cells were bounds-checked above
	g.Swap(a, b)
	return legal
}

// FindSwaps lists every legal swap on the grid. Each pair is reported once,
// with B to the right of or above A.
func FindSwaps(g *Grid, matchCount int) []Swap {
	var swaps []Swap
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.columns; c++ {
			a := At(r, c)
			for _, b := range []Cell{At(r, c+1), At(r+1, c)} {
				if CanSwap(g, a, b, matchCount) {
					swaps = append(swaps, Swap{A: a, B: b})
				}
			}
		}
	}
	return swaps
}

// HasLegalSwap reports whether at least one swap would produce a match.
func HasLegalSwap(g *Grid, matchCount int) bool {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.columns; c++ {
			a := At(r, c)
			if CanSwap(g, a, At(r, c+1), matchCount) || CanSwap(g, a, At(r+1, c), matchCount) {
				return true
			}
		}
	}
	return false
}
