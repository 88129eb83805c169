// Package core implements the tile-matching rules for Match-3: the grid,
// run detection, swap legality and the clear/collapse/refill cascade.
// It is UI-agnostic and synchronous; the presentation layer consumes the
// events it returns.
package core

import "strings"

// TileType identifies a kind of tile. Two tiles match iff their types are equal.
type TileType uint8

const (
	TileRed TileType = iota
	TileGreen
	TileBlue
	TileYellow
	TilePurple
	TileOrange
	TileCyan
	TileTypeCount // Sentinel value for iteration
)

// String returns the string representation of a tile type.
func (t TileType) String() string {
	switch t {
	case TileRed:
		return "red"
	case TileGreen:
		return "green"
	case TileBlue:
		return "blue"
	case TileYellow:
		return "yellow"
	case TilePurple:
		return "purple"
	case TileOrange:
		return "orange"
	case TileCyan:
		return "cyan"
	default:
		return "unknown"
	}
}

// Char returns a single character representation for ASCII boards.
func (t TileType) Char() rune {
	switch t {
	case TileRed:
		return 'R'
	case TileGreen:
		return 'G'
	case TileBlue:
		return 'B'
	case TileYellow:
		return 'Y'
	case TilePurple:
		return 'P'
	case TileOrange:
		return 'O'
	case TileCyan:
		return 'C'
	default:
		return '?'
	}
}

// Valid reports whether t is one of the known tile types.
func (t TileType) Valid() bool {
	return t < TileTypeCount
}

// ParseTileType converts a name or single-letter code to a TileType.
func ParseTileType(s string) (TileType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return TileRed, true
	case "green", "g":
		return TileGreen, true
	case "blue", "b":
		return TileBlue, true
	case "yellow", "y":
		return TileYellow, true
	case "purple", "p":
		return TilePurple, true
	case "orange", "o":
		return TileOrange, true
	case "cyan", "c":
		return TileCyan, true
	default:
		return TileRed, false
	}
}

// AllTileTypes returns every known tile type in declaration order.
func AllTileTypes() []TileType {
	types := make([]TileType, 0, TileTypeCount)
	for t := TileType(0); t < TileTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// FirstTileTypes returns the first n tile types, clamped to the known set.
func FirstTileTypes(n int) []TileType {
	all := AllTileTypes()
	if n < 0 {
		n = 0
	}
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}
