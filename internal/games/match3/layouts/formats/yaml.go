// Package formats provides board layout file parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilematch/internal/games/match3/core"
)

// Empty marks a cell the engine fills at random.
const Empty = core.TileTypeCount

// YAMLLayout represents the YAML structure for a layout file.
//
//	id: corner
//	name: Corner
//	types: [red, green, blue, yellow]
//	board:
//	  - "RGBY"
//	  - "GB.R"
//
// Board rows are written top row first, one letter per cell,
// '.' for a random tile.
type YAMLLayout struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Types      []string          `yaml:"types,omitempty"`
	MatchCount int               `yaml:"match_count,omitempty"`
	Board      []string          `yaml:"board"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// Layout represents a parsed layout ready for use.
type Layout struct {
	ID         string
	Name       string
	Types      []core.TileType    // Empty means use the configured set
	MatchCount int                // 0 means use the configured value
	Cells      [][]core.TileType // Bottom row first; Empty for random cells
	Metadata   map[string]string
}

// ParseYAML parses a YAML layout file.
func ParseYAML(data []byte) (Layout, error) {
	var yl YAMLLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if len(yl.Board) == 0 {
		return Layout{}, fmt.Errorf("layout %q: board is empty", yl.ID)
	}

	layout := Layout{
		ID:         yl.ID,
		Name:       yl.Name,
		MatchCount: yl.MatchCount,
		Cells:      make([][]core.TileType, len(yl.Board)),
		Metadata:   yl.Metadata,
	}

	for _, name := range yl.Types {
		t, ok := core.ParseTileType(name)
		if !ok {
			return Layout{}, fmt.Errorf("layout %q: unknown tile type %q", yl.ID, name)
		}
		layout.Types = append(layout.Types, t)
	}

	width := len([]rune(strings.TrimSpace(yl.Board[0])))
	for i, line := range yl.Board {
		runes := []rune(strings.TrimSpace(line))
		if len(runes) != width {
			return Layout{}, fmt.Errorf("layout %q: row %d has %d cells, want %d", yl.ID, i+1, len(runes), width)
		}

		// File rows are top first, cells are bottom first
		row := make([]core.TileType, width)
		for c, r := range runes {
			if r == '.' {
				row[c] = Empty
				continue
			}
			t, ok := core.ParseTileType(string(r))
			if !ok {
				return Layout{}, fmt.Errorf("layout %q: row %d: unknown tile %q", yl.ID, i+1, r)
			}
			row[c] = t
		}
		layout.Cells[len(yl.Board)-1-i] = row
	}

	return layout, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
