// Package layouts loads fixed starting boards from files.
// This package depends on core but core does not depend on layouts.
package layouts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/tilematch/internal/games/match3/core"
	"github.com/vovakirdan/tilematch/internal/games/match3/layouts/formats"
)

// ErrUnknownLayout is returned when no layout has the requested ID.
var ErrUnknownLayout = errors.New("layouts: unknown layout")

// Layout represents a complete starting board definition.
type Layout struct {
	ID         string
	Name       string
	Types      []core.TileType
	MatchCount int
	Cells      [][]core.TileType // Bottom row first; formats.Empty for random cells
	Metadata   map[string]string
	FilePath   string
}

// Rows returns the board height.
func (l *Layout) Rows() int {
	return len(l.Cells)
}

// Columns returns the board width.
func (l *Layout) Columns() int {
	if len(l.Cells) == 0 {
		return 0
	}
	return len(l.Cells[0])
}

// Grid builds a grid from the layout. Random cells are left empty.
// Tiles get IDs 1..n in row-major order, bottom row first.
func (l *Layout) Grid() (*core.Grid, error) {
	g, err := core.NewGrid(l.Rows(), l.Columns())
	if err != nil {
		return nil, err
	}

	var id core.TileID
	for r, row := range l.Cells {
		for c, t := range row {
			if t == formats.Empty {
				continue
			}
			id++
			if err := g.Set(core.At(r, c), core.Tile{ID: id, Type: t}); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// Apply copies the layout's board size and optional rule overrides onto cfg.
func (l *Layout) Apply(cfg *core.Config) {
	cfg.Rows = l.Rows()
	cfg.Columns = l.Columns()
	if len(l.Types) > 0 {
		cfg.Types = slices.Clone(l.Types)
	}
	if l.MatchCount > 0 {
		cfg.MatchCount = l.MatchCount
	}
}

// Loader handles loading layouts from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all layout files.
// Returns layouts sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Layout, error) {
	var layouts []Layout

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(formats.FormatExtensions(), ext) {
			return nil
		}

		layout, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		layouts = append(layouts, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})

	return layouts, nil
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Layout, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return Layout{}, err
	}

	for _, layout := range layouts {
		if layout.ID == id {
			return layout, nil
		}
	}

	return Layout{}, fmt.Errorf("%w: %s", ErrUnknownLayout, id)
}

// LoadFile loads a single layout file. A layout without an ID takes its
// file name.
func LoadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var parsed formats.Layout
	switch ext {
	case ".yaml", ".yml":
		parsed, err = formats.ParseYAML(data)
	default:
		err = fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Layout{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	id := parsed.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return Layout{
		ID:         id,
		Name:       parsed.Name,
		Types:      parsed.Types,
		MatchCount: parsed.MatchCount,
		Cells:      parsed.Cells,
		Metadata:   parsed.Metadata,
		FilePath:   path,
	}, nil
}
