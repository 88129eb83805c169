package config

import (
	"fmt"

	"github.com/vovakirdan/tilematch/internal/games/match3/core"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset validates a preset name. An empty name means no preset.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// TypeCountForPreset returns how many tile kinds a preset plays with.
// Fewer kinds make matches and chain reactions more likely.
func TypeCountForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 4
	case DifficultyHard:
		return int(core.TileTypeCount)
	default:
		return 6
	}
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	if preset == "" {
		return
	}

	n := TypeCountForPreset(preset)
	if n < cfg.Rules.MatchCount {
		n = cfg.Rules.MatchCount
	}
	names := make([]string, 0, n)
	for _, t := range core.FirstTileTypes(n) {
		names = append(names, t.String())
	}
	cfg.Tiles.Types = names

	switch preset {
	case DifficultyEasy:
		cfg.Rules.RejectPolicy = core.RejectKeepsSelection.String()
		cfg.Rules.Hints = true
	case DifficultyHard:
		cfg.Rules.RejectPolicy = core.RejectDeselects.String()
		cfg.Rules.Hints = false
	}
}
