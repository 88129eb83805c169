package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tilematch/internal/games/match3/core"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the built-in configuration.
// It mirrors defaults/match3.yaml and is used if the embedded file fails to parse.
func DefaultMatch3Config() Match3Config {
	names := make([]string, 0, 6)
	for _, t := range core.FirstTileTypes(6) {
		names = append(names, t.String())
	}
	return Match3Config{
		Board: BoardConfig{
			Rows:    8,
			Columns: 8,
		},
		Tiles: TilesConfig{
			Types: names,
		},
		Scoring: ScoringConfig{
			StartingScore:  0,
			IncreaseAmount: 10,
		},
		Rules: RulesConfig{
			MatchCount:   core.DefaultMatchCount,
			RejectPolicy: core.RejectDeselects.String(),
			Hints:        true,
		},
		Playback: PlaybackConfig{
			StepDelay: 250 * time.Millisecond,
			SwapDelay: 150 * time.Millisecond,
		},
	}
}
