// Package config provides YAML-based game configuration loading,
// environment overrides and difficulty presets.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tilematch/internal/games/match3/core"
)

// Match3Config contains all configuration for the tile-matching game.
type Match3Config struct {
	Board    BoardConfig    `yaml:"board"`
	Tiles    TilesConfig    `yaml:"tiles"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Rules    RulesConfig    `yaml:"rules"`
	Playback PlaybackConfig `yaml:"playback"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

// TilesConfig lists the tile kinds used for fills, by name.
type TilesConfig struct {
	Types []string `yaml:"types"`
}

// ScoringConfig defines how the score moves.
type ScoringConfig struct {
	StartingScore  int `yaml:"starting_score"`
	IncreaseAmount int `yaml:"increase_amount"` // Added once per cascade wave
}

// RulesConfig defines matching and selection rules.
type RulesConfig struct {
	MatchCount   int    `yaml:"match_count"`
	RejectPolicy string `yaml:"reject_policy"` // "deselect" or "keep"
	Hints        bool   `yaml:"hints"`
}

// PlaybackConfig defines how long each board change stays on screen.
type PlaybackConfig struct {
	StepDelay time.Duration `yaml:"step_delay"` // Pause after each replayed event group
	SwapDelay time.Duration `yaml:"swap_delay"` // Pause after a swap or rejected swap
}

// Engine converts the file-level configuration to an engine configuration.
// The result is validated.
func (c Match3Config) Engine() (core.Config, error) {
	types := make([]core.TileType, 0, len(c.Tiles.Types))
	for _, name := range c.Tiles.Types {
		t, ok := core.ParseTileType(name)
		if !ok {
			return core.Config{}, fmt.Errorf("config: unknown tile type %q", name)
		}
		types = append(types, t)
	}

	policy, ok := core.ParseRejectPolicy(c.Rules.RejectPolicy)
	if !ok {
		return core.Config{}, fmt.Errorf("config: unknown reject policy %q", c.Rules.RejectPolicy)
	}

	cfg := core.Config{
		Rows:           c.Board.Rows,
		Columns:        c.Board.Columns,
		MatchCount:     c.Rules.MatchCount,
		Types:          types,
		IncreaseAmount: c.Scoring.IncreaseAmount,
		StartingScore:  c.Scoring.StartingScore,
		RejectPolicy:   policy,
	}
	if err := cfg.Validate(); err != nil {
		return core.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
