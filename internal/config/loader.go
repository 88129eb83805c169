package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// LoadMatch3 loads the tile-matching configuration.
// Search order: customPath -> ~/.tilematch/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
func LoadMatch3(customPath string) (Match3Config, error) {
	cfg := DefaultMatch3Config()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("match3.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "match3.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	var embedded Match3Config
	if err := yaml.Unmarshal(defaultMatch3YAML, &embedded); err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilematch", "configs", filename)
}

// envOverrides lists the settings that can be changed from the environment.
// Unset variables keep the value already loaded from YAML.
type envOverrides struct {
	Rows           int      `env:"TILEMATCH_ROWS"`
	Columns        int      `env:"TILEMATCH_COLUMNS"`
	MatchCount     int      `env:"TILEMATCH_MATCH_COUNT"`
	Types          []string `env:"TILEMATCH_TYPES" envSeparator:","`
	IncreaseAmount int      `env:"TILEMATCH_INCREASE_AMOUNT"`
	StartingScore  int      `env:"TILEMATCH_STARTING_SCORE"`
	RejectPolicy   string   `env:"TILEMATCH_REJECT_POLICY"`
	Hints          bool     `env:"TILEMATCH_HINTS"`
}

// ApplyEnv overrides cfg with any TILEMATCH_* variables that are set.
func ApplyEnv(cfg *Match3Config) error {
	return applyEnv(cfg, env.Options{})
}

func applyEnv(cfg *Match3Config, opts env.Options) error {
	o := envOverrides{
		Rows:           cfg.Board.Rows,
		Columns:        cfg.Board.Columns,
		MatchCount:     cfg.Rules.MatchCount,
		Types:          cfg.Tiles.Types,
		IncreaseAmount: cfg.Scoring.IncreaseAmount,
		StartingScore:  cfg.Scoring.StartingScore,
		RejectPolicy:   cfg.Rules.RejectPolicy,
		Hints:          cfg.Rules.Hints,
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}

	cfg.Board.Rows = o.Rows
	cfg.Board.Columns = o.Columns
	cfg.Rules.MatchCount = o.MatchCount
	cfg.Tiles.Types = o.Types
	cfg.Scoring.IncreaseAmount = o.IncreaseAmount
	cfg.Scoring.StartingScore = o.StartingScore
	cfg.Rules.RejectPolicy = o.RejectPolicy
	cfg.Rules.Hints = o.Hints
	return nil
}

// Load runs the whole pipeline: file lookup, difficulty preset, then
// environment overrides.
func Load(customPath string, preset DifficultyPreset) (Match3Config, error) {
	cfg, err := LoadMatch3(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyMatch3Preset(&cfg, preset)
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
