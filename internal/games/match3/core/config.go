package core

import "fmt"

// RejectPolicy decides what happens to the selection after a swap is rejected.
type RejectPolicy uint8

const (
	// RejectDeselects clears the selection after a rejected swap.
	RejectDeselects RejectPolicy = iota
	// RejectKeepsSelection leaves the first cell selected for another try.
	RejectKeepsSelection
)

// String returns the string representation of a reject policy.
func (p RejectPolicy) String() string {
	switch p {
	case RejectDeselects:
		return "deselect"
	case RejectKeepsSelection:
		return "keep"
	default:
		return "unknown"
	}
}

// ParseRejectPolicy converts a policy name to a RejectPolicy.
func ParseRejectPolicy(s string) (RejectPolicy, bool) {
	switch s {
	case "", "deselect":
		return RejectDeselects, true
	case "keep":
		return RejectKeepsSelection, true
	default:
		return RejectDeselects, false
	}
}

// Config holds everything fixed at engine construction.
type Config struct {
	Rows           int
	Columns        int
	MatchCount     int        // Minimum run length, default 3
	Types          []TileType // Tile kinds used for fills
	IncreaseAmount int        // Points added per cascade wave
	StartingScore  int
	RejectPolicy   RejectPolicy
}

// DefaultConfig returns an 8x8 board with six tile types.
func DefaultConfig() Config {
	return Config{
		Rows:           8,
		Columns:        8,
		MatchCount:     DefaultMatchCount,
		Types:          FirstTileTypes(6),
		IncreaseAmount: 10,
		StartingScore:  0,
		RejectPolicy:   RejectDeselects,
	}
}

// Validate checks the configuration and returns a *ConfigError on failure.
func (c Config) Validate() error {
	if c.Rows <= 0 {
		return &ConfigError{Field: "rows", Message: "must be positive"}
	}
	if c.Columns <= 0 {
		return &ConfigError{Field: "columns", Message: "must be positive"}
	}
	if c.MatchCount < 2 {
		return &ConfigError{Field: "match_count", Message: "must be at least 2"}
	}
	if len(c.Types) == 0 {
		return &ConfigError{Field: "types", Message: "must not be empty"}
	}

	seen := make(map[TileType]bool, len(c.Types))
	for _, t := range c.Types {
		if !t.Valid() {
			return &ConfigError{Field: "types", Message: fmt.Sprintf("unknown tile type %d", t)}
		}
		if seen[t] {
			return &ConfigError{Field: "types", Message: fmt.Sprintf("duplicate tile type %s", t)}
		}
		seen[t] = true
	}

	// With fewer kinds than the run length, refills can chain forever.
	if len(c.Types) < c.MatchCount {
		return &ConfigError{
			Field:   "types",
			Message: fmt.Sprintf("need at least %d kinds for match_count %d, got %d", c.MatchCount, c.MatchCount, len(c.Types)),
		}
	}
	if c.IncreaseAmount < 0 {
		return &ConfigError{Field: "increase_amount", Message: "must not be negative"}
	}
	if c.RejectPolicy > RejectKeepsSelection {
		return &ConfigError{Field: "reject_policy", Message: "unknown policy"}
	}
	return nil
}
