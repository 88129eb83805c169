package match3

import (
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilematch/internal/games/match3/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
	StateError       GameStateType = "error"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64        `yaml:"tick"`
	Mode      string        `yaml:"mode"`  // "classic" or "mini"
	Score     int           `yaml:"score"` // Engine score, ahead of the displayed one during playback
	Board     string        `yaml:"board"` // Engine grid, top row first
	Cursor    core.Cell     `yaml:"cursor"`
	Selected  *core.Cell    `yaml:"selected,omitempty"`
	Stats     core.Stats    `yaml:"stats"`
	State     GameStateType `yaml:"state"`
	MovesLeft int           `yaml:"moves_left"`
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:  g.tick,
		Mode:  string(g.mode),
		State: StatePlaying,
	}
	if g.engine == nil {
		snap.State = StateError
		return snap
	}

	cfg := g.engine.Config()
	grid := g.engine.Grid()
	snap.Score = g.engine.Score()
	snap.Board = grid.String()
	snap.Cursor = g.cursor
	snap.Stats = g.engine.Stats()
	snap.MovesLeft = len(core.FindSwaps(grid, cfg.MatchCount))
	if c, ok := g.engine.Selection(); ok {
		snap.Selected = &c
	}

	switch {
	case g.tooSmall:
		snap.State = StatePausedSmall
	case g.paused:
		snap.State = StatePaused
	case g.playback.Busy():
		snap.State = StateAnimating
	case g.gameOver:
		snap.State = StateGameOver
	}
	return snap
}

// DumpState encodes the snapshot as YAML for bug reports.
func (g *Game) DumpState() ([]byte, error) {
	return yaml.Marshal(g.Snapshot())
}
