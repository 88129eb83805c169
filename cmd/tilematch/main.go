// tilematch is a tile-matching puzzle game for the terminal.
//
// Usage:
//
//	tilematch list              - List available boards
//	tilematch play [board]      - Play a board (default: match3)
//	tilematch menu              - Start menu to pick a board interactively
//	tilematch serve             - Start SSH server for remote play
//	tilematch scores <board>    - Show high scores and recent runs
//	tilematch solve <layout>    - Show the legal swaps of a layout file
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.tilematch/scores.db)
//	--config <path>       - Use a custom game config YAML
//	--difficulty <preset> - easy, normal or hard
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilematch/internal/config"
	"github.com/vovakirdan/tilematch/internal/games/match3"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilematch",
	Short: "Tilematch - a match-3 puzzle in your terminal",
	Long: `Tilematch is a terminal tile-matching game. Swap two neighbouring
tiles to line up three or more of a kind; matched tiles clear, the
tiles above fall and new ones drop in, possibly setting off a chain.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  solve    - List the legal swaps of a layout file

Examples:
  tilematch play
  tilematch play match3_mini --difficulty easy
  tilematch play --layout ./layouts/starter.yaml
  tilematch serve --ssh :2222
  tilematch scores match3`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		preset, err := config.ParseDifficultyPreset(flagDifficulty)
		if err != nil {
			return err
		}

		l, err := newLogger(flagLogFile, flagLogLevel)
		if err != nil {
			return err
		}
		logger = l

		match3.SetConfigPath(flagConfig)
		match3.SetDifficultyPreset(string(preset))
		match3.SetLogger(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilematch/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: no logs while playing)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(solveCmd)
}
