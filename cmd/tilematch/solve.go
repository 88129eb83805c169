package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilematch/internal/config"
	"github.com/vovakirdan/tilematch/internal/games/match3/core"
	"github.com/vovakirdan/tilematch/internal/games/match3/layouts"
)

var flagLayoutDir string

var solveCmd = &cobra.Command{
	Use:   "solve [layout]",
	Short: "List the legal swaps of a layout file",
	Long: `Load a layout, settle it and print every legal swap together with
the score and cascade length it would produce.

Random cells in the layout are filled from --seed, so the same seed
always gives the same answer.

Examples:
  tilematch solve ./layouts/starter.yaml
  tilematch solve ./layouts/open.yml --seed 7
  tilematch solve --dir ./layouts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&flagLayoutDir, "dir", "", "Summarize every layout in a directory")
}

func runSolve(_ *cobra.Command, args []string) error {
	base, err := baseEngineConfig()
	if err != nil {
		return err
	}

	if flagLayoutDir != "" {
		return summarizeLayouts(base, flagLayoutDir)
	}
	if len(args) == 0 {
		return errors.New("a layout file or --dir is required")
	}

	layout, err := layouts.LoadFile(args[0])
	if err != nil {
		return err
	}
	engine, err := settledEngine(base, layout)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%dx%d)\n\n", layout.Name, layout.Rows(), layout.Columns())
	fmt.Println(engine.Grid().String())
	fmt.Println()
	if engine.Score() > 0 {
		fmt.Printf("Settling scored %d\n\n", engine.Score())
	}

	swaps := core.FindSwaps(engine.Grid(), engine.Config().MatchCount)
	if len(swaps) == 0 {
		fmt.Println("No legal swaps.")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %s\n", "Swap", "Score", "Waves")
	for _, s := range swaps {
		gained, waves, err := trySwap(engine, s)
		if err != nil {
			return err
		}
		fmt.Printf("  %-16s  %-6d  %d\n", fmt.Sprintf("%s-%s", s.A, s.B), gained, waves)
	}
	return nil
}

// baseEngineConfig loads the game config the same way play does.
func baseEngineConfig() (core.Config, error) {
	cfg, err := config.Load(flagConfig, config.DifficultyPreset(flagDifficulty))
	if err != nil {
		return core.Config{}, err
	}
	return cfg.Engine()
}

// settledEngine builds an engine on the layout and runs the start-up cascade.
func settledEngine(base core.Config, layout layouts.Layout) (*core.Engine, error) {
	cfg := base
	layout.Apply(&cfg)

	grid, err := layout.Grid()
	if err != nil {
		return nil, err
	}
	engine, err := core.New(cfg,
		core.WithGrid(grid),
		core.WithSource(core.NewSource(flagSeed)),
		core.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	engine.RunCascade()
	return engine, nil
}

// trySwap plays s on a copy of the engine's board and reports the score it
// adds and the waves it sets off.
func trySwap(engine *core.Engine, s core.Swap) (gained, waves int, err error) {
	trial, err := core.New(engine.Config(),
		core.WithGrid(engine.Grid()),
		core.WithSource(core.NewSource(flagSeed)),
	)
	if err != nil {
		return 0, 0, err
	}
	if _, err := trial.Select(s.A); err != nil {
		return 0, 0, err
	}
	res, err := trial.TrySwap(s.B)
	if err != nil {
		return 0, 0, err
	}
	if res.Outcome != core.OutcomeSwapped {
		return 0, 0, fmt.Errorf("swap %s-%s was %s", s.A, s.B, res.Outcome)
	}
	return res.Score - engine.Config().StartingScore, res.Waves, nil
}

func summarizeLayouts(base core.Config, dir string) error {
	all, err := layouts.NewLoader(dir).LoadAll()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Printf("No layouts found in %s\n", dir)
		return nil
	}

	fmt.Printf("  %-16s  %-24s  %-5s  %s\n", "ID", "Name", "Board", "Swaps")
	for _, layout := range all {
		engine, err := settledEngine(base, layout)
		if err != nil {
			fmt.Printf("  %-16s  %-24s  error: %v\n", layout.ID, layout.Name, err)
			continue
		}
		swaps := core.FindSwaps(engine.Grid(), engine.Config().MatchCount)
		fmt.Printf("  %-16s  %-24s  %-5s  %d\n",
			layout.ID, layout.Name,
			fmt.Sprintf("%dx%d", layout.Rows(), layout.Columns()),
			len(swaps),
		)
	}
	return nil
}
