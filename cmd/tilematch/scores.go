package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilematch/internal/registry"
	"github.com/vovakirdan/tilematch/internal/storage"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores <board>",
	Short: "Show high scores and recent runs for a board",
	Long: `Display the top 10 high scores and the most recent runs for the
specified board.

Examples:
  tilematch scores match3
  tilematch scores match3_mini --recent 20`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w, run 'tilematch list' to see available boards", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tilematch play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}

	if flagRecent <= 0 {
		return nil
	}
	runs, err := store.RecentRuns(gameID, flagRecent)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent runs")
	fmt.Println()
	fmt.Printf("  %-16s  %-8s  %-6s  %-6s  %-6s  %-5s  %s\n", "Date", "Score", "Swaps", "Waves", "Chain", "Board", "Seed")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-8d  %-6d  %-6d  %-6d  %-5s  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Score, r.Swaps, r.Waves, r.LongestCascade,
			fmt.Sprintf("%dx%d", r.Rows, r.Columns),
			r.Seed,
		)
	}
	return nil
}
