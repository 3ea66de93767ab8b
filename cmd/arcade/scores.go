package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top 10 runs for the specified game.
Without a game, shows a summary of every game played so far.

Examples:
  arcade scores
  arcade scores shooter
  arcade scores fishing --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all recorded runs for the game")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(store)
	}

	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared all runs for %s.\n", gameID)
		return nil
	}

	// Get game title
	game, err := registry.Create(gameID, registry.Options{})
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Get top scores
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-3s  %-5s  %-6s  %s\n", "Rank", "Score", "Lv", "Combo", "Mode", "Date")
	fmt.Printf("  %-4s  %-8s  %-3s  %-5s  %-6s  %s\n", "----", "-----", "--", "-----", "----", "----")

	// Print scores
	for i, run := range scores {
		mode := run.Difficulty
		if mode == "" {
			mode = "-"
		}
		dateStr := run.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-3d  %-5d  %-6s  %s\n", i+1, run.Score, run.Level, run.MaxCombo, mode, dateStr)
	}

	stats, err := store.GameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Avg: %.0f  Best combo: x%d  Best level: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestCombo, stats.BestLevel)
	}
	return nil
}

// printSummary lists one line per registered game.
func printSummary(store *storage.Store) error {
	all, err := store.AllGamesStats()
	if err != nil {
		return err
	}

	fmt.Printf("  %-10s  %-8s  %-5s  %s\n", "Game", "Best", "Games", "Last played")
	fmt.Printf("  %-10s  %-8s  %-5s  %s\n", "----", "----", "-----", "-----------")
	for _, g := range registry.List() {
		stats, ok := all[g.ID]
		if !ok {
			fmt.Printf("  %-10s  %-8s  %-5d  %s\n", g.ID, "-", 0, "never")
			continue
		}
		fmt.Printf("  %-10s  %-8d  %-5d  %s\n", g.ID, stats.HighScore, stats.GamesCount,
			stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}

	if len(all) == 0 {
		fmt.Println()
		fmt.Println("No runs recorded yet. Try 'arcade menu'.")
	}
	return nil
}
