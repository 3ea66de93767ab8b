package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every game registered in the arcade with its best recorded score.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Scores are a bonus here; a missing database just hides the column values.
	best := map[string]int{}
	if store, err := storage.Open(flagDBPath); err == nil {
		for _, g := range games {
			if hs, err := store.HighScore(g.ID); err == nil && hs > 0 {
				best[g.ID] = hs
			}
		}
		store.Close()
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	idW, titleW := len("ID"), len("Title")
	for _, g := range games {
		idW = max(idW, len(g.ID))
		titleW = max(titleW, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", idW, "ID", titleW, "Title", "Best")
	fmt.Printf("  %-*s  %-*s  %s\n", idW, "--", titleW, "-----", "----")

	for _, g := range games {
		score := "-"
		if hs, ok := best[g.ID]; ok {
			score = strconv.Itoa(hs)
		}
		fmt.Printf("  %-*s  %-*s  %s\n", idW, g.ID, titleW, g.Title, score)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
