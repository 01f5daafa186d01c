package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/session"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	remote := make(map[string]bool)
	for _, g := range session.Games() {
		remote[g.ID] = true
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %-6s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Remote", "Mode of")
	fmt.Printf("  %-*s  %-*s  %-6s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------", "-------")

	// Print games
	for _, g := range games {
		mark := "no"
		if remote[g.ID] {
			mark = "yes"
		}
		fmt.Printf("  %-*s  %-*s  %-6s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, mark, g.Base)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
