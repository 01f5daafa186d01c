package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresAll    bool
	flagScoresClear  bool
	flagScoresFormat string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game. Without a game,
shows a summary of every game that has scores.

Examples:
  arcade scores
  arcade scores 2048
  arcade scores numbertiles --limit 25
  arcade scores 2048 --all --format json
  arcade scores 2048_endless --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded score")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the game")
	scoresCmd.Flags().StringVar(&flagScoresFormat, "format", "text", "Output format: text, json, yaml")
}

func runScores(_ *cobra.Command, args []string) error {
	switch flagScoresFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q", flagScoresFormat)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return showSummary(store)
	}

	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return nil
	}

	var scores []storage.ScoreEntry
	if flagScoresAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	if flagScoresFormat != "text" {
		return encode(scores)
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-*s  %-10s  %s\n", "Rank", storage.MaxPlayerNameLen, "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-*s  %-10s  %s\n", "----", storage.MaxPlayerNameLen, "------", "-----", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-*s  %-10d  %s\n", i+1, storage.MaxPlayerNameLen, entry.Player, entry.Score, dateStr)
	}

	fmt.Println()
	if best, err := store.BestEntry(gameID); err == nil && best != nil {
		fmt.Printf("Best: %d by %s\n", best.Score, best.Player)
	}
	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Games: %d  Average: %.0f\n", stats.GamesCount, stats.AvgScore)
	}
	return nil
}

// showSummary prints per-game statistics.
func showSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if flagScoresFormat != "text" {
		list := make([]*storage.GameStats, 0, len(ids))
		for _, id := range ids {
			list = append(list, stats[id])
		}
		return encode(list)
	}

	if len(ids) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-14s  %-6s  %-10s  %-10s  %s\n", "Game", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-14s  %-6s  %-10s  %-10s  %s\n", "----", "-----", "----", "-------", "-----------")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-14s  %-6d  %-10d  %-10.0f  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// encode writes v to stdout in the --format encoding.
func encode(v any) error {
	if flagScoresFormat == "yaml" {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
