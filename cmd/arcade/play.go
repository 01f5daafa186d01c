package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/games/numbertiles"
	"github.com/vovakirdan/tile-arcade/internal/games/t2048"
	"github.com/vovakirdan/tile-arcade/internal/platform/tui"
	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Slide (2048) or aim (number tiles)
  Space/Enter  - Drop (number tiles)
  P/Esc        - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

A new best score asks for a name before it is saved.

Difficulty options (2048 endless):
  easy   - Fewer 4s, slow progression
  normal - Default spawn rates
  hard   - More 4s from the start
  fixed  - No progression

Examples:
  arcade play 2048
  arcade play 2048_endless --difficulty hard
  arcade play numbertiles --player ann
  arcade play 2048 --config ./my-2048.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		cmd.Flags().StringVar(&flagPlayer, "player", defaultPlayer(), "Name saved with your scores")
	}
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database; games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// prepareGame applies the config flags and, for 2048, asks for a mode and
// start level. A nil game means the user backed out.
func prepareGame(gameID string, store *storage.Store, cfg core.RuntimeConfig) (registry.Game, error) {
	info, ok := registry.Lookup(gameID)
	if !ok {
		return nil, fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}
	base := info.ID
	if info.IsVariant() {
		base = info.Base
	}

	switch base {
	case "2048":
		t2048.SetConfigPath(flagConfig)
		t2048.SetDifficultyPreset(flagDifficulty)
	case "numbertiles":
		numbertiles.SetConfigPath(flagConfig)
	}

	// Variants were picked by id already
	if gameID != "2048" {
		return registry.Create(gameID)
	}

	selection, err := tui.RunModePicker(store, cfg)
	if err != nil || selection == nil {
		return nil, err
	}
	return selection.Game(), nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	game, err := prepareGame(args[0], store, cfg)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	if game == nil {
		return nil
	}

	return tui.Run(game, store, cfg, tui.WithPlayer(flagPlayer))
}
