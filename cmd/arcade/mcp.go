package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/platform/mcp"
	"github.com/vovakirdan/tile-arcade/internal/session"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve headless games as MCP tools on stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout so agents can
play 2048 and number tiles. Logs go to stderr.

Tools: list_games, new_game, move, drop, game_state, high_scores.

Example client configuration:
  {"command": "arcade", "args": ["mcp", "--db", "~/.arcade/scores.db"]}`,
	RunE: runMCP,
}

func runMCP(_ *cobra.Command, _ []string) error {
	// stdout carries the protocol
	logger, err := newLogger(os.Stderr, "arcade-mcp")
	if err != nil {
		return err
	}

	var scores mcp.ScoreSource
	opts := []session.Option{session.WithLogger(logger)}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		scores = store
		opts = append(opts, session.WithRecorder(store))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := session.NewManager(opts...)
	go sessions.PruneLoop(ctx, time.Minute, 2*time.Hour)

	logger.Info("mcp server ready", "version", mcp.Version)
	return mcp.NewServer(sessions, scores, logger).ServeStdio()
}
