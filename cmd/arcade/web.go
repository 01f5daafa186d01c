package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/platform/web"
	"github.com/vovakirdan/tile-arcade/internal/session"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

var (
	flagWebAddr    string
	flagOrigins    []string
	flagSessionTTL time.Duration
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve headless games over WebSocket",
	Long: `Serve 2048 and number tiles sessions to browsers and scripts.

Endpoints:
  GET /ws?game=<id>&seed=<n>&player=<name>  - Start a session and play it
  GET /ws?session=<id>                      - Watch an existing session
  GET /api/games                            - Games playable remotely
  GET /api/sessions                         - Running sessions
  GET /api/scores/<game>?limit=<n>          - Leaderboard

WebSocket requests are JSON objects with a "type" of move, drop, reset,
state or name. Every reply carries the full board.

Examples:
  arcade web
  arcade web --addr :9000 --origin https://tiles.example`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", web.DefaultServerConfig().Address, "HTTP listen address")
	webCmd.Flags().StringSliceVar(&flagOrigins, "origin", nil, "Allowed WebSocket origins (default: any)")
	webCmd.Flags().DurationVar(&flagSessionTTL, "session-ttl", 30*time.Minute, "Drop sessions idle for this long")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "arcade-web")
	if err != nil {
		return err
	}

	var scores web.ScoreSource
	opts := []session.Option{session.WithLogger(logger)}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		scores = store
		opts = append(opts, session.WithRecorder(store))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewManager(opts...)
	go sessions.PruneLoop(ctx, time.Minute, flagSessionTTL)

	srv := web.NewServer(web.ServerConfig{
		Address:        flagWebAddr,
		AllowedOrigins: flagOrigins,
	}, sessions, scores, logger)
	return srv.Run(ctx)
}
