// Package web serves headless tile games to browser renderers over
// WebSocket, plus a small JSON API for games and scores.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tile-arcade/internal/session"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// AllowedOrigins limits WebSocket upgrades by Origin header.
	// Empty allows any origin.
	AllowedOrigins []string
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address: ":8080",
	}
}

// ScoreSource reads the leaderboard. *storage.Store satisfies it.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

// Server hosts the WebSocket endpoint and the JSON API.
type Server struct {
	config   ServerConfig
	sessions *session.Manager
	scores   ScoreSource
	hub      *Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a server. scores may be nil when no database is open.
func NewServer(cfg ServerConfig, sessions *session.Manager, scores ScoreSource, logger *log.Logger) *Server {
	s := &Server{
		config:   cfg,
		sessions: sessions,
		scores:   scores,
		hub:      NewHub(sessions, logger),
		logger:   logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.config.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range s.config.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// Handler returns the HTTP routes. The hub must be running for /ws to work.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /api/games", s.handleGames)
	mux.HandleFunc("GET /api/sessions", s.handleSessions)
	mux.HandleFunc("GET /api/scores/{game}", s.handleScores)
	return mux
}

// Run starts the hub and serves HTTP until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleWS joins an existing session (?session=id) or creates a new one
// (?game=2048&seed=1&player=ann) and upgrades the connection.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		view  session.View
		err   error
		owner bool
	)
	if id := q.Get("session"); id != "" {
		view, err = s.sessions.Get(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	} else {
		game := q.Get("game")
		if game == "" {
			game = "2048"
		}
		var seed int64
		if raw := q.Get("seed"); raw != "" {
			if seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
				http.Error(w, "invalid seed", http.StatusBadRequest)
				return
			}
		}
		view, err = s.sessions.Create(game, seed)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		owner = true
	}

	if player := q.Get("player"); player != "" {
		if err := s.sessions.SetPlayer(view.ID, player); err == nil {
			view.Player = player
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		if owner {
			s.sessions.Delete(view.ID)
		}
		return
	}

	client := &Client{
		hub:       s.hub,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: view.ID,
		owner:     owner,
	}
	// The client is not shared yet, so the greeting can go straight in
	client.send <- encode(stateMessage(view))

	if !s.hub.join(client) {
		conn.Close()
		return
	}

	s.logger.Info("client connected", "session", view.ID, "game", view.Game, "remote", r.RemoteAddr)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, session.Games())
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.List())
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	game := r.PathValue("game")

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries := []storage.ScoreEntry{}
	if s.scores != nil {
		found, err := s.scores.TopScores(game, limit)
		if err != nil {
			s.logger.Error("could not load scores", "game", game, "error", err)
			http.Error(w, "could not load scores", http.StatusInternalServerError)
			return
		}
		if found != nil {
			entries = found
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
