// Package session hosts headless games for remote front ends. A session owns
// one game instance, is addressed by a uuid, and records its final score once
// when the game ends.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/games/numbertiles"
	"github.com/vovakirdan/tile-arcade/internal/games/t2048"
	"github.com/vovakirdan/tile-arcade/internal/grid"
	"github.com/vovakirdan/tile-arcade/internal/registry"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrUnknownGame      = errors.New("unknown game")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidColumn    = errors.New("invalid column")
	ErrWrongAction      = errors.New("action not supported by this game")
)

// Headless games still check the screen size, so they get a roomy virtual one.
const (
	headlessW = 120
	headlessH = 40
)

// ScoreRecorder persists finished games. *storage.Store satisfies it.
type ScoreRecorder interface {
	SaveScore(gameID, player string, score int) (int64, error)
}

// Session is one hosted game.
type Session struct {
	ID        string
	GameID    string
	CreatedAt time.Time

	mu           sync.Mutex
	seed         int64
	player       string
	lastAccessed time.Time
	slide        *t2048.Game      // set for 2048 games
	drop         *numbertiles.Game // set for number tiles
	last         *Events
	recorded     bool
}

// Summary describes a session in listings.
type Summary struct {
	ID           string    `json:"id"`
	Game         string    `json:"game"`
	Player       string    `json:"player,omitempty"`
	Score        int       `json:"score"`
	GameOver     bool      `json:"game_over"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// Manager handles session lifecycle. It is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	recorder ScoreRecorder
	logger   *log.Logger
	now      func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithRecorder stores final scores in r.
func WithRecorder(r ScoreRecorder) Option {
	return func(m *Manager) { m.recorder = r }
}

// WithLogger sets the logger used for best-effort persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates an empty session manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		logger:   log.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Games lists the game ids a session can host.
func Games() []registry.GameInfo {
	var out []registry.GameInfo
	for _, info := range registry.List() {
		if _, _, err := newGame(info.ID); err == nil {
			out = append(out, info)
		}
	}
	return out
}

func newGame(gameID string) (*t2048.Game, *numbertiles.Game, error) {
	g, err := registry.Create(gameID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownGame, gameID)
	}
	switch g := g.(type) {
	case *t2048.Game:
		return g, nil, nil
	case *numbertiles.Game:
		return nil, g, nil
	}
	return nil, nil, fmt.Errorf("%w: %q cannot be played headless", ErrUnknownGame, gameID)
}

// Create starts a new session of gameID. A zero seed picks one from the clock.
func (m *Manager) Create(gameID string, seed int64) (View, error) {
	slide, drop, err := newGame(gameID)
	if err != nil {
		return View{}, err
	}

	now := m.now()
	s := &Session{
		ID:           uuid.NewString(),
		GameID:       gameID,
		CreatedAt:    now,
		lastAccessed: now,
		slide:        slide,
		drop:         drop,
	}
	s.reset(m.seed(seed))

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("session created", "session", s.ID, "game", gameID, "seed", s.seed)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(), nil
}

func (m *Manager) seed(seed int64) int64 {
	if seed == 0 {
		return m.now().UnixNano()
	}
	return seed
}

// Get returns the current view of a session.
func (m *Manager) Get(id string) (View, error) {
	s, err := m.lookup(id)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(), nil
}

// SetPlayer names the player credited with the session's score.
func (m *Manager) SetPlayer(id, player string) error {
	s, err := m.lookup(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.player = player
	s.mu.Unlock()
	return nil
}

// Move slides a 2048 session's board. dir is a name accepted by
// grid.ParseDirection.
func (m *Manager) Move(id, dir string) (View, error) {
	s, err := m.lookup(id)
	if err != nil {
		return View{}, err
	}
	d, err := grid.ParseDirection(dir)
	if err != nil {
		return View{}, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slide == nil {
		return View{}, fmt.Errorf("%w: %s has no moves", ErrWrongAction, s.GameID)
	}
	s.last = moveEvents(s.slide.Move(d))
	s.lastAccessed = m.now()
	m.recordIfFinished(s)
	return s.view(), nil
}

// Drop releases the current value of a number tiles session into col.
// Dropping into a full column is not an error; the view reports no change.
func (m *Manager) Drop(id string, col int) (View, error) {
	s, err := m.lookup(id)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drop == nil {
		return View{}, fmt.Errorf("%w: %s has no drops", ErrWrongAction, s.GameID)
	}
	if col < 0 || col >= s.drop.Board().Width() {
		return View{}, fmt.Errorf("%w: %d (board has %d columns)", ErrInvalidColumn, col, s.drop.Board().Width())
	}
	s.last = dropEvents(s.drop.DropInto(col))
	s.lastAccessed = m.now()
	m.recordIfFinished(s)
	return s.view(), nil
}

// Reset restarts a session's game. A zero seed picks one from the clock.
func (m *Manager) Reset(id string, seed int64) (View, error) {
	s, err := m.lookup(id)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset(m.seed(seed))
	s.lastAccessed = m.now()
	return s.view(), nil
}

// Delete removes a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// List returns all sessions, oldest first.
func (m *Manager) List() []Summary {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	out := make([]Summary, 0, len(sessions))
	for _, s := range sessions {
		s.mu.Lock()
		v := s.view()
		out = append(out, Summary{
			ID:           s.ID,
			Game:         s.GameID,
			Player:       s.player,
			Score:        v.Score,
			GameOver:     v.GameOver,
			CreatedAt:    s.CreatedAt,
			LastAccessed: s.lastAccessed,
		})
		s.mu.Unlock()
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// PruneIdle deletes sessions untouched for longer than ttl and returns how
// many were removed.
func (m *Manager) PruneIdle(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastAccessed.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// PruneLoop calls PruneIdle every interval until ctx is done.
func (m *Manager) PruneLoop(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.PruneIdle(ttl); n > 0 {
				m.logger.Info("pruned idle sessions", "count", n)
			}
		}
	}
}

func (m *Manager) lookup(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// recordIfFinished saves the score of a game that just ended. Called with
// s.mu held.
func (m *Manager) recordIfFinished(s *Session) {
	if s.recorded || m.recorder == nil {
		return
	}
	v := s.view()
	if !v.GameOver || v.Score <= 0 {
		return
	}
	s.recorded = true
	if _, err := m.recorder.SaveScore(s.GameID, s.player, v.Score); err != nil {
		m.logger.Error("failed to save score", "session", s.ID, "game", s.GameID, "error", err)
	}
}

// reset restarts the game. Called with s.mu held or before s is shared.
func (s *Session) reset(seed int64) {
	s.seed = seed
	s.last = nil
	s.recorded = false

	rc := core.RuntimeConfig{ScreenW: headlessW, ScreenH: headlessH, TickRate: 60, Seed: seed}
	if s.slide != nil {
		s.slide.Reset(rc)
	} else {
		s.drop.Reset(rc)
	}
}

func (s *Session) view() View {
	var v View
	if s.slide != nil {
		v = slideView(s.slide)
	} else {
		v = dropView(s.drop)
	}
	v.ID = s.ID
	v.Game = s.GameID
	v.Player = s.player
	v.Last = s.last
	return v
}
