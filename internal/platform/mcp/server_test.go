package mcp

import (
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vovakirdan/tile-arcade/internal/session"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := log.NewWithOptions(io.Discard, log.Options{})
	sessions := session.NewManager(session.WithRecorder(store), session.WithLogger(logger))
	return NewServer(sessions, store, logger), store
}

func call(t *testing.T, h handler, name string, args map[string]interface{}) (string, bool) {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	result, err := h(context.Background(), request)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("%s returned no content", name)
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("%s: expected text content, got %T", name, result.Content[0])
	}
	return text.Text, result.IsError
}

var sessionLine = regexp.MustCompile(`Session: (\S+)`)

func startGame(t *testing.T, s *Server, args map[string]interface{}) string {
	t.Helper()
	text, isErr := call(t, s.handleNewGame, "new_game", args)
	if isErr {
		t.Fatalf("new_game failed: %s", text)
	}
	m := sessionLine.FindStringSubmatch(text)
	if m == nil {
		t.Fatalf("new_game output has no session id:\n%s", text)
	}
	return m[1]
}

func TestNewServer(t *testing.T) {
	s, _ := newTestServer(t)
	if s.MCPServer() == nil {
		t.Fatal("Expected MCP server to be initialized")
	}
}

func TestListGames(t *testing.T) {
	s, _ := newTestServer(t)

	text, isErr := call(t, s.handleListGames, "list_games", map[string]interface{}{})
	if isErr {
		t.Fatalf("list_games failed: %s", text)
	}
	for _, want := range []string{"- 2048: 2048", "- 2048_endless:", "- numbertiles: Number Tiles"} {
		if !strings.Contains(text, want) {
			t.Errorf("list_games output missing %q:\n%s", want, text)
		}
	}
}

func TestNewGame(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantErr string
	}{
		{"2048", map[string]interface{}{"game": "2048", "seed": float64(1)}, ""},
		{"number tiles", map[string]interface{}{"game": "numbertiles"}, ""},
		{"unknown game", map[string]interface{}{"game": "tetris"}, "unknown game"},
		{"missing game", map[string]interface{}{}, "unknown game"},
		{"fractional seed", map[string]interface{}{"game": "2048", "seed": 1.5}, "seed must be an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, s.handleNewGame, "new_game", tt.args)
			if tt.wantErr != "" {
				if !isErr || !strings.Contains(text, tt.wantErr) {
					t.Errorf("expected error %q, got %q (isError=%v)", tt.wantErr, text, isErr)
				}
				return
			}
			if isErr {
				t.Fatalf("unexpected error: %s", text)
			}
			if !sessionLine.MatchString(text) || !strings.Contains(text, "Score: 0") {
				t.Errorf("unexpected new_game output:\n%s", text)
			}
		})
	}
}

func TestMoveAndState(t *testing.T) {
	s, _ := newTestServer(t)
	id := startGame(t, s, map[string]interface{}{"game": "2048_endless", "seed": float64(5)})

	moved := false
	for _, dir := range []string{"left", "right", "up", "down"} {
		text, isErr := call(t, s.handleMove, "move", map[string]interface{}{
			"session_id": id,
			"direction":  dir,
		})
		if isErr {
			t.Fatalf("move %s failed: %s", dir, text)
		}
		if strings.HasPrefix(text, "✓ Moved "+dir) {
			moved = true
			if !strings.Contains(text, "- spawned") {
				t.Errorf("a changing move should report its spawn:\n%s", text)
			}
		}
	}
	if !moved {
		t.Error("some direction should change a fresh board")
	}

	text, isErr := call(t, s.handleGameState, "game_state", map[string]interface{}{"session_id": id})
	if isErr || !strings.Contains(text, "Moves: ") {
		t.Errorf("game_state output:\n%s", text)
	}
}

func TestMoveErrors(t *testing.T) {
	s, _ := newTestServer(t)
	drop := startGame(t, s, map[string]interface{}{"game": "numbertiles", "seed": float64(1)})
	slide := startGame(t, s, map[string]interface{}{"game": "2048", "seed": float64(1)})

	tests := []struct {
		name string
		h    handler
		args map[string]interface{}
		want string
	}{
		{"missing session", s.handleMove, map[string]interface{}{"session_id": "nope", "direction": "up"}, "session not found"},
		{"bad direction", s.handleMove, map[string]interface{}{"session_id": slide, "direction": "diagonal"}, "invalid direction"},
		{"move on drop game", s.handleMove, map[string]interface{}{"session_id": drop, "direction": "up"}, "not supported"},
		{"drop on slide game", s.handleDrop, map[string]interface{}{"session_id": slide, "column": float64(0)}, "not supported"},
		{"column out of range", s.handleDrop, map[string]interface{}{"session_id": drop, "column": float64(9)}, "invalid column"},
		{"column not a number", s.handleDrop, map[string]interface{}{"session_id": drop, "column": "two"}, "column must be an integer"},
		{"state of missing session", s.handleGameState, map[string]interface{}{"session_id": "nope"}, "session not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, tt.h, tt.name, tt.args)
			if !isErr || !strings.Contains(text, tt.want) {
				t.Errorf("expected error containing %q, got %q (isError=%v)", tt.want, text, isErr)
			}
		})
	}
}

func TestDrop(t *testing.T) {
	s, _ := newTestServer(t)
	id := startGame(t, s, map[string]interface{}{"game": "numbertiles", "seed": float64(2)})

	text, isErr := call(t, s.handleDrop, "drop", map[string]interface{}{
		"session_id": id,
		"column":     float64(3),
	})
	if isErr {
		t.Fatalf("drop failed: %s", text)
	}
	if !strings.HasPrefix(text, "✓ Dropped into column 3") {
		t.Errorf("unexpected drop output:\n%s", text)
	}
	if !strings.Contains(text, "Moves: 1") {
		t.Errorf("drop should count as a move:\n%s", text)
	}
}

func TestHighScores(t *testing.T) {
	s, store := newTestServer(t)

	text, _ := call(t, s.handleHighScores, "high_scores", map[string]interface{}{"game": "2048"})
	if !strings.Contains(text, "No scores for 2048 yet.") {
		t.Errorf("empty leaderboard output:\n%s", text)
	}

	store.SaveScore("2048", "ann", 1200)
	store.SaveScore("2048", "", 800)
	store.SaveScore("2048", "cid", 400)

	text, isErr := call(t, s.handleHighScores, "high_scores", map[string]interface{}{
		"game":  "2048",
		"limit": float64(2),
	})
	if isErr {
		t.Fatalf("high_scores failed: %s", text)
	}
	for _, want := range []string{"1. ann", "1200", "2. anonymous", "Best: 1200 by ann"} {
		if !strings.Contains(text, want) {
			t.Errorf("high_scores output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "cid") {
		t.Errorf("limit should cut the list:\n%s", text)
	}

	text, isErr = call(t, s.handleHighScores, "high_scores", map[string]interface{}{"game": "2048", "limit": float64(0)})
	if !isErr || !strings.Contains(text, "positive integer") {
		t.Errorf("zero limit should fail, got %q", text)
	}
}

func TestHighScoresWithoutStore(t *testing.T) {
	s := NewServer(session.NewManager(), nil, log.NewWithOptions(io.Discard, log.Options{}))

	text, isErr := call(t, s.handleHighScores, "high_scores", map[string]interface{}{"game": "2048"})
	if isErr || !strings.Contains(text, "No scores database") {
		t.Errorf("unexpected output without store: %q", text)
	}
}

func TestFinishedGameRecordsPlayer(t *testing.T) {
	s, store := newTestServer(t)
	id := startGame(t, s, map[string]interface{}{"game": "numbertiles", "seed": float64(6), "player": "agent"})

	for i := 0; i < 100000; i++ {
		view, err := s.sessions.Get(id)
		if err != nil {
			t.Fatal(err)
		}
		if view.GameOver {
			break
		}
		col := 0
		for c, v := range view.Board[0] {
			if v == 0 {
				col = c
				break
			}
		}
		call(t, s.handleDrop, "drop", map[string]interface{}{"session_id": id, "column": float64(col)})
	}

	best, err := store.BestEntry("numbertiles")
	if err != nil || best == nil {
		t.Fatalf("BestEntry() = %v, %v", best, err)
	}
	if best.Player != "agent" {
		t.Errorf("recorded player = %q, want agent", best.Player)
	}
}
