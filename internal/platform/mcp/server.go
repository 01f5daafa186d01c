// Package mcp exposes headless tile games as Model Context Protocol tools so
// agents can play over stdio.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tile-arcade/internal/session"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// ScoreSource reads the leaderboard. *storage.Store satisfies it.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	BestEntry(gameID string) (*storage.ScoreEntry, error)
}

// Server wraps an MCP server backed by a session manager.
type Server struct {
	sessions  *session.Manager
	scores    ScoreSource
	logger    *log.Logger
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools. scores may be nil.
func NewServer(sessions *session.Manager, scores ScoreSource, logger *log.Logger) *Server {
	s := &Server{
		sessions: sessions,
		scores:   scores,
		logger:   logger,
	}

	s.mcpServer = server.NewMCPServer(
		"Tile Arcade",
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tile Arcade - sliding and dropping number tiles

GAMES:
- 2048: slide the 4x4 board up/down/left/right. Equal tiles that collide merge
  into their sum, which is added to the score. Each board-changing move spawns
  a 2 (90%) or 4 (10%). Campaign levels ask for a target tile.
- 2048_endless: same rules without targets.
- numbertiles: drop the current value into one of 5 columns (0-4). It lands
  on the stack and merges with equal tiles beneath it, chaining downwards.
  The game ends when the top row is full.

AVAILABLE TOOLS:
- list_games: List playable games
- new_game: Start a session, returns its session_id
- move: Slide a 2048 board
- drop: Drop into a number tiles column
- game_state: Show a session's board
- high_scores: Leaderboard for a game

Boards are printed top row first; "." is an empty slot.`),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves requests on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List the games that can be played",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListGames)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game": map[string]interface{}{
					"type":        "string",
					"description": "Game ID (2048, 2048_endless or numbertiles)",
					"enum":        []string{"2048", "2048_endless", "numbertiles"},
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "RNG seed for a reproducible game (optional)",
				},
				"player": map[string]interface{}{
					"type":        "string",
					"description": "Name recorded with the final score (optional)",
				},
			},
			Required: []string{"game"},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide every tile of a 2048 board in one direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID from new_game",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Direction to slide",
					"enum":        []string{"up", "down", "left", "right"},
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "drop",
		Description: "Drop the current number tiles value into a column",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID from new_game",
				},
				"column": map[string]interface{}{
					"type":        "integer",
					"description": "Column index, 0 is leftmost",
				},
			},
			Required: []string{"session_id", "column"},
		},
	}, s.handleDrop)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board and score of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID from new_game",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "high_scores",
		Description: "Show the best recorded scores for a game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Number of entries (default 10)",
				},
			},
			Required: []string{"game"},
		},
	}, s.handleHighScores)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument. ok is false when it is missing or
// not a whole number.
func intArg(args map[string]interface{}, key string) (n int, present, ok bool) {
	raw, present := args[key]
	if !present {
		return 0, false, false
	}
	f, isNum := raw.(float64)
	if !isNum || f != float64(int(f)) {
		return 0, true, false
	}
	return int(f), true, true
}

func (s *Server) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	b.WriteString("Games:\n")
	for _, g := range session.Games() {
		fmt.Fprintf(&b, "- %s: %s\n", g.ID, g.Title)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	game, _ := args["game"].(string)
	player, _ := args["player"].(string)

	seed, present, ok := intArg(args, "seed")
	if present && !ok {
		return mcp.NewToolResultError("seed must be an integer"), nil
	}

	view, err := s.sessions.Create(game, int64(seed))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if player != "" {
		if err := s.sessions.SetPlayer(view.ID, player); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		view.Player = player
	}

	s.logger.Info("mcp session started", "session", view.ID, "game", game)
	return mcp.NewToolResultText(fmt.Sprintf("Session: %s\nGame: %s\n\n%s", view.ID, view.Game, view)), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)

	view, err := s.sessions.Move(sessionID, direction)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatResult(view)), nil
}

func (s *Server) handleDrop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	col, _, ok := intArg(args, "column")
	if !ok {
		return mcp.NewToolResultError("column must be an integer"), nil
	}

	view, err := s.sessions.Drop(sessionID, col)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatResult(view)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	view, err := s.sessions.Get(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(view.String()), nil
}

func (s *Server) handleHighScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	game, _ := args["game"].(string)

	limit, present, ok := intArg(args, "limit")
	if present && (!ok || limit <= 0) {
		return mcp.NewToolResultError("limit must be a positive integer"), nil
	}
	if !present {
		limit = 10
	}

	if s.scores == nil {
		return mcp.NewToolResultText("No scores database is open."), nil
	}

	entries, err := s.scores.TopScores(game, limit)
	if err != nil {
		s.logger.Error("could not load scores", "game", game, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No scores for %s yet.", game)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "High scores for %s:\n", game)
	for i, e := range entries {
		fmt.Fprintf(&b, "%2d. %-*s %d\n", i+1, storage.MaxPlayerNameLen, displayName(e.Player), e.Score)
	}
	if best, err := s.scores.BestEntry(game); err == nil && best != nil {
		fmt.Fprintf(&b, "\nBest: %d by %s", best.Score, displayName(best.Player))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func displayName(player string) string {
	if player == "" {
		return storage.AnonymousPlayer
	}
	return player
}

// formatResult summarises the last action above the board.
func formatResult(v session.View) string {
	var b strings.Builder
	if ev := v.Last; ev != nil {
		switch {
		case ev.Direction != "" && ev.Changed:
			fmt.Fprintf(&b, "✓ Moved %s", ev.Direction)
		case ev.Direction != "":
			fmt.Fprintf(&b, "✗ Moving %s changed nothing", ev.Direction)
		case ev.Column != nil && ev.Changed:
			fmt.Fprintf(&b, "✓ Dropped into column %d", *ev.Column)
		case ev.Column != nil:
			fmt.Fprintf(&b, "✗ Column %d is full", *ev.Column)
		}
		if ev.ScoreGain > 0 {
			fmt.Fprintf(&b, " (+%d)", ev.ScoreGain)
		}
		b.WriteByte('\n')

		for _, m := range ev.Merges {
			fmt.Fprintf(&b, "- merged %d at (%d,%d)\n", m.Value, m.Row, m.Col)
		}
		for _, l := range ev.Chain {
			fmt.Fprintf(&b, "- chain %d at row %d\n", l.Value, l.Row)
		}
		if ev.Spawn != nil {
			fmt.Fprintf(&b, "- spawned %d at (%d,%d)\n", ev.Spawn.Value, ev.Spawn.Row, ev.Spawn.Col)
		}
		if ev.LevelCleared {
			b.WriteString("- target reached, next level on the next move\n")
		}
		b.WriteByte('\n')
	}
	b.WriteString(v.String())
	return b.String()
}
