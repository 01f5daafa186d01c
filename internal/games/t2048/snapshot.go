package t2048

import "github.com/vovakirdan/tile-arcade/internal/grid"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
// Two games reset with the same seed and fed the same moves produce equal
// snapshots, tile ids included.
type Snapshot struct {
	Tick    uint64
	Mode    string // "campaign" or "endless"
	Level   int    // Current level (1-indexed for display)
	Target  int    // Current target tile value, 0 in endless
	Score   int
	Moves   int
	Board   [][]int
	IDs     [][]grid.TileID
	MaxTile int
	Spawn4  float64
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Level:   g.levelIndex + 1,
		Target:  g.currentTarget,
		Score:   g.score,
		Moves:   g.moves,
		Board:   g.board.Values(),
		IDs:     tileIDs(g.board),
		MaxTile: g.board.MaxTile(),
		Spawn4:  g.spawn4(),
		State:   g.stateType(),
	}
}

func (g *Game) stateType() GameStateType {
	switch {
	case g.tooSmall:
		return StatePausedSmall
	case g.won:
		return StateWin
	case g.gameOver:
		return StateGameOver
	case g.levelCleared:
		return StateLevelCleared
	}
	return StatePlaying
}

func tileIDs(b grid.Board) [][]grid.TileID {
	n := b.Size()
	ids := make([][]grid.TileID, n)
	for r := range n {
		ids[r] = make([]grid.TileID, n)
		for c := range n {
			ids[r][c] = b.At(r, c).ID
		}
	}
	return ids
}
