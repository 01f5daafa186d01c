package numbertiles

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Board    [][]int // top-to-bottom rows
	Cursor   int
	Current  int
	Next     int
	Score    int
	Drops    int
	MaxTile  int
	GameOver bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Board:    g.board.Rows(),
		Cursor:   g.cursor,
		Current:  g.current,
		Next:     g.next,
		Score:    g.score,
		Drops:    g.drops,
		MaxTile:  g.board.MaxTile(),
		GameOver: g.gameOver,
	}
}
