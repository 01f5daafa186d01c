package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tile-arcade/internal/games/numbertiles"
	"github.com/vovakirdan/tile-arcade/internal/games/t2048"
)

// View is the serializable state of a session, shared by the WebSocket and
// MCP front ends.
type View struct {
	ID       string  `json:"id"`
	Game     string  `json:"game"`
	Player   string  `json:"player,omitempty"`
	Board    [][]int `json:"board"` // top-to-bottom rows, 0 is empty
	Score    int     `json:"score"`
	Moves    int     `json:"moves"` // board-changing moves or placed drops
	MaxTile  int     `json:"max_tile"`
	GameOver bool    `json:"game_over"`
	Won      bool    `json:"won"`

	// 2048 campaign progress
	Level  int `json:"level,omitempty"`
	Target int `json:"target,omitempty"`

	// Number tiles queue
	Current int `json:"current,omitempty"`
	Next    int `json:"next,omitempty"`

	Last *Events `json:"last,omitempty"`
}

// Events describes what the most recent action did.
type Events struct {
	Direction    string  `json:"direction,omitempty"`
	Column       *int    `json:"column,omitempty"`
	Changed      bool    `json:"changed"`
	ScoreGain    int     `json:"score_gain"`
	Merges       []Merge `json:"merges,omitempty"`
	Spawn        *Tile   `json:"spawn,omitempty"`
	Landed       *Tile   `json:"landed,omitempty"`
	Chain        []Link  `json:"chain,omitempty"`
	LevelCleared bool    `json:"level_cleared,omitempty"`
}

// Merge is one merge of a sliding move.
type Merge struct {
	ID      uint64    `json:"id"`
	Sources [2]uint64 `json:"sources"`
	Row     int       `json:"row"`
	Col     int       `json:"col"`
	Value   int       `json:"value"`
}

// Tile is a placed tile. ID is zero for column-drop tiles.
type Tile struct {
	ID    uint64 `json:"id,omitempty"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value int    `json:"value"`
}

// Link is one merge of a drop chain.
type Link struct {
	Row   int `json:"row"`
	Value int `json:"value"`
}

func slideView(g *t2048.Game) View {
	snap := g.Snapshot()
	state := g.State()
	return View{
		Board:    snap.Board,
		Score:    snap.Score,
		Moves:    snap.Moves,
		MaxTile:  snap.MaxTile,
		GameOver: state.GameOver,
		Won:      state.Won,
		Level:    campaignOnly(g, snap.Level),
		Target:   snap.Target,
	}
}

func campaignOnly(g *t2048.Game, v int) int {
	if g.Mode() != t2048.ModeCampaign {
		return 0
	}
	return v
}

func dropView(g *numbertiles.Game) View {
	snap := g.Snapshot()
	return View{
		Board:    snap.Board,
		Score:    snap.Score,
		Moves:    snap.Drops,
		MaxTile:  snap.MaxTile,
		GameOver: snap.GameOver,
		Current:  snap.Current,
		Next:     snap.Next,
	}
}

func moveEvents(turn t2048.Turn) *Events {
	ev := &Events{
		Direction:    turn.Direction.String(),
		Changed:      turn.Moved,
		ScoreGain:    turn.ScoreGain,
		LevelCleared: turn.LevelCleared,
	}
	for _, m := range turn.Merges {
		ev.Merges = append(ev.Merges, Merge{
			ID:      uint64(m.Result),
			Sources: [2]uint64{uint64(m.Sources[0]), uint64(m.Sources[1])},
			Row:     m.Pos.Row,
			Col:     m.Pos.Col,
			Value:   m.Value,
		})
	}
	if turn.Spawn != nil {
		ev.Spawn = &Tile{
			ID:    uint64(turn.Spawn.ID),
			Row:   turn.Spawn.Pos.Row,
			Col:   turn.Spawn.Pos.Col,
			Value: turn.Spawn.Value,
		}
	}
	return ev
}

func dropEvents(turn numbertiles.Turn) *Events {
	col := turn.Column
	ev := &Events{
		Column:    &col,
		Changed:   turn.Placed,
		ScoreGain: turn.ScoreGain,
	}
	if turn.Placed {
		ev.Landed = &Tile{Row: turn.Pos.Row, Col: turn.Pos.Col, Value: turn.Value}
	}
	for _, step := range turn.Chain {
		ev.Chain = append(ev.Chain, Link{Row: step.Row, Value: step.Value})
	}
	return ev
}

// String renders the board as aligned text followed by a status line.
func (v View) String() string {
	width := 1
	for _, row := range v.Board {
		for _, n := range row {
			width = max(width, len(strconv.Itoa(n)))
		}
	}

	var b strings.Builder
	for _, row := range v.Board {
		for c, n := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			cell := "."
			if n != 0 {
				cell = strconv.Itoa(n)
			}
			fmt.Fprintf(&b, "%*s", width, cell)
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "Score: %d | Moves: %d | Max: %d", v.Score, v.Moves, v.MaxTile)
	if v.Target > 0 {
		fmt.Fprintf(&b, " | Level %d (target %d)", v.Level, v.Target)
	}
	if v.Current > 0 {
		fmt.Fprintf(&b, " | Drop: %d, then %d", v.Current, v.Next)
	}
	switch {
	case v.Won:
		b.WriteString("\nYOU WIN")
	case v.GameOver:
		b.WriteString("\nGAME OVER")
	}
	return b.String()
}
