// Package numbertiles implements a column-drop merge game: numbered tiles are
// dropped into columns, stack on the bottom row, and chain-merge with equal
// tiles beneath them. The game ends when the top row fills up.
package numbertiles

import (
	"math/rand"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/grid"
	"github.com/vovakirdan/tile-arcade/internal/registry"
)

// flashDuration is how long a merge result stays highlighted (~250ms at 60fps).
const flashDuration = 15

// Game implements the column-drop game.
type Game struct {
	cfg      config.NumberTilesConfig
	fixedCfg *config.NumberTilesConfig

	rng  *rand.Rand
	tick uint64

	board   grid.ColumnBoard
	cursor  int // launcher column
	current int // value dropped next
	next    int // preview of the value after current
	score   int
	drops   int

	screenW int
	screenH int

	gameOver bool
	paused   bool
	tooSmall bool

	last       Turn
	flashPos   grid.Pos
	flashTicks int
}

// Turn reports what a single drop did.
type Turn struct {
	Column    int
	Placed    bool     // false when the column was full
	Pos       grid.Pos // resting slot of the dropped value after merges
	Value     int      // resting value after merges
	Dropped   int      // value that was released
	ScoreGain int
	Chain     []grid.ChainStep
	GameOver  bool
}

var configPath string

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a new column-drop game.
func New() *Game {
	return &Game{}
}

// WithConfig pins the game to cfg instead of loading configuration from disk.
func (g *Game) WithConfig(cfg config.NumberTilesConfig) *Game {
	g.fixedCfg = &cfg
	return g
}

func init() {
	registry.Register("numbertiles", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "numbertiles"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Number Tiles"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.cfg = g.loadConfig()
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0

	g.board = grid.NewColumnBoard(g.cfg.Board.Columns, g.cfg.Board.Rows)
	if len(g.cfg.Drop.Starting) == g.cfg.Board.Columns {
		g.board = g.board.WithBottomRow(g.cfg.Drop.Starting)
	}

	g.cursor = g.cfg.Board.Columns / 2
	g.current = g.draw()
	g.next = g.draw()
	g.score = 0
	g.drops = 0

	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH
	g.gameOver = false
	g.paused = false
	g.last = Turn{}
	g.flashTicks = 0

	g.checkScreenSize()
}

func (g *Game) loadConfig() config.NumberTilesConfig {
	if g.fixedCfg != nil {
		return *g.fixedCfg
	}
	cfg, err := config.LoadNumberTiles(configPath)
	if err != nil {
		return config.DefaultNumberTilesConfig()
	}
	return cfg
}

// draw picks the next value from the weighted bag.
func (g *Game) draw() int {
	values := g.cfg.Drop.Values
	return values[g.rng.Intn(len(values))]
}

func (g *Game) checkScreenSize() {
	w, h := boardExtent(g.board.Width(), g.board.Height())
	g.tooSmall = g.screenW < w+4 || g.screenH < h+hudHeight+3
}

// Resize adapts to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if g.flashTicks > 0 {
		g.flashTicks--
	}

	switch {
	case in.Has(core.ActionLeft):
		g.cursor = max(g.cursor-1, 0)
	case in.Has(core.ActionRight):
		g.cursor = min(g.cursor+1, g.board.Width()-1)
	}

	if in.Has(core.ActionDrop) || in.Has(core.ActionConfirm) || in.Has(core.ActionDown) {
		turn := g.DropInto(g.cursor)
		return core.StepResult{State: g.State(), Changed: turn.Placed}
	}

	return core.StepResult{State: g.State()}
}

// DropInto releases the current value into col. A full column consumes
// nothing and leaves the board untouched. Otherwise the queue advances, the
// score grows by the chain's merge values, and the game ends once the top
// row is full. Panics when col is out of range.
func (g *Game) DropInto(col int) Turn {
	if g.gameOver {
		return Turn{Column: col, GameOver: true}
	}

	dropped := g.current
	res := g.board.Drop(col, dropped)
	turn := Turn{
		Column:  col,
		Placed:  res.Placed,
		Dropped: dropped,
	}
	if !res.Placed {
		g.last = turn
		return turn
	}

	g.board = res.Board
	g.score += res.ScoreGain
	g.drops++
	g.current = g.next
	g.next = g.draw()

	turn.Pos = res.Pos
	turn.Value = res.Value
	turn.ScoreGain = res.ScoreGain
	turn.Chain = res.Chain

	if len(res.Chain) > 0 {
		g.flashPos = res.Pos
		g.flashTicks = flashDuration
	}

	if g.board.IsTerminal() {
		g.gameOver = true
		turn.GameOver = true
	}

	g.last = turn
	return turn
}

// Board returns the current board.
func (g *Game) Board() grid.ColumnBoard {
	return g.board
}

// Score returns the cumulative score.
func (g *Game) Score() int {
	return g.score
}

// Drops returns the number of values placed so far.
func (g *Game) Drops() int {
	return g.drops
}

// Queue returns the value about to drop and the one after it.
func (g *Game) Queue() (current, next int) {
	return g.current, g.next
}

// Cursor returns the launcher column.
func (g *Game) Cursor() int {
	return g.cursor
}

// LastTurn returns the outcome of the most recent drop.
func (g *Game) LastTurn() Turn {
	return g.last
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}
