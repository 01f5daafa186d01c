package t2048

import (
	"math/rand"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/grid"
	"github.com/vovakirdan/tile-arcade/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// levelClearDelay is how long the "target reached" banner stays up (2s at 60fps).
const levelClearDelay = 120

// Game implements the 2048 puzzle game.
type Game struct {
	mode Mode
	cfg  config.T2048Config

	// fixedCfg is used instead of loading from disk when set.
	fixedCfg *config.T2048Config

	rng        *rand.Rand
	ids        *grid.Sequence
	spawner    *grid.Spawner
	difficulty *config.DifficultyManager
	tick       uint64

	board         grid.Board
	score         int
	moves         int
	levelIndex    int // Current level (0-indexed)
	currentTarget int // Current tile target

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int

	startLevel int // 1-based campaign level to start from, 0 for the first
	last       Turn

	// Animation state
	animations     []TileAnimation
	animating      bool
	animationPhase AnimationPhase
	animationTicks int
	pendingNewTile *grid.SpawnEvent
}

// Turn reports what a single move did.
type Turn struct {
	Direction    grid.Direction
	Moved        bool
	ScoreGain    int
	Merges       []grid.MergeEvent
	Spawn        *grid.SpawnEvent // nil when nothing was spawned
	LevelCleared bool
	GameOver     bool
}

// Package-level variables for config, set from the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the config file's settings.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// New creates a new campaign mode 2048 game.
func New() *Game {
	return &Game{
		mode: ModeCampaign,
	}
}

// NewEndless creates a new endless mode 2048 game.
func NewEndless() *Game {
	return &Game{
		mode: ModeEndless,
	}
}

// WithStartLevel makes every reset of a campaign game start at level (1-based).
func (g *Game) WithStartLevel(level int) *Game {
	g.startLevel = level
	return g
}

// WithConfig pins the game to cfg instead of loading configuration from disk.
func (g *Game) WithConfig(cfg config.T2048Config) *Game {
	g.fixedCfg = &cfg
	return g
}

func init() {
	registry.Register("2048", func() registry.Game {
		return New()
	})
	registry.RegisterVariant("2048_endless", "2048", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset initializes/restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.cfg = g.loadConfig()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.ids = grid.NewSequence()
	g.spawner = grid.NewSpawner(g.rng, g.ids)

	g.tick = 0
	g.score = 0
	g.moves = 0
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0
	g.last = Turn{}
	g.stopAnimation()

	g.board = grid.NewBoard(g.cfg.Board.Size)

	// Apply selected start level (campaign only)
	level := g.startLevel
	if g.mode == ModeCampaign && level > 0 && level <= LevelCount() {
		g.levelIndex = level - 1
	} else {
		g.levelIndex = 0
	}

	g.loadLevel()

	for range g.cfg.Board.StartTiles {
		g.spawnTile()
	}

	g.checkScreenSize()
}

func (g *Game) loadConfig() config.T2048Config {
	if g.fixedCfg != nil {
		return *g.fixedCfg
	}

	cfg, err := config.LoadT2048(configPath)
	if err != nil {
		cfg = config.DefaultT2048Config()
	}
	if difficultyPreset != "" {
		config.ApplyT2048Preset(&cfg, difficultyPreset)
	}
	return cfg
}

// loadLevel sets up the current level parameters.
func (g *Game) loadLevel() {
	if g.mode == ModeEndless {
		g.currentTarget = 0 // No target in endless
		return
	}

	level := GetLevel(g.levelIndex)
	if level == nil {
		level = GetLevel(LevelCount() - 1)
	}
	g.currentTarget = level.Target
}

// spawn4 returns the chance of the next spawn being a 4.
func (g *Game) spawn4() float64 {
	if g.mode == ModeCampaign {
		if level := GetLevel(g.levelIndex); level != nil {
			return level.Spawn4
		}
	}
	return g.difficulty.Spawn4(g.cfg.Spawn.Spawn4, g.score, g.moves)
}

// spawnTile places one random tile and returns its event, or nil when the
// board is full.
func (g *Game) spawnTile() *grid.SpawnEvent {
	g.spawner.SetSpawn4(g.spawn4())
	res := g.spawner.Spawn(g.board)
	if !res.Placed {
		return nil
	}
	g.board = res.Board
	ev := res.Event
	return &ev
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardExtent(g.board.Size())
	minW := boardW + 4
	minH := boardH + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
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

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Restart is handled by the platform
	if in.Has(core.ActionRestart) && (g.gameOver || g.won) {
		return core.StepResult{State: g.State()}
	}

	g.updateAnimation()

	if g.levelCleared && !g.gameOver {
		g.levelClearTicks++
		if g.levelClearTicks >= levelClearDelay {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFromInput(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	// A new move skips whatever is left of the previous animation
	g.stopAnimation()

	turn := g.Move(dir)
	return core.StepResult{State: g.State(), Changed: turn.Moved}
}

func directionFromInput(in core.InputFrame) (grid.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return grid.DirUp, true
	case in.Has(core.ActionDown):
		return grid.DirDown, true
	case in.Has(core.ActionLeft):
		return grid.DirLeft, true
	case in.Has(core.ActionRight):
		return grid.DirRight, true
	}
	return 0, false
}

// Move plays one move. A move that changes nothing is not counted and spawns
// nothing. After a board-changing move the score gain is added, one tile is
// spawned, and game over is evaluated on the resulting board.
//
// In campaign mode a pending level clear is confirmed first, so headless
// callers do not have to wait for the banner to time out. Moves after the
// game has ended are ignored.
func (g *Game) Move(dir grid.Direction) Turn {
	if g.levelCleared && !g.gameOver {
		g.advanceLevel()
	}
	if g.gameOver || g.won {
		return Turn{Direction: dir, GameOver: true}
	}

	before := g.board
	res := grid.ApplyMove(before, dir, g.ids)
	turn := Turn{Direction: dir, Moved: res.Moved}
	if !res.Moved {
		g.last = turn
		return turn
	}

	g.board = res.Board
	g.score += res.ScoreGain
	g.moves++
	turn.ScoreGain = res.ScoreGain
	turn.Merges = res.Merges

	turn.Spawn = g.spawnTile()
	g.startSlideAnimation(grid.Slides(before, res.Board), turn.Spawn)

	if g.mode == ModeCampaign && g.currentTarget > 0 && g.board.MaxTile() >= g.currentTarget {
		g.levelCleared = true
		g.levelClearTicks = 0
		turn.LevelCleared = true
	}

	if !grid.HasMovesRemaining(g.board) {
		g.gameOver = true
		turn.GameOver = true
	}

	g.last = turn
	return turn
}

// advanceLevel moves to the next level, keeping board and score.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= LevelCount()-1 {
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()
}

// Board returns the current board.
func (g *Game) Board() grid.Board {
	return g.board
}

// Score returns the cumulative score.
func (g *Game) Score() int {
	return g.score
}

// Moves returns the number of board-changing moves played.
func (g *Game) Moves() int {
	return g.moves
}

// LastTurn returns the outcome of the most recent move.
func (g *Game) LastTurn() Turn {
	return g.last
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || (g.levelCleared && !g.gameOver),
	}
}
