package t2048

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/grid"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(mode Mode, cfg config.T2048Config, seed int64) *Game {
	g := &Game{mode: mode}
	g.WithConfig(cfg).Reset(testRuntime(seed))
	return g
}

// setBoard replaces the board, giving every tile a fresh id from the game.
func setBoard(g *Game, rows [][]int) {
	g.board = grid.FromValues(rows, g.ids)
}

func TestResetSpawnsStartTiles(t *testing.T) {
	g := newTestGame(ModeCampaign, config.DefaultT2048Config(), 1)

	if g.board.Count() != 2 {
		t.Errorf("fresh board has %d tiles, want 2", g.board.Count())
	}
	if g.board.Size() != grid.DefaultSize {
		t.Errorf("board size = %d, want %d", g.board.Size(), grid.DefaultSize)
	}
	for _, row := range g.board.Values() {
		for _, v := range row {
			if v != 0 && v != 2 && v != 4 {
				t.Errorf("start tile value %d, want 2 or 4", v)
			}
		}
	}
}

func TestResetUsesConfiguredBoard(t *testing.T) {
	cfg := config.DefaultT2048Config()
	cfg.Board.Size = 5
	cfg.Board.StartTiles = 4

	g := newTestGame(ModeEndless, cfg, 1)

	if g.board.Size() != 5 || g.board.Count() != 4 {
		t.Errorf("board = %dx%d with %d tiles, want 5x5 with 4", g.board.Size(), g.board.Size(), g.board.Count())
	}
}

func TestDeterministicReplay(t *testing.T) {
	moves := []grid.Direction{
		grid.DirLeft, grid.DirUp, grid.DirRight, grid.DirDown,
		grid.DirLeft, grid.DirLeft, grid.DirUp, grid.DirRight,
	}

	play := func() Snapshot {
		g := newTestGame(ModeEndless, config.DefaultT2048Config(), 12345)
		for range 10 {
			for _, d := range moves {
				g.Move(d)
			}
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and moves should replay identically:\n%+v\nvs\n%+v", a, b)
	}
}

func TestMoveSpawnsAfterChange(t *testing.T) {
	g := newTestGame(ModeEndless, config.DefaultT2048Config(), 7)
	setBoard(g, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 4, 0, 4},
		{0, 0, 0, 0},
	})

	turn := g.Move(grid.DirLeft)

	if !turn.Moved {
		t.Fatal("move should change the board")
	}
	if turn.ScoreGain != 12 || g.Score() != 12 {
		t.Errorf("score gain = %d, total = %d, want 12", turn.ScoreGain, g.Score())
	}
	if len(turn.Merges) != 2 {
		t.Errorf("merges = %d, want 2", len(turn.Merges))
	}
	if turn.Spawn == nil {
		t.Fatal("a changing move should spawn a tile")
	}
	if g.board.Count() != 3 {
		t.Errorf("tile count = %d, want 4 - 2 merges + 1 spawn = 3", g.board.Count())
	}
	spawned := g.board.At(turn.Spawn.Pos.Row, turn.Spawn.Pos.Col)
	if spawned.ID != turn.Spawn.ID || !spawned.IsNew {
		t.Errorf("spawn event %+v does not match board tile %+v", *turn.Spawn, spawned)
	}
	if g.Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", g.Moves())
	}
}

func TestNoChangeNoSpawn(t *testing.T) {
	g := newTestGame(ModeEndless, config.DefaultT2048Config(), 7)
	setBoard(g, [][]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	turn := g.Move(grid.DirLeft)

	if turn.Moved || turn.Spawn != nil {
		t.Errorf("unchanged board should not spawn, got %+v", turn)
	}
	if g.board.Count() != 2 || g.Moves() != 0 {
		t.Errorf("count = %d moves = %d, want 2 and 0", g.board.Count(), g.Moves())
	}
}

func TestGameOverAfterSpawn(t *testing.T) {
	cfg := config.DefaultT2048Config()
	cfg.Spawn.Spawn4 = 1
	cfg.Difficulty.Enabled = false

	g := newTestGame(ModeEndless, cfg, 3)
	setBoard(g, [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 8},
		{8, 16, 32, 32},
	})

	turn := g.Move(grid.DirLeft)

	if turn.Spawn == nil || turn.Spawn.Pos != (grid.Pos{Row: 3, Col: 3}) || turn.Spawn.Value != 4 {
		t.Fatalf("expected a 4 in the only empty slot, got %+v", turn.Spawn)
	}
	if !turn.GameOver || !g.State().GameOver {
		t.Error("board without moves after the spawn should be game over")
	}
	if g.State().Score != 64 {
		t.Errorf("final score = %d, want 64 including the last merge", g.State().Score)
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("snapshot state = %s, want game_over", g.Snapshot().State)
	}

	// Further moves are ignored
	after := g.Move(grid.DirRight)
	if after.Moved || g.Score() != 64 {
		t.Errorf("moves after game over should do nothing, got %+v", after)
	}
}

func TestCampaignProgression(t *testing.T) {
	g := newTestGame(ModeCampaign, config.DefaultT2048Config(), 42)
	setBoard(g, [][]int{
		{64, 64, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(core.FrameOf(core.ActionLeft))

	if !g.levelCleared {
		t.Fatal("reaching 128 should clear level 1")
	}
	if !g.State().Paused {
		t.Error("level clear banner should pause the game")
	}

	for range levelClearDelay {
		g.Step(core.NewInputFrame())
	}

	if g.levelIndex != 1 {
		t.Errorf("should advance to level 2, got level %d", g.levelIndex+1)
	}
	if g.currentTarget != 256 {
		t.Errorf("target = %d, want 256", g.currentTarget)
	}
	if g.board.MaxTile() != 128 {
		t.Error("board should carry over between levels")
	}
}

func TestMoveConfirmsLevelClear(t *testing.T) {
	g := newTestGame(ModeCampaign, config.DefaultT2048Config(), 42)
	setBoard(g, [][]int{
		{64, 64, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{2, 0, 0, 0},
	})

	if turn := g.Move(grid.DirLeft); !turn.LevelCleared {
		t.Fatal("expected level clear")
	}

	g.Move(grid.DirRight)

	if g.levelCleared || g.levelIndex != 1 {
		t.Errorf("next move should confirm the clear, level %d cleared=%v", g.levelIndex+1, g.levelCleared)
	}
}

func TestFinalLevelWins(t *testing.T) {
	g := &Game{mode: ModeCampaign}
	g.WithStartLevel(LevelCount()).WithConfig(config.DefaultT2048Config()).Reset(testRuntime(1))
	setBoard(g, [][]int{
		{4096, 4096, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Move(grid.DirLeft)
	g.Move(grid.DirDown)

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Errorf("clearing the last level should win, got %+v", st)
	}
}

func TestEndlessModeNoWin(t *testing.T) {
	g := newTestGame(ModeEndless, config.DefaultT2048Config(), 42)
	setBoard(g, [][]int{
		{8192, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(core.FrameOf(core.ActionDown))

	if g.levelCleared {
		t.Error("Endless mode should not have level cleared")
	}
	if g.won {
		t.Error("Endless mode should not have win state")
	}
}

func TestEndlessSpawn4RisesWithScore(t *testing.T) {
	g := newTestGame(ModeEndless, config.DefaultT2048Config(), 1)

	start := g.spawn4()
	g.score = 1_000_000
	late := g.spawn4()

	if start != grid.DefaultSpawn4 {
		t.Errorf("initial spawn4 = %v, want %v", start, grid.DefaultSpawn4)
	}
	if late <= start {
		t.Errorf("spawn4 should rise with score: %v -> %v", start, late)
	}
}

func TestCampaignSpawn4FollowsLevel(t *testing.T) {
	g := &Game{mode: ModeCampaign}
	g.WithStartLevel(10).WithConfig(config.DefaultT2048Config()).Reset(testRuntime(1))

	if got := g.spawn4(); got != Levels[9].Spawn4 {
		t.Errorf("spawn4 = %v, want level 10 rate %v", got, Levels[9].Spawn4)
	}
}

func TestAnimationPhases(t *testing.T) {
	g := newTestGame(ModeEndless, config.DefaultT2048Config(), 5)
	setBoard(g, [][]int{
		{0, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(core.FrameOf(core.ActionLeft))

	if g.animationPhase != PhaseSlide || len(g.animations) != 1 {
		t.Fatalf("expected one sliding tile, phase %d with %d animations", g.animationPhase, len(g.animations))
	}
	a := g.animations[0]
	if a.From != (grid.Pos{Row: 0, Col: 3}) || a.To != (grid.Pos{Row: 0, Col: 0}) {
		t.Errorf("slide %v -> %v, want (0,3) -> (0,0)", a.From, a.To)
	}

	for range slideAnimationDuration {
		g.Step(core.NewInputFrame())
	}
	if g.animationPhase != PhasePop {
		t.Fatalf("slide should chain into pop, phase %d", g.animationPhase)
	}

	for range popAnimationDuration {
		g.Step(core.NewInputFrame())
	}
	if g.animating || g.animationPhase != PhaseNone {
		t.Error("animation should be finished")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(ModeCampaign, config.DefaultT2048Config(), 9)
	setBoard(g, [][]int{
		{2048, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 16384},
		{0, 0, 0, 0},
	})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score: 0", "Level 1/10", "Target: 128", "2048", "16384", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	if strings.Contains(lines[1], "Level") || !strings.Contains(lines[2], "Level") {
		t.Errorf("level info should sit below the score:\n%s", out)
	}
}

func TestRenderEndlessHUD(t *testing.T) {
	g := newTestGame(ModeEndless, config.DefaultT2048Config(), 9)
	setBoard(g, [][]int{
		{512, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.score = 123456

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	lines := strings.Split(screen.String(), "\n")

	for _, want := range []string{"Score: 123456", "Max: 512"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("score row %q missing %q", lines[1], want)
		}
	}
	if !strings.Contains(lines[2], "Endless") {
		t.Errorf("mode row %q missing mode", lines[2])
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := &Game{mode: ModeEndless}
	g.WithConfig(config.DefaultT2048Config()).Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, Seed: 1})

	screen := core.NewScreen(20, 8)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("small window should show a resize hint")
	}
	if !g.State().Paused {
		t.Error("small window should pause the game")
	}
}

func TestResizeKeepsBoard(t *testing.T) {
	g := newTestGame(ModeEndless, config.DefaultT2048Config(), 3)
	before := g.Board().Values()

	g.Resize(20, 8)
	if !g.State().Paused {
		t.Error("shrinking the window should pause the game")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("growing the window back should resume")
	}
	if !reflect.DeepEqual(g.Board().Values(), before) {
		t.Error("resizing should not restart the game")
	}
}

func TestWithStartLevel(t *testing.T) {
	g := &Game{mode: ModeCampaign}
	g.WithConfig(config.DefaultT2048Config()).WithStartLevel(3).Reset(testRuntime(1))

	if snap := g.Snapshot(); snap.Level != 3 || snap.Target != Levels[2].Target {
		t.Errorf("start level = %d target = %d, want level 3", snap.Level, snap.Target)
	}

	// Restarts keep the chosen level
	g.Reset(testRuntime(2))
	if g.Snapshot().Level != 3 {
		t.Errorf("restart level = %d, want 3", g.Snapshot().Level)
	}
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(ModeCampaign, config.DefaultT2048Config(), 42)

	snap := g.Snapshot()

	if snap.Mode != "campaign" {
		t.Errorf("Snapshot Mode = %s, want campaign", snap.Mode)
	}
	if snap.Level != 1 {
		t.Errorf("Snapshot Level = %d, want 1", snap.Level)
	}
	if snap.Target != 128 {
		t.Errorf("Snapshot Target = %d, want 128", snap.Target)
	}
	if snap.State != StatePlaying {
		t.Errorf("Snapshot State = %s, want playing", snap.State)
	}
	if len(snap.Board) != 4 || len(snap.IDs) != 4 {
		t.Errorf("Snapshot board is %dx?, want 4x4", len(snap.Board))
	}
}

func TestLevelCount(t *testing.T) {
	if LevelCount() != 10 {
		t.Errorf("LevelCount() = %d, want 10", LevelCount())
	}
}

func TestLevels(t *testing.T) {
	if Levels[0].Name != "Warm-up" || GetLevel(-1) != nil || GetLevel(LevelCount()) != nil {
		t.Error("level lookup out of range should be nil")
	}
	for i, lvl := range Levels {
		if lvl.ID != i+1 {
			t.Errorf("level %d has ID %d", i, lvl.ID)
		}
		if i > 0 && lvl.Target < Levels[i-1].Target {
			t.Errorf("level %d target %d drops below the previous one", lvl.ID, lvl.Target)
		}
	}
	if Levels[4].Goal() != "Reach 2048" {
		t.Errorf("Goal() = %q", Levels[4].Goal())
	}
}
