package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

// fakeGame records what the model asks of it.
type fakeGame struct {
	state   core.GameState
	resets  int
	resized [2]int
	inputs  []core.InputFrame
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake board") }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *fakeGame) Controls() string { return "arrows: move" }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func step(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func tick(m Model) Model {
	return step(m, TickMsg(time.Now()))
}

func startModel(game *fakeGame, store *storage.Store, opts ...ModelOption) Model {
	m := NewModel(game, store, testConfig(), opts...)
	m.Init()
	return m
}

func TestModelPassesActionsToGame(t *testing.T) {
	game := &fakeGame{}
	m := startModel(game, nil)

	m = step(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = tick(m)

	if len(game.inputs) != 1 || !game.inputs[0].Has(core.ActionLeft) {
		t.Fatalf("game saw %v, want a frame with ActionLeft", game.inputs)
	}

	// Input is consumed by one tick
	m = tick(m)
	if !game.inputs[1].Empty() {
		t.Errorf("second tick saw %v, want an empty frame", game.inputs[1])
	}
}

func TestModelGameScreenLeavesFooterRow(t *testing.T) {
	m := startModel(&fakeGame{}, nil)

	if m.screen.Height() != 23 || m.gameConfig().ScreenH != 23 {
		t.Errorf("game height = %d/%d, want 23", m.screen.Height(), m.gameConfig().ScreenH)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &fakeGame{}
	m := startModel(game, nil)

	m = step(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if game.resized != [2]int{100, 29} {
		t.Errorf("game resized to %v, want [100 29]", game.resized)
	}
	if game.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", game.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 100x29", m.screen.Width(), m.screen.Height())
	}
}

func TestModelSavesScoreUnderPlayer(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("fake", "zed", 1000); err != nil {
		t.Fatal(err)
	}

	game := &fakeGame{}
	m := startModel(game, store, WithPlayer("ann"))

	game.state = core.GameState{Score: 300, GameOver: true}
	m = tick(m)
	m = tick(m)

	if m.prompting {
		t.Fatal("a score below the best should not ask for a name")
	}
	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2 (saved once)", len(scores))
	}
	if scores[1].Player != "ann" || scores[1].Score != 300 {
		t.Errorf("saved %+v, want ann with 300", scores[1])
	}
}

func TestModelAsksNameForNewBest(t *testing.T) {
	store := openStore(t)
	game := &fakeGame{}
	m := startModel(game, store, WithPlayer("ann"))

	game.state = core.GameState{Score: 500, GameOver: true}
	m = tick(m)

	if !m.prompting {
		t.Fatal("a new best should open the name prompt")
	}
	if got := m.prompt.Value(); got != "ann" {
		t.Errorf("prompt prefilled with %q, want ann", got)
	}
	if !strings.Contains(m.View(), "New best: 500!") {
		t.Errorf("footer does not show the prompt:\n%s", m.View())
	}

	// Game keys go to the prompt
	m = step(m, runeKey('q'))
	if m.IsQuitting() {
		t.Fatal("q while typing a name should not quit")
	}
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.prompting {
		t.Error("enter should close the prompt")
	}
	best, err := store.BestEntry("fake")
	if err != nil || best == nil {
		t.Fatalf("BestEntry() = %v, %v", best, err)
	}
	if best.Player != "annq" || best.Score != 500 {
		t.Errorf("best = %+v, want annq with 500", best)
	}
	if !strings.Contains(m.View(), "Best: 500 by annq") {
		t.Errorf("footer does not show the new best:\n%s", m.View())
	}
}

func TestModelEscSavesDefaultName(t *testing.T) {
	store := openStore(t)
	game := &fakeGame{}
	m := startModel(game, store)

	game.state = core.GameState{Score: 40, GameOver: true}
	m = tick(m)
	m = step(m, runeKey('x'))
	m = step(m, tea.KeyMsg{Type: tea.KeyEsc})

	best, err := store.BestEntry("fake")
	if err != nil || best == nil {
		t.Fatalf("BestEntry() = %v, %v", best, err)
	}
	if best.Player != storage.AnonymousPlayer {
		t.Errorf("player = %q, want %q", best.Player, storage.AnonymousPlayer)
	}
}

func TestModelFooter(t *testing.T) {
	store := openStore(t)
	store.SaveScore("fake", "zed", 1000)

	view := startModel(&fakeGame{}, store).View()

	for _, want := range []string{"fake board", "Best: 1000 by zed", "arrows: move"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &fakeGame{}
	m := startModel(game, nil)

	// Restart does nothing while playing
	m = step(m, runeKey('r'))
	m = tick(m)
	if game.resets != 1 {
		t.Fatalf("restart during play reset the game")
	}

	game.state = core.GameState{Score: 10, GameOver: true}
	m = tick(m)
	m = step(m, runeKey('r'))
	m = tick(m)

	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.scoreSaved {
		t.Error("a restarted game should save its own score")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	t.Run("back to menu after game over", func(t *testing.T) {
		game := &fakeGame{}
		m := startModel(game, nil, WithBackToMenu())

		m = step(m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.BackToMenu() {
			t.Fatal("esc during play should not leave the game")
		}

		game.state = core.GameState{GameOver: true}
		m = tick(m)
		m = step(m, tea.KeyMsg{Type: tea.KeyEsc})
		if !m.BackToMenu() {
			t.Error("esc after game over should return to the menu")
		}
	})

	t.Run("esc pauses without a menu", func(t *testing.T) {
		game := &fakeGame{}
		m := startModel(game, nil)

		m = step(m, tea.KeyMsg{Type: tea.KeyEsc})
		m = tick(m)
		if !game.inputs[0].Has(core.ActionPause) {
			t.Errorf("frame = %v, want ActionPause", game.inputs[0])
		}
	})

	t.Run("quit", func(t *testing.T) {
		m := startModel(&fakeGame{}, nil)
		next, cmd := m.Update(runeKey('q'))
		if !next.(Model).IsQuitting() || cmd == nil {
			t.Error("q should quit the program")
		}
		if next.(Model).View() != "" {
			t.Error("a quitting model renders nothing")
		}
	})
}
