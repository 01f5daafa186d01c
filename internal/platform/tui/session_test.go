package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-arcade/internal/games/t2048"

	_ "github.com/vovakirdan/tile-arcade/internal/games/numbertiles"
)

func sessionStep(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm, cmd
}

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	return NewSessionModel(openStore(t), testConfig(), "ann", nil)
}

func TestSessionMenuListsTileGames(t *testing.T) {
	m := newTestSession(t)

	var ids []string
	for _, item := range m.menu.items {
		ids = append(ids, item.GameID)
	}
	if len(ids) != 2 || ids[0] != "2048" || ids[1] != "numbertiles" {
		t.Errorf("menu items = %v, want [2048 numbertiles]", ids)
	}
	if m.sessionID == "" {
		t.Error("session should get an id")
	}
}

func TestSessionPlaysCampaignLevel(t *testing.T) {
	m := newTestSession(t)

	m, cmd := sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenModeSelect || cmd != nil {
		t.Fatalf("screen = %v (cmd %v), want the 2048 mode picker", m.screen, cmd)
	}

	// Past campaign and endless to the third level
	for range 4 {
		m, _ = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, cmd = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.screen != screenGame || m.game == nil {
		t.Fatalf("screen = %v, want a running game", m.screen)
	}
	if cmd == nil {
		t.Error("starting a game should schedule the first tick")
	}
	game, ok := m.game.game.(*t2048.Game)
	if !ok {
		t.Fatalf("game is %T, want *t2048.Game", m.game.game)
	}
	if game.Mode() != t2048.ModeCampaign {
		t.Errorf("mode = %v, want campaign", game.Mode())
	}
	if snap := game.Snapshot(); snap.Level != 3 {
		t.Errorf("level = %d, want 3", snap.Level)
	}
}

func TestSessionGameBackToMenu(t *testing.T) {
	m := newTestSession(t)

	m, _ = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game.game.ID() != "numbertiles" {
		t.Fatalf("expected a number tiles game, screen = %v", m.screen)
	}
	if cmd == nil {
		t.Fatal("expected a tick command")
	}

	// Pause, then leave
	m, _ = sessionStep(t, m, runeKey('p'))
	m, _ = sessionStep(t, m, TickMsg{})
	m, cmd = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.screen != screenMenu || m.game != nil {
		t.Errorf("screen = %v, want the menu", m.screen)
	}
	if cmd != nil {
		t.Error("returning to the menu must not end the program")
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := newTestSession(t)

	m, cmd := sessionStep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScoreboard || cmd != nil {
		t.Fatalf("screen = %v (cmd %v), want the scoreboard", m.screen, cmd)
	}

	m, cmd = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || cmd != nil {
		t.Errorf("screen = %v (cmd %v), want the menu", m.screen, cmd)
	}
	if m.View() == "" {
		t.Error("menu should render")
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t)

	m, cmd := sessionStep(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}
