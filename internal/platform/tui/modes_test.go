package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-arcade/internal/games/t2048"
)

func pick(m ModePicker, keys ...tea.KeyMsg) (ModePicker, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(ModePicker)
	}
	return m, cmd
}

func TestModePickerSelections(t *testing.T) {
	down := tea.KeyMsg{Type: tea.KeyDown}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	tests := []struct {
		name string
		keys []tea.KeyMsg
		want ModeSelection
	}{
		{"campaign", []tea.KeyMsg{enter}, ModeSelection{}},
		{"endless", []tea.KeyMsg{down, enter}, ModeSelection{Endless: true}},
		{"first level", []tea.KeyMsg{down, down, enter}, ModeSelection{Level: 1}},
		{"cursor stops at the last level", append(repeatKey(down, 30), enter), ModeSelection{Level: t2048.LevelCount()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := pick(NewModePicker(nil, 80, 24), tt.keys...)
			if m.Selected() == nil || cmd == nil {
				t.Fatal("enter should select and end the picker")
			}
			if *m.Selected() != tt.want {
				t.Errorf("selected %+v, want %+v", *m.Selected(), tt.want)
			}
		})
	}
}

func repeatKey(k tea.KeyMsg, n int) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, n)
	for i := range keys {
		keys[i] = k
	}
	return keys
}

func TestModeSelectionGame(t *testing.T) {
	if g := (ModeSelection{Endless: true}).Game(); g.Mode() != t2048.ModeEndless {
		t.Errorf("endless selection built mode %v", g.Mode())
	}
	if g := (ModeSelection{Level: 2}).Game(); g.Mode() != t2048.ModeCampaign {
		t.Errorf("level selection built mode %v", g.Mode())
	}
}

func TestModePickerShowsBest(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("2048_endless", "ann", 9000); err != nil {
		t.Fatal(err)
	}

	view := NewModePicker(store, 80, 40).View()
	for _, want := range []string{"Endless  best 9000 by ann", "Reach 128", "Ultimate Champion"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModePickerBackAndQuit(t *testing.T) {
	m, cmd := pick(NewModePicker(nil, 80, 24), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.WantsBack() || m.Selected() != nil || cmd == nil {
		t.Error("esc should leave the picker without a selection")
	}

	m, _ = pick(NewModePicker(nil, 80, 24), runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit")
	}
}
