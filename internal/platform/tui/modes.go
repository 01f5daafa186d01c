package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/games/t2048"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

var (
	pickerHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pickerBestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// ModeSelection is what the 2048 picker returns. Level is the 1-based
// campaign level to start from, 0 for the first.
type ModeSelection struct {
	Endless bool
	Level   int
}

// Game builds the selected 2048 game.
func (s ModeSelection) Game() *t2048.Game {
	if s.Endless {
		return t2048.NewEndless()
	}
	g := t2048.New()
	if s.Level > 0 {
		g.WithStartLevel(s.Level)
	}
	return g
}

type pickerOption struct {
	label string
	note  string
	sel   ModeSelection
}

// ModePicker chooses between the 2048 campaign, endless play, and a
// campaign start level. Options form one list: the two modes first, then
// every level.
type ModePicker struct {
	options   []pickerOption
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  *ModeSelection
	back      bool
	quitting  bool
}

// NewModePicker builds the picker. Best scores come from store when it is
// not nil.
func NewModePicker(store *storage.Store, width, height int) ModePicker {
	best := func(gameID string) string {
		if store == nil {
			return ""
		}
		e, err := store.BestEntry(gameID)
		if err != nil || e == nil {
			return ""
		}
		return fmt.Sprintf("best %d by %s", e.Score, e.Player)
	}

	options := []pickerOption{
		{label: fmt.Sprintf("Campaign (%d levels)", t2048.LevelCount()), note: best("2048")},
		{label: "Endless", note: best("2048_endless"), sel: ModeSelection{Endless: true}},
	}
	for i, lvl := range t2048.Levels {
		options = append(options, pickerOption{
			label: fmt.Sprintf("%2d. %s", lvl.ID, lvl.Name),
			note:  lvl.Goal(),
			sel:   ModeSelection{Level: i + 1},
		})
	}

	return ModePicker{
		options:   options,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

func (m ModePicker) Init() tea.Cmd {
	return nil
}

func (m ModePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack:
			m.back = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, len(m.options)-1)
		case MenuActionSelect:
			sel := m.options[m.cursor].sel
			m.selected = &sel
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ModePicker) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("2 0 4 8", m.width)))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		if i == 2 {
			b.WriteString("\n")
			b.WriteString(pickerHeadStyle.Render(centerText("or start the campaign at", m.width)))
			b.WriteString("\n")
		}

		line := opt.label
		if opt.note != "" {
			note := opt.note
			if i < 2 {
				note = pickerBestStyle.Render(note)
			}
			line += "  " + note
		}
		if i == m.cursor {
			b.WriteString(menuActiveStyle.Render(centerText("> "+line, m.width)))
		} else {
			b.WriteString(centerText("  "+line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Selected returns the choice, or nil while the user is still choosing.
func (m ModePicker) Selected() *ModeSelection {
	return m.selected
}

func (m ModePicker) WantsBack() bool {
	return m.back
}

func (m ModePicker) IsQuitting() bool {
	return m.quitting
}

// RunModePicker shows the picker full screen. A nil selection means the
// user backed out or quit.
func RunModePicker(store *storage.Store, cfg core.RuntimeConfig) (*ModeSelection, error) {
	final, err := tea.NewProgram(NewModePicker(store, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(ModePicker)
	if !ok || m.back || m.quitting {
		return nil, nil
	}
	return m.selected, nil
}
