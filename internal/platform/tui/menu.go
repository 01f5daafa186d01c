package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuNoteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const menuControls = "↑/↓: Choose  |  Enter: Play  |  Tab: Scores  |  Q: Quit"

// MenuItem is one base game on the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int    // 0 when nobody has played it
	Holder string // player holding Best
	Modes  int    // registered variants, picked after the game
}

// note is the dim text after the title.
func (i MenuItem) note() string {
	var parts []string
	if i.Modes > 0 {
		parts = append(parts, fmt.Sprintf("+%d mode", i.Modes))
	}
	if i.Best > 0 {
		parts = append(parts, fmt.Sprintf("best %d by %s", i.Best, i.Holder))
	}
	return strings.Join(parts, ", ")
}

// MenuModel picks a game. Variants are left to the game's own picker.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	selected   *MenuItem
	scoreboard bool
	quitting   bool
}

// NewMenuModel lists every registered base game with its best score.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		if g.IsVariant() {
			continue
		}
		item := MenuItem{GameID: g.ID, Title: g.Title, Modes: len(registry.Variants(g.ID))}
		if store != nil {
			if best, err := store.BestEntry(g.ID); err == nil && best != nil {
				item.Best, item.Holder = best.Score, best.Player
			}
		}
		items = append(items, item)
	}

	return MenuModel{items: items, config: cfg, keyMapper: NewKeyMapper()}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionScoreboard:
			m.scoreboard = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = max(min(m.cursor+1, len(m.items)-1), 0)
		case MenuActionSelect:
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				m.selected = &item
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.config.ScreenW

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("  T I L E   A R C A D E  ", w)))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No games installed.", w))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		line := item.Title
		if note := item.note(); note != "" {
			line += "  " + menuNoteStyle.Render(note)
		}
		if i == m.cursor {
			b.WriteString(menuActiveStyle.Render(centerText("> "+line, w)))
		} else {
			b.WriteString(centerText("  "+line, w))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuControls, w))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen game, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether Tab was pressed.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// Config returns the runtime config, resized to the last window size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text on the left to center it in width cells.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult is what the local menu loop acts on.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu full screen until the user picks something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.config, WantsScoreboard: m.scoreboard}
	switch {
	case m.scoreboard:
	case m.selected != nil:
		res.GameID = m.selected.GameID
	default:
		res.Quit = true
	}
	return res, nil
}
