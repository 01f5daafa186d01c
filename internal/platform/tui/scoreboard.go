package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

const boardRows = 100

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = boardTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type scoreboardKeys struct {
	Up, Down   key.Binding
	Next, Prev key.Binding
	Back, Quit key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var boardKeys = scoreboardKeys{
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
	Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev game")),
	Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ScoreboardModel shows the stored scores of one game at a time, with a
// tab per registered game or variant.
type ScoreboardModel struct {
	store    *storage.Store
	games    []registry.GameInfo
	current  int
	scores   []storage.ScoreEntry
	stats    *storage.GameStats
	table    table.Model
	help     help.Model
	width    int
	height   int
	back     bool
	quitting bool
}

// NewScoreboardModel opens on the first registered game. A nil store
// shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		games:  registry.List(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(width, height)
	m.load()
	return m
}

func newScoreTable(width, height int) table.Model {
	nameW := min(max(width-4-4-36, 8), storage.MaxPlayerNameLen)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Player", Width: nameW},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// gameID returns the id of the game on screen, or "" with nothing registered.
func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.current].ID
}

// load refreshes rows and stats for the current game.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if id := m.gameID(); m.store != nil && id != "" {
		if scores, err := m.store.TopScores(id, boardRows); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, e := range m.scores {
		player := e.Player
		if player == "" {
			player = storage.AnonymousPlayer
		}
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			player,
			fmt.Sprint(e.Score),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycle(delta int) {
	if n := len(m.games); n > 0 {
		m.current = (m.current + delta + n) % n
		m.load()
	}
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, boardKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, boardKeys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, boardKeys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, boardKeys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(m.width, m.height)
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(boardTitleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.summary(), m.width))
	b.WriteString("\n")

	body := boardDimStyle.Italic(true).Padding(1, 2).Render("No scores yet. Go set one!")
	if len(m.scores) > 0 {
		body = m.table.View()
	}
	frame := boardFrameStyle.Render(body)
	pad := max((m.width-lipgloss.Width(frame))/2, 0)
	b.WriteString(lipgloss.NewStyle().MarginLeft(pad).Render(frame))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(boardKeys)))
	return b.String()
}

// tabs lists every game title, or just the current one between arrows
// when they do not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return "no games registered"
	}
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.current {
			parts[i] = boardActiveTab.Render(g.Title)
		} else {
			parts[i] = boardTabStyle.Render(g.Title)
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.games[m.current].Title)
	}
	return line
}

// summary is the stats line above the table.
func (m ScoreboardModel) summary() string {
	if m.stats == nil || len(m.scores) == 0 {
		return boardDimStyle.Render("no games played")
	}
	top := m.scores[0]
	return boardDimStyle.Render(fmt.Sprintf("best %d by %s  ·  %d games  ·  average %.0f  ·  last %s",
		top.Score, top.Player, m.stats.GamesCount, m.stats.AvgScore, m.stats.LastPlayed.Format("Jan 02")))
}

// IsGoingBack reports whether the user asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard full screen. goBack is false when the
// user quit instead.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.back, nil
}
