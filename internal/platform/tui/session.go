package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

// sessionScreen is the screen currently shown in an SSH session.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenModeSelect
	screenScoreboard
	screenGame
)

// SessionModel manages the full arcade session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	username   string
	sessionID  string
	screen     sessionScreen
	menu       MenuModel
	modes      ModePicker
	scoreboard ScoreboardModel
	game       *Model
	quitting   bool
}

// NewSessionModel creates a new session model. username is offered as the
// player name when a score is saved.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sessionID := uuid.NewString()

	return SessionModel{
		store:     store,
		logger:    logger.With("session", sessionID, "user", username),
		config:    cfg,
		username:  username,
		sessionID: sessionID,
		menu:      NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
// Sub-screens end themselves with tea.Quit; those commands are swallowed
// here and turned into screen changes.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenModeSelect:
		return m.updateModes(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, _ := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		gameID := m.menu.Selected().GameID
		if gameID == "2048" {
			m.modes = NewModePicker(m.store, m.config.ScreenW, m.config.ScreenH)
			m.screen = screenModeSelect
			return m, m.modes.Init()
		}

		game, err := registry.Create(gameID)
		if err != nil {
			// Shouldn't happen since menu only shows registered games
			m.logger.Error("could not create game", "game", gameID, "error", err)
			return m.backToMenu()
		}
		return m.startGame(game)
	}

	return m, nil
}

// updateModes handles the 2048 mode and level picker.
func (m SessionModel) updateModes(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModes, _ := m.modes.Update(msg)
	if modes, ok := newModes.(ModePicker); ok {
		m.modes = modes
	}

	switch {
	case m.modes.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.modes.WantsBack():
		return m.backToMenu()

	case m.modes.Selected() != nil:
		return m.startGame(m.modes.Selected().Game())
	}

	return m, nil
}

// updateScoreboard handles the high score tables.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	// Check if user quit game (back to menu)
	if m.game.BackToMenu() {
		m.game = nil
		return m.backToMenu()
	}

	// Check if user quit entirely
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) startGame(game registry.Game) (tea.Model, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	gameModel := NewModel(game, m.store, m.config,
		WithPlayer(m.username),
		WithBackToMenu(),
		WithLogger(m.logger),
	)
	m.game = &gameModel
	m.screen = screenGame
	m.logger.Info("game started", "game", game.ID())

	return m, m.game.Init()
}

// backToMenu rebuilds the menu so best scores are current.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.store, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenModeSelect:
		return m.modes.View()
	case screenScoreboard:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
