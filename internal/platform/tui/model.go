package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

// footerHeight is the number of terminal rows below the game screen.
const footerHeight = 1

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// resizer is implemented by games that can adapt to a new screen size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// controller is implemented by games that describe their own controls.
type controller interface {
	Controls() string
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	player string
	best   *storage.ScoreEntry

	// Name prompt shown when a game ends with a new best score
	prompt       textinput.Model
	prompting    bool
	pendingScore int

	allowBack  bool
	backToMenu bool
	quitting   bool
	scoreSaved bool // Whether the score of the current game over was handled
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPlayer sets the name offered when a new best score is saved.
func WithPlayer(name string) ModelOption {
	return func(m *Model) { m.player = name }
}

// WithBackToMenu lets esc/b leave a paused or finished game.
func WithBackToMenu() ModelOption {
	return func(m *Model) { m.allowBack = true }
}

// WithLogger reports best-effort persistence failures to l.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg holds the full terminal size; the bottom row is kept for the footer.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	cfg = cfg.WithDefaults()

	prompt := textinput.New()
	prompt.Placeholder = storage.AnonymousPlayer
	prompt.CharLimit = storage.MaxPlayerNameLen
	prompt.Width = storage.MaxPlayerNameLen

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 1)),
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		prompt:     prompt,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.loadBest()
	return m
}

// gameConfig is the runtime config seen by the game.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-footerHeight, 1)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionBack:
		if m.allowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			return m, nil
		}
		if !m.allowBack {
			// Without a menu to return to, esc pauses
			m.inputFrame.Set(core.ActionPause)
		}
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handlePromptKey edits the player name after a new best score.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.savePending(m.player)
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.savePending(m.prompt.Value())
		return m, nil
	case tea.KeyEsc:
		m.savePending(m.player)
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	cfg := m.gameConfig()
	m.screen.Resize(cfg.ScreenW, cfg.ScreenH)

	if r, ok := m.game.(resizer); ok {
		r.Resize(cfg.ScreenW, cfg.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(cfg)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver && !m.prompting {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.finishGame()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// finishGame saves the final score once, asking for a name first when it
// beats the stored best.
func (m *Model) finishGame() {
	m.scoreSaved = true
	score := m.gameState.Score
	if m.store == nil || score <= 0 {
		return
	}

	best, err := m.store.IsNewBest(m.game.ID(), score)
	if err != nil {
		m.logger.Warn("could not read best score", "game", m.game.ID(), "error", err)
	}
	if !best {
		m.pendingScore = score
		m.savePending(m.player)
		return
	}

	m.pendingScore = score
	m.prompting = true
	m.prompt.SetValue(m.player)
	m.prompt.CursorEnd()
	m.prompt.Focus()
}

// savePending stores the pending score under name and closes the prompt.
func (m *Model) savePending(name string) {
	m.prompting = false
	m.prompt.Blur()
	if m.store == nil || m.pendingScore <= 0 {
		return
	}

	if _, err := m.store.SaveScore(m.game.ID(), name, m.pendingScore); err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
	}
	m.pendingScore = 0
	m.loadBest()
}

func (m *Model) loadBest() {
	if m.store == nil {
		return
	}
	best, err := m.store.BestEntry(m.game.ID())
	if err != nil {
		m.logger.Warn("could not read best score", "game", m.game.ID(), "error", err)
		return
	}
	m.best = best
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

func (m Model) footer() string {
	if m.prompting {
		return promptStyle.Render(fmt.Sprintf("New best: %d! Name: ", m.pendingScore)) + m.prompt.View()
	}

	text := ""
	if m.best != nil {
		name := m.best.Player
		if name == "" {
			name = storage.AnonymousPlayer
		}
		text = fmt.Sprintf("Best: %d by %s", m.best.Score, name)
	}
	if c, ok := m.game.(controller); ok {
		if text != "" {
			text += "  ·  "
		}
		text += c.Controls()
	}
	if w := m.config.ScreenW; w > 0 && len([]rune(text)) > w {
		text = string([]rune(text)[:w])
	}
	return footerStyle.Render(text)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
