// Package tui runs the tile games in a terminal, locally or over SSH. It
// owns the Bubble Tea loop, key mapping, menus and the score prompt.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

// TickMsg drives one game step.
type TickMsg time.Time

// frameInterval converts a tick rate in Hz to the delay between ticks.
func frameInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = core.DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(frameInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
