package numbertiles

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

const (
	cellWidth = 6 // fits 5 digits plus a gap
	hudHeight = 3
)

// boardExtent returns the drawn size of the board including its frame.
func boardExtent(cols, rows int) (w, h int) {
	return cols*cellWidth + 2, rows + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		y := g.screenH / 2
		dst.DrawTextCentered(y, "Window too small")
		dst.DrawTextCentered(y+1, "Please resize terminal")
		return
	}

	boardW, boardH := boardExtent(g.board.Width(), g.board.Height())
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1 // launcher row sits just above the frame

	g.renderHUD(dst, boardX, boardW)
	g.renderLauncher(dst, boardX, boardY-1)
	g.renderBoard(dst, boardX, boardY, boardW, boardH)

	if g.paused {
		drawOverlay(dst, boardX+boardW/2, boardY+boardH/2, "PAUSED", "Press P to resume")
	} else if g.gameOver {
		drawOverlay(dst, boardX+boardW/2, boardY+boardH/2,
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.score),
			fmt.Sprintf("Max tile: %d", g.board.MaxTile()),
			"Press R to restart")
	}
}

func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "NUMBER TILES"
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightMagenta)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))

	queue := fmt.Sprintf("Next: %d", g.next)
	dst.DrawText(boardX+boardW-len(queue), 1, queue)

	dst.DrawTextColor(boardX, 2, fmt.Sprintf("Max: %d", g.board.MaxTile()), core.ColorGray)
}

// renderLauncher draws the current value above the selected column.
func (g *Game) renderLauncher(dst *core.Screen, boardX, y int) {
	label := strconv.Itoa(g.current)
	x := boardX + 1 + g.cursor*cellWidth
	color := core.TileColor(g.current)
	if !g.board.CanDrop(g.cursor) {
		color = core.ColorGray
	}
	dst.DrawTextColor(x+(cellWidth-len(label))/2, y, label, color)
	dst.SetColor(x, y, '▼', color)
}

func (g *Game) renderBoard(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	dst.DrawBoxColor(core.NewRect(boardX, boardY, boardW, boardH), core.ColorGray)

	for r := range g.board.Height() {
		for c := range g.board.Width() {
			x := boardX + 1 + c*cellWidth
			y := boardY + 1 + r

			v := g.board.At(r, c)
			if v == 0 {
				dst.SetColor(x+cellWidth/2, y, '·', core.ColorGray)
				continue
			}

			color := core.TileColor(v)
			if g.flashTicks > 0 && g.flashPos.Row == r && g.flashPos.Col == c {
				color = core.ColorBrightWhite
			}
			label := strconv.Itoa(v)
			dst.DrawTextColor(x+(cellWidth-len(label))/2, y, label, color)
		}
	}

	// Column numbers under the frame
	for c := range g.board.Width() {
		dst.DrawTextColor(boardX+1+c*cellWidth+cellWidth/2, boardY+boardH, strconv.Itoa(c+1), core.ColorGray)
	}
}

func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.CenteredRect(centerX, centerY, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, core.ColorBrightWhite)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Left/Right: Aim | Space/Enter: Drop | P: Pause | R: Restart | Q: Quit"
}
