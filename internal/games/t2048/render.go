package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/grid"
)

const (
	cellWidth  = 7 // Width of each cell including its left border; fits 5 digits
	cellHeight = 2 // Height of each cell including its top border
	hudHeight  = 3
)

// boardExtent returns the drawn width and height of a size×size board.
func boardExtent(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardExtent(g.board.Size())
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY)

	switch g.animationPhase {
	case PhaseSlide:
		g.renderSliding(dst, boardX, boardY)
	default:
		g.renderTiles(dst, boardX, boardY)
	}

	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, the score row and the mode row. The score owns
// row 1; campaign level info is too wide to share it on a 4x4 board.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "2048"
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))

	var info string
	if g.mode == ModeCampaign {
		info = fmt.Sprintf("Level %d/%d  Target: %d", g.levelIndex+1, LevelCount(), g.currentTarget)
	} else {
		maxTile := fmt.Sprintf("Max: %d", g.board.MaxTile())
		dst.DrawText(boardX+boardW-len(maxTile), 1, maxTile)
		info = fmt.Sprintf("Endless  4s: %.0f%%", g.spawn4()*100)
	}
	dst.DrawTextColor(max(boardX+(boardW-len(info))/2, 0), 2, info, core.ColorGray)
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	n := g.board.Size()
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.SetColor(px, py, gridCorner(x, y, n), core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

func gridCorner(x, y, n int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == n:
		return '┐'
	case y == n && x == 0:
		return '└'
	case y == n && x == n:
		return '┘'
	case y == 0:
		return '┬'
	case y == n:
		return '┴'
	case x == 0:
		return '├'
	case x == n:
		return '┤'
	default:
		return '┼'
	}
}

// renderTiles draws the settled board. During the pop phase the spawned
// tile grows in from a dot.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	var popping *TileAnimation
	if g.animationPhase == PhasePop && len(g.animations) > 0 {
		popping = &g.animations[0]
	}

	n := g.board.Size()
	for r := range n {
		for c := range n {
			t := g.board.At(r, c)
			if t.Empty() {
				continue
			}
			if popping != nil && popping.To == (grid.Pos{Row: r, Col: c}) && popping.Progress < 0.5 {
				drawTileLabel(dst, boardX+c*cellWidth+1, boardY+r*cellHeight+1, "·", core.TileColor(t.Value))
				continue
			}
			drawTile(dst, boardX+c*cellWidth+1, boardY+r*cellHeight+1, t.Value)
		}
	}
}

// renderSliding draws every moving tile at its interpolated position.
func (g *Game) renderSliding(dst *core.Screen, boardX, boardY int) {
	for _, a := range g.animations {
		row, col := a.position()
		x := boardX + int(math.Round(col*cellWidth)) + 1
		y := boardY + int(math.Round(row*cellHeight)) + 1
		drawTile(dst, x, y, a.Value)
	}
}

// drawTile writes a tile value centered in the cell whose interior starts at (x, y).
func drawTile(dst *core.Screen, x, y, value int) {
	drawTileLabel(dst, x, y, strconv.Itoa(value), core.TileColor(value))
}

func drawTileLabel(dst *core.Screen, x, y int, label string, color core.Color) {
	width := len([]rune(label))
	pad := max((cellWidth-1-width)/2, 0)
	dst.DrawTextColor(x+pad, y, label, color)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.won:
		g.drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", "You are the champion!", "Press R to restart")
	case g.gameOver:
		g.drawOverlay(dst, centerX, centerY, "GAME OVER",
			fmt.Sprintf("Max tile: %d", g.board.MaxTile()),
			fmt.Sprintf("Score: %d", g.score),
			"Press R to restart")
	case g.levelCleared:
		targetStr := fmt.Sprintf("Target %d reached!", g.currentTarget)
		if g.levelIndex >= LevelCount()-1 {
			g.drawOverlay(dst, centerX, centerY, targetStr, "Final level complete!")
		} else {
			g.drawOverlay(dst, centerX, centerY, targetStr, fmt.Sprintf("Next: Level %d", g.levelIndex+2))
		}
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
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
	return "Arrow keys/WASD: Move | P: Pause | R: Restart | Q: Quit"
}
