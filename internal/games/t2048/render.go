package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including borders)
	cellHeight = 2 // Height of each cell (including borders)
	hudHeight  = 3
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	size := g.state.Board.Size()
	boardW := size*cellWidth + 1  // +1 for right border
	boardH := size*cellHeight + 1 // +1 for bottom border

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY, size)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// BoardRect returns the on-screen rectangle of the grid. Swipes must start
// inside it.
func (g *Game) BoardRect() core.Rect {
	size := g.opts.Rules.normalized().Size
	boardW := size*cellWidth + 1
	boardH := size*cellHeight + 1
	return core.NewRect((g.screenW-boardW)/2, hudHeight+1, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and best score.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawText(boardX+(boardW-len(g.title))/2, 0, g.title)

	scoreStr := "Score: " + FormatScore(g.state.Score)
	dst.DrawText(boardX, 1, scoreStr)

	bestStr := "Best: " + FormatScore(g.BestScore())
	bestX := core.Clamp(boardX+boardW-len(bestStr), boardX, g.screenW-len(bestStr))
	dst.DrawText(bestX, 1, bestStr)

	infoStr := fmt.Sprintf("Moves: %d  Max: %d", g.moves, g.state.Board.MaxTile())
	dst.DrawText(boardX+(boardW-len(infoStr))/2, 2, infoStr)
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY, size int) {
	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			// Draw corner/intersection
			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == size:
				corner = '┐'
			case y == size && x == 0:
				corner = '└'
			case y == size && x == size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.Set(px, py, corner)

			// Draw horizontal line to the right
			if x < size {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}

			// Draw vertical line down
			if y < size {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}
}

// renderTiles draws static tiles and any in-flight slide animations.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	sliding := g.anim.phase == PhaseSlide
	popping := g.anim.phase == PhasePop

	for _, t := range g.state.Board.Tiles() {
		if sliding && g.anim.hidden[t.ID] {
			continue
		}
		value := t.Value
		if sliding && g.anim.halved[t.ID] {
			value /= 2
		}

		color := TileColor(value)
		if popping && (g.anim.popping[t.ID] || g.anim.mergedAt[t.Pos()]) {
			color = core.ColorBrightWhite
		}
		drawTile(dst, boardX, boardY, float64(t.Row), float64(t.Col), value, color)
	}

	if sliding {
		for i := range g.anim.moving {
			a := &g.anim.moving[i]
			row, col := a.interpolatePosition()
			drawTile(dst, boardX, boardY, row, col, a.Value, TileColor(a.Value))
		}
	}
}

// drawTile writes a value centred in the cell at fractional (row, col).
func drawTile(dst *core.Screen, boardX, boardY int, row, col float64, value int, color core.Color) {
	cellX := boardX + int(math.Round(col*cellWidth)) + 1
	cellY := boardY + int(math.Round(row*cellHeight)) + 1

	valStr := strconv.Itoa(value)
	padLeft := max((cellWidth-1-len(valStr))/2, 0)
	dst.DrawTextColor(cellX+padLeft, cellY, valStr, color)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	centerX, centerY := board.Center()

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.state.Won:
		g.drawOverlay(dst, centerX, centerY,
			"YOU WIN!",
			fmt.Sprintf("Score: %s", FormatScore(g.state.Score)),
			"Press R for a new game")
	case g.state.GameOver:
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			fmt.Sprintf("Score: %s (%s)", FormatScore(g.state.Score), Rating(g.state.Score)),
			"Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	// Find max line width
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	// Draw box
	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.Fill(box, ' ')
	dst.DrawBox(box)

	// Draw text
	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}
