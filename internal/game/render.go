package game

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border
	hudHeight  = 3

	boardW = BoardSize*cellWidth + 1
	boardH = BoardSize*cellHeight + 1

	// MinScreenW and MinScreenH are the smallest terminal that fits the
	// board and the HUD.
	MinScreenW = boardW + 2
	MinScreenH = hudHeight + boardH + 2

	spawnMarker = '•'
)

// tileColors maps tile values to colors; larger tiles fall back to cyan.
var tileColors = map[int]core.Color{
	2:    core.ColorWhite,
	4:    core.ColorBrightWhite,
	8:    core.ColorOrange,
	16:   core.ColorBrightRed,
	32:   core.ColorRed,
	64:   core.ColorMagenta,
	128:  core.ColorYellow,
	256:  core.ColorBrightYellow,
	512:  core.ColorGreen,
	1024: core.ColorBrightGreen,
	2048: core.ColorBrightMagenta,
}

// TileColor returns the display color for a tile value.
func TileColor(value int) core.Color {
	if c, ok := tileColors[value]; ok {
		return c
	}
	if value > WinTile {
		return core.ColorBrightCyan
	}
	return core.ColorDefault
}

// TooSmall reports whether the last known screen cannot fit the board.
func (e *Engine) TooSmall() bool {
	return e.screenW < MinScreenW || e.screenH < MinScreenH
}

// Render draws the board, HUD and end-of-game banner into dst.
func (e *Engine) Render(dst *core.Screen) {
	dst.Clear()

	if e.TooSmall() {
		e.renderTooSmall(dst)
		return
	}

	boardX := (e.screenW - boardW) / 2
	boardY := hudHeight + 1

	e.renderHUD(dst, boardX)
	e.renderBoard(dst, boardX, boardY)

	if e.status.Terminal() {
		e.renderBanner(dst, core.NewRect(boardX, boardY, boardW, boardH))
	}
}

func (e *Engine) renderTooSmall(dst *core.Screen) {
	y := e.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", MinScreenW, MinScreenH))
}

// renderHUD draws the title, score and best score.
func (e *Engine) renderHUD(dst *core.Screen, boardX int) {
	title := "2 0 4 8"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	scoreStr := fmt.Sprintf("Score: %d", e.score)
	if e.gained > 0 && !e.status.Terminal() {
		scoreStr += fmt.Sprintf(" (+%d)", e.gained)
	}
	dst.DrawText(boardX, 1, scoreStr)

	bestStr := fmt.Sprintf("Best: %d", e.highScore)
	dst.DrawText(max(boardX, boardX+boardW-len(bestStr)), 1, bestStr)

	movesStr := fmt.Sprintf("Moves: %d", e.moves)
	dst.DrawTextColored(boardX+(boardW-len(movesStr))/2, 2, movesStr, core.ColorGray)
}

// renderBoard draws the grid lines and tile values.
func (e *Engine) renderBoard(dst *core.Screen, boardX, boardY int) {
	for row := range BoardSize + 1 {
		for col := range BoardSize + 1 {
			px := boardX + col*cellWidth
			py := boardY + row*cellHeight
			dst.SetColored(px, py, gridJunction(row, col), core.ColorGray)

			if col < BoardSize {
				dst.DrawHLineColored(px+1, py, cellWidth-1, '─', core.ColorGray)
			}
			if row < BoardSize {
				dst.DrawVLineColored(px, py+1, cellHeight-1, '│', core.ColorGray)
			}
		}
	}

	// Mark the tile spawned by the last move in the cell's right margin.
	if e.moves > 0 && e.spawned.Row >= 0 {
		x := boardX + e.spawned.Col*cellWidth + cellWidth - 1
		y := boardY + e.spawned.Row*cellHeight + 1
		dst.SetColored(x, y, spawnMarker, core.ColorGray)
	}

	for row := range BoardSize {
		for col := range BoardSize {
			val := e.board[row][col]
			if val == 0 {
				continue
			}

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)
			x := boardX + col*cellWidth + 1 + padLeft
			y := boardY + row*cellHeight + 1
			dst.DrawTextColored(x, y, valStr, TileColor(val))
		}
	}
}

// gridJunction picks the box-drawing rune for a grid intersection.
func gridJunction(row, col int) rune {
	switch {
	case row == 0 && col == 0:
		return '┌'
	case row == 0 && col == BoardSize:
		return '┐'
	case row == BoardSize && col == 0:
		return '└'
	case row == BoardSize && col == BoardSize:
		return '┘'
	case row == 0:
		return '┬'
	case row == BoardSize:
		return '┴'
	case col == 0:
		return '├'
	case col == BoardSize:
		return '┤'
	default:
		return '┼'
	}
}

// renderBanner draws the Won or Lost overlay centered on the board.
func (e *Engine) renderBanner(dst *core.Screen, board core.Rect) {
	var lines []string
	color := core.ColorBrightRed
	switch e.status {
	case StatusWon:
		lines = []string{"2048 reached!", fmt.Sprintf("Score: %d", e.score), "Reset to play again"}
		color = core.ColorBrightGreen
	case StatusLost:
		lines = []string{"No moves left", fmt.Sprintf("Max tile: %d", MaxTile(e.board)), "Reset to play again"}
	}

	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	centerX, centerY := board.Center()
	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)
	box.X = core.Clamp(box.X, 0, max(dst.Width()-boxW, 0))

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, color)
	}
}
