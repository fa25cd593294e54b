package pong

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Lines renders the board, HUD and overlays as one string per row
func (g *Game) Lines() []string {
	grid := make([][]rune, g.b.rows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", g.b.cols))
	}
	if g.b.rows < 3 || g.b.cols < 3 {
		return joinRows(grid)
	}

	if g.cfg.ShowBorder {
		drawBorder(grid)
	}
	g.drawHUD(grid)

	switch g.state {
	case StateAttract:
		g.drawMessage(grid, "ETH-PONG//A HISTORY LESSON", "PRESS ENTER TO START")
	case StateGameOver:
		result := "YOU WIN"
		if g.lost {
			result = "YOU LOSE"
		}
		g.drawMessage(grid, result, "PRESS ENTER TO RESTART")
	default:
		g.drawPlayfield(grid)
	}
	return joinRows(grid)
}

// Gas is the HUD's speed gauge: rises with ball speed and epoch
func (g *Game) Gas() int {
	return max(1, int(math.Round(8+(g.ballSpeed-g.cfg.BaseBallSpeed)*1.5+float64(g.level)*1.2)))
}

func (g *Game) drawHUD(grid [][]rune) {
	y := 0
	if g.cfg.ShowBorder {
		y = 1
	}
	x := int(g.b.minX) + 2

	fields := []string{
		fmt.Sprintf("EPOCH %d", g.level),
		fmt.Sprintf("NONCE %d", g.rally),
		fmt.Sprintf("GAS %d gwei", g.Gas()),
	}
	if g.cfg.ShowTime {
		fields = append(fields, fmt.Sprintf("TIME %ds", int(g.elapsed)))
	}
	for _, f := range fields {
		drawText(grid, x, y, f)
		x += runewidth.StringWidth(f) + 3
	}
}

func (g *Game) drawMessage(grid [][]rune, lines ...string) {
	startY := g.b.rows/2 - 1
	for i, line := range lines {
		drawCentred(grid, startY+i, line)
	}
}

func (g *Game) drawPlayfield(grid [][]rune) {
	lo, hi := int(g.b.minY)+1, int(g.b.maxY)-1
	clampRow := func(v int) int { return min(max(v, lo), hi) }
	clampCol := func(v int) int { return min(max(v, int(g.b.minX)+1), int(g.b.maxX)-1) }

	half := g.cfg.PaddleHeight / 2
	for i := -half; i <= half; i++ {
		grid[clampRow(int(math.Round(g.left))+i)][int(g.b.leftX)] = '|'
		grid[clampRow(int(math.Round(g.right))+i)][int(g.b.rightX)] = '|'
	}

	bx, by := clampCol(int(math.Round(g.ball.X))), clampRow(int(math.Round(g.ball.Y)))
	px, py := clampCol(int(math.Round(g.prevX))), clampRow(int(math.Round(g.prevY)))
	if g.cfg.TrailRune != 0 && (px != bx || py != by) {
		grid[py][px] = g.cfg.TrailRune
	}
	grid[by][bx] = g.cfg.BallRune

	if g.state == StatePaused {
		drawCentred(grid, g.b.rows/2, "PAUSED")
	}

	if g.clock < g.bannerUntil {
		y := g.b.rows/2 - 2
		drawCentred(grid, y, fmt.Sprintf("== EPOCH %d ==", g.level))
		if g.level-1 < len(g.cfg.LevelNames) {
			name := fitText(strings.ToUpper(g.cfg.LevelNames[g.level-1]), g.b.cols-4)
			drawCentred(grid, y+1, name)
		}
	}
}

func drawBorder(grid [][]rune) {
	rows, cols := len(grid), len(grid[0])
	for x := 0; x < cols; x++ {
		grid[0][x] = '-'
		grid[rows-1][x] = '-'
	}
	for y := 0; y < rows; y++ {
		grid[y][0] = '|'
		grid[y][cols-1] = '|'
	}
	grid[0][0], grid[0][cols-1] = '+', '+'
	grid[rows-1][0], grid[rows-1][cols-1] = '+', '+'
}

func drawText(grid [][]rune, x, y int, text string) {
	if y < 0 || y >= len(grid) {
		return
	}
	row := grid[y]
	for _, r := range text {
		if x >= 0 && x < len(row) {
			row[x] = r
		}
		x++
	}
}

func drawCentred(grid [][]rune, y int, text string) {
	if len(grid) == 0 || text == "" {
		return
	}
	drawText(grid, (len(grid[0])-runewidth.StringWidth(text))/2, y, text)
}

// fitText truncates text to maxLen columns with a trailing ellipsis
func fitText(text string, maxLen int) string {
	if runewidth.StringWidth(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return runewidth.Truncate(text, max(maxLen, 0), "")
	}
	return runewidth.Truncate(text, maxLen, "...")
}

func joinRows(grid [][]rune) []string {
	out := make([]string, len(grid))
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}
