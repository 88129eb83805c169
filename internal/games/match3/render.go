package match3

import (
	"fmt"

	platformcore "github.com/vovakirdan/tilematch/internal/core"
	"github.com/vovakirdan/tilematch/internal/games/match3/core"
)

const (
	cellWidth    = 3 // Tile glyph plus a bracket on each side
	hudHeight    = 3
	footerHeight = 1
)

// boardSize returns the board size on screen, border included.
func boardSize(cfg core.Config) (w, h int) {
	return cfg.Columns*cellWidth + 2, cfg.Rows + 2
}

// boardRect places the board under the HUD, centered horizontally.
func boardRect(screenW int, cfg core.Config) platformcore.Rect {
	w, h := boardSize(cfg)
	r := platformcore.CenteredRect(screenW, 0, w, h)
	r.Y = hudHeight
	return r
}

// tileColor maps a tile type to its screen color.
func tileColor(t core.TileType) platformcore.Color {
	switch t {
	case core.TileRed:
		return platformcore.ColorRed
	case core.TileGreen:
		return platformcore.ColorGreen
	case core.TileBlue:
		return platformcore.ColorBlue
	case core.TileYellow:
		return platformcore.ColorYellow
	case core.TilePurple:
		return platformcore.ColorMagenta
	case core.TileOrange:
		return platformcore.ColorOrange
	case core.TileCyan:
		return platformcore.ColorCyan
	default:
		return platformcore.ColorDefault
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderError(dst)
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	cfg := g.engine.Config()
	board := boardRect(g.screenW, cfg)

	g.renderHUD(dst, board)
	g.renderBoard(dst, board, cfg)
	g.renderFooter(dst, board.Bottom())
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", platformcore.ColorGray)
}

// renderError shows why the board could not be created.
func (g *Game) renderError(dst *platformcore.Screen) {
	y := g.screenH/2 - 1
	dst.DrawTextCentered(y, "Cannot start game", platformcore.ColorRed)
	dst.DrawTextCentered(y+1, g.err.Error(), platformcore.ColorDefault)
	dst.DrawTextCentered(y+3, "Fix the config and press R", platformcore.ColorGray)
}

// renderHUD draws the title, score and move counters.
func (g *Game) renderHUD(dst *platformcore.Screen, board platformcore.Rect) {
	dst.DrawTextCentered(0, g.Title(), platformcore.ColorBrightWhite)

	scoreStr := fmt.Sprintf("Score: %d", g.playback.Score())
	dst.DrawText(board.X, 1, scoreStr)

	stats := g.engine.Stats()
	infoStr := fmt.Sprintf("Swaps: %d  Best chain: %d", stats.Swaps, stats.LongestCascade)
	dst.DrawText(max(board.Right()-len(infoStr), board.X), 2, infoStr)
}

// renderBoard draws the border and every tile. Row 0 is drawn at the bottom.
func (g *Game) renderBoard(dst *platformcore.Screen, board platformcore.Rect, cfg core.Config) {
	dst.DrawBox(board, platformcore.ColorGray)
	inner := board.Inset(1)

	selected, hasSelect := g.playback.Selection()
	busy := g.playback.Busy()

	for row := 0; row < cfg.Rows; row++ {
		y := inner.Bottom() - 1 - row
		for col := 0; col < cfg.Columns; col++ {
			c := core.At(row, col)
			x := inner.X + col*cellWidth
			g.renderCell(dst, x, y, g.playback.Cell(c))

			switch {
			case hasSelect && c == selected:
				dst.SetColored(x, y, '<', platformcore.ColorBrightWhite)
				dst.SetColored(x+2, y, '>', platformcore.ColorBrightWhite)
			case !busy && c == g.cursor:
				dst.SetColored(x, y, '[', platformcore.ColorWhite)
				dst.SetColored(x+2, y, ']', platformcore.ColorWhite)
			case g.showHint && (c == g.hint.A || c == g.hint.B):
				dst.SetColored(x, y, '(', platformcore.ColorGray)
				dst.SetColored(x+2, y, ')', platformcore.ColorGray)
			}
		}
	}
}

// renderCell draws one tile glyph with its playback highlight.
func (g *Game) renderCell(dst *platformcore.Screen, x, y int, vc ViewCell) {
	if !vc.Occupied {
		dst.SetColored(x+1, y, '·', platformcore.ColorGray)
		return
	}

	glyph := vc.Type.Char()
	color := tileColor(vc.Type)
	switch vc.Mark {
	case MarkCleared:
		glyph, color = '*', platformcore.ColorBrightWhite
	case MarkRejected:
		dst.SetColored(x, y, 'x', platformcore.ColorRed)
		dst.SetColored(x+2, y, 'x', platformcore.ColorRed)
	case MarkSpawned:
		glyph = '+'
	}
	dst.SetColored(x+1, y, glyph, color)
}

// renderFooter draws the control hints under the board.
func (g *Game) renderFooter(dst *platformcore.Screen, y int) {
	if y >= g.screenH {
		return
	}
	dst.DrawTextCentered(y, g.Controls(), platformcore.ColorGray)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen, board platformcore.Rect) {
	centerX, centerY := board.Center()
	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.State().GameOver {
		scoreStr := fmt.Sprintf("Score: %d", g.playback.Score())
		g.drawOverlay(dst, centerX, centerY, "NO MOVES LEFT", scoreStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *platformcore.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := platformcore.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.FillRect(box)
	dst.DrawBox(box, platformcore.ColorWhite)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	if g.cfg.Rules.Hints {
		return "Arrows: Move | Space: Swap | B: Cancel | ?: Hint | P: Pause | R: Restart"
	}
	return "Arrows: Move | Space: Swap | B: Cancel | P: Pause | R: Restart"
}
