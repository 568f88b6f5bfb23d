package hexfit

import (
	"fmt"
	"strings"

	platform "github.com/vovakirdan/hexfit/internal/core"
	"github.com/vovakirdan/hexfit/internal/games/hexfit/core"
)

const (
	hudHeight  = 2
	slotWidth  = 13
	slotHeight = 7
	slotGap    = 1
	trayWidth  = core.TraySize*slotWidth + (core.TraySize-1)*slotGap

	glyphFilled = '⬢'
	glyphEmpty  = '⬡'
	glyphFlash  = '✦'
)

// boardSize returns the framed board size for a radius.
// Cells sit two columns apart per half step, so a row of the widest line
// spans 8r+1 columns, plus cursor brackets and the frame.
func boardSize(radius int) (w, h int) {
	return 8*radius + 5, 2*radius + 3
}

// minScreenSize returns the smallest screen the current board fits in.
func (g *Game) minScreenSize() (w, h int) {
	bw, bh := boardSize(g.board.Radius())
	return max(bw, trayWidth), hudHeight + bh + slotHeight + 1
}

// pieceColor maps a board color to a screen color.
func pieceColor(c core.Color) platform.Color {
	switch c {
	case core.ColorOrange:
		return platform.ColorPieceOrange
	case core.ColorGreen:
		return platform.ColorPieceGreen
	case core.ColorBlue:
		return platform.ColorPieceBlue
	case core.ColorYellow:
		return platform.ColorPieceYellow
	case core.ColorPurple:
		return platform.ColorPiecePurple
	default:
		return platform.ColorDefault
	}
}

// boardOrigin is the screen position of the board center.
type boardOrigin struct {
	x, y int
}

func (o boardOrigin) at(c core.Coord) (int, int) {
	return o.x + 2*screenX(c), o.y + c.R
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platform.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	bw, bh := boardSize(g.board.Radius())
	frame := platform.NewRect((g.screenW-bw)/2, hudHeight, bw, bh)
	origin := boardOrigin{x: frame.X + bw/2, y: frame.Y + 1 + g.board.Radius()}

	g.renderHUD(dst)
	dst.DrawBox(frame, platform.ColorBorder)
	g.renderBoard(dst, origin)
	if g.phase == PhasePlaying && !g.paused {
		g.renderGhost(dst, origin)
	}
	g.renderFloats(dst, origin, frame)

	trayY := frame.Bottom()
	g.renderTray(dst, (g.screenW-trayWidth)/2, trayY)
	g.renderHelp(dst, trayY+slotHeight)

	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platform.Screen) {
	w, h := g.minScreenSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small", platform.ColorBad)
	dst.DrawTextCentered(y, fmt.Sprintf("Need at least %dx%d", w, h), platform.ColorDim)
	dst.DrawTextCentered(y+1, "Please resize terminal", platform.ColorDim)
}

// renderHUD draws the title and score line.
func (g *Game) renderHUD(dst *platform.Screen) {
	dst.DrawTextCentered(0, strings.ToUpper(g.Title()), platform.ColorAccent)

	line := fmt.Sprintf("Score: %d   Best: %d   Lines: %d", g.score, max(g.highScore, g.score), g.lines)
	if g.combo > 1 {
		line += fmt.Sprintf("   Combo x%d", g.combo)
	}
	color := platform.ColorText
	if g.NewBest() && g.highScore > 0 {
		color = platform.ColorGood
	}
	dst.DrawTextCentered(1, line, color)
}

// renderBoard draws every cell plus active clear flashes.
func (g *Game) renderBoard(dst *platform.Screen, o boardOrigin) {
	for _, c := range g.board.Coords() {
		cell, _ := g.board.Cell(c)
		x, y := o.at(c)
		switch {
		case cell.Dissolving && cell.ClearTimer <= 2:
			dst.SetColored(x, y, glyphFilled, platform.ColorFlash)
		case cell.Occupied:
			dst.SetColored(x, y, glyphFilled, pieceColor(cell.Color))
		default:
			dst.SetColored(x, y, glyphEmpty, platform.ColorDim)
		}
	}

	for _, f := range g.flashes {
		for _, cc := range f.cells {
			if cell, ok := g.board.Cell(cc.Coord); ok && cell.Occupied {
				continue
			}
			x, y := o.at(cc.Coord)
			color := platform.ColorFlash
			if f.ticks%4 < 2 {
				color = pieceColor(cc.Color)
			}
			dst.SetColored(x, y, glyphFlash, color)
		}
	}
}

// renderGhost draws the selected shape at the cursor with its clear preview.
func (g *Game) renderGhost(dst *platform.Screen, o boardOrigin) {
	cx, cy := o.at(g.cursor)
	dst.SetColored(cx-1, cy, '[', platform.ColorAccent)
	dst.SetColored(cx+1, cy, ']', platform.ColorAccent)

	slot := g.tray[g.selected]
	if !slot.Filled {
		return
	}

	p := g.board.Preview(g.cursor, slot.Shape)
	color := platform.ColorGood
	if !p.Valid {
		color = platform.ColorBad
	}
	for _, c := range p.Cells {
		if !g.board.Layout().Contains(c) {
			continue
		}
		x, y := o.at(c)
		dst.SetColored(x, y, glyphFilled, color)
	}
	for _, c := range p.Clears {
		x, y := o.at(c)
		dst.SetColored(x, y, glyphFlash, platform.ColorFlash)
	}
}

// renderFloats draws rising score text inside the board frame.
func (g *Game) renderFloats(dst *platform.Screen, o boardOrigin, frame platform.Rect) {
	for _, ft := range g.floats {
		x, y := o.at(ft.at)
		rise := (g.cfg.Effects.FloatTicks - ft.ticks) / 10
		y = platform.Clamp(y-rise, frame.Y+1, frame.Bottom()-2)
		x = platform.Clamp(x-len(ft.text)/2, frame.X+1, frame.Right()-1-len(ft.text))
		dst.DrawTextColored(x, y, ft.text, platform.ColorAccent)
	}
}

// renderTray draws the three slots side by side.
func (g *Game) renderTray(dst *platform.Screen, x, y int) {
	for i, slot := range g.tray {
		box := platform.NewRect(x+i*(slotWidth+slotGap), y, slotWidth, slotHeight)
		border := platform.ColorBorder
		if i == g.selected && slot.Filled {
			border = platform.ColorAccent
		}
		dst.DrawBox(box, border)
		dst.DrawText(box.X+1, box.Y, fmt.Sprintf("%d", i+1))

		if !slot.Filled {
			continue
		}
		color := pieceColor(slot.Color)
		if g.phase == PhasePlaying && !g.board.CanPlaceAny(slot.Shape) {
			color = platform.ColorDim
		}
		drawShape(dst, box, slot.Shape, color)
	}
}

// drawShape draws a shape centered in box at one column per half step.
func drawShape(dst *platform.Screen, box platform.Rect, s core.Shape, color platform.Color) {
	minX, maxX := 0, 0
	_, minR, _, maxR := s.Bounds()
	for i, off := range s.Offsets() {
		sx := screenX(off)
		if i == 0 || sx < minX {
			minX = sx
		}
		if i == 0 || sx > maxX {
			maxX = sx
		}
	}

	cx := box.X + box.W/2 - (minX+maxX)/2
	cy := box.Y + box.H/2 - (minR+maxR)/2
	for _, off := range s.Offsets() {
		x, y := cx+screenX(off), cy+off.R
		if x <= box.X || x >= box.Right()-1 || y <= box.Y || y >= box.Bottom()-1 {
			continue
		}
		dst.SetColored(x, y, glyphFilled, color)
	}
}

// renderHelp draws the control hint line.
func (g *Game) renderHelp(dst *platform.Screen, y int) {
	if g.blocked > 0 {
		dst.DrawTextCentered(y, "Doesn't fit there", platform.ColorBad)
		return
	}
	dst.DrawTextCentered(y, "Arrows move  Tab/1-3 pick  Enter place  P pause  Q quit", platform.ColorDim)
}

// renderOverlays draws pause and game-over boxes.
func (g *Game) renderOverlays(dst *platform.Screen) {
	var lines []string
	switch {
	case g.paused:
		lines = []string{"PAUSED", "", "P to resume"}
	case g.phase == PhaseOver:
		lines = []string{
			"GAME OVER",
			"",
			fmt.Sprintf("Score: %d", g.score),
			fmt.Sprintf("Lines: %d  Best combo: x%d", g.lines, g.maxCombo),
		}
		if g.NewBest() {
			lines = append(lines, "NEW BEST!")
		}
		lines = append(lines, "", "R restart  Q quit")
	default:
		return
	}

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := platform.NewRect(0, 0, g.screenW, g.screenH).Centered(w+4, len(lines)+2)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, platform.ColorBorder)
	for i, l := range lines {
		color := platform.ColorText
		switch {
		case i == 0:
			color = platform.ColorAccent
		case l == "NEW BEST!":
			color = platform.ColorGood
		}
		dst.DrawTextColored(box.X+(box.W-len([]rune(l)))/2, box.Y+1+i, l, color)
	}
}
