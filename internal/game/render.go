package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/isletrap/internal/core"
	"github.com/vovakirdan/isletrap/internal/engine"
)

// shore glyphs, indexed by terrain, for the left and right half of a cell.
var shore = map[engine.Terrain][2]rune{
	engine.Land:               {' ', ' '},
	engine.LandBottom:         {'▁', '▁'},
	engine.LandTop:            {'▔', '▔'},
	engine.LandLeft:           {'▏', ' '},
	engine.LandRight:          {' ', '▕'},
	engine.LandUpLeft:         {'╭', '▔'},
	engine.LandUpRight:        {'▔', '╮'},
	engine.LandBottomLeft:     {'╰', '▁'},
	engine.LandBottomRight:    {'▁', '╯'},
	engine.LandTopBottom:      {'═', '═'},
	engine.LandTopBottomLeft:  {'╞', '═'},
	engine.LandTopBottomRight: {'═', '╡'},
}

// Render draws the board, HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.ctrl == nil {
		return
	}
	if g.startErr != nil {
		dst.DrawTextCentered(dst.Height()/2, "Cannot start: "+g.startErr.Error(), core.ColorBrightRed)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	board := g.boardRect(dst)
	g.renderHUD(dst, board)
	dst.DrawBox(board, core.ColorShallow)
	inner := board.Inset(1)
	g.renderTerrain(dst, inner)
	g.renderObjects(dst, inner)
	dst.Darken(inner, g.ctrl.Opacity())
	g.renderOverlay(dst, board)
}

// boardRect returns the bordered board area, centred below the HUD line.
func (g *Game) boardRect(dst *core.Screen) core.Rect {
	w, h := g.minSize()
	area := core.CenterIn(dst.Bounds(), w, h)
	return core.NewRect(area.X, area.Y+1, w, h-1)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.minSize()
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h), core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, board core.Rect) {
	y := board.Y - 1
	stage := fmt.Sprintf("STAGE %d", g.ctrl.Level())
	dst.DrawTextColored(board.X, y, stage, core.ColorBrightWhite)

	lives := fmt.Sprintf("%d lives", g.ctrl.Lives())
	if g.ctrl.Lives() == 1 {
		lives = "1 life"
	}
	dst.DrawTextColored(board.Right()-len(lives), y, lives, core.ColorBrightRed)

	left := fmt.Sprintf("@ %d", g.ctrl.Remaining())
	x := board.X + (board.W-len(left))/2
	dst.DrawTextColored(x, y, left, core.ColorMagenta)
}

// cellX returns the screen column of a grid column.
func (g *Game) cellX(inner core.Rect, col int) int {
	return inner.X + col*g.opts.CellWidth
}

func (g *Game) renderTerrain(dst *core.Screen, inner core.Rect) {
	terrain := g.ctrl.Terrain()
	for r := range engine.Rows {
		for c := range engine.Cols {
			x := g.cellX(inner, c)
			y := inner.Y + r
			t := terrain[r][c]
			if !t.Traversable() {
				g.drawWater(dst, x, y, r, c)
				continue
			}
			glyph := shore[t]
			for i := range g.opts.CellWidth {
				ch := glyph[i]
				if g.opts.CellWidth == 1 && glyph[0] == ' ' {
					ch = glyph[1]
				}
				dst.SetCell(x+i, y, core.Cell{Rune: ch, Color: core.ColorShallow, Bg: core.ColorSand})
			}
		}
	}
}

// drawWater draws a water cell with a slow shimmer.
func (g *Game) drawWater(dst *core.Screen, x, y, r, c int) {
	phase := (uint64(r*7+c*3) + uint64(g.seed) + g.tick/20) % 6
	ch := ' '
	if phase == 0 {
		ch = '~'
	}
	for i := range g.opts.CellWidth {
		dst.SetCell(x+i, y, core.Cell{Rune: ch, Color: core.ColorShallow, Bg: core.ColorDeepBlue})
		ch = ' '
	}
}

func (g *Game) renderObjects(dst *core.Screen, inner core.Rect) {
	objects := g.ctrl.Objects()
	if g.motion.active {
		objects = g.view
	}
	for r := range engine.Rows {
		for c := range engine.Cols {
			o := objects[r][c]
			if o == engine.Empty {
				continue
			}
			g.drawObject(dst, g.cellX(inner, c), inner.Y+r, o)
		}
	}

	if !g.motion.active {
		return
	}
	p := g.motion.progress()
	for _, s := range g.motion.sprites {
		row, col := s.position(p)
		x := inner.X + int(math.Round(col*float64(g.opts.CellWidth)))
		y := inner.Y + int(math.Round(row))
		g.drawObject(dst, x, y, s.kind)
	}
}

// drawObject draws an object glyph over whatever background is there.
func (g *Game) drawObject(dst *core.Screen, x, y int, o engine.Object) {
	var ch rune
	var fg core.Color
	switch o {
	case engine.Tree:
		ch, fg = '♣', core.ColorForest
	case engine.Trap:
		ch, fg = '#', core.ColorOrange
	case engine.Creature:
		ch, fg = '@', core.ColorMagenta
	case engine.Player:
		ch, fg = g.playerGlyph(), core.ColorBrightWhite
		if !g.ctrl.Player().Alive {
			fg = core.ColorBrightRed
		}
	default:
		return
	}
	bg := dst.GetCell(x, y).Bg
	dst.SetCell(x, y, core.Cell{Rune: ch, Color: fg, Bg: bg})
	for i := 1; i < g.opts.CellWidth; i++ {
		bg := dst.GetCell(x+i, y).Bg
		dst.SetCell(x+i, y, core.Cell{Rune: ' ', Bg: bg})
	}
}

// playerGlyph points the player in the direction of the last move.
func (g *Game) playerGlyph() rune {
	if !g.ctrl.Player().Alive {
		return 'X'
	}
	switch g.facing {
	case engine.DirLeft:
		return '◀'
	case engine.DirRight:
		return '▶'
	case engine.DirUp:
		return '▲'
	default:
		return '▼'
	}
}

func (g *Game) renderOverlay(dst *core.Screen, board core.Rect) {
	var title, hint string
	var fg core.Color
	switch {
	case g.paused:
		title, hint, fg = "PAUSED", "P to resume", core.ColorBrightYellow
	case g.ctrl.IsGameOver() && g.holdLeft <= 0 && !g.motion.active:
		title, hint, fg = "GAME OVER", fmt.Sprintf("%d captured", g.ctrl.Captures()), core.ColorBrightRed
	case g.ctrl.IsWon() && g.holdLeft <= 0:
		title, hint, fg = "ALL ISLES CLEARED", fmt.Sprintf("%d captured", g.ctrl.Captures()), core.ColorBrightGreen
	default:
		return
	}

	w := max(len(title), len([]rune(hint))) + 4
	box := core.CenterIn(board, w, 4)
	dst.DrawRect(box, core.Cell{Rune: ' ', Bg: core.ColorBlack})
	dst.DrawBox(box, fg)
	mid := box.X + (box.W-len(title))/2
	dst.DrawTextColored(mid, box.Y+1, title, fg)
	mid = box.X + (box.W-len([]rune(hint)))/2
	dst.DrawTextColored(mid, box.Y+2, hint, core.ColorGray)
}
