package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/arena/internal/core/systems/physics"
)

// Glyph is how a texture shows up on a terminal cell.
type Glyph struct {
	Rune  rune
	Style tcell.Style
}

type TerminalConfig struct {
	// CellWidth and CellHeight are world units per terminal cell.
	CellWidth  float64
	CellHeight float64
	// Glyphs maps texture ids to glyphs; unknown textures use '#' in the tint color.
	Glyphs map[string]Glyph
}

func DefaultTerminalConfig() TerminalConfig {
	return TerminalConfig{CellWidth: 8, CellHeight: 16, Glyphs: map[string]Glyph{}}
}

// Terminal draws onto a tcell screen.
type Terminal struct {
	screen tcell.Screen
	cfg    TerminalConfig
}

var (
	_ Renderer  = (*Terminal)(nil)
	_ Presenter = (*Terminal)(nil)
)

func NewTerminal(screen tcell.Screen, cfg TerminalConfig) *Terminal {
	def := DefaultTerminalConfig()
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = def.CellWidth
	}
	if cfg.CellHeight <= 0 {
		cfg.CellHeight = def.CellHeight
	}
	if cfg.Glyphs == nil {
		cfg.Glyphs = def.Glyphs
	}
	return &Terminal{screen: screen, cfg: cfg}
}

func (t *Terminal) Begin()   { t.screen.Clear() }
func (t *Terminal) Present() { t.screen.Show() }

// Cell maps a world position to the terminal cell containing it.
func (t *Terminal) Cell(p physics.Vec2) (int, int) {
	return int(math.Floor(p.X / t.cfg.CellWidth)), int(math.Floor(p.Y / t.cfg.CellHeight))
}

func (t *Terminal) span(r physics.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = t.Cell(r.Position())
	x1 = int(math.Ceil(r.Right()/t.cfg.CellWidth)) - 1
	y1 = int(math.Ceil(r.Bottom()/t.cfg.CellHeight)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return x0, y0, x1, y1
}

func (t *Terminal) DrawSprite(d SpriteDraw) {
	g, ok := t.cfg.Glyphs[d.Texture]
	if !ok {
		g = Glyph{Rune: '#', Style: tcell.StyleDefault.Foreground(toTcell(d.Tint))}
	}
	x0, y0, x1, y1 := t.span(physics.Rect{X: d.Position.X, Y: d.Position.Y, W: d.Size.X, H: d.Size.Y})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t.screen.SetContent(x, y, g.Rune, nil, g.Style)
		}
	}
}

func (t *Terminal) DrawMarker(at physics.Vec2, c color.RGBA) {
	x, y := t.Cell(at)
	t.screen.SetContent(x, y, '+', nil, tcell.StyleDefault.Foreground(toTcell(c)))
}

func (t *Terminal) DrawRectLines(r physics.Rect, _ float64, c color.RGBA) {
	style := tcell.StyleDefault.Foreground(toTcell(c))
	x0, y0, x1, y1 := t.span(r)
	if x0 == x1 && y0 == y1 {
		t.screen.SetContent(x0, y0, '□', nil, style)
		return
	}
	for x := x0 + 1; x < x1; x++ {
		t.screen.SetContent(x, y0, '─', nil, style)
		t.screen.SetContent(x, y1, '─', nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		t.screen.SetContent(x0, y, '│', nil, style)
		t.screen.SetContent(x1, y, '│', nil, style)
	}
	t.screen.SetContent(x0, y0, '┌', nil, style)
	t.screen.SetContent(x1, y0, '┐', nil, style)
	t.screen.SetContent(x0, y1, '└', nil, style)
	t.screen.SetContent(x1, y1, '┘', nil, style)
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
