package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Glyphs used by the cell canvas.
const (
	glyphBlank  = ' '
	glyphEdge   = '·'
	glyphStroke = '█'
	glyphGlow   = '░'
	glyphRing   = '•'
)

// minTermAlpha keeps faint colors visible: terminals cannot blend a 20% stroke
// into something the eye can see.
const minTermAlpha = 0.45

type cell struct {
	ch   rune
	fg   Color
	bg   Color
	bold bool
	cont bool // right half of a wide rune
}

type styleKey struct {
	fg, bg Color
	bold   bool
}

// CellCanvas rasterizes onto a grid of terminal cells. Each cell covers
// CellW×CellH CSS pixels and is sampled at its center.
type CellCanvas struct {
	CellW, CellH float64

	renderer *lipgloss.Renderer
	cols     int
	rows     int
	bg       Color
	cells    []cell
	styles   map[styleKey]lipgloss.Style
}

// NewCellCanvas creates a canvas whose cells are cellW×cellH CSS pixels.
func NewCellCanvas(r *lipgloss.Renderer, cellW, cellH float64) *CellCanvas {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &CellCanvas{
		CellW:    cellW,
		CellH:    cellH,
		renderer: r,
		styles:   make(map[styleKey]lipgloss.Style),
	}
}

// Resize allocates cols×rows cells covering width×height CSS pixels. Terminal
// cells have no pixel density, so pixelRatio is ignored.
func (c *CellCanvas) Resize(width, height, _ float64) error {
	if c.CellW <= 0 || c.CellH <= 0 {
		return fmt.Errorf("invalid cell size %vx%v", c.CellW, c.CellH)
	}
	cols, rows := int(width/c.CellW), int(height/c.CellH)
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("surface %vx%v smaller than one cell", width, height)
	}
	if cols != c.cols || rows != c.rows {
		c.cols, c.rows = cols, rows
		c.cells = make([]cell, cols*rows)
	}
	return nil
}

// Size returns the grid dimensions in cells.
func (c *CellCanvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// CellCenter returns the CSS-pixel center of a cell.
func (c *CellCanvas) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * c.CellW, (float64(row) + 0.5) * c.CellH
}

// CellAt returns the cell containing a CSS-pixel point.
func (c *CellCanvas) CellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / c.CellW)), int(math.Floor(y / c.CellH))
}

func (c *CellCanvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

func (c *CellCanvas) visible(col Color) Color {
	if col.Opacity() < minTermAlpha {
		col = col.WithAlpha(minTermAlpha)
	}
	return col.Over(c.bg)
}

func (c *CellCanvas) Clear(bg Color) {
	c.bg = bg.Over(TrueBlack)
	for i := range c.cells {
		c.cells[i] = cell{ch: glyphBlank, fg: c.bg, bg: c.bg}
	}
}

func (c *CellCanvas) Line(x1, y1, x2, y2 float64, stroke Color, _ float64) {
	step := math.Min(c.CellW, c.CellH) / 2
	n := int(math.Ceil(math.Hypot(x2-x1, y2-y1)/step)) + 1
	fg := c.visible(stroke)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		col, row := c.CellAt(x1+(x2-x1)*t, y1+(y2-y1)*t)
		if cl := c.at(col, row); cl != nil && cl.ch == glyphBlank && cl.bg == c.bg {
			cl.ch = glyphEdge
			cl.fg = fg
		}
	}
}

// forCells calls fn for every cell whose center lies within reach of (x, y),
// passing the center distance.
func (c *CellCanvas) forCells(x, y, reach float64, fn func(cl *cell, d float64)) {
	c0, r0 := c.CellAt(x-reach, y-reach)
	c1, r1 := c.CellAt(x+reach, y+reach)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cl := c.at(col, row)
			if cl == nil {
				continue
			}
			cx, cy := c.CellCenter(col, row)
			fn(cl, math.Hypot(cx-x, cy-y))
		}
	}
}

func (c *CellCanvas) Circle(x, y, r float64, fill, stroke Color, _ float64, glow Color, glowRadius float64) {
	band := c.CellW
	bodyBg := fill.Over(c.bg)
	strokeFg := c.visible(stroke)
	haloFg := c.visible(glow)
	reach := r
	if glowRadius > 0 && glow.A > 0 {
		reach += glowRadius / 2
	}
	c.forCells(x, y, reach, func(cl *cell, d float64) {
		switch {
		case d < r-band:
			*cl = cell{ch: glyphBlank, fg: bodyBg, bg: bodyBg}
		case d < r:
			*cl = cell{ch: glyphStroke, fg: strokeFg, bg: c.bg}
		case d < reach && cl.bg == c.bg && cl.ch != glyphStroke:
			cl.ch = glyphGlow
			cl.fg = haloFg
		}
	})
}

func (c *CellCanvas) Ring(x, y, r float64, stroke Color, _ float64) {
	fg := c.visible(stroke)
	half := math.Max(c.CellW, c.CellH) / 2
	c.forCells(x, y, r+half, func(cl *cell, d float64) {
		if math.Abs(d-r) <= half && cl.bg == c.bg && cl.ch != glyphStroke {
			cl.ch = glyphRing
			cl.fg = fg
		}
	})
}

func (c *CellCanvas) Text(x, y float64, s string, fill Color, _ float64, bold bool) {
	if c.cols == 0 {
		return
	}
	s = runewidth.Truncate(s, c.cols, "")
	w := runewidth.StringWidth(s)
	col, row := c.CellAt(x, y)
	col -= w / 2
	if col < 0 {
		col = 0
	}
	if col+w > c.cols {
		col = c.cols - w
	}
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		cl := c.at(col, row)
		if cl == nil {
			return
		}
		cl.ch = r
		cl.fg = fill.Over(cl.bg)
		cl.bold = bold
		cl.cont = false
		if rw == 2 {
			if next := c.at(col+1, row); next != nil {
				next.cont = true
				next.ch = glyphBlank
				next.bg = cl.bg
			}
		}
		col += rw
	}
}

func (c *CellCanvas) style(k styleKey) lipgloss.Style {
	if st, ok := c.styles[k]; ok {
		return st
	}
	st := c.renderer.NewStyle().
		Foreground(lipgloss.Color(k.fg.Hex())).
		Background(lipgloss.Color(k.bg.Hex())).
		Bold(k.bold)
	c.styles[k] = st
	return st
}

// String renders the grid with colors, one line per row.
func (c *CellCanvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var key styleKey
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(c.style(key).Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			if cl.cont {
				continue
			}
			k := styleKey{fg: cl.fg, bg: cl.bg, bold: cl.bold}
			if k != key {
				flush()
				key = k
			}
			run.WriteRune(cl.ch)
		}
		flush()
	}
	return b.String()
}

// Plain renders the grid without any styling.
func (c *CellCanvas) Plain() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			if cl.cont {
				continue
			}
			b.WriteRune(cl.ch)
		}
	}
	return b.String()
}
