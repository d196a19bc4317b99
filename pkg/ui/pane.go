package ui

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/kairo/pkg/circuit"
	"github.com/vanderheijden86/kairo/pkg/interact"
	"github.com/vanderheijden86/kairo/pkg/metrics"
	"github.com/vanderheijden86/kairo/pkg/render"
)

// Cell geometry bounds in CSS pixels. Cells are twice as tall as wide.
const (
	minCellWidth = 3.0
	cellAspect   = 2.0
	paneMargin   = 12.0 // room for glow and focus ring around the outermost node
)

// circuitPane owns the terminal drawing surface of the circuit tab.
type circuitPane struct {
	canvas   *render.CellCanvas
	renderer *render.Renderer
	loop     *render.Loop

	top        int // first terminal row of the pane
	cols, rows int
	frame      string
}

func newCircuitPane(r *lipgloss.Renderer, loop *render.Loop) *circuitPane {
	c := render.NewCellCanvas(r, minCellWidth, minCellWidth*cellAspect)
	return &circuitPane{
		canvas:   c,
		renderer: render.NewRenderer(c),
		loop:     loop,
	}
}

// fitCellWidth picks the smallest cell width (largest drawing) at which the
// whole graph fits into cols×rows cells.
func fitCellWidth(g *circuit.Graph, cols, rows int) float64 {
	if cols <= 0 || rows <= 0 {
		return minCellWidth
	}
	var ex, ey float64
	if g != nil {
		for _, n := range g.Nodes() {
			ex = math.Max(ex, math.Abs(n.X)+n.Radius)
			ey = math.Max(ey, math.Abs(n.Y)+n.Radius)
		}
	}
	ex += paneMargin
	ey += paneMargin
	w := math.Max(2*ex/float64(cols), 2*ey/(float64(rows)*cellAspect))
	return math.Max(minCellWidth, math.Ceil(w))
}

// layout sizes the pane and returns the surface it covers.
func (p *circuitPane) layout(g *circuit.Graph, top, cols, rows int) interact.Surface {
	p.top, p.cols, p.rows = top, max(cols, 0), max(rows, 0)
	w := fitCellWidth(g, p.cols, p.rows)
	p.canvas.CellW, p.canvas.CellH = w, w*cellAspect
	p.loop.Invalidate()
	return interact.Surface{
		Width:      float64(p.cols) * p.canvas.CellW,
		Height:     float64(p.rows) * p.canvas.CellH,
		PixelRatio: 1,
	}
}

// pointer maps a terminal cell to the CSS-pixel center of that cell. ok is
// false outside the pane.
func (p *circuitPane) pointer(x, y int) (px, py float64, ok bool) {
	row := y - p.top
	if x < 0 || row < 0 || x >= p.cols || row >= p.rows {
		return 0, 0, false
	}
	px, py = p.canvas.CellCenter(x, row)
	return px, py, true
}

// step redraws the frame if the loop says it is due.
func (p *circuitPane) step(g *circuit.Graph, s interact.State, pal render.Palette) error {
	if p.cols <= 0 || p.rows <= 0 {
		return nil
	}
	_, err := p.loop.Step(func() error {
		done := metrics.Timer(metrics.SceneBuild)
		sc := render.BuildScene(g, s, pal)
		done()
		if err := p.renderer.Draw(sc); err != nil {
			return err
		}
		p.frame = p.canvas.String()
		return nil
	})
	return err
}

func (p *circuitPane) broken() bool {
	return p.renderer.Err() != nil
}
