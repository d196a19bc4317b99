package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// SVGCanvas streams drawing calls to an SVG document. The viewBox is in CSS
// pixels and the width/height attributes carry the backing-store size. Call
// Close to finish the document.
type SVGCanvas struct {
	w       io.Writer
	svg     *svg.SVG
	vw, vh  int
	started bool
	closed  bool
}

// NewSVGCanvas writes to w.
func NewSVGCanvas(w io.Writer) *SVGCanvas {
	return &SVGCanvas{w: w, svg: svg.New(w)}
}

// Resize starts the document. An SVG stream can only be sized once.
func (c *SVGCanvas) Resize(width, height, pixelRatio float64) error {
	if c.w == nil {
		return fmt.Errorf("no writer")
	}
	if c.started {
		return fmt.Errorf("svg document already started")
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	vw, vh := iround(width), iround(height)
	if vw <= 0 || vh <= 0 {
		return fmt.Errorf("invalid surface size %vx%v", width, height)
	}
	c.svg.Startview(iround(width*pixelRatio), iround(height*pixelRatio), 0, 0, vw, vh)
	c.vw, c.vh = vw, vh
	c.started = true
	return nil
}

func (c *SVGCanvas) Clear(bg Color) {
	c.svg.Rect(0, 0, c.vw, c.vh, fill(bg))
}

func (c *SVGCanvas) Line(x1, y1, x2, y2 float64, stroke Color, width float64) {
	c.svg.Line(iround(x1), iround(y1), iround(x2), iround(y2), strokeStyle(stroke, width))
}

func (c *SVGCanvas) Circle(x, y, r float64, fillColor, stroke Color, width float64, glow Color, glowRadius float64) {
	cx, cy := iround(x), iround(y)
	if glowRadius > 0 && glow.A > 0 {
		for i := glowSteps; i >= 1; i-- {
			halo := r + glowRadius*float64(i)/glowSteps
			c.svg.Circle(cx, cy, iround(halo), fill(glow.WithAlpha(glow.Opacity()*0.35/float64(i))))
		}
	}
	c.svg.Circle(cx, cy, iround(r), fill(fillColor)+";"+strokeStyle(stroke, width))
}

func (c *SVGCanvas) Ring(x, y, r float64, stroke Color, width float64) {
	c.svg.Circle(iround(x), iround(y), iround(r), "fill:none;"+strokeStyle(stroke, width))
}

func (c *SVGCanvas) Text(x, y float64, s string, fillColor Color, size float64, bold bool) {
	style := fmt.Sprintf("%s;font-family:monospace;font-size:%gpx;text-anchor:middle;dominant-baseline:central", fill(fillColor), size)
	if bold {
		style += ";font-weight:bold"
	}
	c.svg.Text(iround(x), iround(y), s, style)
}

// Close ends the document.
func (c *SVGCanvas) Close() error {
	if !c.started {
		return ErrNoSurface
	}
	if c.closed {
		return nil
	}
	c.svg.End()
	c.closed = true
	return nil
}

func fill(c Color) string {
	return fmt.Sprintf("fill:%s;fill-opacity:%.3g", c.Hex(), c.Opacity())
}

func strokeStyle(c Color, width float64) string {
	return fmt.Sprintf("stroke:%s;stroke-opacity:%.3g;stroke-width:%g", c.Hex(), c.Opacity(), width)
}

func iround(v float64) int {
	return int(math.Round(v))
}
