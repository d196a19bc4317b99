package render

import (
	"fmt"
	"image"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

// glowSteps is how many translucent halos approximate a blur glow.
const glowSteps = 5

// basicfont glyphs are 13px tall; labels scale from there.
const faceHeight = 13.0

// RasterCanvas draws with gg into an RGBA image.
type RasterCanvas struct {
	dc *gg.Context
}

// NewRasterCanvas returns a canvas with no backing store; Resize allocates it.
func NewRasterCanvas() *RasterCanvas {
	return &RasterCanvas{}
}

// Resize allocates a backing store of width×height×pixelRatio device pixels
// and scales drawing so callers keep using CSS pixels.
func (c *RasterCanvas) Resize(width, height, pixelRatio float64) error {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	w, h := int(width*pixelRatio+0.5), int(height*pixelRatio+0.5)
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid surface size %vx%v", width, height)
	}
	if c.dc == nil || c.dc.Width() != w || c.dc.Height() != h {
		c.dc = gg.NewContext(w, h)
	}
	c.dc.Identity()
	c.dc.Scale(pixelRatio, pixelRatio)
	c.dc.SetFontFace(basicfont.Face7x13)
	return nil
}

func (c *RasterCanvas) Clear(bg Color) {
	c.dc.SetColor(bg)
	c.dc.Clear()
}

func (c *RasterCanvas) Line(x1, y1, x2, y2 float64, stroke Color, width float64) {
	c.dc.SetColor(stroke)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

func (c *RasterCanvas) Circle(x, y, r float64, fill, stroke Color, width float64, glow Color, glowRadius float64) {
	if glowRadius > 0 && glow.A > 0 {
		for i := glowSteps; i >= 1; i-- {
			halo := r + glowRadius*float64(i)/glowSteps
			c.dc.SetColor(glow.WithAlpha(glow.Opacity() * 0.35 / float64(i)))
			c.dc.DrawCircle(x, y, halo)
			c.dc.Fill()
		}
	}
	c.dc.DrawCircle(x, y, r)
	c.dc.SetColor(fill)
	c.dc.FillPreserve()
	c.dc.SetColor(stroke)
	c.dc.SetLineWidth(width)
	c.dc.Stroke()
}

func (c *RasterCanvas) Ring(x, y, r float64, stroke Color, width float64) {
	c.dc.DrawCircle(x, y, r)
	c.dc.SetColor(stroke)
	c.dc.SetLineWidth(width)
	c.dc.Stroke()
}

func (c *RasterCanvas) Text(x, y float64, s string, fill Color, size float64, bold bool) {
	scale := size / faceHeight
	c.dc.Push()
	c.dc.ScaleAbout(scale, scale, x, y)
	c.dc.SetColor(fill)
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.35)
	if bold {
		c.dc.DrawStringAnchored(s, x+0.6, y, 0.5, 0.35)
	}
	c.dc.Pop()
}

// Image returns the rendered image, or nil before the first Resize.
func (c *RasterCanvas) Image() image.Image {
	if c.dc == nil {
		return nil
	}
	return c.dc.Image()
}

// EncodePNG writes the current image as PNG.
func (c *RasterCanvas) EncodePNG(w io.Writer) error {
	if c.dc == nil {
		return ErrNoSurface
	}
	return c.dc.EncodePNG(w)
}
