package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vanderheijden86/kairo/pkg/debug"
	"github.com/vanderheijden86/kairo/pkg/metrics"
)

// ErrNoSurface means the drawing context could not be acquired.
var ErrNoSurface = errors.New("drawing surface unavailable")

// Canvas is a 2D drawing surface. Coordinates are CSS pixels; the canvas
// applies the pixel ratio itself.
type Canvas interface {
	// Resize sizes the backing store to width×height scaled by pixelRatio.
	Resize(width, height, pixelRatio float64) error
	Clear(bg Color)
	Line(x1, y1, x2, y2 float64, stroke Color, width float64)
	Circle(x, y, r float64, fill, stroke Color, width float64, glow Color, glowRadius float64)
	Ring(x, y, r float64, stroke Color, width float64)
	Text(x, y float64, s string, fill Color, size float64, bold bool)
}

// Paint resizes c to the scene's surface and replays every op.
func Paint(c Canvas, sc Scene) error {
	if c == nil {
		return ErrNoSurface
	}
	surf := sc.Surface
	if err := c.Resize(surf.Width, surf.Height, surf.Ratio()); err != nil {
		return fmt.Errorf("%w: %v", ErrNoSurface, err)
	}
	for _, op := range sc.Ops {
		switch op.Kind {
		case OpClear:
			c.Clear(op.Fill)
		case OpLine:
			c.Line(op.X, op.Y, op.X2, op.Y2, op.Stroke, op.Width)
		case OpCircle:
			c.Circle(op.X, op.Y, op.R, op.Fill, op.Stroke, op.Width, op.Glow, op.GlowRadius)
		case OpRing:
			c.Ring(op.X, op.Y, op.R, op.Stroke, op.Width)
		case OpText:
			c.Text(op.X, op.Y, op.Text, op.Fill, op.Size, op.Bold)
		}
	}
	return nil
}

// Renderer paints scenes onto one canvas for the lifetime of a mount. The
// first failure to acquire the surface stops it: later Draw calls do nothing
// and return the original error.
type Renderer struct {
	mu     sync.Mutex
	canvas Canvas
	err    error
	frames int
}

// NewRenderer binds a renderer to c.
func NewRenderer(c Canvas) *Renderer {
	return &Renderer{canvas: c}
}

// Draw paints sc, unless the renderer has already failed.
func (r *Renderer) Draw(sc Scene) error {
	defer metrics.Timer(metrics.FrameDraw)()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if err := Paint(r.canvas, sc); err != nil {
		debug.Log("render: stopping after surface failure: %v", err)
		r.err = err
		return err
	}
	r.frames++
	return nil
}

// Err returns the error that stopped the renderer, if any.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Frames returns the number of frames painted successfully.
func (r *Renderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}
