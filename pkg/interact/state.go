// Package interact turns raw input events into interaction-state transitions
// for the circuit view.
//
// Every input event is a message. Update is the single, pure transition
// function; Dispatcher owns the current State and fans activations out to
// subscribers. The render side only ever reads State.
package interact

import (
	"github.com/vanderheijden86/kairo/pkg/circuit"

	"gonum.org/v1/gonum/spatial/r2"
)

// Surface is the drawing surface geometry in CSS pixels.
type Surface struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PixelRatio float64 `json:"pixel_ratio"`
}

// Center is the origin that node offsets are relative to.
func (s Surface) Center() r2.Vec {
	return r2.Vec{X: s.Width / 2, Y: s.Height / 2}
}

// Ratio returns the pixel ratio, treating unset or invalid values as 1.
func (s Surface) Ratio() float64 {
	if s.PixelRatio > 0 {
		return s.PixelRatio
	}
	return 1
}

// BackingSize is the device-pixel size of the backing store.
func (s Surface) BackingSize() (w, h int) {
	r := s.Ratio()
	return int(s.Width*r + 0.5), int(s.Height*r + 0.5)
}

// ToGraph converts a surface point to center-relative graph coordinates.
func (s Surface) ToGraph(x, y float64) r2.Vec {
	return r2.Sub(r2.Vec{X: x, Y: y}, s.Center())
}

// State is everything the render loop needs besides the graph.
type State struct {
	Surface Surface

	// Pointer is the last known pointer position in surface coordinates.
	Pointer    r2.Vec
	HasPointer bool

	Hover circuit.OptionalID
	Focus circuit.OptionalID

	// Selected is the node whose detail view is open.
	Selected *circuit.Node
}

// Activation is emitted when a node is chosen by click, tap, Enter or Space.
type Activation struct {
	ID     circuit.NodeID `json:"id"`
	Label  string         `json:"label"`
	Detail string         `json:"detail"`
}

func activationFor(n circuit.Node) *Activation {
	return &Activation{ID: n.ID, Label: n.Label, Detail: n.Detail}
}
