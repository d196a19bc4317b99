package interact

import (
	"github.com/vanderheijden86/kairo/pkg/circuit"

	"gonum.org/v1/gonum/spatial/r2"
)

// Effects are the outputs of a transition besides the new state.
type Effects struct {
	// Activate is set when the message chose a node.
	Activate *Activation
	// PreventDefault asks the input source to suppress its default behavior
	// (scrolling on arrows, clicking on space).
	PreventDefault bool
}

// Update applies msg to s and returns the next state. It never blocks and has
// no side effects; g may be nil, in which case nothing can be hit or focused.
func Update(g *circuit.Graph, s State, msg Msg) (State, Effects) {
	var fx Effects

	switch msg := msg.(type) {
	case PointerMove:
		s = pointAt(g, s, msg.X, msg.Y)

	case PointerDown:
		s = pointAt(g, s, msg.X, msg.Y)

	case PointerUp:
		if id, ok := s.Hover.Get(); ok {
			s, fx.Activate = activate(g, s, id)
		}

	case PointerLeave:
		s.HasPointer = false
		s.Pointer = r2.Vec{}
		s.Hover = circuit.None

	case KeyDown:
		switch {
		case msg.Key == KeyEnter || msg.Key == KeySpace:
			fx.PreventDefault = true
			if id, ok := s.Focus.Get(); ok {
				s, fx.Activate = activate(g, s, id)
			}
		case msg.Key.IsArrow():
			fx.PreventDefault = true
			dir, _ := circuit.DirectionForKey(string(msg.Key))
			s.Focus = circuit.NextFocus(s.Focus, dir, interactiveIDs(g))
		}

	case FocusGained:
		if !s.Focus.IsSet() {
			if ids := interactiveIDs(g); len(ids) > 0 {
				s.Focus = circuit.Some(ids[0])
			}
		}

	case FocusLost:
		s.Focus = circuit.None

	case Resized:
		next := Surface{Width: msg.Width, Height: msg.Height, PixelRatio: msg.PixelRatio}
		if next == s.Surface {
			break
		}
		s.Surface = next
		if s.HasPointer {
			s.Hover = hitAt(g, s.Surface, s.Pointer)
		}

	case Dismissed:
		s.Selected = nil
	}

	return s, fx
}

func pointAt(g *circuit.Graph, s State, x, y float64) State {
	s.Pointer = r2.Vec{X: x, Y: y}
	s.HasPointer = true
	s.Hover = hitAt(g, s.Surface, s.Pointer)
	return s
}

func hitAt(g *circuit.Graph, surf Surface, p r2.Vec) circuit.OptionalID {
	if g == nil {
		return circuit.None
	}
	return g.HitTest(surf.ToGraph(p.X, p.Y))
}

func activate(g *circuit.Graph, s State, id circuit.NodeID) (State, *Activation) {
	if g == nil {
		return s, nil
	}
	n, ok := g.Node(id)
	if !ok {
		return s, nil
	}
	s.Selected = &n
	return s, activationFor(n)
}

func interactiveIDs(g *circuit.Graph) []circuit.NodeID {
	if g == nil {
		return nil
	}
	return g.InteractiveIDs()
}
