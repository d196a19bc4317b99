package render

import (
	"fmt"

	"github.com/vanderheijden86/kairo/pkg/circuit"
	"github.com/vanderheijden86/kairo/pkg/interact"
)

// OpKind names a display-list instruction.
type OpKind string

const (
	OpClear  OpKind = "clear"
	OpLine   OpKind = "line"
	OpCircle OpKind = "circle"
	OpRing   OpKind = "ring"
	OpText   OpKind = "text"
)

// Op is one drawing instruction in surface (CSS pixel) coordinates.
type Op struct {
	Kind OpKind `json:"op"`
	Ref  string `json:"ref,omitempty"`

	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`
	R  float64 `json:"r,omitempty"`

	Fill   Color   `json:"fill"`
	Stroke Color   `json:"stroke"`
	Width  float64 `json:"width,omitempty"`

	Glow       Color   `json:"glow"`
	GlowRadius float64 `json:"glow_radius,omitempty"`

	Text string  `json:"text,omitempty"`
	Size float64 `json:"size,omitempty"`
	Bold bool    `json:"bold,omitempty"`
}

// Scene is a complete frame: the surface it targets plus the ordered ops.
type Scene struct {
	Surface interact.Surface `json:"surface"`
	Ops     []Op             `json:"ops"`
}

// BuildScene lays out one frame. It is a pure function of its inputs: edges
// first in list order (dangling edges skipped), then each node's circle,
// optional focus ring and label in node order.
func BuildScene(g *circuit.Graph, s interact.State, p Palette) Scene {
	sc := Scene{Surface: s.Surface}
	sc.Ops = append(sc.Ops, Op{Kind: OpClear, Fill: p.Background})
	if g == nil {
		return sc
	}
	c := s.Surface.Center()

	for _, e := range g.Edges() {
		from, to, ok := g.Endpoints(e)
		if !ok {
			continue
		}
		sc.Ops = append(sc.Ops, Op{
			Kind:   OpLine,
			Ref:    fmt.Sprintf("edge:%d-%d", e.From, e.To),
			X:      c.X + from.X,
			Y:      c.Y + from.Y,
			X2:     c.X + to.X,
			Y2:     c.Y + to.Y,
			Stroke: p.Edge,
			Width:  p.EdgeWidth,
		})
	}

	for _, n := range g.Nodes() {
		hovered := s.Hover.Is(n.ID)
		focused := s.Focus.Is(n.ID)
		x, y := c.X+n.X, c.Y+n.Y
		ref := fmt.Sprintf("node:%d", n.ID)

		circle := Op{Kind: OpCircle, Ref: ref, X: x, Y: y, R: n.Radius, Width: p.StrokeWidth}
		if hovered {
			circle.Fill = p.HoverFill
			circle.Stroke = p.HoverStroke
			circle.Glow = p.Glow
			circle.GlowRadius = p.GlowRadius
		} else {
			circle.Fill = p.NodeFill
			circle.Stroke = p.NodeStroke
		}
		sc.Ops = append(sc.Ops, circle)

		if focused && !hovered {
			sc.Ops = append(sc.Ops, Op{
				Kind:   OpRing,
				Ref:    ref,
				X:      x,
				Y:      y,
				R:      n.Radius + p.FocusRingGap,
				Stroke: p.FocusRing,
				Width:  p.FocusRingWidth,
			})
		}

		label := Op{Kind: OpText, Ref: ref, X: x, Y: y, Text: n.Label, Fill: p.Label, Size: p.LabelSize}
		if hovered || focused {
			label.Fill = p.LabelActive
			label.Bold = true
		}
		if n.ID == g.CoreID() {
			label.Size = p.CoreSize
		}
		sc.Ops = append(sc.Ops, label)
	}
	return sc
}
