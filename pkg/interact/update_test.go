package interact

import (
	"testing"

	"github.com/vanderheijden86/kairo/pkg/circuit"
)

// surface800 puts the center at (400, 300).
var surface800 = Resized{Width: 800, Height: 600, PixelRatio: 1}

func newState(t *testing.T, g *circuit.Graph) State {
	t.Helper()
	s, _ := Update(g, State{}, surface800)
	return s
}

func TestUpdate_PointerMoveSetsHover(t *testing.T) {
	g := circuit.DefaultGraph()
	s := newState(t, g)

	s, _ = Update(g, s, PointerMove{X: 400, Y: 300})
	if !s.Hover.Is(0) {
		t.Fatalf("expected hover on core at surface center, got %v", s.Hover)
	}
	s, _ = Update(g, s, PointerMove{X: 400, Y: 150})
	if !s.Hover.Is(1) {
		t.Fatalf("expected hover on node 1, got %v", s.Hover)
	}
	s, _ = Update(g, s, PointerMove{X: 10, Y: 10})
	if s.Hover.IsSet() {
		t.Fatalf("expected no hover in the corner, got %v", s.Hover)
	}
}

func TestUpdate_ClickActivatesHovered(t *testing.T) {
	g := circuit.DefaultGraph()
	s := newState(t, g)

	s, _ = Update(g, s, PointerMove{X: 400, Y: 150})
	s, fx := Update(g, s, PointerUp{})
	if fx.Activate == nil {
		t.Fatal("expected activation")
	}
	if fx.Activate.ID != 1 || fx.Activate.Label != "React" || fx.Activate.Detail == "" {
		t.Errorf("unexpected activation payload: %+v", fx.Activate)
	}
	if s.Selected == nil || s.Selected.ID != 1 {
		t.Errorf("expected node 1 selected, got %+v", s.Selected)
	}

	s, _ = Update(g, s, Dismissed{})
	if s.Selected != nil {
		t.Errorf("expected detail view dismissed")
	}
}

// Moving onto a node and releasing away from every node must not activate.
func TestUpdate_ReleaseAwayDoesNotActivate(t *testing.T) {
	g := circuit.DefaultGraph()
	s := newState(t, g)

	s, _ = Update(g, s, PointerMove{X: 400, Y: 150})
	s, _ = Update(g, s, PointerMove{X: 5, Y: 5})
	s, fx := Update(g, s, PointerUp{})
	if fx.Activate != nil {
		t.Fatalf("unexpected activation: %+v", fx.Activate)
	}
	if s.Selected != nil {
		t.Fatalf("unexpected selection: %+v", s.Selected)
	}
}

func TestUpdate_TouchTapActivates(t *testing.T) {
	g := circuit.DefaultGraph()
	s := newState(t, g)

	s, _ = Update(g, s, PointerDown{X: 530, Y: 375})
	_, fx := Update(g, s, PointerUp{})
	if fx.Activate == nil || fx.Activate.ID != 3 {
		t.Fatalf("expected node 3 activation, got %+v", fx.Activate)
	}
}

func TestUpdate_PointerLeaveClearsHover(t *testing.T) {
	g := circuit.DefaultGraph()
	s := newState(t, g)
	s, _ = Update(g, s, PointerMove{X: 400, Y: 300})
	s, _ = Update(g, s, PointerLeave{})
	if s.Hover.IsSet() || s.HasPointer {
		t.Fatalf("expected hover and pointer cleared, got %v %v", s.Hover, s.HasPointer)
	}
	if _, fx := Update(g, s, PointerUp{}); fx.Activate != nil {
		t.Fatal("release after leave must not activate")
	}
}

func TestUpdate_EnterWithoutFocusDoesNothing(t *testing.T) {
	g := circuit.DefaultGraph()
	s := newState(t, g)
	for _, k := range []Key{KeyEnter, KeySpace} {
		next, fx := Update(g, s, KeyDown{Key: k})
		if fx.Activate != nil {
			t.Errorf("%s without focus activated %+v", k, fx.Activate)
		}
		if !fx.PreventDefault {
			t.Errorf("%s should suppress the default action", k)
		}
		if next.Selected != nil {
			t.Errorf("%s without focus selected a node", k)
		}
	}
}

func TestUpdate_KeyboardNavigationAndActivation(t *testing.T) {
	g := circuit.DefaultGraph()
	s := newState(t, g)

	s, _ = Update(g, s, FocusGained{})
	if !s.Focus.Is(1) {
		t.Fatalf("focus gained should land on first interactive node, got %v", s.Focus)
	}

	s, fx := Update(g, s, KeyDown{Key: KeyArrowRight})
	if !s.Focus.Is(2) || !fx.PreventDefault {
		t.Fatalf("right: focus %v prevent %v", s.Focus, fx.PreventDefault)
	}
	s, _ = Update(g, s, KeyDown{Key: KeyArrowDown})
	if !s.Focus.Is(3) {
		t.Fatalf("down: focus %v", s.Focus)
	}
	s, _ = Update(g, s, KeyDown{Key: KeyArrowUp})
	s, _ = Update(g, s, KeyDown{Key: KeyArrowLeft})
	s, _ = Update(g, s, KeyDown{Key: KeyArrowLeft})
	if !s.Focus.Is(6) {
		t.Fatalf("expected wrap to 6, got %v", s.Focus)
	}

	s, fx = Update(g, s, KeyDown{Key: KeySpace})
	if fx.Activate == nil || fx.Activate.ID != 6 {
		t.Fatalf("space should activate focused node 6, got %+v", fx.Activate)
	}
	if s.Selected == nil || s.Selected.Label != "AWS" {
		t.Fatalf("expected AWS selected, got %+v", s.Selected)
	}

	// Focus gained again keeps the existing focus.
	s, _ = Update(g, s, FocusGained{})
	if !s.Focus.Is(6) {
		t.Fatalf("refocus moved focus to %v", s.Focus)
	}

	s, _ = Update(g, s, FocusLost{})
	if s.Focus.IsSet() {
		t.Fatalf("blur should clear focus, got %v", s.Focus)
	}
}

func TestUpdate_OtherKeysIgnored(t *testing.T) {
	g := circuit.DefaultGraph()
	s := newState(t, g)
	s, _ = Update(g, s, FocusGained{})
	next, fx := Update(g, s, KeyDown{Key: "q"})
	if fx.PreventDefault || fx.Activate != nil || next.Focus != s.Focus {
		t.Fatalf("unrelated key changed something: %+v %+v", fx, next)
	}
}

func TestUpdate_EmptyInteractiveSet(t *testing.T) {
	g, err := circuit.NewGraph([]circuit.Node{{ID: 0, Radius: 40}}, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := newState(t, g)
	s, _ = Update(g, s, FocusGained{})
	s, _ = Update(g, s, KeyDown{Key: KeyArrowRight})
	s, _ = Update(g, s, KeyDown{Key: KeyArrowLeft})
	if s.Focus.IsSet() {
		t.Fatalf("expected focus to stay empty, got %v", s.Focus)
	}
	if _, fx := Update(g, s, KeyDown{Key: KeyEnter}); fx.Activate != nil {
		t.Fatalf("expected no activation, got %+v", fx.Activate)
	}
}

func TestUpdate_NilGraph(t *testing.T) {
	s, _ := Update(nil, State{}, surface800)
	s, _ = Update(nil, s, PointerMove{X: 400, Y: 300})
	s, _ = Update(nil, s, FocusGained{})
	s, _ = Update(nil, s, KeyDown{Key: KeyArrowDown})
	_, fx := Update(nil, s, PointerUp{})
	if s.Hover.IsSet() || s.Focus.IsSet() || fx.Activate != nil {
		t.Fatalf("nil graph produced interaction: %+v %+v", s, fx)
	}
}

func TestUpdate_ResizeMovesCenter(t *testing.T) {
	g := circuit.DefaultGraph()
	s := newState(t, g)

	// (400,300) is the center of an 800x600 surface: the core.
	s, _ = Update(g, s, PointerMove{X: 400, Y: 300})
	if !s.Hover.Is(0) {
		t.Fatalf("expected core hover before resize, got %v", s.Hover)
	}

	// Shrink to 400x300: the center is now (200,150), so the pointer at
	// (400,300) is offset (200,150) and misses every node.
	s, _ = Update(g, s, Resized{Width: 400, Height: 300, PixelRatio: 2})
	if got := s.Surface.Center(); got.X != 200 || got.Y != 150 {
		t.Fatalf("center after resize = %v", got)
	}
	if s.Hover.IsSet() {
		t.Fatalf("stale hover after resize: %v", s.Hover)
	}

	// Subsequent hit-tests use the new center.
	s, _ = Update(g, s, PointerMove{X: 200, Y: 0})
	if !s.Hover.Is(1) {
		t.Fatalf("expected node 1 at new (200,0), got %v", s.Hover)
	}
	s, _ = Update(g, s, PointerMove{X: 200, Y: 150})
	if !s.Hover.Is(0) {
		t.Fatalf("expected core at new center, got %v", s.Hover)
	}
}

func TestUpdate_RedundantResizeKeepsState(t *testing.T) {
	g := circuit.DefaultGraph()
	s := newState(t, g)
	s, _ = Update(g, s, PointerMove{X: 400, Y: 150})
	s, _ = Update(g, s, FocusGained{})

	again, _ := Update(g, s, surface800)
	if again.Hover != s.Hover || again.Focus != s.Focus || again.Surface != s.Surface {
		t.Fatalf("redundant resize changed state: %+v -> %+v", s, again)
	}
}

func TestSurface(t *testing.T) {
	s := Surface{Width: 300, Height: 200, PixelRatio: 2}
	if w, h := s.BackingSize(); w != 600 || h != 400 {
		t.Errorf("backing size = %dx%d", w, h)
	}
	if (Surface{}).Ratio() != 1 {
		t.Error("zero pixel ratio should count as 1")
	}
	p := s.ToGraph(150, 100)
	if p.X != 0 || p.Y != 0 {
		t.Errorf("center maps to %v", p)
	}
}

func TestKey_IsArrow(t *testing.T) {
	tests := []struct {
		key  Key
		want bool
	}{
		{KeyArrowUp, true},
		{KeyArrowDown, true},
		{KeyArrowLeft, true},
		{KeyArrowRight, true},
		{KeyEnter, false},
		{KeySpace, false},
		{"down", true},
		{"q", false},
	}
	for _, tt := range tests {
		if got := tt.key.IsArrow(); got != tt.want {
			t.Errorf("%q.IsArrow() = %v, want %v", tt.key, got, tt.want)
		}
	}
}
