package circuit

import (
	"errors"
	"reflect"
	"testing"
)

func TestDefaultGraph(t *testing.T) {
	g := DefaultGraph()
	if g.Len() != 7 {
		t.Fatalf("expected 7 nodes, got %d", g.Len())
	}
	if g.CoreID() != CoreID {
		t.Errorf("expected core id %d, got %d", CoreID, g.CoreID())
	}
	want := []NodeID{1, 2, 3, 4, 5, 6}
	if got := g.InteractiveIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("interactive ids = %v, want %v", got, want)
	}
	if len(g.DanglingEdges()) != 0 {
		t.Errorf("default graph has dangling edges: %v", g.DanglingEdges())
	}
	for _, id := range want {
		if d := g.Degree(id); d != 3 {
			t.Errorf("node %d degree = %d, want 3 (spoke + two ring edges)", id, d)
		}
	}
}

func TestNewGraph_DuplicateID(t *testing.T) {
	_, err := NewGraph([]Node{{ID: 1, Radius: 5}, {ID: 1, Radius: 6}}, nil, 0)
	if !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("expected ErrDuplicateNode, got %v", err)
	}
}

func TestNewGraph_BadRadius(t *testing.T) {
	for _, r := range []float64{0, -3} {
		if _, err := NewGraph([]Node{{ID: 1, Radius: r}}, nil, 0); !errors.Is(err, ErrBadRadius) {
			t.Errorf("radius %v: expected ErrBadRadius, got %v", r, err)
		}
	}
}

func TestNewGraph_KeepsDanglingEdges(t *testing.T) {
	g, err := NewGraph(
		[]Node{{ID: 0, Radius: 10}, {ID: 1, Radius: 5}},
		[]Edge{{From: 0, To: 1}, {From: 1, To: 99}},
		0,
	)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	if len(g.Edges()) != 2 {
		t.Fatalf("expected both edges kept, got %d", len(g.Edges()))
	}
	dangling := g.DanglingEdges()
	if len(dangling) != 1 || dangling[0].To != 99 {
		t.Errorf("expected edge 1-99 dangling, got %v", dangling)
	}
	if _, _, ok := g.Endpoints(Edge{From: 1, To: 99}); ok {
		t.Error("expected dangling edge endpoints to be unresolved")
	}
}

func TestNewGraph_CopiesInput(t *testing.T) {
	nodes := []Node{{ID: 0, Radius: 10, Label: "a"}}
	g, err := NewGraph(nodes, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	nodes[0].Label = "mutated"
	if n, _ := g.Node(0); n.Label != "a" {
		t.Errorf("graph aliased caller slice: label %q", n.Label)
	}
}

func TestNewGraph_OnlyCore(t *testing.T) {
	g, err := NewGraph([]Node{{ID: 0, Radius: 10}}, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.InteractiveIDs()) != 0 {
		t.Errorf("expected no interactive ids, got %v", g.InteractiveIDs())
	}
}

func TestComponents(t *testing.T) {
	g, err := NewGraph(
		[]Node{{ID: 0, Radius: 1}, {ID: 1, Radius: 1}, {ID: 2, Radius: 1}, {ID: 3, Radius: 1}},
		[]Edge{{From: 0, To: 2}, {From: 3, To: 3}, {From: 1, To: 77}},
		0,
	)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]NodeID{{0, 2}, {1}, {3}}
	if got := g.Components(); !reflect.DeepEqual(got, want) {
		t.Errorf("Components() = %v, want %v", got, want)
	}

	if got := DefaultGraph().Components(); len(got) != 1 || len(got[0]) != 7 {
		t.Errorf("default graph should be one component of 7, got %v", got)
	}
}

func TestOptionalID(t *testing.T) {
	if None.IsSet() {
		t.Error("None must not be set")
	}
	if None.String() != "none" {
		t.Errorf("None.String() = %q", None.String())
	}
	id, ok := Some(0).Get()
	if !ok || id != 0 {
		t.Errorf("Some(0).Get() = %d,%v", id, ok)
	}
	if !Some(0).Is(0) || None.Is(0) {
		t.Error("Is mismatch for zero id")
	}
}
