package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vanderheijden86/kairo/pkg/circuit"
)

func TestRing(t *testing.T) {
	g := NewDefault().Ring(6)
	AssertNodeCount(t, g, 7)
	if len(g.Edges()) != 12 {
		t.Errorf("edges = %d, want 12", len(g.Edges()))
	}
	AssertFocusOrder(t, g, 1, 2, 3, 4, 5, 6)

	top, _ := g.Node(1)
	if top.X > 1e-9 || top.X < -1e-9 || top.Y != -150 {
		t.Errorf("first satellite at (%v,%v), want 12 o'clock", top.X, top.Y)
	}
	if got := len(g.Components()); got != 1 {
		t.Errorf("components = %d", got)
	}
}

func TestTopologies(t *testing.T) {
	gen := NewDefault()
	tests := []struct {
		name       string
		g          *circuit.Graph
		nodes      int
		edges      int
		components int
	}{
		{"star", gen.Star(4), 5, 4, 1},
		{"disconnected", gen.Disconnected(3), 4, 0, 4},
		{"chain", gen.Chain(5), 6, 5, 1},
		{"overlapping", gen.Overlapping(), 3, 1, 2},
		{"single ring", gen.Ring(1), 2, 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			AssertNodeCount(t, tc.g, tc.nodes)
			if len(tc.g.Edges()) != tc.edges {
				t.Errorf("edges = %d, want %d", len(tc.g.Edges()), tc.edges)
			}
			if got := len(tc.g.Components()); got != tc.components {
				t.Errorf("components = %d, want %d", got, tc.components)
			}
		})
	}
}

func TestRandom_Deterministic(t *testing.T) {
	a := New(GeneratorConfig{Seed: 7}).Random(10, 0.3)
	b := New(GeneratorConfig{Seed: 7}).Random(10, 0.3)
	if len(a.Edges()) != len(b.Edges()) {
		t.Fatalf("edge counts differ: %d vs %d", len(a.Edges()), len(b.Edges()))
	}
	for i, n := range a.Nodes() {
		if b.Nodes()[i] != n {
			t.Fatalf("node %d differs: %+v vs %+v", i, n, b.Nodes()[i])
		}
	}
}

func TestWriteGraphFile(t *testing.T) {
	g := NewDefault().Ring(3)
	for _, name := range []string{"g.yaml", "nested/g.json"} {
		path := filepath.Join(t.TempDir(), name)
		WriteGraphFile(t, path, g)
		back, err := circuit.LoadGraph(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		AssertNodeCount(t, back, 4)
	}
}

func TestGoldenFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GENERATE_GOLDEN", "1")
	NewGoldenFile(t, dir, "out.txt").Assert("line1\nline2\n")

	t.Setenv("GENERATE_GOLDEN", "")
	gf := NewGoldenFile(t, dir, "out.txt")
	gf.Assert("line1\nline2\n")
	if _, err := os.Stat(gf.Path()); err != nil {
		t.Fatal(err)
	}
}
