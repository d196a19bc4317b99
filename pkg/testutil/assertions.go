package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/kairo/pkg/circuit"
	"github.com/vanderheijden86/kairo/pkg/interact"
)

// AssertNodeCount verifies the number of nodes.
func AssertNodeCount(t *testing.T, g *circuit.Graph, expected int) {
	t.Helper()
	if g.Len() != expected {
		t.Errorf("expected %d nodes, got %d", expected, g.Len())
	}
}

// AssertHover verifies the hovered node; id < 0 means no hover.
func AssertHover(t *testing.T, s interact.State, id int) {
	t.Helper()
	assertOptional(t, "hover", s.Hover, id)
}

// AssertFocus verifies the focused node; id < 0 means no focus.
func AssertFocus(t *testing.T, s interact.State, id int) {
	t.Helper()
	assertOptional(t, "focus", s.Focus, id)
}

func assertOptional(t *testing.T, what string, got circuit.OptionalID, id int) {
	t.Helper()
	if id < 0 {
		if got.IsSet() {
			t.Errorf("expected no %s, got %v", what, got)
		}
		return
	}
	if !got.Is(circuit.NodeID(id)) {
		t.Errorf("expected %s on %d, got %v", what, id, got)
	}
}

// AssertFocusOrder verifies the interactive ids in focus order.
func AssertFocusOrder(t *testing.T, g *circuit.Graph, expected ...circuit.NodeID) {
	t.Helper()
	if got := g.InteractiveIDs(); !slices.Equal(got, expected) {
		t.Errorf("focus order = %v, want %v", got, expected)
	}
}

// WriteGraphFile writes g to path as YAML or JSON, by extension.
func WriteGraphFile(t *testing.T, path string, g *circuit.Graph) {
	t.Helper()
	var buf bytes.Buffer
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = circuit.WriteJSON(&buf, g)
	} else {
		err = circuit.WriteYAML(&buf, g)
	}
	if err != nil {
		t.Fatalf("encode graph: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create graph dir: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write graph file: %v", err)
	}
}

// Golden file helpers

// GoldenFile handles golden file comparisons.
type GoldenFile struct {
	t      *testing.T
	dir    string
	name   string
	update bool
}

// NewGoldenFile creates a golden file helper.
// If GENERATE_GOLDEN env var is set, golden files will be updated.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		t:      t,
		dir:    dir,
		name:   name,
		update: os.Getenv("GENERATE_GOLDEN") != "",
	}
}

// Path returns the full path to the golden file.
func (g *GoldenFile) Path() string {
	return filepath.Join(g.dir, g.name)
}

// Assert compares actual content against the golden file, or rewrites it
// when GENERATE_GOLDEN is set.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()
	path := g.Path()

	if g.update {
		if err := os.MkdirAll(g.dir, 0o755); err != nil {
			g.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			g.t.Fatalf("failed to write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with GENERATE_GOLDEN=1 to create it", path)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}
	if string(expected) == actual {
		return
	}

	expectedLines := strings.Split(string(expected), "\n")
	actualLines := strings.Split(actual, "\n")
	for i := 0; i < len(expectedLines) || i < len(actualLines); i++ {
		var expLine, actLine string
		if i < len(expectedLines) {
			expLine = expectedLines[i]
		}
		if i < len(actualLines) {
			actLine = actualLines[i]
		}
		if expLine != actLine {
			g.t.Errorf("golden file mismatch at line %d:\nexpected: %s\nactual:   %s", i+1, expLine, actLine)
			return
		}
	}
	g.t.Errorf("golden file mismatch (length differs)")
}

// AssertJSON compares actual as indented JSON against the golden file.
func (g *GoldenFile) AssertJSON(actual any) {
	g.t.Helper()
	data, err := json.MarshalIndent(actual, "", "  ")
	if err != nil {
		g.t.Fatalf("failed to marshal actual value: %v", err)
	}
	g.Assert(string(data))
}
