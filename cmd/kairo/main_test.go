package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/kairo/pkg/circuit"
	"github.com/vanderheijden86/kairo/pkg/config"
	"github.com/vanderheijden86/kairo/pkg/export"
	"github.com/vanderheijden86/kairo/pkg/interact"
	"github.com/vanderheijden86/kairo/pkg/render"
	"github.com/vanderheijden86/kairo/pkg/testutil"
)

// run executes the CLI in-process with an isolated config directory.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeGraph(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.yaml")
	content := `
core: 0
nodes:
  - {id: 0, x: 0, y: 0, r: 40, label: CORE, detail: center}
  - {id: 1, x: 0, y: -100, r: 25, label: Go, detail: gophers}
  - {id: 2, x: 100, y: 0, r: 25, label: Rust, detail: crabs}
edges:
  - {from: 0, to: 1}
  - {from: 1, to: 9}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "kairo v") {
		t.Errorf("version output = %q", out)
	}
}

func TestRootPlainOutput(t *testing.T) {
	out, _, err := run(t)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"CORE", "React", "AWS"} {
		if !strings.Contains(out, want) {
			t.Errorf("plain output missing %q:\n%s", want, out)
		}
	}
}

func TestNodesCmd(t *testing.T) {
	out, _, err := run(t, "nodes")
	if err != nil {
		t.Fatal(err)
	}
	var got nodesOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got.Nodes) != 7 || len(got.Edges) != 12 {
		t.Errorf("nodes=%d edges=%d", len(got.Nodes), len(got.Edges))
	}
	if len(got.Interactive) != 6 || got.Interactive[0] != 1 {
		t.Errorf("interactive = %v", got.Interactive)
	}
	if len(got.Components) != 1 {
		t.Errorf("components = %v", got.Components)
	}
}

func TestNodesCmd_CustomGraph(t *testing.T) {
	out, _, err := run(t, "nodes", "--graph", writeGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	var got nodesOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.DanglingEdges) != 1 || got.DanglingEdges[0].To != 9 {
		t.Errorf("dangling = %v", got.DanglingEdges)
	}
	if len(got.Components) != 2 {
		t.Errorf("components = %v, want {0,1} and {2}", got.Components)
	}
}

func TestNodesCmd_YAMLRoundTrip(t *testing.T) {
	out, _, err := run(t, "nodes", "--yaml")
	if err != nil {
		t.Fatal(err)
	}
	g, err := circuit.ParseGraph([]byte(out), "yaml")
	if err != nil {
		t.Fatalf("ParseGraph: %v", err)
	}
	if g.Len() != 7 {
		t.Errorf("len = %d", g.Len())
	}
}

func TestHitCmd(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		wantID *circuit.NodeID
		label  string
	}{
		{"core", []string{"hit", "400", "300"}, ptr(circuit.NodeID(0)), "CORE"},
		{"top satellite", []string{"hit", "400", "150"}, ptr(circuit.NodeID(1)), "React"},
		{"miss", []string{"hit", "0", "0"}, nil, ""},
		{"custom surface", []string{"hit", "--width", "200", "--height", "200", "100", "100"}, ptr(circuit.NodeID(0)), "CORE"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := run(t, tc.args...)
			if err != nil {
				t.Fatal(err)
			}
			var got hitOutput
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatal(err)
			}
			switch {
			case tc.wantID == nil && got.ID != nil:
				t.Errorf("id = %d, want null", *got.ID)
			case tc.wantID != nil && (got.ID == nil || *got.ID != *tc.wantID):
				t.Errorf("id = %v, want %d", got.ID, *tc.wantID)
			}
			if got.Label != tc.label {
				t.Errorf("label = %q, want %q", got.Label, tc.label)
			}
		})
	}
}

func TestHitCmd_BadArgs(t *testing.T) {
	if _, _, err := run(t, "hit", "x", "1"); err == nil {
		t.Error("expected error for non-numeric X")
	}
	if _, _, err := run(t, "hit", "1"); err == nil {
		t.Error("expected error for missing Y")
	}
}

func TestRenderCmd_Stdout(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"txt", "React"},
		{"svg", "<svg"},
		{"mmd", "graph"},
		{"dot", "graph"},
		{"json", `"ops"`},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			out, _, err := run(t, "render", "--format", tc.format)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, tc.want) {
				t.Errorf("%s output missing %q", tc.format, tc.want)
			}
		})
	}
}

func TestRenderCmd_Outputs(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "out", "circuit.png")
	svg := filepath.Join(dir, "circuit.svg")
	txt := filepath.Join(dir, "circuit.txt")

	_, stderr, err := run(t, "render", "-o", png, "-o", svg, "-o", txt, "--hover", "2", "--dpr", "2")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{png, svg, txt} {
		if !strings.Contains(stderr, "wrote "+p) {
			t.Errorf("stderr missing %s: %q", p, stderr)
		}
		info, err := os.Stat(p)
		if err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", p, err)
		}
	}
	data, err := os.ReadFile(png)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("png output lacks PNG signature")
	}
}

func TestRenderCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown hover", []string{"render", "--hover", "99"}, "no node 99"},
		{"core not focusable", []string{"render", "--focus", "0"}, "not focusable"},
		{"bad format", []string{"render", "--format", "gif"}, "unsupported format"},
		{"watch without graph", []string{"render", "--watch", "-o", "x.png"}, "needs a graph file"},
		{"no extension", []string{"render", "-o", filepath.Join(os.TempDir(), "kairo-noext")}, "extension"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestStateFor(t *testing.T) {
	g := circuit.DefaultGraph()
	surf := surfaceFor(config.DefaultConfig(), 0, 0, 0)

	st, err := stateFor(g, surf, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertHover(t, st, 4)
	testutil.AssertFocus(t, st, 3)
	if st.Surface != surf {
		t.Errorf("surface = %+v, want %+v", st.Surface, surf)
	}

	st, err = stateFor(g, surf, -1, -1)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertHover(t, st, -1)
	testutil.AssertFocus(t, st, -1)
}

func TestStateFor_OverlappingHover(t *testing.T) {
	surf := interact.Surface{Width: 800, Height: 600, PixelRatio: 1}
	partial, err := circuit.NewGraph([]circuit.Node{
		{ID: 0, Radius: 40, Label: "core"},
		{ID: 1, X: 30, Radius: 25, Label: "beside"},
	}, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	covered, err := circuit.NewGraph([]circuit.Node{
		{ID: 0, Radius: 40, Label: "core"},
		{ID: 1, X: 10, Radius: 25, Label: "inside"},
	}, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	twins := testutil.NewDefault().Overlapping()

	tests := []struct {
		name    string
		g       *circuit.Graph
		hover   int
		wantErr bool
	}{
		{"center shadowed, rim reachable", partial, 1, false},
		{"earlier twin", twins, 1, false},
		{"later twin fully covered", twins, 2, true},
		{"inside the core", covered, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := stateFor(tt.g, surf, tt.hover, -1)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "covered") {
					t.Fatalf("err = %v, want covered error", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			testutil.AssertHover(t, st, tt.hover)
		})
	}
}

func TestSurfaceFor(t *testing.T) {
	cfg := config.DefaultConfig()
	s := surfaceFor(cfg, 1024, 0, 3)
	if s.Width != 1024 || s.Height != cfg.Render.Height || s.PixelRatio != 3 {
		t.Errorf("surface = %+v", s)
	}
}

func TestRenderAll_RejectsEmptyGraph(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a.png")
	err := renderAll(t.Context(), []string{out}, "", nil, interact.State{}, render.DefaultPalette())
	if !errors.Is(err, export.ErrNoGraph) {
		t.Errorf("err = %v, want ErrNoGraph", err)
	}
}

func ptr[T any](v T) *T { return &v }

func TestRenderCmd_Metrics(t *testing.T) {
	_, stderr, err := run(t, "render", "--format", "svg", "--metrics")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"snapshot_write"`, `"scene_build"`} {
		if !strings.Contains(stderr, want) {
			t.Errorf("metrics output missing %s:\n%s", want, stderr)
		}
	}
}

func TestRenderCmd_GraphFromJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ring.json")
	testutil.WriteGraphFile(t, path, testutil.NewDefault().Ring(12))

	out, _, err := run(t, "render", "-g", path, "--format", "mmd", "--focus", "12")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"n1((", "class n12 focus"} {
		if !strings.Contains(out, want) {
			t.Errorf("mermaid output missing %q:\n%s", want, out)
		}
	}
}
