package render

import (
	"errors"
	"testing"

	"github.com/vanderheijden86/kairo/pkg/circuit"
)

// recorder is a Canvas that records call names.
type recorder struct {
	calls     []string
	resizeErr error
	resizes   int
}

func (r *recorder) Resize(w, h, ratio float64) error {
	r.resizes++
	return r.resizeErr
}

func (r *recorder) Clear(Color) {
	r.calls = append(r.calls, "clear")
}

func (r *recorder) Line(_, _, _, _ float64, _ Color, _ float64) {
	r.calls = append(r.calls, "line")
}

func (r *recorder) Circle(_, _, _ float64, _, _ Color, _ float64, _ Color, _ float64) {
	r.calls = append(r.calls, "circle")
}

func (r *recorder) Ring(_, _, _ float64, _ Color, _ float64) {
	r.calls = append(r.calls, "ring")
}

func (r *recorder) Text(_, _ float64, _ string, _ Color, _ float64, _ bool) {
	r.calls = append(r.calls, "text")
}

func TestPaint_ReplaysOps(t *testing.T) {
	rec := &recorder{}
	sc := BuildScene(circuit.DefaultGraph(), testState(circuit.None, circuit.Some(1)), DefaultPalette())
	if err := Paint(rec, sc); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if len(rec.calls) != len(sc.Ops) {
		t.Fatalf("expected %d calls, got %d", len(sc.Ops), len(rec.calls))
	}
	for i, op := range sc.Ops {
		if rec.calls[i] != string(op.Kind) {
			t.Fatalf("call %d = %s, want %s", i, rec.calls[i], op.Kind)
		}
	}
}

func TestPaint_NilCanvas(t *testing.T) {
	if err := Paint(nil, Scene{}); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("expected ErrNoSurface, got %v", err)
	}
}

func TestRenderer_StopsAfterSurfaceFailure(t *testing.T) {
	rec := &recorder{resizeErr: errors.New("context lost")}
	r := NewRenderer(rec)
	sc := BuildScene(circuit.DefaultGraph(), testState(circuit.None, circuit.None), DefaultPalette())

	err := r.Draw(sc)
	if !errors.Is(err, ErrNoSurface) {
		t.Fatalf("expected ErrNoSurface, got %v", err)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("nothing should be drawn on failure, got %v", rec.calls)
	}

	// Even if the surface recovers, this mount stays dark.
	rec.resizeErr = nil
	if err := r.Draw(sc); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("expected sticky error, got %v", err)
	}
	if rec.resizes != 1 || len(rec.calls) != 0 {
		t.Fatalf("renderer kept drawing after failure: resizes=%d calls=%d", rec.resizes, len(rec.calls))
	}
	if r.Frames() != 0 || r.Err() == nil {
		t.Fatalf("frames=%d err=%v", r.Frames(), r.Err())
	}
}

func TestRenderer_CountsFrames(t *testing.T) {
	r := NewRenderer(&recorder{})
	sc := BuildScene(circuit.DefaultGraph(), testState(circuit.None, circuit.None), DefaultPalette())
	for i := 0; i < 3; i++ {
		if err := r.Draw(sc); err != nil {
			t.Fatal(err)
		}
	}
	if r.Frames() != 3 {
		t.Fatalf("expected 3 frames, got %d", r.Frames())
	}
}
