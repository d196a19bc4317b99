package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/vanderheijden86/kairo/pkg/circuit"
)

func TestSVGCanvas_Document(t *testing.T) {
	var buf bytes.Buffer
	c := NewSVGCanvas(&buf)
	sc := BuildScene(circuit.DefaultGraph(), testState(circuit.Some(1), circuit.Some(2)), DefaultPalette())
	if err := Paint(c, sc); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `viewBox="0 0 800 600"`) {
		t.Errorf("missing viewBox:\n%s", out[:200])
	}
	if got := strings.Count(out, "<line"); got != 12 {
		t.Errorf("expected 12 edges, got %d", got)
	}
	for _, label := range []string{"CORE", "React", "AWS"} {
		if !strings.Contains(out, ">"+label+"<") {
			t.Errorf("missing label %q", label)
		}
	}
	if !strings.Contains(out, "fill:none;stroke:#00ff66") {
		t.Error("missing focus ring")
	}

	// Must be well-formed XML.
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("invalid xml: %v", err)
		}
	}
}

func TestSVGCanvas_SingleResize(t *testing.T) {
	c := NewSVGCanvas(&bytes.Buffer{})
	if err := c.Close(); err == nil {
		t.Error("closing an unstarted document should fail")
	}
	if err := c.Resize(10, 10, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.Resize(10, 10, 1); err == nil {
		t.Error("second resize should fail")
	}
}
