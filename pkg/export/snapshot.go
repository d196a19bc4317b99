// Package export writes static snapshots of the circuit: PNG and SVG images,
// plain terminal text, the display list as JSON, and Mermaid/DOT diagrams.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/kairo/pkg/circuit"
	"github.com/vanderheijden86/kairo/pkg/interact"
	"github.com/vanderheijden86/kairo/pkg/metrics"
	"github.com/vanderheijden86/kairo/pkg/render"
)

// Format is a snapshot output format.
type Format string

const (
	FormatPNG     Format = "png"
	FormatSVG     Format = "svg"
	FormatText    Format = "txt"
	FormatJSON    Format = "json"
	FormatMermaid Format = "mmd"
	FormatDOT     Format = "dot"
)

// Formats lists every supported format.
var Formats = []Format{FormatPNG, FormatSVG, FormatText, FormatJSON, FormatMermaid, FormatDOT}

// Terminal cells are roughly twice as tall as wide.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// ErrNoGraph is returned when there is nothing to draw.
var ErrNoGraph = errors.New("no nodes to export")

// SnapshotOptions controls SaveSnapshot.
type SnapshotOptions struct {
	Path    string // output path; format inferred from extension when Format is empty
	Format  Format
	Graph   *circuit.Graph
	State   interact.State // surface plus hover/focus to draw
	Palette render.Palette
}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	switch f {
	case "text":
		return FormatText, nil
	case "mermaid":
		return FormatMermaid, nil
	case "gv":
		return FormatDOT, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (want png, svg, txt, json, mmd or dot)", s)
}

// FormatForPath infers the format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot infer format of %q without an extension", path)
	}
	return ParseFormat(ext)
}

// SaveSnapshot renders the graph to opts.Path, creating parent directories.
func SaveSnapshot(opts SnapshotOptions) error {
	if opts.Graph == nil || opts.Graph.Len() == 0 {
		return ErrNoGraph
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	format := opts.Format
	if format == "" {
		f, err := FormatForPath(opts.Path)
		if err != nil {
			return err
		}
		format = f
	} else if f, err := ParseFormat(string(format)); err != nil {
		return err
	} else {
		format = f
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.Path, err)
	}
	bw := bufio.NewWriter(f)
	if err := Write(bw, format, opts.Graph, opts.State, opts.Palette); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", opts.Path, err)
	}
	return f.Close()
}

// Write renders one frame of g in the given format.
func Write(w io.Writer, format Format, g *circuit.Graph, s interact.State, p render.Palette) error {
	if g == nil || g.Len() == 0 {
		return ErrNoGraph
	}
	switch format {
	case FormatMermaid:
		_, err := io.WriteString(w, Mermaid(g, s))
		return err
	case FormatDOT:
		_, err := io.WriteString(w, DOT(g))
		return err
	}

	defer metrics.Timer(metrics.SnapshotWrite)()
	done := metrics.Timer(metrics.SceneBuild)
	sc := render.BuildScene(g, s, p)
	done()
	switch format {
	case FormatPNG:
		c := render.NewRasterCanvas()
		if err := render.Paint(c, sc); err != nil {
			return err
		}
		return c.EncodePNG(w)
	case FormatSVG:
		c := render.NewSVGCanvas(w)
		if err := render.Paint(c, sc); err != nil {
			return err
		}
		return c.Close()
	case FormatText:
		c := render.NewCellCanvas(nil, DefaultCellWidth, DefaultCellHeight)
		if err := render.Paint(c, sc); err != nil {
			return err
		}
		_, err := io.WriteString(w, c.Plain()+"\n")
		return err
	case FormatJSON:
		return WriteSceneJSON(w, sc)
	}
	return fmt.Errorf("unhandled format %q", format)
}

// WriteSceneJSON writes the display list as indented JSON.
func WriteSceneJSON(w io.Writer, sc render.Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sc)
}
