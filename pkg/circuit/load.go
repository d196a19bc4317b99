package circuit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/kairo/pkg/metrics"
)

// ErrEmptyGraph is returned when a graph file declares no nodes.
var ErrEmptyGraph = errors.New("graph has no nodes")

// File is the on-disk shape of a graph, shared by the YAML and JSON formats.
type File struct {
	Core  *NodeID `json:"core,omitempty" yaml:"core,omitempty"`
	Nodes []Node  `json:"nodes" yaml:"nodes"`
	Edges []Edge  `json:"edges" yaml:"edges"`
}

// FormatForPath infers "json" or "yaml" from a file extension.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unsupported graph file extension %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// LoadGraph reads a graph file, inferring the format from its extension.
func LoadGraph(path string) (*Graph, error) {
	defer metrics.Timer(metrics.GraphLoad)()
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph: %w", err)
	}
	g, err := ParseGraph(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ParseGraph decodes a graph in the given format ("yaml" or "json").
func ParseGraph(data []byte, format string) (*Graph, error) {
	var f File
	switch format {
	case "json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing graph json: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing graph yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported graph format %q", format)
	}

	if len(f.Nodes) == 0 {
		return nil, ErrEmptyGraph
	}
	core := CoreID
	if f.Core != nil {
		core = *f.Core
	}
	return NewGraph(f.Nodes, f.Edges, core)
}

// ToFile converts g back to its serializable form.
func (g *Graph) ToFile() File {
	core := g.core
	return File{
		Core:  &core,
		Nodes: append([]Node(nil), g.nodes...),
		Edges: append([]Edge(nil), g.edges...),
	}
}

// WriteJSON writes g as indented JSON.
func WriteJSON(w io.Writer, g *Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g.ToFile())
}

// WriteYAML writes g as YAML.
func WriteYAML(w io.Writer, g *Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g.ToFile()); err != nil {
		return err
	}
	return enc.Close()
}
