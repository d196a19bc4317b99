package export

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/kairo/pkg/circuit"
	"github.com/vanderheijden86/kairo/pkg/interact"
)

// Mermaid renders the circuit as a Mermaid flowchart. Hovered and focused
// nodes get their own classes so the diagram matches the frame.
func Mermaid(g *circuit.Graph, s interact.State) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    classDef node fill:#1a1a1a,stroke:#0066ff,color:#f0f0f0\n")
	sb.WriteString("    classDef core fill:#1a1a1a,stroke:#0066ff,color:#f0f0f0,font-weight:bold\n")
	sb.WriteString("    classDef hover fill:#0066ff,stroke:#00ff66,color:#f0f0f0\n")
	sb.WriteString("    classDef focus fill:#1a1a1a,stroke:#00ff66,stroke-width:2px,color:#f0f0f0\n\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&sb, "    n%d((\"%s\"))\n", n.ID, mermaidLabel(n.Label))
	}
	for _, e := range g.Edges() {
		if _, _, ok := g.Endpoints(e); !ok {
			continue
		}
		fmt.Fprintf(&sb, "    n%d --- n%d\n", e.From, e.To)
	}
	sb.WriteString("\n")
	for _, n := range g.Nodes() {
		class := "node"
		switch {
		case s.Hover.Is(n.ID):
			class = "hover"
		case s.Focus.Is(n.ID):
			class = "focus"
		case n.ID == g.CoreID():
			class = "core"
		}
		fmt.Fprintf(&sb, "    class n%d %s\n", n.ID, class)
	}
	return sb.String()
}

func mermaidLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	return strings.ReplaceAll(s, "\n", " ")
}

// DOT renders the circuit as an undirected Graphviz graph with node
// positions pinned to the circuit layout.
func DOT(g *circuit.Graph) string {
	var sb strings.Builder
	sb.WriteString("graph circuit {\n")
	sb.WriteString("  bgcolor=\"#000000\";\n")
	sb.WriteString("  node [shape=circle style=filled fillcolor=\"#1a1a1a\" color=\"#0066ff\" fontcolor=\"#f0f0f0\" fixedsize=true];\n")
	sb.WriteString("  edge [color=\"#0066ff55\"];\n")
	for _, n := range g.Nodes() {
		// Graphviz points are 1/72 in with y up.
		y := -n.Y
		if y == 0 { // avoid printing -0
			y = 0
		}
		fmt.Fprintf(&sb, "  n%d [label=%q width=%.3f pos=\"%g,%g!\"];\n",
			n.ID, n.Label, 2*n.Radius/72, n.X, y)
	}
	for _, e := range g.Edges() {
		if _, _, ok := g.Endpoints(e); !ok {
			continue
		}
		fmt.Fprintf(&sb, "  n%d -- n%d;\n", e.From, e.To)
	}
	sb.WriteString("}\n")
	return sb.String()
}
