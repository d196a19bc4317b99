package main

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/kairo/pkg/circuit"
)

// nodesOutput is the robot view of the graph.
type nodesOutput struct {
	Core          circuit.NodeID     `json:"core"`
	Nodes         []circuit.Node     `json:"nodes"`
	Edges         []circuit.Edge     `json:"edges"`
	Interactive   []circuit.NodeID   `json:"interactive"`
	Components    [][]circuit.NodeID `json:"components"`
	DanglingEdges []circuit.Edge     `json:"dangling_edges,omitempty"`
}

func newNodesCmd(g *globalOptions) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "Print the graph as JSON",
		Long: `Nodes prints the graph with its focus order and connected components as
JSON. With --yaml it prints the graph in the graph file format instead, which
is a starting point for a custom --graph file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, graph, _, err := g.load()
			if err != nil {
				return err
			}
			if asYAML {
				return circuit.WriteYAML(cmd.OutOrStdout(), graph)
			}
			out := nodesOutput{
				Core:          graph.CoreID(),
				Nodes:         graph.Nodes(),
				Edges:         graph.Edges(),
				Interactive:   graph.InteractiveIDs(),
				Components:    graph.Components(),
				DanglingEdges: graph.DanglingEdges(),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the graph file format")
	return cmd
}
