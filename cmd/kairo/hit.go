package main

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/kairo/pkg/circuit"
)

type hitOutput struct {
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
	ID          *circuit.NodeID `json:"id"`
	Label       string          `json:"label,omitempty"`
	Interactive bool            `json:"interactive"`
}

func newHitCmd(g *globalOptions) *cobra.Command {
	var width, height float64
	cmd := &cobra.Command{
		Use:   "hit X Y",
		Short: "Report which node is under a surface point",
		Long: `Hit runs the hit-test for a point in surface coordinates (CSS pixels from
the top-left corner) and prints the result as JSON. id is null on a miss.`,
		Example: `  kairo hit 400 300        # core node on the default 800x600 surface
  kairo hit 400 150`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid X %q: %w", args[0], err)
			}
			y, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid Y %q: %w", args[1], err)
			}
			cfg, graph, _, err := g.load()
			if err != nil {
				return err
			}
			surf := surfaceFor(cfg, width, height, 0)

			out := hitOutput{X: x, Y: y}
			if id, ok := circuit.FindHit(surf.ToGraph(x, y), graph.Nodes()).Get(); ok {
				n, _ := graph.Node(id)
				out.ID = &id
				out.Label = n.Label
				out.Interactive = id != graph.CoreID()
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().Float64Var(&width, "width", 0, "surface width in CSS pixels (config default)")
	cmd.Flags().Float64Var(&height, "height", 0, "surface height in CSS pixels (config default)")
	return cmd
}
