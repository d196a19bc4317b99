package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/kairo/pkg/circuit"
	"github.com/vanderheijden86/kairo/pkg/config"
	"github.com/vanderheijden86/kairo/pkg/debug"
	"github.com/vanderheijden86/kairo/pkg/export"
	"github.com/vanderheijden86/kairo/pkg/interact"
	"github.com/vanderheijden86/kairo/pkg/metrics"
	"github.com/vanderheijden86/kairo/pkg/render"
	"github.com/vanderheijden86/kairo/pkg/watcher"
)

type renderOptions struct {
	outputs []string
	format  string
	width   float64
	height  float64
	dpr     float64
	hover   int
	focus   int
	watch   bool
	metrics bool
}

func newRenderCmd(g *globalOptions) *cobra.Command {
	ro := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the circuit to PNG, SVG, text, JSON, Mermaid or DOT",
		Long: `Render draws one frame of the circuit. Each -o output is written
concurrently; its format comes from --format or the file extension. Without -o
the frame goes to stdout (text by default).

--hover and --focus draw the frame as if the pointer were over a node or the
keyboard focus were on it. --watch re-renders whenever the graph file changes.`,
		Example: `  kairo render -o circuit.png -o circuit.svg
  kairo render --format txt
  kairo render --hover 3 --dpr 2 -o hover.png
  kairo render -g graph.yaml -o out/circuit.svg --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, g, ro)
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&ro.outputs, "output", "o", nil, "output file (repeatable)")
	f.StringVarP(&ro.format, "format", "f", "", "png, svg, txt, json, mmd or dot")
	f.Float64Var(&ro.width, "width", 0, "surface width in CSS pixels (config default)")
	f.Float64Var(&ro.height, "height", 0, "surface height in CSS pixels (config default)")
	f.Float64Var(&ro.dpr, "dpr", 0, "device pixel ratio (config default)")
	f.IntVar(&ro.hover, "hover", -1, "draw node ID as hovered")
	f.IntVar(&ro.focus, "focus", -1, "draw node ID as focused")
	f.BoolVarP(&ro.watch, "watch", "w", false, "re-render when the graph file changes")
	f.BoolVar(&ro.metrics, "metrics", false, "print timing metrics as JSON to stderr")
	return cmd
}

// surfaceFor applies flag overrides to the configured surface.
func surfaceFor(cfg config.Config, width, height, dpr float64) interact.Surface {
	s := interact.Surface{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		PixelRatio: cfg.Render.PixelRatio,
	}
	if width > 0 {
		s.Width = width
	}
	if height > 0 {
		s.Height = height
	}
	if dpr > 0 {
		s.PixelRatio = dpr
	}
	return s
}

// seedMsgs is the input sequence that puts a fresh view into the requested
// hover and focus state. Negative ids mean none.
func seedMsgs(g *circuit.Graph, s interact.Surface, hover, focus int) ([]interact.Msg, error) {
	msgs := []interact.Msg{interact.Resized{Width: s.Width, Height: s.Height, PixelRatio: s.PixelRatio}}
	if hover >= 0 {
		n, ok := g.Node(circuit.NodeID(hover))
		if !ok {
			return nil, fmt.Errorf("--hover: no node %d", hover)
		}
		p, ok := hoverPoint(g, n)
		if !ok {
			return nil, fmt.Errorf("--hover: node %d is covered by earlier nodes", hover)
		}
		c := s.Center()
		msgs = append(msgs, interact.PointerMove{X: c.X + p.X, Y: c.Y + p.Y})
	}
	if focus >= 0 {
		idx := slices.Index(g.InteractiveIDs(), circuit.NodeID(focus))
		if idx < 0 {
			return nil, fmt.Errorf("--focus: node %d is not focusable", focus)
		}
		msgs = append(msgs, interact.FocusGained{})
		for range idx {
			msgs = append(msgs, interact.KeyDown{Key: interact.KeyArrowRight})
		}
	}
	return msgs, nil
}

// hoverPoint finds a point inside n that hit-tests to n. Hits go to the first
// node in declaration order, so the center alone is not enough when an earlier
// node overlaps it.
func hoverPoint(g *circuit.Graph, n circuit.Node) (r2.Vec, bool) {
	if g.HitTest(n.Pos()).Is(n.ID) {
		return n.Pos(), true
	}
	const steps = 16
	for _, frac := range []float64{0.25, 0.5, 0.75, 0.95} {
		for i := range steps {
			a := 2 * math.Pi * float64(i) / steps
			p := r2.Add(n.Pos(), r2.Scale(frac*n.Radius, r2.Vec{X: math.Cos(a), Y: math.Sin(a)}))
			if g.HitTest(p).Is(n.ID) {
				return p, true
			}
		}
	}
	return r2.Vec{}, false
}

// stateFor replays seedMsgs through the pure update function.
func stateFor(g *circuit.Graph, s interact.Surface, hover, focus int) (interact.State, error) {
	msgs, err := seedMsgs(g, s, hover, focus)
	if err != nil {
		return interact.State{}, err
	}
	var st interact.State
	for _, msg := range msgs {
		st, _ = interact.Update(g, st, msg)
	}
	return st, nil
}

func runRender(cmd *cobra.Command, g *globalOptions, ro *renderOptions) error {
	if ro.metrics {
		defer writeMetrics(cmd.ErrOrStderr())
	}
	cfg, graph, path, err := g.load()
	if err != nil {
		return err
	}
	pal, err := cfg.Palette()
	if err != nil {
		return err
	}
	var format export.Format
	if ro.format != "" {
		if format, err = export.ParseFormat(ro.format); err != nil {
			return err
		}
	}
	surf := surfaceFor(cfg, ro.width, ro.height, ro.dpr)

	if ro.watch {
		if path == "" {
			return fmt.Errorf("--watch needs a graph file (--graph or graph.path in config)")
		}
		if len(ro.outputs) == 0 {
			return fmt.Errorf("--watch needs at least one -o output")
		}
		return watchRender(cmd, cfg, graph, path, surf, ro, format, pal)
	}

	st, err := stateFor(graph, surf, ro.hover, ro.focus)
	if err != nil {
		return err
	}
	if len(ro.outputs) == 0 {
		if format == "" {
			format = export.FormatText
		}
		return export.Write(cmd.OutOrStdout(), format, graph, st, pal)
	}
	if err := renderAll(cmd.Context(), ro.outputs, format, graph, st, pal); err != nil {
		return err
	}
	for _, o := range ro.outputs {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", o)
	}
	return nil
}

// renderAll writes every output concurrently.
func renderAll(ctx context.Context, outputs []string, format export.Format, g *circuit.Graph, st interact.State, pal render.Palette) error {
	eg, _ := errgroup.WithContext(ctx)
	for _, out := range outputs {
		eg.Go(func() error {
			return export.SaveSnapshot(export.SnapshotOptions{
				Path:    out,
				Format:  format,
				Graph:   g,
				State:   st,
				Palette: pal,
			})
		})
	}
	return eg.Wait()
}

// watchRender re-renders the outputs on every graph change until interrupted.
func watchRender(cmd *cobra.Command, cfg config.Config, g *circuit.Graph, path string, surf interact.Surface, ro *renderOptions, format export.Format, pal render.Palette) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	msgs, err := seedMsgs(g, surf, ro.hover, ro.focus)
	if err != nil {
		return err
	}
	loop := render.NewLoop(cfg.FrameInterval(), false)
	disp := interact.NewDispatcher(g, interact.WithOnChange(loop.Invalidate))
	defer disp.Close()
	for _, msg := range msgs {
		disp.Dispatch(msg)
	}
	loop.Invalidate()

	stderr := cmd.ErrOrStderr()
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return watcher.WatchGraph(ctx, path, func(next *circuit.Graph, err error) {
			if err != nil {
				fmt.Fprintf(stderr, "reload %s: %v\n", path, err)
				return
			}
			disp.SetGraph(next)
		})
	})
	eg.Go(func() error {
		return loop.Run(ctx, func() error {
			if err := renderAll(ctx, ro.outputs, format, disp.Graph(), disp.State(), pal); err != nil {
				// Keep watching; the next save may fix it.
				fmt.Fprintf(stderr, "render: %v\n", err)
				return nil
			}
			debug.Log("render: wrote %d outputs", len(ro.outputs))
			fmt.Fprintf(stderr, "rendered %d nodes\n", disp.Graph().Len())
			return nil
		})
	})
	return eg.Wait()
}

func writeMetrics(w io.Writer) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(metrics.AllTimingStats()); err != nil {
		debug.Log("metrics: %v", err)
	}
}
