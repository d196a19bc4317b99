package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/kairo/pkg/circuit"
	"github.com/vanderheijden86/kairo/pkg/config"
	"github.com/vanderheijden86/kairo/pkg/debug"
	"github.com/vanderheijden86/kairo/pkg/export"
	"github.com/vanderheijden86/kairo/pkg/interact"
	"github.com/vanderheijden86/kairo/pkg/ui"
	"github.com/vanderheijden86/kairo/pkg/watcher"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	graphPath  string
	noWatch    bool
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "kairo",
		Short: "仮想回路 in the terminal",
		Long: `kairo shows the 仮想回路 page as a terminal UI: an interactive circuit graph
plus the services, portfolio, about and contact sections.

When stdout is not a terminal it prints a plain text frame of the circuit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/kairo/config.yaml)")
	cmd.PersistentFlags().StringVarP(&opts.graphPath, "graph", "g", "", "graph file (.yaml, .yml or .json); built-in graph when empty")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not reload the graph file when it changes")

	cmd.AddCommand(
		newRenderCmd(opts),
		newNodesCmd(opts),
		newHitCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load resolves the config and the graph. path is empty for the built-in
// graph.
func (o *globalOptions) load() (cfg config.Config, g *circuit.Graph, path string, err error) {
	if o.configPath != "" {
		cfg, err = config.LoadFrom(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, nil, "", err
	}

	path = o.graphPath
	if path == "" {
		path = cfg.GraphPath()
	}
	if path == "" {
		return cfg, circuit.DefaultGraph(), "", nil
	}
	g, err = circuit.LoadGraph(path)
	if err != nil {
		return cfg, nil, "", err
	}
	return cfg, g, path, nil
}

func runRoot(cmd *cobra.Command, opts *globalOptions) error {
	cfg, g, path, err := opts.load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return writePlain(out, cfg, g)
	}

	m := ui.NewModel(g, cfg)
	if path != "" && !opts.noWatch {
		w, err := watcher.NewWatcher(path)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			debug.Log("live reload disabled: %v", err)
		} else {
			m = m.WithWatcher(w)
		}
	}
	defer m.Close()

	return runTUIProgram(m, cfg.MouseEnabled())
}

// writePlain prints one text frame and the node list, for pipes and CI logs.
func writePlain(w io.Writer, cfg config.Config, g *circuit.Graph) error {
	pal, err := cfg.Palette()
	if err != nil {
		return err
	}
	s, _ := interact.Update(g, interact.State{}, interact.Resized{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		PixelRatio: 1,
	})
	if err := export.Write(w, export.FormatText, g, s, pal); err != nil {
		return err
	}
	for _, id := range g.InteractiveIDs() {
		n, _ := g.Node(id)
		if _, err := fmt.Fprintf(w, "%-8s %s\n", n.Label, n.Detail); err != nil {
			return err
		}
	}
	return nil
}

func runTUIProgram(m ui.Model, mouse bool) error {
	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}
	if mouse {
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(m, progOpts...)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set KAIRO_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("KAIRO_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
