package watcher

import (
	"context"

	"github.com/vanderheijden86/kairo/pkg/circuit"
	"github.com/vanderheijden86/kairo/pkg/debug"
)

// WatchGraph reloads the graph file at path after every change and hands the
// result to fn until ctx is done. Parse errors are passed through; the caller
// decides whether to keep the previous graph.
func WatchGraph(ctx context.Context, path string, fn func(*circuit.Graph, error), opts ...Option) error {
	opts = append(opts, WithOnError(func(err error) { fn(nil, err) }))
	w, err := NewWatcher(path, opts...)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changed():
			g, err := circuit.LoadGraph(w.Path())
			if err != nil {
				debug.Log("watcher: reload %s: %v", w.Path(), err)
			}
			fn(g, err)
		}
	}
}
