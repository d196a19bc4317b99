package interact

import (
	"sync"

	"github.com/vanderheijden86/kairo/pkg/circuit"
	"github.com/vanderheijden86/kairo/pkg/debug"
)

// Dispatcher owns the interaction state for one mounted circuit view. Input
// handlers call Dispatch; renderers read State. Close releases every
// subscription and turns later dispatches into no-ops.
type Dispatcher struct {
	mu       sync.Mutex
	graph    *circuit.Graph
	state    State
	subs     map[int]func(Activation)
	nextSub  int
	onChange func()
	closed   bool
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithOnChange sets a hook invoked after any dispatch that changed the state.
// Render loops use it as their dirty flag.
func WithOnChange(fn func()) DispatcherOption {
	return func(d *Dispatcher) {
		d.onChange = fn
	}
}

// WithSurface sets the initial surface geometry.
func WithSurface(s Surface) DispatcherOption {
	return func(d *Dispatcher) {
		d.state.Surface = s
	}
}

// NewDispatcher creates a dispatcher over g with empty interaction state.
func NewDispatcher(g *circuit.Graph, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		graph:    g,
		subs:     make(map[int]func(Activation)),
		onChange: func() {},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch applies msg and notifies subscribers of any activation. Handlers run
// to completion before Dispatch returns.
func (d *Dispatcher) Dispatch(msg Msg) Effects {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return Effects{}
	}
	prev := d.state
	next, fx := Update(d.graph, prev, msg)
	d.state = next
	changed := !sameState(prev, next)
	var subs []func(Activation)
	if fx.Activate != nil {
		subs = make([]func(Activation), 0, len(d.subs))
		for i := 0; i < d.nextSub; i++ {
			if fn, ok := d.subs[i]; ok {
				subs = append(subs, fn)
			}
		}
	}
	onChange := d.onChange
	d.mu.Unlock()

	if fx.Activate != nil {
		debug.Log("interact: activate node %d (%s)", fx.Activate.ID, fx.Activate.Label)
		for _, fn := range subs {
			fn(*fx.Activate)
		}
	}
	if changed {
		onChange()
	}
	return fx
}

// Subscribe registers fn for activations and returns its unsubscribe func.
func (d *Dispatcher) Subscribe(fn func(Activation)) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return func() {}
	}
	id := d.nextSub
	d.nextSub++
	d.subs[id] = fn
	return func() {
		d.mu.Lock()
		delete(d.subs, id)
		d.mu.Unlock()
	}
}

// State returns a snapshot of the current interaction state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Graph returns the graph being interacted with.
func (d *Dispatcher) Graph() *circuit.Graph {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.graph
}

// SetGraph swaps the graph, e.g. after the graph file changed on disk. Hover
// is recomputed from the last pointer position; focus and selection survive
// only if their node still exists. A nil graph clears all three.
func (d *Dispatcher) SetGraph(g *circuit.Graph) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.graph = g
	s := d.state
	if g == nil {
		s.Hover, s.Focus, s.Selected = circuit.None, circuit.None, nil
		d.state = s
		onChange := d.onChange
		d.mu.Unlock()
		onChange()
		return
	}
	if s.HasPointer {
		s.Hover = hitAt(g, s.Surface, s.Pointer)
	} else {
		s.Hover = circuit.None
	}
	if id, ok := s.Focus.Get(); ok && !isInteractive(g, id) {
		s.Focus = circuit.None
	}
	if s.Selected != nil {
		if n, ok := g.Node(s.Selected.ID); ok {
			s.Selected = &n
		} else {
			s.Selected = nil
		}
	}
	d.state = s
	onChange := d.onChange
	d.mu.Unlock()

	onChange()
}

// Close unregisters all subscribers and the change hook.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.subs = map[int]func(Activation){}
	d.onChange = func() {}
}

func isInteractive(g *circuit.Graph, id circuit.NodeID) bool {
	if g == nil {
		return false
	}
	for _, candidate := range g.InteractiveIDs() {
		if candidate == id {
			return true
		}
	}
	return false
}

func sameState(a, b State) bool {
	if a.Surface != b.Surface || a.Pointer != b.Pointer || a.HasPointer != b.HasPointer ||
		a.Hover != b.Hover || a.Focus != b.Focus {
		return false
	}
	if (a.Selected == nil) != (b.Selected == nil) {
		return false
	}
	return a.Selected == nil || a.Selected.ID == b.Selected.ID
}
