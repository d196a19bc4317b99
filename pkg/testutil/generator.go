// Package testutil provides circuit graph fixtures and assertions for tests.
// All generators are deterministic for a given seed.
package testutil

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vanderheijden86/kairo/pkg/circuit"
)

// GeneratorConfig controls graph generation.
type GeneratorConfig struct {
	Seed       int64   // random seed (0 = 42)
	RingRadius float64 // distance of satellites from the core
	CoreRadius float64
	NodeRadius float64
}

// DefaultConfig matches the proportions of the built-in graph.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:       42,
		RingRadius: 150,
		CoreRadius: 40,
		NodeRadius: 25,
	}
}

// Generator creates graphs with various topologies.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	def := DefaultConfig()
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.RingRadius <= 0 {
		cfg.RingRadius = def.RingRadius
	}
	if cfg.CoreRadius <= 0 {
		cfg.CoreRadius = def.CoreRadius
	}
	if cfg.NodeRadius <= 0 {
		cfg.NodeRadius = def.NodeRadius
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

func (g *Generator) core() circuit.Node {
	return circuit.Node{ID: circuit.CoreID, Radius: g.cfg.CoreRadius, Label: "CORE", Detail: "core"}
}

func satellite(id int, x, y, r float64) circuit.Node {
	return circuit.Node{
		ID:     circuit.NodeID(id),
		X:      x,
		Y:      y,
		Radius: r,
		Label:  fmt.Sprintf("n%d", id),
		Detail: fmt.Sprintf("detail of n%d", id),
	}
}

// ringNodes places n satellites clockwise from 12 o'clock.
func (g *Generator) ringNodes(n int) []circuit.Node {
	nodes := []circuit.Node{g.core()}
	for i := 0; i < n; i++ {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		nodes = append(nodes, satellite(i+1, g.cfg.RingRadius*math.Cos(a), g.cfg.RingRadius*math.Sin(a), g.cfg.NodeRadius))
	}
	return nodes
}

// Ring is the built-in shape with n satellites: spokes plus the outer ring.
func (g *Generator) Ring(n int) *circuit.Graph {
	var edges []circuit.Edge
	for i := 1; i <= n; i++ {
		edges = append(edges, circuit.Edge{From: circuit.CoreID, To: circuit.NodeID(i)})
	}
	for i := 1; i <= n && n > 1; i++ {
		edges = append(edges, circuit.Edge{From: circuit.NodeID(i), To: circuit.NodeID(i%n + 1)})
	}
	return mustGraph(g.ringNodes(n), edges)
}

// Star has n satellites connected only to the core.
func (g *Generator) Star(n int) *circuit.Graph {
	var edges []circuit.Edge
	for i := 1; i <= n; i++ {
		edges = append(edges, circuit.Edge{From: circuit.CoreID, To: circuit.NodeID(i)})
	}
	return mustGraph(g.ringNodes(n), edges)
}

// Disconnected has n satellites and no edges at all.
func (g *Generator) Disconnected(n int) *circuit.Graph {
	return mustGraph(g.ringNodes(n), nil)
}

// Chain lays n satellites on a horizontal line right of the core, each
// connected to the next.
func (g *Generator) Chain(n int) *circuit.Graph {
	nodes := []circuit.Node{g.core()}
	step := 2*g.cfg.NodeRadius + 10
	var edges []circuit.Edge
	prev := circuit.CoreID
	for i := 1; i <= n; i++ {
		nodes = append(nodes, satellite(i, g.cfg.CoreRadius+float64(i)*step, 0, g.cfg.NodeRadius))
		edges = append(edges, circuit.Edge{From: prev, To: circuit.NodeID(i)})
		prev = circuit.NodeID(i)
	}
	return mustGraph(nodes, edges)
}

// Overlapping stacks two satellites at the same point, so hit-testing must
// pick the first declared one.
func (g *Generator) Overlapping() *circuit.Graph {
	nodes := []circuit.Node{
		g.core(),
		satellite(1, g.cfg.RingRadius, 0, g.cfg.NodeRadius),
		satellite(2, g.cfg.RingRadius, 0, g.cfg.NodeRadius),
	}
	return mustGraph(nodes, []circuit.Edge{{From: 1, To: 2}})
}

// Random scatters n satellites inside the ring and adds each possible
// satellite pair as an edge with probability p.
func (g *Generator) Random(n int, p float64) *circuit.Graph {
	nodes := []circuit.Node{g.core()}
	for i := 1; i <= n; i++ {
		x := (g.rng.Float64()*2 - 1) * g.cfg.RingRadius
		y := (g.rng.Float64()*2 - 1) * g.cfg.RingRadius
		r := g.cfg.NodeRadius * (0.5 + g.rng.Float64())
		nodes = append(nodes, satellite(i, x, y, r))
	}
	var edges []circuit.Edge
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			if g.rng.Float64() < p {
				edges = append(edges, circuit.Edge{From: circuit.NodeID(i), To: circuit.NodeID(j)})
			}
		}
	}
	return mustGraph(nodes, edges)
}

func mustGraph(nodes []circuit.Node, edges []circuit.Edge) *circuit.Graph {
	g, err := circuit.NewGraph(nodes, edges, circuit.CoreID)
	if err != nil {
		panic("testutil: " + err.Error())
	}
	return g
}
