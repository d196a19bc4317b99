// Package circuit holds the fixed node/edge graph behind the circuit view,
// together with the two pure queries the interaction layer is built on:
// first-match hit-testing and wrap-around focus cycling.
//
// Coordinates are CSS pixels relative to the drawing surface center. The
// center itself is owned by the caller and recomputed on every resize, so
// nothing in this package knows about surfaces.
package circuit

import (
	"errors"
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/spatial/r2"
)

// NodeID identifies a node. IDs are unique within a Graph.
type NodeID int

// CoreID is the id of the central node in the default graph.
const CoreID NodeID = 0

// Errors returned by NewGraph.
var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrBadRadius     = errors.New("node radius must be positive")
)

// OptionalID is a node id that may be absent. The zero value is None.
type OptionalID struct {
	id  NodeID
	set bool
}

// None is the absent id.
var None = OptionalID{}

// Some wraps id as a present OptionalID.
func Some(id NodeID) OptionalID {
	return OptionalID{id: id, set: true}
}

// Get returns the id and whether it is present.
func (o OptionalID) Get() (NodeID, bool) {
	return o.id, o.set
}

// IsSet reports whether an id is present.
func (o OptionalID) IsSet() bool { return o.set }

// Is reports whether o holds exactly id.
func (o OptionalID) Is(id NodeID) bool {
	return o.set && o.id == id
}

func (o OptionalID) String() string {
	if !o.set {
		return "none"
	}
	return strconv.Itoa(int(o.id))
}

// Node is a labeled circle positioned relative to the surface center.
type Node struct {
	ID     NodeID  `json:"id" yaml:"id"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Radius float64 `json:"r" yaml:"r"`
	Label  string  `json:"label" yaml:"label"`
	Detail string  `json:"detail" yaml:"detail"`
}

// Pos returns the node center as a vector.
func (n Node) Pos() r2.Vec {
	return r2.Vec{X: n.X, Y: n.Y}
}

// Edge is an undirected connection between two node centers.
type Edge struct {
	From NodeID `json:"from" yaml:"from"`
	To   NodeID `json:"to" yaml:"to"`
}

// Graph is an immutable set of nodes and edges. Node and edge order is the
// declaration order and is significant: hit-testing is first-match and edges
// are drawn in list order.
type Graph struct {
	nodes       []Node
	edges       []Edge
	core        NodeID
	index       map[NodeID]int
	interactive []NodeID
}

// NewGraph validates nodes and builds the lookup index. Edges that reference
// unknown ids are kept; they are skipped when drawn rather than rejected here.
func NewGraph(nodes []Node, edges []Edge, core NodeID) (*Graph, error) {
	g := &Graph{
		nodes: append([]Node(nil), nodes...),
		edges: append([]Edge(nil), edges...),
		core:  core,
		index: make(map[NodeID]int, len(nodes)),
	}
	for i, n := range g.nodes {
		if _, dup := g.index[n.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateNode, n.ID)
		}
		if !(n.Radius > 0) {
			return nil, fmt.Errorf("%w: node %d has radius %v", ErrBadRadius, n.ID, n.Radius)
		}
		g.index[n.ID] = i
		if n.ID != core {
			g.interactive = append(g.interactive, n.ID)
		}
	}
	return g, nil
}

// Nodes returns the nodes in declaration order. The slice must not be modified.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edges in declaration order. The slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// CoreID returns the id of the designated core node.
func (g *Graph) CoreID() NodeID { return g.core }

// InteractiveIDs returns the ids eligible for keyboard focus: every node except
// the core, in model order.
func (g *Graph) InteractiveIDs() []NodeID { return g.interactive }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Node looks up a node by id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Endpoints resolves both ends of e. ok is false when either id is unknown.
func (g *Graph) Endpoints(e Edge) (from, to Node, ok bool) {
	from, okFrom := g.Node(e.From)
	to, okTo := g.Node(e.To)
	return from, to, okFrom && okTo
}

// DanglingEdges returns the edges with at least one unknown endpoint.
func (g *Graph) DanglingEdges() []Edge {
	var out []Edge
	for _, e := range g.edges {
		if _, _, ok := g.Endpoints(e); !ok {
			out = append(out, e)
		}
	}
	return out
}

// Components returns the connected components of the graph, ignoring dangling
// edges. Each component lists ids in declaration order; components are ordered
// by their first node.
func (g *Graph) Components() [][]NodeID {
	ug := simple.NewUndirectedGraph()
	for _, n := range g.nodes {
		ug.AddNode(simple.Node(int64(n.ID)))
	}
	for _, e := range g.edges {
		if _, _, ok := g.Endpoints(e); !ok || e.From == e.To {
			continue
		}
		ug.SetEdge(ug.NewEdge(simple.Node(int64(e.From)), simple.Node(int64(e.To))))
	}

	member := make(map[NodeID]int, len(g.nodes))
	for ci, comp := range topo.ConnectedComponents(ug) {
		for _, n := range comp {
			member[NodeID(n.ID())] = ci
		}
	}

	var out [][]NodeID
	slot := make(map[int]int)
	for _, n := range g.nodes {
		ci := member[n.ID]
		i, ok := slot[ci]
		if !ok {
			i = len(out)
			slot[ci] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], n.ID)
	}
	return out
}

// Degree returns the number of drawable edges touching id.
func (g *Graph) Degree(id NodeID) int {
	var d int
	for _, e := range g.edges {
		if _, _, ok := g.Endpoints(e); !ok {
			continue
		}
		if e.From == id || e.To == id {
			d++
		}
	}
	return d
}
