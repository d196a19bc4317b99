package circuit

import "gonum.org/v1/gonum/spatial/r2"

// FindHit returns the first node, in declaration order, whose circle strictly
// contains p. Overlapping circles therefore resolve to the earlier node, not the
// nearest one. p must be relative to the same center the node offsets use.
func FindHit(p r2.Vec, nodes []Node) OptionalID {
	for _, n := range nodes {
		if r2.Norm(r2.Sub(p, n.Pos())) < n.Radius {
			return Some(n.ID)
		}
	}
	return None
}

// HitTest is FindHit over the graph's nodes.
func (g *Graph) HitTest(p r2.Vec) OptionalID {
	return FindHit(p, g.nodes)
}
