package network

import (
	"fmt"
	"sort"

	"github.com/arcflow/arcflow/containers"
	"github.com/arcflow/arcflow/graph"
)

// Network is an ordered vertex and arc set with derived membership,
// adjacency and shape information.
type Network struct {
	vertices []graph.Vertex
	arcs     []graph.Arc

	hasVertex *containers.IndexedMap[graph.Vertex, bool]
	hasArc    *containers.IndexedMap[graph.Arc, bool]
	outArcs   *containers.IndexedMap[graph.Vertex, []graph.Arc]

	isHyper bool
}

// New builds a Network from an ordered vertex and arc list, validating
// that every arc endpoint is a contained vertex and deriving the
// outgoing-arc index and hyper-graph flag.
func New(vertices []graph.Vertex, arcs []graph.Arc) (*Network, error) {
	hasVertex := containers.BuildIndexedMap(vertices, func(graph.Vertex) bool { return true }, false)

	outArcs := containers.NewIndexedMap[graph.Vertex, []graph.Arc](len(vertices), nil)
	isHyper := false
	for _, a := range arcs {
		if !hasVertex.Get(a.Head()) {
			return nil, fmt.Errorf("network: arc %d: %w", a.Index(), ErrDanglingArc)
		}
		for _, tl := range a.Tails() {
			if !hasVertex.Get(tl.Vertex) {
				return nil, fmt.Errorf("network: arc %d: %w", a.Index(), ErrDanglingArc)
			}
			_ = outArcs.Set(tl.Vertex, append(outArcs.Get(tl.Vertex), a)) // tl.Vertex was already checked against hasVertex above; cannot fail.
		}
		if a.IsHyperArc() {
			isHyper = true
		}
	}

	hasArc := containers.BuildIndexedMap(arcs, func(graph.Arc) bool { return true }, false)

	return &Network{
		vertices:  append([]graph.Vertex(nil), vertices...),
		arcs:      append([]graph.Arc(nil), arcs...),
		hasVertex: hasVertex,
		hasArc:    hasArc,
		outArcs:   outArcs,
		isHyper:   isHyper,
	}, nil
}

// Vertices returns the network's vertex set in construction order.
func (n *Network) Vertices() []graph.Vertex { return n.vertices }

// Arcs returns the network's arc set in construction order.
func (n *Network) Arcs() []graph.Arc { return n.arcs }

// HasVertex reports whether v belongs to the network, in O(1).
func (n *Network) HasVertex(v graph.Vertex) bool { return n.hasVertex.Get(v) }

// HasArc reports whether a belongs to the network, in O(1).
func (n *Network) HasArc(a graph.Arc) bool { return n.hasArc.Get(a) }

// OutArcs returns the arcs for which v is a tail. A multi-tail arc appears
// in the out-list of every one of its tails.
func (n *Network) OutArcs(v graph.Vertex) []graph.Arc { return n.outArcs.Get(v) }

// IsHyperGraph reports whether any arc in the network has two or more
// tails.
func (n *Network) IsHyperGraph() bool { return n.isHyper }

// Filter produces a new Network sharing the parent's vertex set, with the
// arc set restricted to those satisfying predicate. It never touches
// per-arc metadata: callers keep using the parent Problem's arrays, keyed
// by the (unchanged) arc indices that survive the filter.
func (n *Network) Filter(predicate func(graph.Arc) bool) (*Network, error) {
	var kept []graph.Arc
	for _, a := range n.arcs {
		if predicate(a) {
			kept = append(kept, a)
		}
	}
	return New(n.vertices, kept)
}

// TopologicalSort produces a vertex order, seeded from the given source
// vertices, such that for every arc every tail precedes the head. It
// fails fatally if the arc set contains a cycle, since pricing and
// branch-and-bound both assume acyclicity.
func (n *Network) TopologicalSort(sources []graph.Vertex) ([]graph.Vertex, error) {
	visited := containers.NewIndexedMap[graph.Vertex, bool](len(n.vertices), false)
	onStack := containers.NewIndexedMap[graph.Vertex, bool](len(n.vertices), false)
	var postorder []graph.Vertex

	var visit func(v graph.Vertex) error
	visit = func(v graph.Vertex) error {
		_ = visited.Set(v, true) // v.Index() is always >= 0 by construction; cannot fail.
		_ = onStack.Set(v, true) // v.Index() is always >= 0 by construction; cannot fail.
		for _, a := range n.outArcs.Get(v) {
			h := a.Head()
			if onStack.Get(h) {
				return fmt.Errorf("network: vertex %d: %w", h.Index(), ErrCycleDetected)
			}
			if !visited.Get(h) {
				if err := visit(h); err != nil {
					return err
				}
			}
		}
		_ = onStack.Set(v, false) // v.Index() is always >= 0 by construction; cannot fail.
		postorder = append(postorder, v)
		return nil
	}

	for _, v := range sources {
		if !n.hasVertex.Get(v) {
			continue
		}
		if !visited.Get(v) {
			if err := visit(v); err != nil {
				return nil, err
			}
		}
	}
	// Cover the rest of the network so the order is total, not just the
	// portion reachable from sources.
	rest := append([]graph.Vertex(nil), n.vertices...)
	sort.Slice(rest, func(i, j int) bool { return rest[i].Index() < rest[j].Index() })
	for _, v := range rest {
		if !visited.Get(v) {
			if err := visit(v); err != nil {
				return nil, err
			}
		}
	}

	order := make([]graph.Vertex, len(postorder))
	for i, v := range postorder {
		order[len(postorder)-1-i] = v
	}
	return order, nil
}
