package shortestpath

import (
	"fmt"
	"math"

	"github.com/arcflow/arcflow/containers"
	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/network"
)

// ShortestPathGenerator caches a network's topological order, its
// incoming-arc index and a reusable label buffer so that repeated pricing
// solves with new arc costs neither re-sort nor reallocate.
type ShortestPathGenerator struct {
	net   *network.Network
	order []graph.Vertex

	// inArcs[v.Index()] lists the arcs with head v, in construction order.
	inArcs *containers.IndexedMap[graph.Vertex, []graph.Arc]

	forward  *containers.IndexedMap[graph.Vertex, Label]
	backward *containers.IndexedMap[graph.Vertex, Label]
}

// NewShortestPathGenerator computes net's topological order once and
// allocates the label buffers the generator will reuse across solves.
func NewShortestPathGenerator(net *network.Network) (*ShortestPathGenerator, error) {
	order, err := net.TopologicalSort(nil)
	if err != nil {
		return nil, err
	}

	n := len(net.Vertices())
	inArcs := containers.NewIndexedMap[graph.Vertex, []graph.Arc](n, nil)
	for _, a := range net.Arcs() {
		_ = inArcs.Set(a.Head(), append(inArcs.Get(a.Head()), a)) // a.Head() is always a valid vertex index; cannot fail.
	}

	return &ShortestPathGenerator{
		net:      net,
		order:    order,
		inArcs:   inArcs,
		forward:  containers.NewIndexedMap[graph.Vertex, Label](n, unreachedLabel),
		backward: containers.NewIndexedMap[graph.Vertex, Label](n, unreachedLabel),
	}, nil
}

// Solve runs the forward (and, for non-hyper networks, backward) label
// propagation from source to sink under the given arc-cost function,
// reusing the generator's buffers.
func (g *ShortestPathGenerator) Solve(source, sink graph.Vertex, cost func(graph.Arc) float64) *ShortestPathSolution {
	g.forward.Reset()
	_ = g.forward.Set(source, Label{Value: 0, Hops: 0}) // source is always a valid vertex index; cannot fail.
	for _, v := range g.order {
		if v == source {
			continue
		}
		best := unreachedLabel
		for _, a := range g.inArcs.Get(v) {
			candidate := g.forwardCandidate(a, cost)
			if dominates(candidate, best) {
				best = candidate
			}
		}
		if best.HasArc {
			_ = g.forward.Set(v, best) // v is always a valid vertex index; cannot fail.
		}
	}

	isHyper := g.net.IsHyperGraph()
	if !isHyper {
		g.backward.Reset()
		_ = g.backward.Set(sink, Label{Value: 0, Hops: 0}) // sink is always a valid vertex index; cannot fail.
		for i := len(g.order) - 1; i >= 0; i-- {
			v := g.order[i]
			if v == sink {
				continue
			}
			best := unreachedLabel
			for _, a := range g.net.OutArcs(v) {
				tail, ok := a.SingleTail()
				if !ok {
					continue
				}
				if tail.Vertex != v {
					continue
				}
				headLabel := g.backward.Get(a.Head())
				if math.IsInf(headLabel.Value, 1) {
					continue
				}
				candidate := Label{
					Value:       (headLabel.Value + cost(a)) / tail.Multiplier,
					Hops:        headLabel.Hops + 1,
					EnteringArc: a,
					HasArc:      true,
				}
				if dominates(candidate, best) {
					best = candidate
				}
			}
			if best.HasArc {
				_ = g.backward.Set(v, best) // v is always a valid vertex index; cannot fail.
			}
		}
	}

	return &ShortestPathSolution{
		source: source, sink: sink, isHyper: isHyper,
		forward: g.forward, backward: g.backward,
	}
}

// forwardCandidate evaluates arc a's contribution to its head's forward
// label: cost(a) plus the multiplier-weighted sum of its tails' forward
// labels, or the unreached label if any tail is itself unreached.
func (g *ShortestPathGenerator) forwardCandidate(a graph.Arc, cost func(graph.Arc) float64) Label {
	value := cost(a)
	hops := 1
	for _, tl := range a.Tails() {
		label := g.forward.Get(tl.Vertex)
		if math.IsInf(label.Value, 1) {
			return unreachedLabel
		}
		value += label.Value * tl.Multiplier
		hops += label.Hops
	}
	return Label{Value: value, Hops: hops, EnteringArc: a, HasArc: true}
}

// MinUnitFlowCost returns the minimum cost among unit-delivering
// source-to-sink flows that use exactly one unit of arc a. Defined only
// over non-hyper networks.
func (s *ShortestPathSolution) MinUnitFlowCost(a graph.Arc, cost func(graph.Arc) float64) (float64, error) {
	if s.isHyper {
		return 0, ErrHyperGraphUnsupported
	}
	total := s.backward.Get(a.Head()).Value + cost(a)
	for _, tl := range a.Tails() {
		total += s.forward.Get(tl.Vertex).Value * tl.Multiplier
	}
	return total, nil
}

// MinUnitFlowPath returns the path realizing MinUnitFlowCost(a): the
// upstream chain from source to a's tail (via forward entering arcs),
// followed by a itself, followed by the downstream chain from a's head to
// sink (via backward entering arcs).
func (s *ShortestPathSolution) MinUnitFlowPath(a graph.Arc) (*graph.Path, error) {
	if s.isHyper {
		return nil, ErrHyperGraphUnsupported
	}
	tail, ok := a.SingleTail()
	if !ok {
		return nil, ErrHyperGraphUnsupported
	}

	upstream, err := s.walkForward(tail.Vertex)
	if err != nil {
		return nil, err
	}
	downstream, err := s.walkBackward(a.Head())
	if err != nil {
		return nil, err
	}

	arcs := make([]graph.Arc, 0, len(upstream)+1+len(downstream))
	arcs = append(arcs, upstream...)
	arcs = append(arcs, a)
	arcs = append(arcs, downstream...)
	return graph.NewPathFromArcs(arcs)
}

// walkForward collects the arc chain from the solution's source to v,
// source-to-head order, by following forward entering arcs backward from
// v.
func (s *ShortestPathSolution) walkForward(v graph.Vertex) ([]graph.Arc, error) {
	var reversed []graph.Arc
	cur := v
	seen := map[int]bool{}
	for cur != s.source {
		label := s.forward.Get(cur)
		if !label.HasArc {
			return nil, fmt.Errorf("shortestpath: vertex %d: %w", cur.Index(), ErrUnreached)
		}
		a := label.EnteringArc
		if seen[a.Index()] {
			return nil, fmt.Errorf("shortestpath: arc %d: %w", a.Index(), ErrCycleInLabels)
		}
		seen[a.Index()] = true
		reversed = append(reversed, a)
		tail, _ := a.SingleTail()
		cur = tail.Vertex
	}
	arcs := make([]graph.Arc, len(reversed))
	for i, a := range reversed {
		arcs[len(reversed)-1-i] = a
	}
	return arcs, nil
}

// walkBackward collects the arc chain from v to the solution's sink,
// head-to-sink order, by following backward entering arcs forward from v.
func (s *ShortestPathSolution) walkBackward(v graph.Vertex) ([]graph.Arc, error) {
	var arcs []graph.Arc
	cur := v
	seen := map[int]bool{}
	for cur != s.sink {
		label := s.backward.Get(cur)
		if !label.HasArc {
			return nil, fmt.Errorf("shortestpath: vertex %d: %w", cur.Index(), ErrUnreached)
		}
		a := label.EnteringArc
		if seen[a.Index()] {
			return nil, fmt.Errorf("shortestpath: arc %d: %w", a.Index(), ErrCycleInLabels)
		}
		seen[a.Index()] = true
		arcs = append(arcs, a)
		cur = a.Head()
	}
	return arcs, nil
}

// GetOptimalPath reconstructs, for a hyper-graph solve, the hyper-tree
// realizing the forward label at t: a DFS from t following each visited
// vertex's forward entering arc, accumulating the per-tail multiplicity
// required to deliver one unit at t. The DFS revisits a vertex once per
// path to it through the tree, so it is linear in the tree's arcs for a
// simple chain but can retrace shared ancestors once per downstream
// consumer on a wide diamond-shaped tree.
func GetOptimalPath(s *ShortestPathSolution, t graph.Vertex) (*graph.HyperTree, error) {
	entries := map[int]graph.ArcMultiplicity{}

	var visit func(v graph.Vertex, required float64) error
	visit = func(v graph.Vertex, required float64) error {
		label := s.forward.Get(v)
		if !label.HasArc {
			return nil // v is a genuine source of the tree.
		}
		a := label.EnteringArc
		if existing, ok := entries[a.Index()]; ok {
			entries[a.Index()] = graph.ArcMultiplicity{Arc: a, Multiplicity: existing.Multiplicity + required}
		} else {
			entries[a.Index()] = graph.ArcMultiplicity{Arc: a, Multiplicity: required}
		}
		for _, tl := range a.Tails() {
			if err := visit(tl.Vertex, required*tl.Multiplier); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(t, 1); err != nil {
		return nil, err
	}

	list := make([]graph.ArcMultiplicity, 0, len(entries))
	for _, e := range entries {
		list = append(list, e)
	}
	return graph.NewHyperTree(list)
}
