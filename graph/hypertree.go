package graph

import "sort"

// HyperTree is an aggregated, resource-compatible set of arcs with
// non-negative multiplicities satisfying a net-flow balance: exactly one
// vertex (the head) has net inflow +1, vertices that are never an incoming
// target (the tails) have non-zero net outflow, and every other vertex
// (intermediate) balances to exactly 0.
//
// A HyperTree is the unit of column generation: every RMP column is one
// HyperTree against a commodity.
type HyperTree struct {
	mult map[int]float64 // arc index -> multiplicity
	arcs map[int]Arc     // arc index -> Arc, for head/tail lookup

	head    Vertex
	tailMul map[int]float64 // vertex index -> aggregated consumption at that tail
}

// ArcMultiplicity pairs an arc with its multiplicity in a hyper-tree. Arc
// carries a tail list and so is not a comparable Go type; hyper-trees are
// built from a slice of these pairs rather than a map keyed by Arc.
type ArcMultiplicity struct {
	Arc          Arc
	Multiplicity float64
}

// NewHyperTree validates entries against the balance invariant and returns
// the resulting HyperTree. Zero-multiplicity entries are dropped before
// validation (they do not participate in the tree).
func NewHyperTree(entries []ArcMultiplicity) (*HyperTree, error) {
	mult := make(map[int]float64, len(entries))
	arcs := make(map[int]Arc, len(entries))
	for _, e := range entries {
		a, m := e.Arc, e.Multiplicity
		if m < 0 {
			return nil, ErrNegativeMultiplicity
		}
		if m == 0 {
			continue
		}
		mult[a.Index()] = m
		arcs[a.Index()] = a
	}

	balance := map[int]float64{}
	isIncomingTarget := map[int]bool{}
	vertexOf := map[int]Vertex{}

	for idx, m := range mult {
		a := arcs[idx]
		h := a.Head()
		vertexOf[h.Index()] = h
		balance[h.Index()] += m
		isIncomingTarget[h.Index()] = true
		for _, t := range a.Tails() {
			vertexOf[t.Vertex.Index()] = t.Vertex
			balance[t.Vertex.Index()] -= m * t.Multiplier
		}
	}

	var head Vertex
	headSeen := false
	tailMul := map[int]float64{}

	for vi, v := range vertexOf {
		b := balance[vi]
		if isIncomingTarget[vi] {
			switch {
			case b == 1:
				if headSeen {
					return nil, ErrUnbalancedHyperTree
				}
				headSeen = true
				head = v
			case b == 0:
				// intermediate vertex, balanced.
			default:
				return nil, ErrUnbalancedHyperTree
			}
		} else {
			if b == 0 {
				return nil, ErrUnbalancedHyperTree
			}
			tailMul[vi] = -b
		}
	}
	if !headSeen {
		return nil, ErrUnbalancedHyperTree
	}

	return &HyperTree{mult: mult, arcs: arcs, head: head, tailMul: tailMul}, nil
}

// Head returns the tree's unique net-inflow-1 vertex.
func (t *HyperTree) Head() Vertex { return t.head }

// Tails returns the tree's tail vertices (vertices never targeted by an
// incoming arc of the tree), in a stable, index-sorted order.
func (t *HyperTree) Tails() []Vertex {
	out := make([]Vertex, 0, len(t.tailMul))
	idxs := make([]int, 0, len(t.tailMul))
	for vi := range t.tailMul {
		idxs = append(idxs, vi)
	}
	sort.Ints(idxs)
	seen := map[int]Vertex{}
	for idx := range t.arcs {
		for _, tl := range t.arcs[idx].Tails() {
			seen[tl.Vertex.Index()] = tl.Vertex
		}
	}
	for _, vi := range idxs {
		out = append(out, seen[vi])
	}
	return out
}

// TailMultiplier returns the aggregated multiplier the tree consumes at
// tail v — the number of units of v's resource required to deliver one
// unit of flow at the head — or 0 and false if v is not a tail of t.
func (t *HyperTree) TailMultiplier(v Vertex) (float64, bool) {
	m, ok := t.tailMul[v.Index()]
	return m, ok
}

// Arcs returns the arcs participating in the tree, in arc-index order.
func (t *HyperTree) Arcs() []Arc {
	idxs := make([]int, 0, len(t.arcs))
	for idx := range t.arcs {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	out := make([]Arc, len(idxs))
	for i, idx := range idxs {
		out[i] = t.arcs[idx]
	}
	return out
}

// Multiplicity returns the tree's coefficient on arc a, or 0 if a is not
// in the tree.
func (t *HyperTree) Multiplicity(a Arc) float64 {
	return t.mult[a.Index()]
}

// ContainsOnly reports whether every arc in the tree satisfies predicate;
// used by column admission to check that a priced column's arcs still
// exist in the current (possibly RCVF-filtered) network.
func (t *HyperTree) ContainsOnly(predicate func(Arc) bool) bool {
	for _, a := range t.arcs {
		if !predicate(a) {
			return false
		}
	}
	return true
}

// Equal reports whether t and other have identical arc-multiplicity
// mappings, the defined equality for hyper-trees.
func (t *HyperTree) Equal(other *HyperTree) bool {
	if other == nil || len(t.mult) != len(other.mult) {
		return false
	}
	for idx, m := range t.mult {
		om, ok := other.mult[idx]
		if !ok || om != m {
			return false
		}
	}
	return true
}

// CostAt computes, for every vertex reachable in the tree, the cost of
// delivering flow from that vertex to the head, given a per-arc cost
// oracle and a per-tail terminal cost oracle. The cost at a non-tail
// vertex v is (arcCost(a) + sum tailCost(t)*mu(a,t)) * m(a), where a is
// v's unique incoming tree arc, mu is its per-tail multiplier and m(a) is
// v's arc multiplicity in the tree; the cost at a tail is tailCost(v).
func (t *HyperTree) CostAt(arcCost func(Arc) float64, tailCost func(Vertex) float64) map[int]float64 {
	memo := map[int]float64{}
	// incomingArc[v.Index()] = the tree arc whose head is v.
	incomingArc := map[int]Arc{}
	for idx := range t.arcs {
		a := t.arcs[idx]
		incomingArc[a.Head().Index()] = a
	}

	var costOf func(v Vertex) float64
	costOf = func(v Vertex) float64 {
		if c, ok := memo[v.Index()]; ok {
			return c
		}
		a, ok := incomingArc[v.Index()]
		if !ok {
			c := tailCost(v)
			memo[v.Index()] = c
			return c
		}
		sum := arcCost(a)
		for _, tl := range a.Tails() {
			sum += costOf(tl.Vertex) * tl.Multiplier
		}
		m := t.mult[a.Index()]
		c := sum * m
		memo[v.Index()] = c
		return c
	}

	for vi, v := range func() map[int]Vertex {
		vs := map[int]Vertex{}
		for idx := range t.arcs {
			a := t.arcs[idx]
			vs[a.Head().Index()] = a.Head()
			for _, tl := range a.Tails() {
				vs[tl.Vertex.Index()] = tl.Vertex
			}
		}
		return vs
	}() {
		memo[vi] = costOf(v)
	}
	return memo
}
