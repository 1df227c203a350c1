package graph

// Path is a HyperTree whose underlying arc set reduces to a single
// directed simple chain of simple (single-tail) arcs. It is represented
// both by its ordered arc sequence (source to head) and, via the embedded
// HyperTree, by its arc-multiplicity mapping.
type Path struct {
	*HyperTree
	arcs []Arc // ordered source -> head
}

// NewPathFromArcs builds a Path from an ordered arc sequence. Every arc
// must be simple; consecutive arcs must chain head-to-tail. Multiplicities
// compound backward from the last arc (multiplicity 1) so that the chain
// delivers exactly one unit of flow at the final head.
func NewPathFromArcs(arcs []Arc) (*Path, error) {
	if len(arcs) == 0 {
		return nil, ErrNotAChain
	}
	for i, a := range arcs {
		if a.IsHyperArc() {
			return nil, ErrPathRequiresSimpleArcs
		}
		if i+1 < len(arcs) {
			next, _ := arcs[i+1].SingleTail()
			if a.Head() != next.Vertex {
				return nil, ErrNotAChain
			}
		}
	}

	n := len(arcs)
	coeff := make([]float64, n)
	coeff[n-1] = 1
	for i := n - 2; i >= 0; i-- {
		downstream, _ := arcs[i+1].SingleTail()
		coeff[i] = coeff[i+1] * downstream.Multiplier
	}

	entries := make([]ArcMultiplicity, n)
	for i, a := range arcs {
		entries[i] = ArcMultiplicity{Arc: a, Multiplicity: coeff[i]}
	}
	ht, err := NewHyperTree(entries)
	if err != nil {
		return nil, err
	}

	return &Path{HyperTree: ht, arcs: append([]Arc(nil), arcs...)}, nil
}

// Arcs returns the path's arcs in source-to-head order (shadowing
// HyperTree.Arcs, which orders them by arc index).
func (p *Path) Arcs() []Arc { return p.arcs }

// Source returns the path's originating vertex (the tail of its first
// arc).
func (p *Path) Source() Vertex {
	t, _ := p.arcs[0].SingleTail()
	return t.Vertex
}
