package colgen

import (
	"fmt"
	"strings"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/mip"
	"github.com/arcflow/arcflow/problem"
)

// BasisKind selects what a single RMP column represents.
type BasisKind int

const (
	// PathFlow columns are whole hyper-trees: one RMP variable carries a
	// commodity's flow along an entire source-to-sink delivery tree.
	PathFlow BasisKind = iota
	// ArcFlow columns are single arcs: pricing's candidate tree is split
	// into one single-arc column per constituent arc before admission.
	ArcFlow
)

// Column is one (hyper-tree, commodity, variable-type, cost) quadruple
// admitted into the RMP, together with the RMP variable handle it was
// given and the bookkeeping the retention policy needs.
type Column struct {
	Tree      *graph.HyperTree
	Commodity problem.Commodity
	VarType   graph.VarType
	Cost      float64

	varHandle  mip.VarHandle
	zeroStreak int
}

// columnKey is the identity colgen uses for "an equal column already
// exists": a hyper-tree's arc set is not itself a comparable Go value (Arc
// carries a tail slice), so admission de-duplicates on a canonical string
// built from the commodity index and the tree's sorted (arc index,
// multiplicity) pairs.
func columnKey(commodityIndex int, tree *graph.HyperTree) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|", commodityIndex)
	for _, a := range tree.Arcs() { // Arcs() is already arc-index sorted.
		fmt.Fprintf(&b, "%d:%g;", a.Index(), tree.Multiplicity(a))
	}
	return b.String()
}

// trueCost computes a tree's real (non-reduced) objective contribution:
// the sum, over its arcs, of the arc's own cost weighted by the tree's
// multiplicity on that arc.
func trueCost(p *problem.Problem, tree *graph.HyperTree) float64 {
	var cost float64
	for _, a := range tree.Arcs() {
		cost += p.Cost(a) * tree.Multiplicity(a)
	}
	return cost
}

// allIntegerArcs reports whether every arc in tree is declared Integer,
// the rule this package uses to decide a path-flow column's own
// integrality (see DESIGN.md's resolution of the Column var-type open
// question).
func allIntegerArcs(p *problem.Problem, tree *graph.HyperTree) bool {
	for _, a := range tree.Arcs() {
		if p.VarType(a) != graph.Integer {
			return false
		}
	}
	return true
}
