package colgen

import (
	"math"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/problem"
	"github.com/arcflow/arcflow/shortestpath"
	"github.com/arcflow/arcflow/solution"
)

// PricedCandidate is one basis-projected column pricing wants admitted,
// still carrying its true (non-reduced) cost is left to the caller via
// trueCost, since admission needs that for the RMP objective coefficient.
type PricedCandidate struct {
	Commodity problem.Commodity
	Tree      *graph.HyperTree
}

// price runs one pricing pass: per commodity, a shortest-path solve under
// the dual's per-arc reduced cost, the optimal delivery tree if its
// reduced cost beats minRCToStop, and (for multiPath over a non-hyper
// network) one supplementary unit-flow path per side-constraint row whose
// own reduced cost also beats the threshold. It returns every candidate
// already projected to the requested basis (one single-arc tree per arc
// under Arc-Flow), plus each commodity's optimal label value
// (costPerCommodity) and shortest-path solution (for the Lagrangian
// per-arc bound), both needed by the caller regardless of whether pricing
// found anything to admit.
func price(
	p *problem.Problem,
	dual *solution.DualSolution,
	generators map[int]*shortestpath.ShortestPathGenerator,
	basis BasisKind,
	multiPath bool,
	minRCToStop float64,
) ([]PricedCandidate, map[int]float64, map[int]*shortestpath.ShortestPathSolution, error) {
	rcFn := func(a graph.Arc) float64 { return dual.ReducedCostOfArc(p, a) }

	arcIndex := make(map[int]graph.Arc, len(p.Network().Arcs()))
	for _, a := range p.Network().Arcs() {
		arcIndex[a.Index()] = a
	}

	var candidates []PricedCandidate
	costPerCommodity := map[int]float64{}
	solutions := map[int]*shortestpath.ShortestPathSolution{}

	for _, c := range p.Commodities() {
		gen, ok := generators[c.Index()]
		if !ok {
			continue
		}
		sol := gen.Solve(c.Source(), c.Sink(), rcFn)
		solutions[c.Index()] = sol

		optimalLabel := sol.OptimalCost()
		costPerCommodity[c.Index()] = optimalLabel
		deltaCommodity := dual.DemandDual(c) + dual.CapacityDual(c)

		if optimalLabel-deltaCommodity < minRCToStop {
			tree, err := shortestpath.GetOptimalPath(sol, c.Sink())
			if err == nil {
				if err := appendProjected(basis, c, tree, &candidates); err != nil {
					return nil, nil, nil, err
				}
			}
		}

		if multiPath && !sol.IsHyperGraph() {
			for _, row := range p.Constraints() {
				a, unitCost, found := bestArcForRow(arcIndex, sol, row, rcFn)
				if !found {
					continue
				}
				if unitCost-deltaCommodity >= minRCToStop {
					continue
				}
				path, err := sol.MinUnitFlowPath(a)
				if err != nil {
					continue
				}
				if err := appendProjected(basis, c, path.HyperTree, &candidates); err != nil {
					return nil, nil, nil, err
				}
			}
		}
	}

	return candidates, costPerCommodity, solutions, nil
}

// bestArcForRow finds the arc referenced by row with the cheapest
// MinUnitFlowCost under sol, the arc pricing's multi-path step uses to
// generate a supplementary column covering that side constraint well.
func bestArcForRow(arcIndex map[int]graph.Arc, sol *shortestpath.ShortestPathSolution, row problem.ConstraintRow, rcFn func(graph.Arc) float64) (graph.Arc, float64, bool) {
	best := math.Inf(1)
	var bestArc graph.Arc
	found := false
	for _, ai := range row.Arcs() {
		a, ok := arcIndex[ai]
		if !ok {
			continue
		}
		cost, err := sol.MinUnitFlowCost(a, rcFn)
		if err != nil {
			continue
		}
		if cost < best {
			best = cost
			bestArc = a
			found = true
		}
	}
	return bestArc, best, found
}

// appendProjected splits tree into one or more basis-native candidate
// trees (the whole tree for Path-Flow, one single-arc tree per arc for
// Arc-Flow) and appends one PricedCandidate per projected tree.
func appendProjected(basis BasisKind, c problem.Commodity, tree *graph.HyperTree, out *[]PricedCandidate) error {
	projected, err := projectToBasis(tree, basis)
	if err != nil {
		return err
	}
	for _, t := range projected {
		*out = append(*out, PricedCandidate{Commodity: c, Tree: t})
	}
	return nil
}

// projectToBasis implements pricing's basis-projection step: a Path-Flow
// RMP keeps the priced tree as one column, an Arc-Flow RMP splits it into
// one single-arc hyper-tree per constituent arc.
func projectToBasis(tree *graph.HyperTree, basis BasisKind) ([]*graph.HyperTree, error) {
	if basis == PathFlow {
		return []*graph.HyperTree{tree}, nil
	}
	out := make([]*graph.HyperTree, 0, len(tree.Arcs()))
	for _, a := range tree.Arcs() {
		single, err := graph.NewHyperTree([]graph.ArcMultiplicity{{Arc: a, Multiplicity: 1}})
		if err != nil {
			return nil, err
		}
		out = append(out, single)
	}
	return out, nil
}
