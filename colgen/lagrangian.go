package colgen

import (
	"math"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/problem"
	"github.com/arcflow/arcflow/shortestpath"
	"github.com/arcflow/arcflow/solution"
)

// lagrangianBound computes the RMP's Lagrangian dual bound: the dual
// objective contribution of every row except the per-commodity
// demand/capacity rows, plus, for each commodity, its relaxed label value
// weighted by capacity (if negative, since an unbounded-below commodity
// would want to carry as much flow as allowed) or by demand otherwise (a
// non-negative per-unit cost only needs to cover the mandatory minimum).
func lagrangianBound(p *problem.Problem, dual *solution.DualSolution, costPerCommodity map[int]float64) float64 {
	var total float64
	for _, a := range p.Network().Arcs() {
		if p.IsCapacitated(a) {
			total += dual.ArcCapacityDual(a) * p.Capacity(a)
		}
	}
	for _, row := range p.Constraints() {
		total += dual.SideConstraintDual(row.Index) * row.RHS
	}
	for _, c := range p.Commodities() {
		cost := costPerCommodity[c.Index()]
		if cost < 0 {
			total += cost * c.Capacity()
		} else {
			total += cost * c.Demand()
		}
	}
	return total
}

// perArcMinObjective computes, for every arc, the tightest lower bound on
// the objective achievable by any solution still using that arc: for an
// Integer arc in a non-hyper network, the Lagrangian bound plus the
// cheapest unit-flow cost any commodity can route through it; for every
// other arc (Continuous, or any arc in a hyper-graph, where
// MinUnitFlowCost is undefined), just the Lagrangian bound itself. The
// branch-and-bound coordinator uses this for reduced-cost variable fixing
// (RCVF): an arc whose min_obj exceeds the current cutoff can never appear
// in an improving solution and is dropped from the network.
func perArcMinObjective(p *problem.Problem, ldual float64, solutions map[int]*shortestpath.ShortestPathSolution, rcFn func(graph.Arc) float64) map[int]float64 {
	out := make(map[int]float64, len(p.Network().Arcs()))
	hyper := p.Network().IsHyperGraph()
	for _, a := range p.Network().Arcs() {
		if hyper || p.VarType(a) != graph.Integer {
			out[a.Index()] = ldual
			continue
		}
		best := math.Inf(1)
		for _, sol := range solutions {
			cost, err := sol.MinUnitFlowCost(a, rcFn)
			if err != nil {
				continue
			}
			if cost < best {
				best = cost
			}
		}
		if math.IsInf(best, 1) {
			out[a.Index()] = ldual
		} else {
			out[a.Index()] = ldual + best
		}
	}
	return out
}
