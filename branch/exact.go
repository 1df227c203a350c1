package branch

import (
	"math"
	"time"

	"github.com/arcflow/arcflow/colgen"
	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/mip"
	"github.com/arcflow/arcflow/problem"
	"github.com/arcflow/arcflow/solution"
)

// ExactSolve formulates p directly as a single Arc-Flow MIP — every
// (commodity, arc) pair admitted as a column up front — and solves it once
// with integrality enforced, bypassing column generation entirely. This is
// what the root package's OptimizeByMIPSolver calls for callers who want the
// black-box solver's own branch-and-bound instead of unbalanced branching.
func ExactSolve(p *problem.Problem, timeLimit time.Duration) (*solution.PrimalSolution, error) {
	primal, _, err := exactSolve(p, timeLimit)
	return primal, err
}

// exactSolve formulates p directly as an Arc-Flow RMP — one single-arc
// column per (commodity, arc) pair, admitted up front rather than
// discovered by pricing — and solves it once with integrality enforced.
// This is the "exact MIP solver" branch-and-bound uses when
// max_num_branching_levels is exhausted, when a node's branching set is
// empty, and for every left branch, reusing colgen's RMP machinery rather
// than a second row/column formulation.
func exactSolve(p *problem.Problem, timeLimit time.Duration) (*solution.PrimalSolution, float64, error) {
	model := mip.NewGonumModel()
	rmp, err := colgen.NewRMP(p, model, colgen.ArcFlow)
	if err != nil {
		return nil, 0, err
	}

	for _, c := range p.Commodities() {
		for _, a := range p.Network().Arcs() {
			tree, err := graph.NewHyperTree([]graph.ArcMultiplicity{{Arc: a, Multiplicity: 1}})
			if err != nil {
				return nil, 0, err
			}
			if _, _, err := rmp.AdmitColumn(c, tree, p.VarType(a), p.Cost(a)); err != nil {
				return nil, 0, err
			}
		}
	}

	res, err := model.Solve(mip.SolveOptions{TimeLimit: timeLimit, Silent: true})
	if err != nil {
		return nil, 0, err
	}
	if res.Status == mip.StatusInfeasible || res.Status == mip.StatusUnbounded {
		return nil, 0, ErrSolverInfeasible
	}

	primal := rmp.ExtractPrimal(res)
	return primal, primal.ObjectiveValue(p), nil
}

// isIntegerValued reports whether p's optimal objective is guaranteed to
// be an integer: every arc is Integer-typed and carries an integer cost.
// Branch-and-bound uses this to tighten obj_cutoff by one unit after a
// left-branch exact solve, since no feasible objective can then fall in
// (best-1, best).
func isIntegerValued(p *problem.Problem) bool {
	for _, a := range p.Network().Arcs() {
		if p.VarType(a) != graph.Integer {
			return false
		}
		if cost := p.Cost(a); cost != math.Trunc(cost) {
			return false
		}
	}
	return true
}
