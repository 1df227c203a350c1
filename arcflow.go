package arcflow

import (
	"time"

	"github.com/arcflow/arcflow/branch"
	"github.com/arcflow/arcflow/colgen"
	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/problem"
	"github.com/arcflow/arcflow/solution"
)

// Solution is the result of any of this package's Optimize calls: the
// primal flow assignment, plus the dual and reduced-cost information of the
// column-generation relaxation. Only OptimizeLinearRelaxation fills Dual,
// LagrangianBound and MinObjective; Optimize and OptimizeByMIPSolver leave
// them nil or zero.
type Solution struct {
	Primal          *solution.PrimalSolution
	Dual            *solution.DualSolution
	LagrangianBound float64
	MinObjective    map[int]float64
}

// Optimize runs the full pipeline: column generation for the LP relaxation,
// reduced-cost variable fixing, and — if the relaxation is not already
// integer-feasible — unbalanced branch-and-bound to an exact integer
// solution.
func Optimize(p *problem.Problem, params branch.Params) (*Solution, error) {
	primal, err := branch.Solve(p, params)
	if err != nil {
		return nil, err
	}
	return &Solution{Primal: primal}, nil
}

// OptimizeLinearRelaxation runs column generation only, returning the LP
// relaxation's primal and dual solutions without enforcing integrality.
func OptimizeLinearRelaxation(p *problem.Problem, params colgen.Params) (*Solution, error) {
	res, err := colgen.Solve(p, params)
	if err != nil {
		return nil, err
	}
	return &Solution{
		Primal:          res.Primal,
		Dual:            res.Dual,
		LagrangianBound: res.LagrangianBound,
		MinObjective:    res.MinObjective,
	}, nil
}

// OptimizeByMIPSolver solves p as a single direct mixed-integer program,
// bypassing column generation entirely: every (commodity, arc) pair is
// admitted as a column up front and the black-box solver's own
// branch-and-bound enforces integrality.
func OptimizeByMIPSolver(p *problem.Problem, timeLimit time.Duration) (*Solution, error) {
	primal, err := branch.ExactSolve(p, timeLimit)
	if err != nil {
		return nil, err
	}
	return &Solution{Primal: primal}, nil
}

// FilterArcsByReducedCost runs one column-generation pass and returns a
// Problem restricted to the arcs whose minimum achievable objective does
// not exceed cutoff, the reduced-cost variable fixing step on its own.
func FilterArcsByReducedCost(p *problem.Problem, params colgen.Params, cutoff float64) (*problem.Problem, error) {
	res, err := colgen.Solve(p, params)
	if err != nil {
		return nil, err
	}
	net, err := p.Network().Filter(func(a graph.Arc) bool {
		return res.MinObjective[a.Index()] <= cutoff
	})
	if err != nil {
		return nil, err
	}
	return p.WithNetwork(net), nil
}

// GetFlow returns the flow delivered on arc a, summed across every
// commodity in sol.
func GetFlow(sol *Solution, a graph.Arc) float64 {
	return sol.Primal.TotalFlow(a)
}

// GetCommodityFlow returns the flow commodity c delivers on arc a.
func GetCommodityFlow(sol *Solution, c problem.Commodity, a graph.Arc) (float64, error) {
	return sol.Primal.Flow(c, a)
}

// GetObjVal returns sol's objective value under p: per-arc cost times total
// flow, plus the violation penalty charged against any demand shortfall,
// capacity slack, or side-constraint slack the solution carries.
func GetObjVal(p *problem.Problem, sol *Solution) float64 {
	return sol.Primal.ObjectiveValue(p)
}

// GetPathToFlowMap decomposes commodity c's arc-flow solution into
// elementary source-to-sink paths and the flow each carries. It requires a
// network of simple arcs; use arc-flow queries directly for hyper-networks.
func GetPathToFlowMap(p *problem.Problem, sol *Solution, c problem.Commodity) (map[*graph.Path]float64, error) {
	flow := sol.Primal.CommodityFlow(c)
	decomposed, err := solution.DecomposeToPaths(p.Network(), flow)
	if err != nil {
		return nil, err
	}
	out := make(map[*graph.Path]float64, len(decomposed.Paths()))
	for _, pf := range decomposed.Paths() {
		out[pf.Path] = pf.Flow
	}
	return out, nil
}
