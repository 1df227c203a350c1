package colgen

import (
	"fmt"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/mip"
	"github.com/arcflow/arcflow/problem"
	"github.com/arcflow/arcflow/shortestpath"
	"github.com/arcflow/arcflow/solution"
)

// defaultMinRCToStop is the reduced-cost tolerance pricing uses to decide
// a candidate column is worth admitting, below which it is treated as
// numerical noise rather than genuine improvement potential.
const defaultMinRCToStop = -1e-6

// defaultMaxIterations bounds the column-generation loop defensively:
// convergence (no candidate column beats MinReducedCostToStop, or every
// priced candidate was already in the RMP) is expected to terminate it
// long before this, but a pathological cost structure could in principle
// keep discovering marginally-improving columns indefinitely.
const defaultMaxIterations = 1000

// InitialColumn seeds the RMP before the pricing loop starts, most useful
// for guaranteeing the RMP is feasible from iteration zero (e.g. a known
// feasible tree per commodity) rather than relying solely on artificials.
type InitialColumn struct {
	Commodity problem.Commodity
	Tree      *graph.HyperTree
}

// Params configures one column-generation solve.
type Params struct {
	Basis                               BasisKind
	MultiPathPricing                    bool
	MinReducedCostToStop                float64
	NumZeroFlowIterationsToDeleteColumn int
	DualPrecision                       int
	InitialColumns                      []InitialColumn
	MaxIterations                       int

	// Verbose, when true with Logf set, emits one line per iteration
	// reporting the iteration count and the number of columns priced.
	Verbose bool
	Logf    func(format string, args ...any)
}

func (p Params) logf(format string, args ...any) {
	if p.Verbose && p.Logf != nil {
		p.Logf(format, args...)
	}
}

// Result is one column-generation solve's outcome: the RMP's final primal
// and dual solution, the Lagrangian dual bound, and the per-arc min_obj
// map RCVF needs.
type Result struct {
	RMP             *RMP
	Primal          *solution.PrimalSolution
	Dual            *solution.DualSolution
	LagrangianBound float64
	MinObjective    map[int]float64
}

// Solve builds the RMP over p, then alternates solving it and pricing new
// columns against its dual solution until pricing finds nothing worth
// admitting, no admitted candidate was actually new, or MaxIterations is
// reached.
func Solve(p *problem.Problem, params Params) (*Result, error) {
	if params.MaxIterations <= 0 {
		params.MaxIterations = defaultMaxIterations
	}
	if params.MinReducedCostToStop == 0 {
		params.MinReducedCostToStop = defaultMinRCToStop
	}

	model := mip.NewGonumModel()
	rmp, err := NewRMP(p, model, params.Basis)
	if err != nil {
		return nil, err
	}

	generators := make(map[int]*shortestpath.ShortestPathGenerator, len(p.Commodities()))
	for _, c := range p.Commodities() {
		gen, err := shortestpath.NewShortestPathGenerator(p.Network())
		if err != nil {
			return nil, err
		}
		generators[c.Index()] = gen
	}

	for _, ic := range params.InitialColumns {
		varType := columnVarType(p, params.Basis, ic.Tree)
		if _, _, err := rmp.AdmitColumn(ic.Commodity, ic.Tree, varType, trueCost(p, ic.Tree)); err != nil {
			return nil, err
		}
	}

	var (
		last   mip.Result
		dual   *solution.DualSolution
		ldual  float64
		minObj map[int]float64
	)

	for iter := 0; iter < params.MaxIterations; iter++ {
		res, err := model.Solve(mip.SolveOptions{LinearRelaxation: true, Silent: true})
		if err != nil {
			return nil, err
		}
		if res.Status != mip.StatusOptimal {
			return nil, fmt.Errorf("colgen: restricted master problem solve status %d", res.Status)
		}
		last = res
		dual, err = rmp.ExtractDual(res, params.DualPrecision, true)
		if err != nil {
			return nil, err
		}

		rcFn := func(a graph.Arc) float64 { return dual.ReducedCostOfArc(p, a) }
		candidates, costPerCommodity, solutions, err := price(p, dual, generators, params.Basis, params.MultiPathPricing, params.MinReducedCostToStop)
		if err != nil {
			return nil, err
		}

		ldual = lagrangianBound(p, dual, costPerCommodity)
		minObj = perArcMinObjective(p, ldual, solutions, rcFn)

		params.logf("colgen: iteration %d priced %d candidate column(s)\n", iter, len(candidates))

		if len(candidates) == 0 {
			break
		}

		addedAny := false
		for _, cand := range candidates {
			varType := columnVarType(p, params.Basis, cand.Tree)
			_, isNew, err := rmp.AdmitColumn(cand.Commodity, cand.Tree, varType, trueCost(p, cand.Tree))
			if err != nil {
				return nil, err
			}
			if isNew {
				addedAny = true
			}
		}
		if !addedAny {
			break
		}

		rmp.ApplyRetentionPolicy(res, params.NumZeroFlowIterationsToDeleteColumn)
	}

	return &Result{
		RMP:             rmp,
		Primal:          rmp.ExtractPrimal(last),
		Dual:            dual,
		LagrangianBound: ldual,
		MinObjective:    minObj,
	}, nil
}

// columnVarType decides a candidate column's RMP variable domain: under
// Arc-Flow basis the column is a single arc, so it simply inherits that
// arc's own declared domain; under Path-Flow basis the whole tree is one
// variable, which this package only treats as Integer when every arc it
// is built from is itself Integer (see DESIGN.md's resolution of the
// Column var-type open question).
func columnVarType(p *problem.Problem, basis BasisKind, tree *graph.HyperTree) graph.VarType {
	if basis == ArcFlow {
		arcs := tree.Arcs()
		if len(arcs) == 1 {
			return p.VarType(arcs[0])
		}
		return graph.Continuous
	}
	if allIntegerArcs(p, tree) {
		return graph.Integer
	}
	return graph.Continuous
}
