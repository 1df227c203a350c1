package branch

import (
	"math"
	"time"

	"github.com/arcflow/arcflow/colgen"
	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/problem"
	"github.com/arcflow/arcflow/solution"
)

// defaultFeasTolerance is how close to an integer (or to zero, for the
// branching-set test) a value must be to count as integral/unused.
const defaultFeasTolerance = 1e-6

// Params configures one branch-and-bound solve. Params is passed by
// value through the recursion so that ObjCutoff and
// MaxNumBranchingLevels updates at one node never leak sideways to a
// sibling branch.
type Params struct {
	Colgen colgen.Params

	// ArcToFamily classifies arcs into branching families; defaults to
	// the arc's head vertex index (see DESIGN.md's resolution of the
	// branching-classifier open question).
	ArcToFamily func(graph.Arc) int

	// RightBranchPenalty backs the artificial variable on the right
	// branch's "at least one family-B arc carries flow" side constraint.
	RightBranchPenalty float64

	// FeasTolerance bounds both the branching-set "near-zero flow" test
	// and the integer-feasibility check. Defaults to defaultFeasTolerance
	// if <= 0.
	FeasTolerance float64

	// ObjCutoff bounds reduced-cost variable fixing: an arc with
	// min_obj(a) > *ObjCutoff is dropped before this node is explored
	// further. nil means unset (no fixing, equivalent to +Inf) — a plain
	// float64 can't distinguish "caller wants cutoff 0" from "caller left
	// this unset", since 0 is a meaningful cutoff for some problems, so
	// unset is its own state rather than overloading the zero value.
	ObjCutoff *float64

	// MaxNumBranchingLevels bounds branching depth; <= 0 means "solve
	// this node exactly instead of branching further".
	MaxNumBranchingLevels int

	// ExactTimeLimit bounds each exact MIP solve's wall-clock time.
	ExactTimeLimit time.Duration

	// Verbose, when true with Logf set, emits one line each time a node
	// reaches the branching step, reporting its level, the branching set
	// size and the current obj_cutoff.
	Verbose bool
	Logf    func(format string, args ...any)
}

func (p Params) logf(format string, args ...any) {
	if p.Verbose && p.Logf != nil {
		p.Logf(format, args...)
	}
}

func (p Params) feasTolerance() float64 {
	if p.FeasTolerance <= 0 {
		return defaultFeasTolerance
	}
	return p.FeasTolerance
}

func (p Params) arcToFamily() func(graph.Arc) int {
	if p.ArcToFamily != nil {
		return p.ArcToFamily
	}
	return func(a graph.Arc) int { return a.Head().Index() }
}

// objCutoff returns the effective cutoff: +Inf (no RCVF fixing) if the
// caller never set one.
func (p Params) objCutoff() float64 {
	if p.ObjCutoff == nil {
		return math.Inf(1)
	}
	return *p.ObjCutoff
}

// Solve runs the branch-and-bound coordinator over p.
func Solve(p *problem.Problem, params Params) (*solution.PrimalSolution, error) {
	if len(p.Commodities()) == 0 {
		return nil, ErrNoCommodities
	}
	if len(p.Network().Arcs()) == 0 {
		return emptyPrimal(p), nil
	}

	cg, err := colgen.Solve(p, params.Colgen)
	if err != nil {
		return nil, err
	}

	cutoff := params.objCutoff()
	filteredNet, err := p.Network().Filter(func(a graph.Arc) bool {
		return cg.MinObjective[a.Index()] <= cutoff
	})
	if err != nil {
		return nil, err
	}
	filtered := p.WithNetwork(filteredNet)

	if len(filtered.Network().Arcs()) == 0 {
		return emptyPrimal(p), nil
	}

	if isIntegerFeasible(filtered, cg.Primal, params.feasTolerance()) {
		return cg.Primal, nil
	}

	if params.MaxNumBranchingLevels <= 0 {
		primal, _, err := exactSolve(filtered, params.ExactTimeLimit)
		return primal, err
	}

	return branchUnbalanced(filtered, cg.Primal, cutoff, params)
}

// branchUnbalanced implements step 7 of the coordinator: partition the
// filtered network's arcs into families, isolate the branching set B of
// near-zero-flow families, solve the left branch (B removed) exactly,
// tighten obj_cutoff from its result, then recurse on the right branch
// (a side constraint forcing some family in B to carry flow) before
// returning whichever branch's objective is better.
func branchUnbalanced(filtered *problem.Problem, lpPrimal *solution.PrimalSolution, cutoff float64, params Params) (*solution.PrimalSolution, error) {
	family := params.arcToFamily()
	feasTol := params.feasTolerance()

	familyFlow := map[int]float64{}
	familyArcs := map[int][]graph.Arc{}
	for _, a := range filtered.Network().Arcs() {
		f := family(a)
		familyFlow[f] += lpPrimal.TotalFlow(a)
		familyArcs[f] = append(familyArcs[f], a)
	}

	var branchingSet []graph.Arc
	inB := map[int]bool{}
	for f, flow := range familyFlow {
		if flow < feasTol {
			for _, a := range familyArcs[f] {
				branchingSet = append(branchingSet, a)
				inB[a.Index()] = true
			}
		}
	}

	params.logf("branch: level %d branching set has %d arc(s), obj_cutoff %.6g\n", params.MaxNumBranchingLevels, len(branchingSet), cutoff)

	if len(branchingSet) == 0 {
		// Every family carries some flow: there is nothing left to
		// unbalance on. Fall back to an exact solve of this node.
		primal, _, err := exactSolve(filtered, params.ExactTimeLimit)
		return primal, err
	}

	leftNet, err := filtered.Network().Filter(func(a graph.Arc) bool { return !inB[a.Index()] })
	if err != nil {
		return nil, err
	}
	leftProblem := filtered.WithNetwork(leftNet)
	leftPrimal, leftObj, err := exactSolve(leftProblem, params.ExactTimeLimit)
	if err != nil {
		return nil, err
	}

	newCutoff := leftObj
	if isIntegerValued(leftProblem) {
		newCutoff--
	}
	if newCutoff < cutoff {
		cutoff = newCutoff
	}

	coeffs := make([]problem.ArcCoefficient, len(branchingSet))
	for i, a := range branchingSet {
		coeffs[i] = problem.ArcCoefficient{Arc: a, Coefficient: 1}
	}
	filtered.PushConstraint(problem.GE, 1, params.RightBranchPenalty, coeffs)

	rightParams := params
	rightParams.ObjCutoff = &cutoff
	rightParams.MaxNumBranchingLevels = params.MaxNumBranchingLevels - 1

	rightPrimal, rightErr := Solve(filtered, rightParams)
	var rightObj float64
	if rightErr == nil {
		rightObj = rightPrimal.ObjectiveValue(filtered)
	}

	if popErr := filtered.PopConstraint(); popErr != nil {
		return nil, popErr
	}
	if rightErr != nil {
		return nil, rightErr
	}

	if rightObj < leftObj {
		return rightPrimal, nil
	}
	return leftPrimal, nil
}

// isIntegerFeasible reports whether every Integer-typed arc's total flow
// (summed across commodities) is within tolerance of an integer.
func isIntegerFeasible(p *problem.Problem, primal *solution.PrimalSolution, tolerance float64) bool {
	for _, a := range p.Network().Arcs() {
		if p.VarType(a) != graph.Integer {
			continue
		}
		flow := primal.TotalFlow(a)
		if math.Abs(flow-math.Round(flow)) > tolerance {
			return false
		}
	}
	return true
}

// emptyPrimal returns a PrimalSolution with a zero ArcFlowSolution per
// commodity and each commodity's whole demand recorded as shortfall, the
// result for a Problem (or RCVF-filtered Problem) with no arcs left to
// route flow on.
func emptyPrimal(p *problem.Problem) *solution.PrimalSolution {
	ps := solution.NewPrimalSolution()
	for _, c := range p.Commodities() {
		ps.SetCommodityFlow(c, solution.NewArcFlowSolution(c))
		ps.SetDemandShortfall(c, c.Demand())
	}
	return ps
}
