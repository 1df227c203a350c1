package branch

import (
	"math"
	"testing"

	"github.com/arcflow/arcflow/colgen"
	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/problem"
	"github.com/arcflow/arcflow/solution"
	"github.com/stretchr/testify/require"
)

func buildIntegerChainProblem(t *testing.T) (*problem.Problem, problem.Commodity) {
	t.Helper()
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	v2 := b.NewVertex()

	_, err := b.NewArc(v0, 1, v1, problem.WithCost(2), problem.WithCapacity(10), problem.WithVarType(graph.Integer))
	require.NoError(t, err)
	_, err = b.NewArc(v1, 1, v2, problem.WithCost(3), problem.WithCapacity(10), problem.WithVarType(graph.Integer))
	require.NoError(t, err)

	c, err := b.NewCommodity(v0, v2, 4, 4)
	require.NoError(t, err)

	p, err := b.GetProblem()
	require.NoError(t, err)
	return p, c
}

func TestSolve_NoCommoditiesReturnsError(t *testing.T) {
	b := problem.NewBuilder()
	b.NewVertex()
	p, err := b.GetProblem()
	require.NoError(t, err)

	_, err = Solve(p, Params{})
	require.ErrorIs(t, err, ErrNoCommodities)
}

func TestSolve_EmptyNetworkReturnsZeroFlowSolution(t *testing.T) {
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	c, err := b.NewCommodity(v0, v1, 3, 3)
	require.NoError(t, err)
	p, err := b.GetProblem()
	require.NoError(t, err)

	res, err := Solve(p, Params{})
	require.NoError(t, err)
	flow := res.CommodityFlow(c)
	require.NotNil(t, flow)
}

func TestSolve_IntegerFeasibleRelaxationReturnedDirectly(t *testing.T) {
	p, c := buildIntegerChainProblem(t)

	res, err := Solve(p, Params{Colgen: colgen.Params{Basis: colgen.ArcFlow}, MaxNumBranchingLevels: 2})
	require.NoError(t, err)

	flow := res.CommodityFlow(c)
	require.NotNil(t, flow)
	require.InDelta(t, 4.0, flow.DeliveredAtSink(p.Network()), 1e-6)
	require.InDelta(t, 20.0, res.ObjectiveValue(p), 1e-6)
}

func TestSolve_MaxBranchingLevelsZeroFallsBackToExact(t *testing.T) {
	p, c := buildIntegerChainProblem(t)

	res, err := Solve(p, Params{Colgen: colgen.Params{Basis: colgen.ArcFlow}, MaxNumBranchingLevels: 0})
	require.NoError(t, err)

	flow := res.CommodityFlow(c)
	require.NotNil(t, flow)
	require.InDelta(t, 4.0, flow.DeliveredAtSink(p.Network()), 1e-6)
}

func TestIsIntegerFeasible_RejectsFractionalIntegerArc(t *testing.T) {
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	a, err := b.NewArc(v0, 1, v1, problem.WithVarType(graph.Integer))
	require.NoError(t, err)
	c, err := b.NewCommodity(v0, v1, 1, 1)
	require.NoError(t, err)
	p, err := b.GetProblem()
	require.NoError(t, err)

	primal := emptyPrimal(p)
	flow := solution.NewArcFlowSolution(c)
	flow.SetFlow(a, 0.5)
	primal.SetCommodityFlow(c, flow)

	require.False(t, isIntegerFeasible(p, primal, defaultFeasTolerance))
}

// TestBranchUnbalanced_PrefersCheapLeftBranchAndTightensCutoff drives
// branchUnbalanced directly with a hand-built LP relaxation whose detour
// arc a1a (the only arc into v3, so a family of its own under the default
// head-vertex classifier) carries no flow at all, so the branching-set
// test isolates it; a1b shares v2's family with the loaded a3. Left-branch
// (a1a removed) is cheaper than right-branch (a1a forced), so the result
// must come back as the left
// branch's exact solution, and the tightened cutoff must survive the
// rightParams.ObjCutoff assignment as a pointer rather than silently
// resetting to "no fixing" when it lands on zero or any other value.
func TestBranchUnbalanced_PrefersCheapLeftBranchAndTightensCutoff(t *testing.T) {
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	v3 := b.NewVertex()

	// Cheap path v0->v1->v2, cost 2/unit.
	a2, err := b.NewArc(v0, 1, v1, problem.WithCost(1), problem.WithCapacity(10), problem.WithVarType(graph.Integer))
	require.NoError(t, err)
	a3, err := b.NewArc(v1, 1, v2, problem.WithCost(1), problem.WithCapacity(10), problem.WithVarType(graph.Integer))
	require.NoError(t, err)
	// Expensive detour v0->v3->v2, cost 5/unit, never used at optimum but
	// structurally feasible if forced.
	a1a, err := b.NewArc(v0, 1, v3, problem.WithCost(5), problem.WithCapacity(10), problem.WithVarType(graph.Integer))
	require.NoError(t, err)
	a1b, err := b.NewArc(v3, 1, v2, problem.WithCost(0), problem.WithCapacity(10), problem.WithVarType(graph.Integer))
	require.NoError(t, err)

	c, err := b.NewCommodity(v0, v2, 4, 4)
	require.NoError(t, err)

	p, err := b.GetProblem()
	require.NoError(t, err)

	lpPrimal := solution.NewPrimalSolution()
	flow := solution.NewArcFlowSolution(c)
	flow.SetFlow(a2, 4)
	flow.SetFlow(a3, 4)
	lpPrimal.SetCommodityFlow(c, flow)

	params := Params{
		Colgen:                colgen.Params{Basis: colgen.ArcFlow},
		RightBranchPenalty:    1e6,
		MaxNumBranchingLevels: 1,
	}

	res, err := branchUnbalanced(p, lpPrimal, math.Inf(1), params)
	require.NoError(t, err)

	require.InDelta(t, 8.0, res.ObjectiveValue(p), 1e-6)

	resFlow := res.CommodityFlow(c)
	require.NotNil(t, resFlow)
	require.InDelta(t, 4.0, resFlow.Flow(a2), 1e-6)
	require.InDelta(t, 4.0, resFlow.Flow(a3), 1e-6)
	require.InDelta(t, 0.0, resFlow.Flow(a1a), 1e-6)
	require.InDelta(t, 0.0, resFlow.Flow(a1b), 1e-6)

	// The right branch's temporary constraint must be popped regardless
	// of which branch's result is returned.
	require.Len(t, p.Constraints(), 0)
}
