package arcflow

import (
	"math"
	"testing"

	"github.com/arcflow/arcflow/branch"
	"github.com/arcflow/arcflow/colgen"
	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/problem"
	"github.com/stretchr/testify/require"
)

// TestScenario_SimpleMinCostFlow reproduces the worked min-cost-flow
// scenario: v1..v4, a1=v1->v2(cost1), a2=v1->v3(cost1), a3=v2->v3(cost1),
// a4=v2->v4(cost1), a5=v3->v4(cost20), commodity c1=v1->v4 demand=cap=5.
// The cheapest route is v1->v2->v4 at cost 2/unit, so all 5 units take
// a1 and a4, leaving the rest unused, for an objective of 10.
func TestScenario_SimpleMinCostFlow(t *testing.T) {
	b := problem.NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	v3 := b.NewVertex()
	v4 := b.NewVertex()

	a1, err := b.NewArc(v1, 1, v2, problem.WithCost(1))
	require.NoError(t, err)
	a2, err := b.NewArc(v1, 1, v3, problem.WithCost(1))
	require.NoError(t, err)
	a3, err := b.NewArc(v2, 1, v3, problem.WithCost(1))
	require.NoError(t, err)
	a4, err := b.NewArc(v2, 1, v4, problem.WithCost(1))
	require.NoError(t, err)
	a5, err := b.NewArc(v3, 1, v4, problem.WithCost(20))
	require.NoError(t, err)

	c1, err := b.NewCommodity(v1, v4, 5, 5)
	require.NoError(t, err)

	p, err := b.GetProblem()
	require.NoError(t, err)

	sol, err := OptimizeLinearRelaxation(p, colgen.Params{Basis: colgen.PathFlow})
	require.NoError(t, err)

	for _, tc := range []struct {
		arc      graph.Arc
		expected float64
	}{
		{a1, 5},
		{a2, 0},
		{a3, 0},
		{a4, 5},
		{a5, 0},
	} {
		flow, err := GetCommodityFlow(sol, c1, tc.arc)
		require.NoError(t, err)
		require.InDelta(t, tc.expected, flow, 1e-6)
	}

	require.InDelta(t, 10.0, GetObjVal(p, sol), 1e-6)
	require.InDelta(t, 0.0, sol.Primal.DemandShortfall(c1), 1e-6)
}

// TestScenario_CapacityForcedRerouting reproduces the second worked
// scenario: scenario 1's network plus a second commodity c2=v2->v4
// demand=cap=8, with cap(a4) tightened to 9.5. c1 and c2 now compete for
// a4, forcing c1 to split across both its routes: v1->v2->v4 and
// v1->v3->v4. This test and TestScenario_SideConstraintAndIntegrality are
// the module's regression tests admitting more than one commodity into the
// RMP, exercising conservation-row sharing across commodities in colgen's
// pricing loop.
func TestScenario_CapacityForcedRerouting(t *testing.T) {
	b := problem.NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	v3 := b.NewVertex()
	v4 := b.NewVertex()

	a1, err := b.NewArc(v1, 1, v2, problem.WithCost(1))
	require.NoError(t, err)
	a2, err := b.NewArc(v1, 1, v3, problem.WithCost(1))
	require.NoError(t, err)
	a3, err := b.NewArc(v2, 1, v3, problem.WithCost(1))
	require.NoError(t, err)
	a4, err := b.NewArc(v2, 1, v4, problem.WithCost(1), problem.WithCapacity(9.5))
	require.NoError(t, err)
	a5, err := b.NewArc(v3, 1, v4, problem.WithCost(20))
	require.NoError(t, err)

	c1, err := b.NewCommodity(v1, v4, 5, 5)
	require.NoError(t, err)
	c2, err := b.NewCommodity(v2, v4, 8, 8)
	require.NoError(t, err)

	p, err := b.GetProblem()
	require.NoError(t, err)

	sol, err := OptimizeLinearRelaxation(p, colgen.Params{Basis: colgen.PathFlow})
	require.NoError(t, err)

	for _, tc := range []struct {
		commodity problem.Commodity
		arc       graph.Arc
		expected  float64
	}{
		{c1, a1, 1.5},
		{c1, a2, 3.5},
		{c1, a3, 0},
		{c1, a4, 1.5},
		{c1, a5, 3.5},
		{c2, a4, 8},
	} {
		flow, err := GetCommodityFlow(sol, tc.commodity, tc.arc)
		require.NoError(t, err)
		require.InDelta(t, tc.expected, flow, 1e-6)
	}

	require.InDelta(t, 0.0, sol.Primal.DemandShortfall(c1), 1e-6)
	require.InDelta(t, 0.0, sol.Primal.DemandShortfall(c2), 1e-6)
}

// TestScenario_GeneralizedFlowMultiplierChain reproduces the fourth worked
// scenario: a chain of generalized (multiplier-bearing) arcs
// a0=(v0*1000)->v1, a1=(v1*0.5)->v2, a2=(v2*0.5)->v3, a3=(v3*5)->v4, all
// cost 1, commodity v0->v4 demand=cap=10. Each arc's flow value is the
// amount delivered at its head; the amount an arc consumes from its tail
// is that value times the tail's multiplier, which must match the
// delivery of whichever arc feeds that tail. This is the module's only
// end-to-end regression test of multiplier compounding through column
// generation: every other scenario test uses multiplier-1 arcs.
func TestScenario_GeneralizedFlowMultiplierChain(t *testing.T) {
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	v3 := b.NewVertex()
	v4 := b.NewVertex()

	a0, err := b.NewArc(v0, 1000, v1, problem.WithCost(1))
	require.NoError(t, err)
	a1, err := b.NewArc(v1, 0.5, v2, problem.WithCost(1))
	require.NoError(t, err)
	a2, err := b.NewArc(v2, 0.5, v3, problem.WithCost(1))
	require.NoError(t, err)
	a3, err := b.NewArc(v3, 5, v4, problem.WithCost(1))
	require.NoError(t, err)

	_, err = b.NewCommodity(v0, v4, 10, 10)
	require.NoError(t, err)

	p, err := b.GetProblem()
	require.NoError(t, err)

	sol, err := OptimizeLinearRelaxation(p, colgen.Params{Basis: colgen.PathFlow})
	require.NoError(t, err)

	for _, tc := range []struct {
		arc      graph.Arc
		expected float64
	}{
		{a0, 12.5},
		{a1, 25},
		{a2, 50},
		{a3, 10},
	} {
		require.InDelta(t, tc.expected, GetFlow(sol, tc.arc), 1e-6)
	}
}

// TestScenario_SideConstraintAndIntegrality reproduces the third worked
// scenario: scenario 2's network plus a side constraint a1+a3 >= 6 and a4
// set to Integer. The side constraint forces more of c1's flow onto
// v1->v3->v4, and a4's integrality rounds its total flow from 9.5 down to
// 9 rather than the LP-optimal fractional value, driving the full
// Optimize pipeline (column generation, RCVF, and branch-and-bound) with
// two commodities, a shared side constraint, and an integer arc all at
// once.
func TestScenario_SideConstraintAndIntegrality(t *testing.T) {
	b := problem.NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	v3 := b.NewVertex()
	v4 := b.NewVertex()

	a1, err := b.NewArc(v1, 1, v2, problem.WithCost(1))
	require.NoError(t, err)
	a2, err := b.NewArc(v1, 1, v3, problem.WithCost(1))
	require.NoError(t, err)
	a3, err := b.NewArc(v2, 1, v3, problem.WithCost(1))
	require.NoError(t, err)
	a4, err := b.NewArc(v2, 1, v4, problem.WithCost(1), problem.WithCapacity(9.5), problem.WithVarType(graph.Integer))
	require.NoError(t, err)
	a5, err := b.NewArc(v3, 1, v4, problem.WithCost(20))
	require.NoError(t, err)

	_, err = b.NewCommodity(v1, v4, 5, 5)
	require.NoError(t, err)
	_, err = b.NewCommodity(v2, v4, 8, 8)
	require.NoError(t, err)

	h, err := b.NewConstraint(6, math.Inf(1))
	require.NoError(t, err)
	require.NoError(t, b.SetConstraintCoefficient(h, a1, 1))
	require.NoError(t, b.SetConstraintCoefficient(h, a3, 1))

	p, err := b.GetProblem()
	require.NoError(t, err)

	sol, err := Optimize(p, branch.Params{
		Colgen:                colgen.Params{Basis: colgen.ArcFlow},
		RightBranchPenalty:    1e6,
		MaxNumBranchingLevels: 4,
	})
	require.NoError(t, err)

	for _, tc := range []struct {
		arc      graph.Arc
		expected float64
	}{
		{a1, 3.5},
		{a2, 1.5},
		{a3, 2.5},
		{a4, 9},
		{a5, 4},
	} {
		require.InDelta(t, tc.expected, GetFlow(sol, tc.arc), 1e-6)
	}
}
