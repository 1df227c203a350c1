package colgen

import (
	"testing"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/mip"
	"github.com/arcflow/arcflow/problem"
	"github.com/stretchr/testify/require"
)

func TestRMP_AdmitColumnDedupsEqualColumn(t *testing.T) {
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	a, err := b.NewArc(v0, 1, v1)
	require.NoError(t, err)
	c, err := b.NewCommodity(v0, v1, 1, 1, 1e3)
	require.NoError(t, err)
	p, err := b.GetProblem()
	require.NoError(t, err)

	tree, err := graph.NewHyperTree([]graph.ArcMultiplicity{{Arc: a, Multiplicity: 1}})
	require.NoError(t, err)

	rmp, err := NewRMP(p, mip.NewGonumModel(), PathFlow)
	require.NoError(t, err)

	_, admitted, err := rmp.AdmitColumn(c, tree, graph.Continuous, trueCost(p, tree))
	require.NoError(t, err)
	require.True(t, admitted)

	_, admitted, err = rmp.AdmitColumn(c, tree, graph.Continuous, trueCost(p, tree))
	require.NoError(t, err)
	require.False(t, admitted)
}

func TestRMP_AdmitColumnRejectsArcOutsideFilteredNetwork(t *testing.T) {
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	a, err := b.NewArc(v0, 1, v1)
	require.NoError(t, err)
	c, err := b.NewCommodity(v0, v1, 1, 1, 1e3)
	require.NoError(t, err)
	p, err := b.GetProblem()
	require.NoError(t, err)

	emptyNet, err := p.Network().Filter(func(graph.Arc) bool { return false })
	require.NoError(t, err)
	filtered := p.WithNetwork(emptyNet)

	tree, err := graph.NewHyperTree([]graph.ArcMultiplicity{{Arc: a, Multiplicity: 1}})
	require.NoError(t, err)

	rmp, err := NewRMP(filtered, mip.NewGonumModel(), PathFlow)
	require.NoError(t, err)

	_, admitted, err := rmp.AdmitColumn(c, tree, graph.Continuous, 0)
	require.NoError(t, err)
	require.False(t, admitted)
}

func TestRMP_AdmitColumnRejectsUnknownCommodity(t *testing.T) {
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	a, err := b.NewArc(v0, 1, v1)
	require.NoError(t, err)
	p, err := b.GetProblem()
	require.NoError(t, err)

	tree, err := graph.NewHyperTree([]graph.ArcMultiplicity{{Arc: a, Multiplicity: 1}})
	require.NoError(t, err)

	// A commodity built against a different problem's builder carries an
	// index the RMP never allocated rows for.
	foreign := problem.NewBuilder()
	fv0 := foreign.NewVertex()
	fv1 := foreign.NewVertex()
	c, err := foreign.NewCommodity(fv0, fv1, 1, 1)
	require.NoError(t, err)

	rmp, err := NewRMP(p, mip.NewGonumModel(), PathFlow)
	require.NoError(t, err)

	_, admitted, err := rmp.AdmitColumn(c, tree, graph.Continuous, trueCost(p, tree))
	require.ErrorIs(t, err, ErrUnknownCommodity)
	require.False(t, admitted)
}

func TestRMP_ExtractDualRejectsIntegralitySolve(t *testing.T) {
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	a, err := b.NewArc(v0, 1, v1)
	require.NoError(t, err)
	c, err := b.NewCommodity(v0, v1, 1, 1, 1e3)
	require.NoError(t, err)
	p, err := b.GetProblem()
	require.NoError(t, err)

	tree, err := graph.NewHyperTree([]graph.ArcMultiplicity{{Arc: a, Multiplicity: 1}})
	require.NoError(t, err)

	model := mip.NewGonumModel()
	rmp, err := NewRMP(p, model, PathFlow)
	require.NoError(t, err)
	_, _, err = rmp.AdmitColumn(c, tree, graph.Continuous, trueCost(p, tree))
	require.NoError(t, err)

	res, err := model.Solve(mip.SolveOptions{LinearRelaxation: true})
	require.NoError(t, err)

	_, err = rmp.ExtractDual(res, 6, false)
	require.ErrorIs(t, err, ErrNotLinear)
}

func TestRMP_RetentionPolicyFixesZeroFlowColumnToZero(t *testing.T) {
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	a, err := b.NewArc(v0, 1, v1)
	require.NoError(t, err)
	c, err := b.NewCommodity(v0, v1, 0, 1, 1e3)
	require.NoError(t, err)
	p, err := b.GetProblem()
	require.NoError(t, err)

	tree, err := graph.NewHyperTree([]graph.ArcMultiplicity{{Arc: a, Multiplicity: 1}})
	require.NoError(t, err)

	model := mip.NewGonumModel()
	rmp, err := NewRMP(p, model, PathFlow)
	require.NoError(t, err)
	col, _, err := rmp.AdmitColumn(c, tree, graph.Continuous, 5)
	require.NoError(t, err)

	res, err := model.Solve(mip.SolveOptions{LinearRelaxation: true})
	require.NoError(t, err)
	require.Equal(t, mip.StatusOptimal, res.Status)

	rmp.ApplyRetentionPolicy(res, 1)
	require.Len(t, rmp.order, 0)
	_, stillThere := rmp.columns[columnKey(c.Index(), col.Tree)]
	require.False(t, stillThere)
}
