package colgen

import (
	"testing"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/problem"
	"github.com/stretchr/testify/require"
)

func buildSingleArcTree(t *testing.T) (*problem.Problem, *graph.HyperTree, graph.Arc) {
	t.Helper()
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	a, err := b.NewArc(v0, 1, v1, problem.WithCost(7), problem.WithVarType(graph.Integer))
	require.NoError(t, err)
	p, err := b.GetProblem()
	require.NoError(t, err)

	tree, err := graph.NewHyperTree([]graph.ArcMultiplicity{{Arc: a, Multiplicity: 1}})
	require.NoError(t, err)
	return p, tree, a
}

func TestColumnKey_SameTreeAndCommoditySameKey(t *testing.T) {
	_, tree, _ := buildSingleArcTree(t)
	c, err := problem.NewCommodity(0, tree.Tails()[0], tree.Head(), 1, 1, 1e3)
	require.NoError(t, err)
	other, err := graph.NewHyperTree([]graph.ArcMultiplicity{{Arc: tree.Arcs()[0], Multiplicity: 1}})
	require.NoError(t, err)

	require.Equal(t, columnKey(c.Index(), tree), columnKey(c.Index(), other))
}

func TestTrueCost_SumsMultiplicityWeightedArcCost(t *testing.T) {
	p, tree, _ := buildSingleArcTree(t)
	require.Equal(t, 7.0, trueCost(p, tree))
}

func TestAllIntegerArcs(t *testing.T) {
	p, tree, _ := buildSingleArcTree(t)
	require.True(t, allIntegerArcs(p, tree))
}
