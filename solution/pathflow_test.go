package solution

import (
	"testing"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/problem"
	"github.com/stretchr/testify/require"
)

func TestDecomposeToPaths_SingleChain(t *testing.T) {
	p, c := buildChainProblem(t)
	arcs := p.Network().Arcs()

	flow := NewArcFlowSolution(c)
	flow.SetFlow(arcs[0], 4)
	flow.SetFlow(arcs[1], 4)

	decomposed, err := DecomposeToPaths(p.Network(), flow)
	require.NoError(t, err)
	require.Len(t, decomposed.Paths(), 1)
	require.Equal(t, 4.0, decomposed.TotalFlow())

	roundTrip := decomposed.ToArcFlow()
	require.Equal(t, flow.Flow(arcs[0]), roundTrip.Flow(arcs[0]))
	require.Equal(t, flow.Flow(arcs[1]), roundTrip.Flow(arcs[1]))
}

func TestDecomposeToPaths_IgnoresUnusedBranch(t *testing.T) {
	b := problem.NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	v3 := b.NewVertex()
	a1, err := b.NewArc(v1, 1, v2, problem.WithCost(1))
	require.NoError(t, err)
	_, err = b.NewArc(v1, 1, v3, problem.WithCost(1))
	require.NoError(t, err)
	c, err := b.NewCommodity(v1, v2, 0, 10)
	require.NoError(t, err)
	p, err := b.GetProblem()
	require.NoError(t, err)

	flow := NewArcFlowSolution(c)
	flow.SetFlow(a1, 5)
	decomposed, err := DecomposeToPaths(p.Network(), flow)
	require.NoError(t, err)
	require.Len(t, decomposed.Paths(), 1)
	require.Equal(t, 5.0, decomposed.Paths()[0].Flow)
}

func TestDecomposeToPaths_RejectsHyperGraph(t *testing.T) {
	b := problem.NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	v3 := b.NewVertex()
	hyper, err := b.NewHyperArc([]graph.Tail{{Vertex: v1, Multiplier: 1}, {Vertex: v2, Multiplier: 2}}, v3)
	require.NoError(t, err)
	c, err := b.NewCommodity(v1, v3, 0, 10)
	require.NoError(t, err)
	p, err := b.GetProblem()
	require.NoError(t, err)

	flow := NewArcFlowSolution(c)
	flow.SetFlow(hyper, 2)

	_, err = DecomposeToPaths(p.Network(), flow)
	require.ErrorIs(t, err, ErrRequiresSimpleArcs)
}
