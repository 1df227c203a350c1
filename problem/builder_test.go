package problem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlowProblem(t *testing.T) {
	b := NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	v3 := b.NewVertex()

	a1, err := b.NewArc(v1, 1, v2, WithCost(1), WithCapacity(5))
	require.NoError(t, err)
	a2, err := b.NewArc(v2, 1, v3, WithCost(1))
	require.NoError(t, err)

	_, err = b.NewCommodity(v1, v3, 5, 5)
	require.NoError(t, err)

	p, err := b.GetProblem()
	require.NoError(t, err)

	require.Equal(t, 1.0, p.Cost(a1))
	require.Equal(t, 5.0, p.Capacity(a1))
	require.True(t, p.IsCapacitated(a1))
	require.False(t, p.IsCapacitated(a2))
	require.Len(t, p.Commodities(), 1)
}

func TestBuilder_RejectsBadCommodity(t *testing.T) {
	b := NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	_, err := b.NewCommodity(v1, v2, 10, 5)
	require.ErrorIs(t, err, ErrInvalidCommodity)

	_, err = b.NewCommodity(v1, v2, 1, math.Inf(1))
	require.ErrorIs(t, err, ErrInvalidCommodity)
}

func TestBuilder_ConstraintBoundsProduceExpectedRows(t *testing.T) {
	b := NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	a, err := b.NewArc(v1, 1, v2)
	require.NoError(t, err)

	eq, err := b.NewConstraint(6, 6)
	require.NoError(t, err)
	require.Len(t, eq.Rows(), 1)

	bounded, err := b.NewConstraint(2, 8)
	require.NoError(t, err)
	require.Len(t, bounded.Rows(), 2)

	lowerOnly, err := b.NewConstraint(1, math.Inf(1))
	require.NoError(t, err)
	require.Len(t, lowerOnly.Rows(), 1)

	require.NoError(t, b.SetConstraintCoefficient(eq, a, 1))

	_, err = b.NewConstraint(5, 1)
	require.ErrorIs(t, err, ErrInvalidConstraintBounds)
	_, err = b.NewConstraint(math.Inf(-1), math.Inf(1))
	require.ErrorIs(t, err, ErrInvalidConstraintBounds)

	p, err := b.GetProblem()
	require.NoError(t, err)
	require.Len(t, p.Constraints(), 4)
}
