package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewArc_RejectsEmptyTails(t *testing.T) {
	_, err := NewArc(0, nil, NewVertex(0))
	require.ErrorIs(t, err, ErrEmptyTails)
}

func TestNewArc_RejectsNonPositiveMultiplier(t *testing.T) {
	_, err := NewArc(0, []Tail{{Vertex: NewVertex(0), Multiplier: 0}}, NewVertex(1))
	require.ErrorIs(t, err, ErrNonPositiveMultiplier)
}

func TestArc_IsHyperArcAndSingleTail(t *testing.T) {
	v0, v1 := NewVertex(0), NewVertex(1)
	simple, err := NewSimpleArc(0, v0, 3, v1)
	require.NoError(t, err)
	require.False(t, simple.IsHyperArc())
	tail, ok := simple.SingleTail()
	require.True(t, ok)
	require.Equal(t, v0, tail.Vertex)
	require.Equal(t, 3.0, tail.Multiplier)

	hyper, err := NewArc(1, []Tail{{Vertex: v0, Multiplier: 1}, {Vertex: v1, Multiplier: 2}}, NewVertex(2))
	require.NoError(t, err)
	require.True(t, hyper.IsHyperArc())
	_, ok = hyper.SingleTail()
	require.False(t, ok)

	m, ok := hyper.TailMultiplier(v1)
	require.True(t, ok)
	require.Equal(t, 2.0, m)
}
