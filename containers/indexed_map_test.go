package containers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type intKey int

func (k intKey) Index() int { return int(k) }

func TestIndexedMap_SetGet(t *testing.T) {
	m := NewIndexedMap[intKey, float64](4, -1)

	require.Equal(t, -1.0, m.Get(intKey(0)))
	require.NoError(t, m.Set(intKey(2), 42))
	require.Equal(t, 42.0, m.Get(intKey(2)))
	require.Equal(t, -1.0, m.Get(intKey(1)))

	v, ok := m.GetOK(intKey(2))
	require.True(t, ok)
	require.Equal(t, 42.0, v)

	_, ok = m.GetOK(intKey(3))
	require.False(t, ok)
}

func TestIndexedMap_ResetIsLogicalAndO1(t *testing.T) {
	m := NewIndexedMap[intKey, float64](4, -1)
	require.NoError(t, m.Set(intKey(0), 10))
	require.NoError(t, m.Set(intKey(1), 20))

	m.Reset()

	// Every key not written since reset returns the configured default.
	require.Equal(t, -1.0, m.Get(intKey(0)))
	require.Equal(t, -1.0, m.Get(intKey(1)))
	require.False(t, m.Has(intKey(0)))

	require.NoError(t, m.Set(intKey(0), 99))
	require.Equal(t, 99.0, m.Get(intKey(0)))
}

func TestIndexedMap_GrowsOnWrite(t *testing.T) {
	m := NewIndexedMap[intKey, float64](1, 0)
	require.NoError(t, m.Set(intKey(10), 7))
	require.Equal(t, 7.0, m.Get(intKey(10)))
	require.GreaterOrEqual(t, m.Len(), 11)
}

func TestIndexedMap_SetNegativeIndexReturnsError(t *testing.T) {
	m := NewIndexedMap[intKey, float64](4, -1)
	err := m.Set(intKey(-1), 42)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestBuildIndexedMap(t *testing.T) {
	keys := []intKey{0, 3, 1}
	m := BuildIndexedMap[intKey, int](keys, func(k intKey) int { return int(k) * 10 }, -1)
	require.Equal(t, 0, m.Get(intKey(0)))
	require.Equal(t, 30, m.Get(intKey(3)))
	require.Equal(t, -1, m.Get(intKey(2)))
}
