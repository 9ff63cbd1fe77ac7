package cuco

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetBasicOperations(t *testing.T) {
	s, err := NewSet[uint64](nil, 64, testEmptyKey,
		WithErasedSentinel[uint64, unit](testErasedKey))
	require.NoError(t, err)

	keys := []uint64{1, 2, 3}
	n, err := s.Insert(nil, keys)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	out := make([]bool, len(keys))
	require.NoError(t, s.Contains(nil, keys, out))
	require.Equal(t, []bool{true, true, true}, out)

	erased, err := s.Erase(nil, keys[:1])
	require.NoError(t, err)
	require.EqualValues(t, 1, erased)
	require.EqualValues(t, 2, s.Size(nil))

	all, err := s.RetrieveAll(nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{2, 3}, all)

	require.NoError(t, s.Rehash(nil, 128))
	require.EqualValues(t, 2, s.Size(nil))
}

func TestMapBasicOperations(t *testing.T) {
	m, err := NewMap[uint64, uint64](nil, 64, testEmptyKey)
	require.NoError(t, err)

	keys := []uint64{1, 2, 3}
	vals := []uint64{10, 20, 30}
	n, err := m.Insert(nil, keys, vals)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	refs := make([]Ref[uint64, uint64], len(keys))
	require.NoError(t, m.Find(nil, keys, refs))
	for i, r := range refs {
		require.True(t, r.Valid())
		require.EqualValues(t, vals[i], r.Value())
	}

	count, err := m.Count(nil, keys)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}
