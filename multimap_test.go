package cuco

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMultimapAllowsDuplicateKeys checks that the multimap relaxation
// of invariant 3 holds: inserting the same key three times succeeds
// every time, and FindAll/Count report all three matches.
func TestMultimapAllowsDuplicateKeys(t *testing.T) {
	m, err := NewMultimap[uint64, uint64](nil, 64, testEmptyKey)
	require.NoError(t, err)

	n, err := m.Insert(nil, []uint64{1, 1, 1, 2}, []uint64{10, 11, 12, 20})
	require.NoError(t, err)
	require.EqualValues(t, 4, n)
	require.EqualValues(t, 4, m.Size())

	counts := make([]int64, 2)
	require.NoError(t, m.Count(nil, []uint64{1, 2}, counts))
	require.EqualValues(t, 3, counts[0])
	require.EqualValues(t, 1, counts[1])

	out := [][]uint64{make([]uint64, 3), make([]uint64, 3)}
	require.NoError(t, m.FindAll(nil, []uint64{1, 2}, out))
	require.ElementsMatch(t, []uint64{10, 11, 12}, out[0])
	require.Equal(t, []uint64{20, 0, 0}, out[1])
}

func TestMultimapClear(t *testing.T) {
	m, err := NewMultimap[uint64, uint64](nil, 64, testEmptyKey)
	require.NoError(t, err)
	_, err = m.Insert(nil, []uint64{1, 2, 3}, []uint64{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, m.Clear(nil))
	require.EqualValues(t, 0, m.Size())

	counts := make([]int64, 1)
	require.NoError(t, m.Count(nil, []uint64{1}, counts))
	require.EqualValues(t, 0, counts[0])
}
