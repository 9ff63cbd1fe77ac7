package cuco

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestProbingSchemesArePermutations checks the probing-sequence
// generator contract: for i = 0..numWindows-1, Probe must
// visit every window index exactly once.
func TestProbingSchemesArePermutations(t *testing.T) {
	schemes := map[string]ProbingScheme{
		"linear":    LinearProbing{G: 1},
		"quadratic": QuadraticProbing{G: 1},
		"double":    DoubleHashProbing{G: 1},
	}
	rng := rand.New(rand.NewSource(7))
	numWindows := 64

	for name, scheme := range schemes {
		t.Run(name, func(t *testing.T) {
			for trial := 0; trial < 20; trial++ {
				hash := rng.Uint64()
				seen := make(map[int]bool, numWindows)
				for i := 0; i < numWindows; i++ {
					w := scheme.Probe(hash, i, numWindows)
					require.GreaterOrEqualf(t, w, 0, "hash=%d i=%d", hash, i)
					require.Lessf(t, w, numWindows, "hash=%d i=%d", hash, i)
					require.Falsef(t, seen[w], "window %d revisited before the full permutation completed (hash=%d, i=%d)", w, hash, i)
					seen[w] = true
				}
				require.Len(t, seen, numWindows)
			}
		})
	}
}

func TestMakeWindowExtentRoundsUpToPowerOfTwo(t *testing.T) {
	cases := []struct {
		lowerBound, width, wantWindows int
	}{
		{1, 1, 1},
		{16, 4, 4},
		{17, 4, 8},
		{1000, 8, 128},
	}
	for _, c := range cases {
		got := MakeWindowExtent(c.lowerBound, c.width)
		require.Equal(t, c.wantWindows, got, "MakeWindowExtent(%d, %d)", c.lowerBound, c.width)
	}
}
