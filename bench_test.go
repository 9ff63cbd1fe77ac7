package cuco

import (
	"math/rand"
	"testing"
)

func genBenchKeys(n int) []uint64 {
	rng := rand.New(rand.NewSource(99))
	seen := make(map[uint64]struct{}, n)
	keys := make([]uint64, 0, n)
	for len(keys) < n {
		k := rng.Uint64()
		if k == testEmptyKey || k == testErasedKey {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

func BenchmarkInsert(b *testing.B) {
	for _, n := range []int{1 << 10, 1 << 16, 1 << 20} {
		b.Run(itoaBench(n), func(b *testing.B) {
			keys := genBenchKeys(n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				c, err := New[uint64, uint64](nil, n*2, testEmptyKey)
				if err != nil {
					b.Fatal(err)
				}
				b.StartTimer()
				if _, err := c.Insert(nil, keys, keys); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkContains(b *testing.B) {
	for _, n := range []int{1 << 10, 1 << 16, 1 << 20} {
		b.Run(itoaBench(n), func(b *testing.B) {
			keys := genBenchKeys(n)
			c, err := New[uint64, uint64](nil, n*2, testEmptyKey)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := c.Insert(nil, keys, keys); err != nil {
				b.Fatal(err)
			}
			out := make([]bool, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := c.Contains(nil, keys, out); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRehash(b *testing.B) {
	for _, n := range []int{1 << 10, 1 << 16} {
		b.Run(itoaBench(n), func(b *testing.B) {
			keys := genBenchKeys(n)
			c, err := New[uint64, uint64](nil, n*2, testEmptyKey)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := c.Insert(nil, keys, keys); err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := c.Rehash(nil, n*4); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func itoaBench(n int) string {
	switch {
	case n >= 1<<20:
		return "1Mi"
	case n >= 1<<16:
		return "64Ki"
	default:
		return "1Ki"
	}
}
