package cuco

// HashFunc is the hash functor contract: deterministic, taking the
// key's raw bit pattern and a per-container seed. It is consumed by
// the probing scheme; this file supplies a default so the container is
// usable without requiring every caller to bring their own.
type HashFunc func(keyBits uint64, seed uint64) uint64

// defaultHash is a 64-bit finalizer, the mixing tail of splitmix64,
// used as a builtin fallback before a caller overrides it via a
// constructor option.
func defaultHash(keyBits uint64, seed uint64) uint64 {
	h := keyBits + seed + 0x9E3779B97F4A7C15
	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	h ^= h >> 31
	return h
}
