package cuco

// ProbingScheme is an external collaborator contract:
// deterministic, collision-tolerant, and carrying a compile-time CG
// size. Probe must return, for i = 0..numWindows-1, a permutation of
// [0, numWindows) — every probing attempt visits a window it has not
// visited before.
type ProbingScheme interface {
	// Probe maps (key hash, attempt) to a window index in
	// [0, numWindows).
	Probe(hash uint64, attempt, numWindows int) int
	// CGSize is G, the cooperative-group cardinality examining one
	// window's W slots per attempt.
	CGSize() int
}

// LinearProbing advances by one window per attempt. Its period covers
// every window exactly once when numWindows is a power of two,
// mirroring the quadratic-probing requirement in cockroachdb-swiss's
// probeSeq but specialized to stride 1.
type LinearProbing struct{ G int }

func (p LinearProbing) Probe(hash uint64, attempt, numWindows int) int {
	mask := uint64(numWindows - 1)
	return int((hash + uint64(attempt)) & mask)
}

func (p LinearProbing) CGSize() int {
	if p.G <= 0 {
		return 1
	}
	return p.G
}

// QuadraticProbing is a triangular progression
// p(i) = offset + i*(i+1)/2 (mod numWindows), grounded on
// cockroachdb-swiss's probeSeq. It visits every window of a
// power-of-two-sized storage exactly once (see the Z/2^m bijection
// cited there), so MakeWindowExtent rounds M up to a power of two for
// this scheme.
type QuadraticProbing struct{ G int }

func (p QuadraticProbing) Probe(hash uint64, attempt, numWindows int) int {
	mask := uint64(numWindows - 1)
	offset := hash & mask
	idx := uint64(attempt)
	step := idx * (idx + 1) / 2
	return int((offset + step) & mask)
}

func (p QuadraticProbing) CGSize() int {
	if p.G <= 0 {
		return 1
	}
	return p.G
}

// DoubleHashProbing computes a second, odd stride from the hash so
// that gcd(stride, numWindows) == 1 for a power-of-two numWindows,
// guaranteeing the sequence is a full permutation of [0, numWindows).
type DoubleHashProbing struct{ G int }

func (p DoubleHashProbing) Probe(hash uint64, attempt, numWindows int) int {
	mask := uint64(numWindows - 1)
	offset := hash & mask
	// The low bits already drove the primary offset; derive the stride
	// from the high bits and force it odd so it is coprime to the
	// power-of-two modulus.
	stride := ((hash >> 32) | 1)
	return int((offset + uint64(attempt)*stride) & mask)
}

func (p DoubleHashProbing) CGSize() int {
	if p.G <= 0 {
		return 1
	}
	return p.G
}

// MakeWindowExtent computes the window-count policy: given a requested
// lower-bound capacity and the window width W, pick the number of
// windows M such that capacity <= M*W and the scheme's period covers
// all M windows. LinearProbing, QuadraticProbing and DoubleHashProbing
// above all require M to be a power of two, so this policy always
// rounds up to one. Neither the probing scheme nor its CG size enters
// the computation, and no prime-modulus policy is provided.
func MakeWindowExtent(lowerBoundCapacity, windowWidth int) int {
	if lowerBoundCapacity <= 0 {
		lowerBoundCapacity = 1
	}
	if windowWidth <= 0 {
		windowWidth = 1
	}
	m := (lowerBoundCapacity + windowWidth - 1) / windowWidth
	return nextPow2(max(m, 1))
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
