package cuco

import (
	"runtime"
	"sync"
)

// Storage is the fixed-size window array: an ordered array of M
// windows of W slots each, so capacity = M*W. A window is never
// materialized as its own object; it is the subslice
// slots[w*W : w*W+W], which keeps the whole array one contiguous
// allocation — a flat slice rather than linked buckets, since the
// engine has no overflow chaining and capacity is fixed.
type Storage[K Key, V Value] struct {
	slots        []Slot[K, V]
	windowWidth  int
	numWindows   int
	allocator    Allocator[K, V]
	sentinels    sentinels
	probeCGSize  int
}

// NewStorage allocates a Storage with at least lowerBoundCapacity
// slots, honoring windowWidth (W) and the probing scheme's window
// count policy.
func NewStorage[K Key, V Value](lowerBoundCapacity, windowWidth int, scheme ProbingScheme, alloc Allocator[K, V], sent sentinels) *Storage[K, V] {
	if windowWidth <= 0 {
		windowWidth = 1
	}
	numWindows := MakeWindowExtent(lowerBoundCapacity, windowWidth)
	if alloc == nil {
		alloc = defaultAllocator[K, V]{}
	}
	return &Storage[K, V]{
		slots:       alloc.AllocSlots(numWindows * windowWidth),
		windowWidth: windowWidth,
		numWindows:  numWindows,
		allocator:   alloc,
		sentinels:   sent,
		probeCGSize: scheme.CGSize(),
	}
}

// Capacity is the total slot count, M*W.
func (s *Storage[K, V]) Capacity() int { return s.numWindows * s.windowWidth }

// WindowExtent is M, the number of windows.
func (s *Storage[K, V]) WindowExtent() int { return s.numWindows }

// WindowWidth is W, the number of slots per window.
func (s *Storage[K, V]) WindowWidth() int { return s.windowWidth }

// CGSize is G, the cooperative-group cardinality the storage was built
// against; it is recorded so a caller inspecting a Storage (or a future
// probe variant genuinely partitioning a window across G sub-groups)
// can recover it without holding onto the original ProbingScheme.
func (s *Storage[K, V]) CGSize() int { return s.probeCGSize }

// window returns the W-slot subslice backing window index w.
func (s *Storage[K, V]) window(w int) []Slot[K, V] {
	base := w * s.windowWidth
	return s.slots[base : base+s.windowWidth]
}

// Initialize fills every slot with the empty sentinel, asynchronously
// on stream. Work is fanned out across GOMAXPROCS goroutines the same
// way the bulk dispatcher fans out bulk operations, since clearing
// M*W slots is itself an embarrassingly parallel bulk write.
func (s *Storage[K, V]) Initialize(stream *Stream) {
	stream.Submit("storage.initialize", func() error {
		s.initializeSync()
		return nil
	})
}

func (s *Storage[K, V]) initializeSync() {
	n := len(s.slots)
	workers, itemsPerWorker := splitForDispatch(n, minParallelBatchItems, runtime.GOMAXPROCS(0))
	if workers <= 1 {
		s.clearRange(0, n)
		return
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		start := i * itemsPerWorker
		end := min(start+itemsPerWorker, n)
		go func(start, end int) {
			defer wg.Done()
			s.clearRange(start, end)
		}(start, end)
	}
	wg.Wait()
}

func (s *Storage[K, V]) clearRange(start, end int) {
	for i := start; i < end; i++ {
		s.slots[i].storeSentinel(s.sentinels.emptyKeyBits)
	}
}

// Close releases the storage back to its allocator.
func (s *Storage[K, V]) Close() {
	s.allocator.FreeSlots(s.slots)
	s.slots = nil
}
