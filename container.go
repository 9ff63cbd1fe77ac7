package cuco

import (
	"sync/atomic"
)

// Config bundles the construction-time capability choices — hash,
// probe, allocate — threaded through the engine as plain values
// rather than virtual dispatch.
type Config[K Key, V Value] struct {
	windowWidth   int
	scheme        ProbingScheme
	allocator     Allocator[K, V]
	hashFn        HashFunc
	seed          uint64
	erasedKey     K
	erasedKeySet  bool
}

// Option configures a Container at construction, in the style of
// cockroachdb-swiss's option[K,V] interface and mapof.go's WithX
// functions.
type Option[K Key, V Value] func(*Config[K, V])

// WithWindowWidth sets W, the slot count examined per probing attempt.
// Must be one of 1, 2, 4, 8.
func WithWindowWidth[K Key, V Value](w int) Option[K, V] {
	return func(c *Config[K, V]) { c.windowWidth = w }
}

// WithProbingScheme overrides the default LinearProbing generator.
func WithProbingScheme[K Key, V Value](s ProbingScheme) Option[K, V] {
	return func(c *Config[K, V]) { c.scheme = s }
}

// WithAllocator overrides the default GC-backed Allocator.
func WithAllocator[K Key, V Value](a Allocator[K, V]) Option[K, V] {
	return func(c *Config[K, V]) { c.allocator = a }
}

// WithHashFunc overrides the default hash functor.
func WithHashFunc[K Key, V Value](h HashFunc) Option[K, V] {
	return func(c *Config[K, V]) { c.hashFn = h }
}

// WithSeed sets the per-container hash seed (default 0).
func WithSeed[K Key, V Value](seed uint64) Option[K, V] {
	return func(c *Config[K, V]) { c.seed = seed }
}

// WithErasedSentinel enables EraseAsync by reserving erasedKey as the
// erased-key sentinel. It must differ from the empty sentinel
// to be distinguishable.
func WithErasedSentinel[K Key, V Value](erasedKey K) Option[K, V] {
	return func(c *Config[K, V]) {
		c.erasedKey = erasedKey
		c.erasedKeySet = true
	}
}

func defaultConfig[K Key, V Value]() Config[K, V] {
	return Config[K, V]{
		windowWidth: 4,
		scheme:      LinearProbing{G: 1},
		allocator:   defaultAllocator[K, V]{},
		hashFn:      defaultHash,
	}
}

// Container is the host-facing handle for the open-addressing engine.
// It owns a Storage exclusively; Rehash swaps that ownership
// atomically from the host's perspective.
type Container[K Key, V Value] struct {
	storage atomic.Pointer[Storage[K, V]]

	emptyKey K
	cfg      Config[K, V]
	sent     sentinels
	size     paddedCounter
}

// New constructs a Container with at least capacity slots. Key
// equality is implicit bitwise equality, guaranteed by the Key
// constraint.
func New[K Key, V Value](stream *Stream, capacity int, emptyKey K, opts ...Option[K, V]) (*Container[K, V], error) {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newContainer(stream, capacity, emptyKey, cfg)
}

// NewFromLoadFactor is a constructor form where n is the number of
// entries the caller intends to hold. The requested capacity is
// n/loadFactor (at least n); the storage rounds it up to a whole
// power-of-two number of windows, so n/Capacity() is at most
// loadFactor.
func NewFromLoadFactor[K Key, V Value](stream *Stream, n int, loadFactor float64, emptyKey K, opts ...Option[K, V]) (*Container[K, V], error) {
	if loadFactor <= 0 || loadFactor > 1 {
		return nil, configErrorf("NewFromLoadFactor", ErrInvalidLoadFactor)
	}
	capacity := int(float64(n) / loadFactor)
	if capacity < n {
		capacity = n
	}
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newContainer(stream, capacity, emptyKey, cfg)
}

func newContainer[K Key, V Value](stream *Stream, capacity int, emptyKey K, cfg Config[K, V]) (*Container[K, V], error) {
	if cfg.erasedKeySet && keyBits(cfg.erasedKey) == keyBits(emptyKey) {
		return nil, configErrorf("New", ErrSentinelCollision)
	}

	sent := sentinels{
		emptyKeyBits:  keyBits(emptyKey),
		erasedKeyBits: keyBits(cfg.erasedKey),
		erasedKeySet:  cfg.erasedKeySet,
	}

	c := &Container[K, V]{emptyKey: emptyKey, cfg: cfg, sent: sent}
	storage := NewStorage[K, V](capacity, cfg.windowWidth, cfg.scheme, cfg.allocator, sent)
	c.storage.Store(storage)

	if stream == nil {
		stream = NewStream()
		defer stream.Close()
	}
	storage.Initialize(stream)
	if err := stream.Wait(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container[K, V]) hash(k K) uint64 {
	return c.cfg.hashFn(keyBits(k), c.cfg.seed)
}

// Capacity returns the container's current slot capacity.
func (c *Container[K, V]) Capacity() int { return c.storage.Load().Capacity() }

// EmptyKeySentinel returns the key value marking an empty slot.
func (c *Container[K, V]) EmptyKeySentinel() K { return c.emptyKey }

// ErasedKeySentinel returns the erased-key sentinel; ok is false when
// the container was constructed without erase support.
func (c *Container[K, V]) ErasedKeySentinel() (key K, ok bool) {
	return c.cfg.erasedKey, c.cfg.erasedKeySet
}

// ProbingScheme returns the configured probing scheme.
func (c *Container[K, V]) ProbingScheme() ProbingScheme { return c.cfg.scheme }

// Allocator returns the configured slot allocator.
func (c *Container[K, V]) Allocator() Allocator[K, V] { return c.cfg.allocator }

// StorageRef returns a non-owning reference to the currently active
// Storage. It must not outlive the Container and is invalidated by
// Rehash.
func (c *Container[K, V]) StorageRef() *Storage[K, V] { return c.storage.Load() }

// Size returns the number of filled slots. It blocks only in the
// sense of reading an atomic counter maintained incrementally by
// Insert/EraseAsync — no stream synchronization is required since the
// counter is updated alongside every insert and erase.
func (c *Container[K, V]) Size(stream *Stream) int64 {
	_ = stream
	return c.size.load()
}

// Clear resets every slot to empty and the size to zero, synchronously.
func (c *Container[K, V]) Clear(stream *Stream) error {
	return runOrSubmitSync(stream, "Clear", func() error {
		return c.clearSync()
	})
}

// ClearAsync is the async form of Clear.
func (c *Container[K, V]) ClearAsync(stream *Stream) {
	stream.Submit("Clear", c.clearSync)
}

func (c *Container[K, V]) clearSync() error {
	storage := c.storage.Load()
	storage.initializeSync()
	c.size.store(0)
	return nil
}

// runOrSubmitSync is the building block for every synchronous host op
// that also has an Async twin: if stream is nil it runs on a private
// ephemeral stream; otherwise it submits on the caller's stream and
// waits.
func runOrSubmitSync(stream *Stream, op string, fn func() error) error {
	if stream == nil {
		return runSync(op, fn)
	}
	stream.Submit(op, fn)
	return stream.Wait()
}

// insertRange fans [0,len(keys)) across goroutines via dispatch and
// drives one cooperative-group probe per allowed key. It is the
// shared core of Insert/InsertAsync/InsertIf/InsertIfAsync.
func (c *Container[K, V]) insertRange(keys []K, values []V, allow func(i int) bool, counter *DeviceCounter) {
	storage := c.storage.Load()
	hasValues := len(values) == len(keys)
	dispatch(len(keys), func(s, e int) {
		for i := s; i < e; i++ {
			if allow != nil && !allow(i) {
				continue
			}
			var v V
			if hasValues {
				v = values[i]
			}
			kb := keyBits(keys[i])
			h := c.cfg.hashFn(kb, c.cfg.seed)
			if groupProbeInsert(storage, c.cfg.scheme, h, kb, valueBits(v)) == outcomeInserted {
				counter.incr()
				c.size.add(1)
			}
		}
	})
}

// InsertAsync inserts every key of keys, asynchronously. The returned
// counter, once stream.Wait returns, holds the number of keys for
// which this call returned "inserted".
func (c *Container[K, V]) InsertAsync(stream *Stream, keys []K, values []V) *DeviceCounter {
	counter := &DeviceCounter{}
	stream.Submit("InsertAsync", func() error {
		c.insertRange(keys, values, nil, counter)
		return nil
	})
	return counter
}

// Insert is the synchronous form of InsertAsync and returns the count
// of newly inserted keys directly.
func (c *Container[K, V]) Insert(stream *Stream, keys []K, values []V) (int64, error) {
	counter := &DeviceCounter{}
	err := runOrSubmitSync(stream, "Insert", func() error {
		c.insertRange(keys, values, nil, counter)
		return nil
	})
	return counter.Load(), err
}
