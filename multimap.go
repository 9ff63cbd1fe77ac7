package cuco

// Multimap relaxes the container's "no duplicate keys" invariant:
// Insert always succeeds subject to capacity, and FindAll/Count report
// every matching entry rather than stopping at the first one. It
// otherwise shares the container's storage, probing, and dispatch
// machinery.
type Multimap[K Key, V Value] struct {
	storage *Storage[K, V]
	cfg     Config[K, V]
	sent    sentinels
	size    paddedCounter
}

// NewMultimap constructs a Multimap with at least capacity slots.
func NewMultimap[K Key, V Value](stream *Stream, capacity int, emptyKey K, opts ...Option[K, V]) (*Multimap[K, V], error) {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(&cfg)
	}
	sent := sentinels{emptyKeyBits: keyBits(emptyKey)}

	m := &Multimap[K, V]{cfg: cfg, sent: sent}
	m.storage = NewStorage[K, V](capacity, cfg.windowWidth, cfg.scheme, cfg.allocator, sent)

	if stream == nil {
		stream = NewStream()
		defer stream.Close()
	}
	m.storage.Initialize(stream)
	if err := stream.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Multimap[K, V]) Capacity() int { return m.storage.Capacity() }
func (m *Multimap[K, V]) Size() int64   { return m.size.load() }

// InsertAsync inserts every (key, value) pair, asynchronously; unlike
// Container.InsertAsync, an existing entry with the same key never
// suppresses the insert.
func (m *Multimap[K, V]) InsertAsync(stream *Stream, keys []K, values []V) *DeviceCounter {
	counter := &DeviceCounter{}
	stream.Submit("InsertAsync", func() error {
		m.insertRange(keys, values, counter)
		return nil
	})
	return counter
}

// Insert is the synchronous form of InsertAsync.
func (m *Multimap[K, V]) Insert(stream *Stream, keys []K, values []V) (int64, error) {
	counter := &DeviceCounter{}
	err := runOrSubmitSync(stream, "Insert", func() error {
		m.insertRange(keys, values, counter)
		return nil
	})
	return counter.Load(), err
}

func (m *Multimap[K, V]) insertRange(keys []K, values []V, counter *DeviceCounter) {
	hasValues := len(values) == len(keys)
	dispatch(len(keys), func(s, e int) {
		for i := s; i < e; i++ {
			var v V
			if hasValues {
				v = values[i]
			}
			kb := keyBits(keys[i])
			h := m.cfg.hashFn(kb, m.cfg.seed)
			if groupProbeInsertMulti(m.storage, m.cfg.scheme, h, kb, valueBits(v)) == outcomeInserted {
				counter.incr()
				m.size.add(1)
			}
		}
	})
}

// FindAllAsync writes into out, for each key, every matching (key,
// value) pair found, in probe order. out must be pre-sized per key
// (callers typically size it to the multimap's maximum expected
// fanout); entries beyond len(out[i]) are dropped.
func (m *Multimap[K, V]) FindAllAsync(stream *Stream, keys []K, out [][]V) {
	stream.Submit("FindAllAsync", func() error {
		m.findAllRange(keys, out)
		return nil
	})
}

// FindAll is the synchronous form of FindAllAsync.
func (m *Multimap[K, V]) FindAll(stream *Stream, keys []K, out [][]V) error {
	return runOrSubmitSync(stream, "FindAll", func() error {
		m.findAllRange(keys, out)
		return nil
	})
}

func (m *Multimap[K, V]) findAllRange(keys []K, out [][]V) {
	dispatch(len(keys), func(s, e int) {
		for i := s; i < e; i++ {
			kb := keyBits(keys[i])
			h := m.cfg.hashFn(kb, m.cfg.seed)
			dest := out[i]
			n := 0
			groupProbeFindAllMulti(m.storage, m.cfg.scheme, h, kb, func(slot *Slot[K, V]) {
				if n < len(dest) {
					dest[n] = slot.load().value()
				}
				n++
			})
		}
	})
}

// Count returns, for each key, the number of matching entries.
func (m *Multimap[K, V]) Count(stream *Stream, keys []K, out []int64) error {
	return runOrSubmitSync(stream, "Count", func() error {
		dispatch(len(keys), func(s, e int) {
			for i := s; i < e; i++ {
				kb := keyBits(keys[i])
				h := m.cfg.hashFn(kb, m.cfg.seed)
				var n int64
				groupProbeFindAllMulti(m.storage, m.cfg.scheme, h, kb, func(*Slot[K, V]) { n++ })
				out[i] = n
			}
		})
		return nil
	})
}

// Clear resets every slot to empty and the size to zero, synchronously.
func (m *Multimap[K, V]) Clear(stream *Stream) error {
	return runOrSubmitSync(stream, "Clear", func() error {
		m.storage.initializeSync()
		m.size.store(0)
		return nil
	})
}
