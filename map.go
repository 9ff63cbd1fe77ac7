package cuco

// Map is the map flavor of the engine: a thin rename of Container that
// documents key/value usage without adding behavior beyond what
// Container already provides.
type Map[K Key, V Value] struct {
	c *Container[K, V]
}

// NewMap constructs a Map with at least capacity slots.
func NewMap[K Key, V Value](stream *Stream, capacity int, emptyKey K, opts ...Option[K, V]) (*Map[K, V], error) {
	c, err := New[K, V](stream, capacity, emptyKey, opts...)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{c: c}, nil
}

func (m *Map[K, V]) Insert(stream *Stream, keys []K, values []V) (int64, error) {
	return m.c.Insert(stream, keys, values)
}

func (m *Map[K, V]) InsertAsync(stream *Stream, keys []K, values []V) *DeviceCounter {
	return m.c.InsertAsync(stream, keys, values)
}

func (m *Map[K, V]) Find(stream *Stream, keys []K, out []Ref[K, V]) error {
	return m.c.Find(stream, keys, out)
}

func (m *Map[K, V]) FindAsync(stream *Stream, keys []K, out []Ref[K, V]) {
	m.c.FindAsync(stream, keys, out)
}

func (m *Map[K, V]) Contains(stream *Stream, keys []K, out []bool) error {
	return m.c.Contains(stream, keys, out)
}

func (m *Map[K, V]) Erase(stream *Stream, keys []K) (int64, error) {
	return m.c.Erase(stream, keys)
}

func (m *Map[K, V]) Count(stream *Stream, keys []K) (int64, error) {
	return m.c.Count(stream, keys)
}

func (m *Map[K, V]) RetrieveAll(stream *Stream) (keys []K, values []V, err error) {
	return m.c.RetrieveAll(stream)
}

func (m *Map[K, V]) Rehash(stream *Stream, newCapacity int) error {
	return m.c.Rehash(stream, newCapacity)
}

func (m *Map[K, V]) Clear(stream *Stream) error { return m.c.Clear(stream) }

func (m *Map[K, V]) Size(stream *Stream) int64 { return m.c.Size(stream) }

func (m *Map[K, V]) Capacity() int { return m.c.Capacity() }

// Container exposes the underlying engine handle for callers that need
// the full stencil/bulk API Map does not wrap.
func (m *Map[K, V]) Container() *Container[K, V] { return m.c }
