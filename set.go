package cuco

// unit is the placeholder payload type for Set: the Value constraint
// requires a numeric underlying type, so a zero-byte struct cannot
// stand in for "no payload" the way it would in plain Go. unit's
// single byte is never read by any Set method.
type unit uint8

// Set is a key-only instantiation of Container: it composes the engine
// with a minimal payload, matching the set flavor of the engine's two
// designed consumers (set and map).
type Set[K Key] struct {
	c *Container[K, unit]
}

// NewSet constructs a Set with at least capacity slots.
func NewSet[K Key](stream *Stream, capacity int, emptyKey K, opts ...Option[K, unit]) (*Set[K], error) {
	c, err := New[K, unit](stream, capacity, emptyKey, opts...)
	if err != nil {
		return nil, err
	}
	return &Set[K]{c: c}, nil
}

func (s *Set[K]) Insert(stream *Stream, keys []K) (int64, error) {
	return s.c.Insert(stream, keys, nil)
}

func (s *Set[K]) InsertAsync(stream *Stream, keys []K) *DeviceCounter {
	return s.c.InsertAsync(stream, keys, nil)
}

func (s *Set[K]) Contains(stream *Stream, keys []K, out []bool) error {
	return s.c.Contains(stream, keys, out)
}

func (s *Set[K]) ContainsAsync(stream *Stream, keys []K, out []bool) {
	s.c.ContainsAsync(stream, keys, out)
}

func (s *Set[K]) Erase(stream *Stream, keys []K) (int64, error) {
	return s.c.Erase(stream, keys)
}

func (s *Set[K]) EraseAsync(stream *Stream, keys []K) *DeviceCounter {
	return s.c.EraseAsync(stream, keys)
}

func (s *Set[K]) Count(stream *Stream, keys []K) (int64, error) {
	return s.c.Count(stream, keys)
}

func (s *Set[K]) RetrieveAll(stream *Stream) ([]K, error) {
	keys, _, err := s.c.RetrieveAll(stream)
	return keys, err
}

func (s *Set[K]) Rehash(stream *Stream, newCapacity int) error {
	return s.c.Rehash(stream, newCapacity)
}

func (s *Set[K]) Clear(stream *Stream) error { return s.c.Clear(stream) }

func (s *Set[K]) Size(stream *Stream) int64 { return s.c.Size(stream) }

func (s *Set[K]) Capacity() int { return s.c.Capacity() }

// Container exposes the underlying engine handle for callers that need
// the full stencil/bulk API Set does not wrap.
func (s *Set[K]) Container() *Container[K, unit] { return s.c }
