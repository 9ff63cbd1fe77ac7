package cuco

import "sync/atomic"

// RehashAsync rebuilds storage at a new capacity:
// 1. construct a fresh Storage at newCapacity (or the current capacity
//    if newCapacity <= 0) and clear it;
// 2. scan the old storage's windows and re-insert every filled slot
//    into the new storage via the same cooperative-group probe
//    ordinary inserts use;
// 3. atomically publish the new storage, so a caller that issues a
//    read after this command on the same stream observes the
//    rehashed content.
//
// Precondition: newCapacity must accommodate every live entry. Ordinary
// Insert leaves capacity overflow as an unchecked precondition
// violation, but Rehash additionally counts any entry it failed to
// place and reports ErrCapacityExceeded as a backend error rather than
// silently dropping it, since a rehash that loses data is worse than
// one that fails loudly.
func (c *Container[K, V]) RehashAsync(stream *Stream, newCapacity int) {
	stream.Submit("RehashAsync", func() error {
		return c.rehashSync(newCapacity)
	})
}

// Rehash is the synchronous form of RehashAsync.
func (c *Container[K, V]) Rehash(stream *Stream, newCapacity int) error {
	return runOrSubmitSync(stream, "Rehash", func() error {
		return c.rehashSync(newCapacity)
	})
}

func (c *Container[K, V]) rehashSync(newCapacity int) error {
	old := c.storage.Load()
	if newCapacity <= 0 {
		newCapacity = old.Capacity()
	}

	newStorage := NewStorage[K, V](newCapacity, c.cfg.windowWidth, c.cfg.scheme, c.cfg.allocator, c.sent)
	newStorage.initializeSync()

	var liveCount, lost int64
	dispatch(old.numWindows, func(s, e int) {
		var local, localLost int64
		for w := s; w < e; w++ {
			window := old.window(w)
			for lane := range window {
				v := window[lane].load()
				if !old.sentinels.isFilled(v.keyBits) {
					continue
				}
				h := c.cfg.hashFn(v.keyBits, c.cfg.seed)
				if groupProbeInsert(newStorage, c.cfg.scheme, h, v.keyBits, v.valBits) == outcomeInserted {
					local++
				} else {
					localLost++
				}
			}
		}
		atomic.AddInt64(&liveCount, local)
		atomic.AddInt64(&lost, localLost)
	})

	c.storage.Store(newStorage)
	old.allocator.FreeSlots(old.slots)
	c.size.store(liveCount)

	if lost > 0 {
		return ErrCapacityExceeded
	}
	return nil
}
