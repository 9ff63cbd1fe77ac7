package cuco

// This file is the rest of the bulk host API: the stencil
// ("_if") variants, InsertAndFind, erase, contains, find, and the two
// counting operations. Insert/InsertAsync live in container.go next to
// the Container type and its constructors; everything that needs an
// extra type parameter (the stencil element type) has to be a
// package-level function since Go methods cannot introduce their own
// type parameters beyond the receiver's.

// InsertIfAsync is InsertAsync's stencil variant: key i
// is inserted only if pred(stencil[i]) holds, otherwise the neutral
// "not inserted" outcome is recorded for that index.
func InsertIfAsync[K Key, V Value, S any](c *Container[K, V], stream *Stream, keys []K, values []V, stencil []S, pred func(S) bool) *DeviceCounter {
	counter := &DeviceCounter{}
	stream.Submit("InsertIfAsync", func() error {
		c.insertRange(keys, values, func(i int) bool { return pred(stencil[i]) }, counter)
		return nil
	})
	return counter
}

// InsertIf is the synchronous form of InsertIfAsync.
func InsertIf[K Key, V Value, S any](c *Container[K, V], stream *Stream, keys []K, values []V, stencil []S, pred func(S) bool) (int64, error) {
	counter := &DeviceCounter{}
	err := runOrSubmitSync(stream, "InsertIf", func() error {
		c.insertRange(keys, values, func(i int) bool { return pred(stencil[i]) }, counter)
		return nil
	})
	return counter.Load(), err
}

// InsertAndFindAsync inserts each key (as Insert does) and additionally
// writes, for every input index, the resolved slot Ref and an
// inserted/already-present flag.
func (c *Container[K, V]) InsertAndFindAsync(stream *Stream, keys []K, values []V, outRefs []Ref[K, V], outInserted []bool) *DeviceCounter {
	counter := &DeviceCounter{}
	stream.Submit("InsertAndFindAsync", func() error {
		c.insertAndFindRange(keys, values, outRefs, outInserted, counter)
		return nil
	})
	return counter
}

// InsertAndFind is the synchronous form of InsertAndFindAsync.
func (c *Container[K, V]) InsertAndFind(stream *Stream, keys []K, values []V, outRefs []Ref[K, V], outInserted []bool) (int64, error) {
	counter := &DeviceCounter{}
	err := runOrSubmitSync(stream, "InsertAndFind", func() error {
		c.insertAndFindRange(keys, values, outRefs, outInserted, counter)
		return nil
	})
	return counter.Load(), err
}

func (c *Container[K, V]) insertAndFindRange(keys []K, values []V, outRefs []Ref[K, V], outInserted []bool, counter *DeviceCounter) {
	storage := c.storage.Load()
	hasValues := len(values) == len(keys)
	dispatch(len(keys), func(s, e int) {
		for i := s; i < e; i++ {
			var v V
			if hasValues {
				v = values[i]
			}
			kb := keyBits(keys[i])
			h := c.cfg.hashFn(kb, c.cfg.seed)
			o, slot := groupProbeInsertRef(storage, c.cfg.scheme, h, kb, valueBits(v))
			outRefs[i] = Ref[K, V]{slot: slot}
			outInserted[i] = o == outcomeInserted
			if o == outcomeInserted {
				counter.incr()
				c.size.add(1)
			}
		}
	})
}

// EraseAsync erases every key of keys, asynchronously. Requires the
// container to have been constructed with WithErasedSentinel.
func (c *Container[K, V]) EraseAsync(stream *Stream, keys []K) *DeviceCounter {
	counter := &DeviceCounter{}
	stream.Submit("EraseAsync", func() error {
		if !c.cfg.erasedKeySet {
			return ErrEraseDisabled
		}
		c.eraseRange(keys, counter)
		return nil
	})
	return counter
}

// Erase is the synchronous form of EraseAsync.
func (c *Container[K, V]) Erase(stream *Stream, keys []K) (int64, error) {
	if !c.cfg.erasedKeySet {
		return 0, configErrorf("Erase", ErrEraseDisabled)
	}
	counter := &DeviceCounter{}
	err := runOrSubmitSync(stream, "Erase", func() error {
		c.eraseRange(keys, counter)
		return nil
	})
	return counter.Load(), err
}

func (c *Container[K, V]) eraseRange(keys []K, counter *DeviceCounter) {
	storage := c.storage.Load()
	dispatch(len(keys), func(s, e int) {
		for i := s; i < e; i++ {
			kb := keyBits(keys[i])
			h := c.cfg.hashFn(kb, c.cfg.seed)
			if groupProbeErase(storage, c.cfg.scheme, h, kb) == outcomeErased {
				counter.incr()
				c.size.add(-1)
			}
		}
	})
}

// ContainsAsync writes, for each key, whether it is currently present.
func (c *Container[K, V]) ContainsAsync(stream *Stream, keys []K, out []bool) {
	stream.Submit("ContainsAsync", func() error {
		c.containsRange(keys, out, nil)
		return nil
	})
}

// Contains is the synchronous form of ContainsAsync.
func (c *Container[K, V]) Contains(stream *Stream, keys []K, out []bool) error {
	return runOrSubmitSync(stream, "Contains", func() error {
		c.containsRange(keys, out, nil)
		return nil
	})
}

// ContainsIfAsync is the stencil variant of ContainsAsync; indices
// where pred(stencil[i]) is false get the neutral outcome (false).
func ContainsIfAsync[K Key, V Value, S any](c *Container[K, V], stream *Stream, keys []K, out []bool, stencil []S, pred func(S) bool) {
	stream.Submit("ContainsIfAsync", func() error {
		c.containsRange(keys, out, func(i int) bool { return pred(stencil[i]) })
		return nil
	})
}

// ContainsIf is the synchronous form of ContainsIfAsync.
func ContainsIf[K Key, V Value, S any](c *Container[K, V], stream *Stream, keys []K, out []bool, stencil []S, pred func(S) bool) error {
	return runOrSubmitSync(stream, "ContainsIf", func() error {
		c.containsRange(keys, out, func(i int) bool { return pred(stencil[i]) })
		return nil
	})
}

func (c *Container[K, V]) containsRange(keys []K, out []bool, allow func(i int) bool) {
	storage := c.storage.Load()
	dispatch(len(keys), func(s, e int) {
		for i := s; i < e; i++ {
			if allow != nil && !allow(i) {
				out[i] = false
				continue
			}
			kb := keyBits(keys[i])
			h := c.cfg.hashFn(kb, c.cfg.seed)
			o, _ := groupProbeFind(storage, c.cfg.scheme, h, kb)
			out[i] = o == outcomeFound
		}
	})
}

// FindAsync writes, for each key, the resolved Ref (invalid if absent).
func (c *Container[K, V]) FindAsync(stream *Stream, keys []K, out []Ref[K, V]) {
	stream.Submit("FindAsync", func() error {
		c.findRange(keys, out)
		return nil
	})
}

// Find is the synchronous form of FindAsync.
func (c *Container[K, V]) Find(stream *Stream, keys []K, out []Ref[K, V]) error {
	return runOrSubmitSync(stream, "Find", func() error {
		c.findRange(keys, out)
		return nil
	})
}

func (c *Container[K, V]) findRange(keys []K, out []Ref[K, V]) {
	storage := c.storage.Load()
	dispatch(len(keys), func(s, e int) {
		for i := s; i < e; i++ {
			kb := keyBits(keys[i])
			h := c.cfg.hashFn(kb, c.cfg.seed)
			_, slot := groupProbeFind(storage, c.cfg.scheme, h, kb)
			out[i] = Ref[K, V]{slot: slot}
		}
	})
}

// Count returns the number of keys in the range present in the
// container: the sum over k in range of (contains(k) ? 1 : 0).
func (c *Container[K, V]) Count(stream *Stream, keys []K) (int64, error) {
	counter := &DeviceCounter{}
	err := runOrSubmitSync(stream, "Count", func() error {
		c.countRange(keys, counter, false)
		return nil
	})
	return counter.Load(), err
}

// CountOuter is Count's outer-join variant: a
// non-matching key still contributes 1, additive over the input range,
// which matches an outer join where every input row produces at least
// one output row even without a match.
func (c *Container[K, V]) CountOuter(stream *Stream, keys []K) (int64, error) {
	counter := &DeviceCounter{}
	err := runOrSubmitSync(stream, "CountOuter", func() error {
		c.countRange(keys, counter, true)
		return nil
	})
	return counter.Load(), err
}

func (c *Container[K, V]) countRange(keys []K, counter *DeviceCounter, outer bool) {
	storage := c.storage.Load()
	dispatch(len(keys), func(s, e int) {
		for i := s; i < e; i++ {
			kb := keyBits(keys[i])
			h := c.cfg.hashFn(kb, c.cfg.seed)
			o, _ := groupProbeFind(storage, c.cfg.scheme, h, kb)
			if o == outcomeFound || outer {
				counter.incr()
			}
		}
	})
}
