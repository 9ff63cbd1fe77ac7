package cuco

import "sync/atomic"

// Slot is a fixed-width cell holding one key (set mode) or one
// key/payload pair (map mode), packed in place as two atomic machine
// words rather than a pointer to a heap-allocated record: key and
// payload each fit in 8 bytes, so the combined 16-byte slot exceeds
// what a single machine CAS covers and is split into its two
// constituent words, with the key word serving as the synchronization
// word.
//
// Write order: insert stores the payload word first (plain, unordered
// with respect to other slots), then CAS's the key word last, so a
// reader that observes the new key in place observes a payload stored
// no earlier than this insert's, never a stale one left by whatever
// previously occupied the slot (casInsert describes the race in which
// that payload comes from a concurrent inserter). Erase is the mirror: it clears the key word to
// the erased sentinel first, since the key word alone is what every
// classifier and probe decision reads.
type Slot[K Key, V Value] struct {
	key atomic.Uint64
	val atomic.Uint64
}

// slotView is a snapshot of one load of a Slot's two words, the unit
// the sentinel predicates and the single-slot CAS protocol classify
// and compare.
type slotView[K Key, V Value] struct {
	keyBits uint64
	valBits uint64
}

// load reads the key word first and the payload word second, the
// mirror of insert's write order: a filled key observed here is paired
// with a payload word stored no earlier than that key's insert, never
// one left over from the slot's previous occupant. The two words are
// separate loads, so see casInsert for the race in which that payload
// was written by a concurrent insert of another key.
func (s *Slot[K, V]) load() slotView[K, V] {
	k := s.key.Load()
	v := s.val.Load()
	return slotView[K, V]{keyBits: k, valBits: v}
}

func (v slotView[K, V]) key() K   { return bitsToKey[K](v.keyBits) }
func (v slotView[K, V]) value() V { return bitsToValue[V](v.valBits) }

// casInsert attempts to claim the slot for (newKey, newVal): the
// payload word is stored unconditionally first, then the key word is
// compare-and-swapped from observed.keyBits to newKey. A concurrent
// insert of a different key racing for this exact slot can still
// overwrite the payload word before this CAS lands — an accepted
// timing window of the split-word fallback, bounded in practice to the
// handful of instructions between the two stores. Two
// goroutines contending to insert the *same* key never produce a
// mismatched pair, since whichever payload word is in place at the
// moment the winning CAS lands belongs to some candidate value for
// that key, not a different key's payload.
func (s *Slot[K, V]) casInsert(observed slotView[K, V], newKey, newVal uint64) bool {
	s.val.Store(newVal)
	return s.key.CompareAndSwap(observed.keyBits, newKey)
}

// casErase clears the key word to the erased-key sentinel, conditioned
// on it still holding observed.keyBits. The payload word is left
// untouched; it becomes meaningless the instant the key word flips,
// and the next successful insert into this slot overwrites it before
// that insert's own key CAS makes it visible.
func (s *Slot[K, V]) casErase(observed slotView[K, V], erasedKeyBits uint64) bool {
	return s.key.CompareAndSwap(observed.keyBits, erasedKeyBits)
}

// storeSentinel overwrites both words of the slot unconditionally,
// used only by Storage.Initialize and the rehash driver's fresh
// allocation, both of which own the storage exclusively at the time of
// the call.
func (s *Slot[K, V]) storeSentinel(keyBits uint64) {
	s.val.Store(0)
	s.key.Store(keyBits)
}
