package cuco

// windowBallot is the ballot/reduction over one window's lanes: the
// lane index of a lane that saw a matching key, an empty slot, or a
// reusable (empty-or-erased) slot, each -1 if none. Lanes are scanned
// in ascending order, which gives the "lowest lane wins" tie-break for
// free: the first lane recorded is always the lowest one.
type windowBallot struct {
	matchLane    int
	emptyLane    int
	reusableLane int
}

func scanWindow[K Key, V Value](window []Slot[K, V], sent sentinels, keyBits uint64) windowBallot {
	b := windowBallot{matchLane: -1, emptyLane: -1, reusableLane: -1}
	for lane := range window {
		v := window[lane].load()
		switch {
		case sent.isEmpty(v.keyBits):
			if b.emptyLane < 0 {
				b.emptyLane = lane
			}
			if b.reusableLane < 0 {
				b.reusableLane = lane
			}
		case sent.isErased(v.keyBits):
			if b.reusableLane < 0 {
				b.reusableLane = lane
			}
		default: // filled
			if b.matchLane < 0 && v.keyBits == keyBits {
				b.matchLane = lane
			}
		}
	}
	return b
}

// groupProbeInsert drives the insert probe for one key: each attempt
// computes one window index from the probing scheme, all G lanes of
// the cooperative group "examine" the window's W slots via scanWindow,
// and the elected lane attempts the CAS. A CAS failure retries the
// same window (the inner loop); a match ends the probe, and a window
// with no reusable slot advances the attempt.
func groupProbeInsert[K Key, V Value](storage *Storage[K, V], scheme ProbingScheme, hash uint64, keyBits, valBits uint64) outcome {
	o, _ := groupProbeInsertRef(storage, scheme, hash, keyBits, valBits)
	return o
}

// groupProbeInsertRef is groupProbeInsert plus the resolved slot
// reference, used by InsertAndFindAsync.
func groupProbeInsertRef[K Key, V Value](storage *Storage[K, V], scheme ProbingScheme, hash uint64, keyBits, valBits uint64) (outcome, *Slot[K, V]) {
	sent := storage.sentinels
	for attempt := 0; attempt < storage.numWindows; attempt++ {
		w := scheme.Probe(hash, attempt, storage.numWindows)
		window := storage.window(w)
		for {
			b := scanWindow(window, sent, keyBits)
			if b.matchLane >= 0 {
				return outcomePresent, &window[b.matchLane]
			}
			if b.reusableLane < 0 {
				break // advance to attempt+1
			}
			switch insertSlot(&window[b.reusableLane], sent, keyBits, valBits) {
			case outcomeInserted:
				return outcomeInserted, &window[b.reusableLane]
			case outcomePresent:
				return outcomePresent, &window[b.reusableLane]
			default: // outcomeContinue: CAS lost the race, retry this window
				continue
			}
		}
	}
	return outcomeContinue, nil // full-table scan exhausted: capacity overflow
}

// groupProbeFind drives the lookup probe for find/contains/count: a
// match ends the probe successfully, an empty slot ends it negatively,
// anything else (erased or non-matching filled slots) advances to the
// next attempt — tombstones are probe-transparent.
func groupProbeFind[K Key, V Value](storage *Storage[K, V], scheme ProbingScheme, hash uint64, keyBits uint64) (outcome, *Slot[K, V]) {
	sent := storage.sentinels
	for attempt := 0; attempt < storage.numWindows; attempt++ {
		w := scheme.Probe(hash, attempt, storage.numWindows)
		window := storage.window(w)
		b := scanWindow(window, sent, keyBits)
		if b.matchLane >= 0 {
			return outcomeFound, &window[b.matchLane]
		}
		if b.emptyLane >= 0 {
			return outcomeNotFound, nil
		}
	}
	return outcomeNotFound, nil // full-table scan with no empty slot: treat as not-found
}

// groupProbeErase drives the erase probe, symmetric with insert: the
// matching lane performs the erase CAS, retrying the same window on
// contention.
func groupProbeErase[K Key, V Value](storage *Storage[K, V], scheme ProbingScheme, hash uint64, keyBits uint64) outcome {
	sent := storage.sentinels
	for attempt := 0; attempt < storage.numWindows; attempt++ {
		w := scheme.Probe(hash, attempt, storage.numWindows)
		window := storage.window(w)
		for {
			b := scanWindow(window, sent, keyBits)
			if b.matchLane < 0 {
				if b.emptyLane >= 0 {
					return outcomeNotFound
				}
				break // advance to attempt+1
			}
			switch eraseSlot(&window[b.matchLane], sent, keyBits) {
			case outcomeErased:
				return outcomeErased
			case outcomeNotFound:
				// the slot became empty between the ballot and the CAS;
				// rescan the window.
				continue
			default:
				continue
			}
		}
	}
	return outcomeNotFound
}

// groupProbeInsertMulti is the multimap insert probe: it never treats
// an existing matching key as a reason to stop, since duplicate keys
// are allowed — it only ever looks for a reusable (empty-or-erased)
// lane.
func groupProbeInsertMulti[K Key, V Value](storage *Storage[K, V], scheme ProbingScheme, hash uint64, keyBits, valBits uint64) outcome {
	sent := storage.sentinels
	for attempt := 0; attempt < storage.numWindows; attempt++ {
		w := scheme.Probe(hash, attempt, storage.numWindows)
		window := storage.window(w)
		for {
			b := scanWindow(window, sent, keyBits)
			if b.reusableLane < 0 {
				break // advance to attempt+1
			}
			if insertSlotAlways(&window[b.reusableLane], sent, keyBits, valBits) == outcomeInserted {
				return outcomeInserted
			}
			// CAS lost the race to another lane; rescan the window.
		}
	}
	return outcomeContinue
}

// groupProbeFindAllMulti scans the full probe sequence for hash/keyBits
// and invokes collect for every matching slot it sees, in probe order.
// It terminates the sequence the same way a single-match find does: on
// the first window holding an empty slot, since duplicate inserts of
// the same key always follow the same probe sequence and therefore all
// lie before the first empty slot on that sequence.
func groupProbeFindAllMulti[K Key, V Value](storage *Storage[K, V], scheme ProbingScheme, hash uint64, keyBits uint64, collect func(*Slot[K, V])) {
	sent := storage.sentinels
	for attempt := 0; attempt < storage.numWindows; attempt++ {
		w := scheme.Probe(hash, attempt, storage.numWindows)
		window := storage.window(w)
		sawEmpty := false
		for lane := range window {
			v := window[lane].load()
			switch {
			case sent.isEmpty(v.keyBits):
				sawEmpty = true
			case sent.isErased(v.keyBits):
			case v.keyBits == keyBits:
				collect(&window[lane])
			}
		}
		if sawEmpty {
			return
		}
	}
}
