package cuco

// outcome is the decisive per-slot/per-window result of the single-slot
// CAS protocol and the cooperative-group decision table built on it.
type outcome int

const (
	outcomeContinue outcome = iota // advance to the next probing attempt
	outcomeInserted
	outcomePresent
	outcomeFound
	outcomeNotFound
	outcomeErased
)

// insertSlot is the single-slot half of the insert protocol; the
// cooperative-group loop in group.go elects which lane in a window
// gets to call this function and retries the whole window on CAS
// failure.
func insertSlot[K Key, V Value](slot *Slot[K, V], sent sentinels, keyBits, valBits uint64) outcome {
	observed := slot.load()

	if sent.isFilled(observed.keyBits) {
		if observed.keyBits == keyBits {
			return outcomePresent
		}
		return outcomeContinue
	}

	if !sent.isReusable(observed.keyBits) {
		return outcomeContinue
	}

	if slot.casInsert(observed, keyBits, valBits) {
		return outcomeInserted
	}

	// CAS failed: reload and reclassify rather than assuming failure
	// means "someone else took the slot" — the winner might have
	// inserted the same key.
	after := slot.load()
	if sent.isFilled(after.keyBits) && after.keyBits == keyBits {
		return outcomePresent
	}
	return outcomeContinue
}

// insertSlotAlways is insertSlot without the existing-match short
// circuit, used by the multimap probe: a reusable slot is claimed
// unconditionally, since duplicate keys are allowed.
func insertSlotAlways[K Key, V Value](slot *Slot[K, V], sent sentinels, keyBits, valBits uint64) outcome {
	observed := slot.load()
	if !sent.isReusable(observed.keyBits) {
		return outcomeContinue
	}
	if slot.casInsert(observed, keyBits, valBits) {
		return outcomeInserted
	}
	return outcomeContinue
}

// findSlot classifies a single slot against a lookup key.
func findSlot[K Key, V Value](slot *Slot[K, V], sent sentinels, keyBits uint64) outcome {
	observed := slot.load()
	switch {
	case sent.isFilled(observed.keyBits) && observed.keyBits == keyBits:
		return outcomeFound
	case sent.isEmpty(observed.keyBits):
		return outcomeNotFound
	default:
		return outcomeContinue
	}
}

// eraseSlot erases a matching key from a single slot, retrying the CAS
// in place (not advancing the probe) on contention.
func eraseSlot[K Key, V Value](slot *Slot[K, V], sent sentinels, keyBits uint64) outcome {
	for {
		observed := slot.load()
		switch {
		case sent.isEmpty(observed.keyBits):
			return outcomeNotFound
		case sent.isFilled(observed.keyBits) && observed.keyBits == keyBits:
			if slot.casErase(observed, sent.erasedKeyBits) {
				return outcomeErased
			}
			continue
		default:
			return outcomeContinue
		}
	}
}
