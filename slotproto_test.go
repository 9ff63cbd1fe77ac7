package cuco

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSentinels() sentinels {
	return sentinels{
		emptyKeyBits:  ^uint64(0),
		erasedKeyBits: ^uint64(0) - 1,
		erasedKeySet:  true,
	}
}

// TestInsertSlotStateMachine walks every transition of the single-slot
// state machine directly: Empty->Filled,
// Filled->Filled (no-op, reports present), Filled->Erased, Erased->Filled.
func TestInsertSlotStateMachine(t *testing.T) {
	sent := testSentinels()
	var slot Slot[uint64, uint64]
	slot.storeSentinel(sent.emptyKeyBits)

	require.Equal(t, outcomeInserted, insertSlot(&slot, sent, 1, 100))
	require.Equal(t, outcomePresent, insertSlot(&slot, sent, 1, 200))

	require.Equal(t, outcomeErased, eraseSlot(&slot, sent, 1))
	require.Equal(t, outcomeNotFound, findSlot(&slot, sent, 1))

	require.Equal(t, outcomeInserted, insertSlot(&slot, sent, 1, 300))
	v := slot.load()
	require.EqualValues(t, 300, v.valBits)
}

func TestInsertSlotRejectsDifferentKey(t *testing.T) {
	sent := testSentinels()
	var slot Slot[uint64, uint64]
	slot.storeSentinel(sent.emptyKeyBits)
	require.Equal(t, outcomeInserted, insertSlot(&slot, sent, 1, 100))
	require.Equal(t, outcomeContinue, insertSlot(&slot, sent, 2, 200))
	require.Equal(t, outcomeContinue, findSlot(&slot, sent, 2))
}

func TestEraseSlotNotFoundOnEmpty(t *testing.T) {
	sent := testSentinels()
	var slot Slot[uint64, uint64]
	slot.storeSentinel(sent.emptyKeyBits)
	require.Equal(t, outcomeNotFound, eraseSlot(&slot, sent, 1))
}

func TestEraseSlotContinuesOnNonMatch(t *testing.T) {
	sent := testSentinels()
	var slot Slot[uint64, uint64]
	slot.storeSentinel(sent.emptyKeyBits)
	require.Equal(t, outcomeInserted, insertSlot(&slot, sent, 1, 100))
	require.Equal(t, outcomeContinue, eraseSlot(&slot, sent, 2))
}

// TestScanWindowLowestLaneWins checks the tie-break rule: a window
// with several reusable lanes reports the lowest one.
func TestScanWindowLowestLaneWins(t *testing.T) {
	sent := testSentinels()
	window := make([]Slot[uint64, uint64], 4)
	for i := range window {
		window[i].storeSentinel(sent.emptyKeyBits)
	}
	window[2].storeSentinel(sent.erasedKeyBits)

	b := scanWindow(window, sent, 42)
	require.Equal(t, 0, b.reusableLane)
	require.Equal(t, 0, b.emptyLane)
	require.Equal(t, -1, b.matchLane)
}

// TestCasInsertDuplicateKeyNeverProducesTornPair races many goroutines
// that all offer the *same* key with different candidate values at one
// empty slot. Given the payload-word-stored-first, key-word-CAS'd-last
// write order, the slot must end up holding that key paired with one
// of the candidate values — never a torn word built from two different
// writers' stores — even though which candidate wins the race is
// unspecified.
func TestCasInsertDuplicateKeyNeverProducesTornPair(t *testing.T) {
	sent := testSentinels()
	const attempts = 200
	for round := 0; round < attempts; round++ {
		var slot Slot[uint64, uint64]
		slot.storeSentinel(sent.emptyKeyBits)

		const n = 32
		const key = uint64(7)
		candidates := make([]uint64, n)
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			candidates[i] = key*1000 + uint64(i)
			go func(i int) {
				defer wg.Done()
				insertSlot(&slot, sent, key, candidates[i])
			}(i)
		}
		wg.Wait()

		v := slot.load()
		require.True(t, sent.isFilled(v.keyBits))
		require.Equal(t, key, v.keyBits)
		require.Contains(t, candidates, v.valBits, "slot holds a value no racing writer ever stored")
	}
}

func TestScanWindowFindsMatch(t *testing.T) {
	sent := testSentinels()
	window := make([]Slot[uint64, uint64], 4)
	for i := range window {
		window[i].storeSentinel(sent.emptyKeyBits)
	}
	require.Equal(t, outcomeInserted, insertSlot(&window[1], sent, 7, 70))
	require.Equal(t, outcomeInserted, insertSlot(&window[3], sent, 9, 90))

	b := scanWindow(window, sent, 9)
	require.Equal(t, 3, b.matchLane)
	require.Equal(t, 0, b.emptyLane)
	require.Equal(t, 0, b.reusableLane)
}
