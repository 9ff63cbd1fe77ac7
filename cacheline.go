package cuco

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is used in structure padding to prevent false sharing.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})

// paddedCounter is an atomic.Int64 padded out to its own cache line.
// Every bulk operation's counter and the container's live-entry tally
// are incremented by many goroutines concurrently; without padding
// they would share a cache line with neighboring fields that other
// goroutines read at the same time, and every increment would bounce
// that whole line across cores.
type paddedCounter struct {
	v   atomic.Int64
	pad [(CacheLineSize - unsafe.Sizeof(atomic.Int64{})%CacheLineSize) % CacheLineSize]byte
}

func (c *paddedCounter) add(delta int64) int64 { return c.v.Add(delta) }
func (c *paddedCounter) load() int64           { return c.v.Load() }
func (c *paddedCounter) store(v int64)         { c.v.Store(v) }
