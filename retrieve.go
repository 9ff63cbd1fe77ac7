package cuco

import (
	"runtime"
	"sync"
)

// RetrieveAllAsync is the retrieve-all compactor
//: it stream-compacts every filled slot into the
// caller-supplied outKeys/outValues, asynchronously, and stores the
// count written into *outCount once the stream reaches this command.
// outValues may be nil for a set-mode container. Order is unspecified
// and not stable between calls.
//
// The compaction is the classic two-pass device primitive: count
// filled slots per chunk, exclusive-scan the per-chunk counts into
// write offsets, then scatter each chunk into its offset — the same
// dispatch-by-chunk fan-out the bulk dispatcher uses for every
// other bulk operation, just run twice.
func (c *Container[K, V]) RetrieveAllAsync(stream *Stream, outKeys []K, outValues []V, outCount *int) {
	stream.Submit("RetrieveAllAsync", func() error {
		*outCount = c.retrieveAllSync(outKeys, outValues)
		return nil
	})
}

// RetrieveAll is the synchronous convenience form: it allocates
// outKeys/outValues sized to Size() and returns them filled.
func (c *Container[K, V]) RetrieveAll(stream *Stream) (keys []K, values []V, err error) {
	n := int(c.Size(stream))
	keys = make([]K, n)
	values = make([]V, n)
	var written int
	err = runOrSubmitSync(stream, "RetrieveAll", func() error {
		written = c.retrieveAllSync(keys, values)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return keys[:written], values[:written], nil
}

func (c *Container[K, V]) retrieveAllSync(outKeys []K, outValues []V) int {
	storage := c.storage.Load()
	n := len(storage.slots)
	workers, itemsPerWorker := splitForDispatch(n, minParallelBatchItems, runtime.GOMAXPROCS(0))
	if workers < 1 {
		workers = 1
	}
	if itemsPerWorker < 1 {
		itemsPerWorker = 1
	}

	counts := make([]int, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for ci := 0; ci < workers; ci++ {
		start := ci * itemsPerWorker
		end := min(start+itemsPerWorker, n)
		go func(ci, start, end int) {
			defer wg.Done()
			cnt := 0
			for i := start; i < end; i++ {
				v := storage.slots[i].load()
				if storage.sentinels.isFilled(v.keyBits) {
					cnt++
				}
			}
			counts[ci] = cnt
		}(ci, start, end)
	}
	wg.Wait()

	offsets := make([]int, workers)
	total := 0
	for i, cnt := range counts {
		offsets[i] = total
		total += cnt
	}

	hasValues := len(outValues) > 0

	wg.Add(workers)
	for ci := 0; ci < workers; ci++ {
		start := ci * itemsPerWorker
		end := min(start+itemsPerWorker, n)
		go func(ci, start, end, writeAt int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				sv := storage.slots[i].load()
				if !storage.sentinels.isFilled(sv.keyBits) {
					continue
				}
				outKeys[writeAt] = bitsToKey[K](sv.keyBits)
				if hasValues {
					outValues[writeAt] = bitsToValue[V](sv.valBits)
				}
				writeAt++
			}
		}(ci, start, end, offsets[ci])
	}
	wg.Wait()

	return total
}
