// File: core/concurrency/spsc_ring.go
// Package concurrency implements lock-free ring buffers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SPSCRing is a bounded circular buffer with atomic head/tail, padded to
// prevent false sharing. It is correct ONLY with exactly one producer
// goroutine and exactly one consumer goroutine. Misuse is not detected.

package concurrency

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-exec/api"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*SPSCRing[any])(nil)

// SPSCRing is a lock-free single-producer/single-consumer ring.
//
// The producer owns tail and the consumer owns head. Each side publishes its
// own counter with an atomic store after touching the slot (release) and
// reads the other side's counter with an atomic load (acquire). That pairing
// makes a slot write visible before the consumer sees it as available, and
// keeps the producer from reusing a slot before the consumer's read of it
// has completed. Go atomics are sequentially consistent, which is stronger
// than the acquire/release this relies on.
type SPSCRing[T any] struct {
	_ cpu.CacheLinePad

	// Consumer side.
	head       atomic.Uint64 // next slot to consume; stored by consumer only
	cachedTail uint64        // consumer's last view of tail

	_ cpu.CacheLinePad

	// Producer side.
	tail       atomic.Uint64 // next slot to produce; stored by producer only
	cachedHead uint64        // producer's last view of head

	_ cpu.CacheLinePad

	data []T
	size uint64
}

// NewSPSCRing allocates a ring holding up to capacity items.
func NewSPSCRing[T any](capacity int) *SPSCRing[T] {
	if capacity <= 0 {
		panic("ring capacity must be positive")
	}
	return &SPSCRing[T]{
		data: make([]T, capacity),
		size: uint64(capacity),
	}
}

// TryEnqueue adds item; returns false if full. Producer only.
func (r *SPSCRing[T]) TryEnqueue(item T) bool {
	// Only this goroutine stores tail, so this load never races a writer.
	tail := r.tail.Load()
	if tail-r.cachedHead == r.size {
		r.cachedHead = r.head.Load() // acquire: consumer is done with the slot
		if tail-r.cachedHead == r.size {
			return false
		}
	}
	r.data[tail%r.size] = item
	r.tail.Store(tail + 1) // release: slot write happens before publication
	return true
}

// TryDequeue removes and returns the oldest item; ok false if empty.
// Consumer only.
func (r *SPSCRing[T]) TryDequeue() (item T, ok bool) {
	head := r.head.Load()
	if head == r.cachedTail {
		r.cachedTail = r.tail.Load() // acquire: observe the producer's slot write
		if head == r.cachedTail {
			return item, false
		}
	}
	idx := head % r.size
	item = r.data[idx]
	var zero T
	r.data[idx] = zero
	r.head.Store(head + 1) // release: slot may now be reused
	return item, true
}

// Len returns number of items currently in buffer. The value is a snapshot
// and may be stale by the time it is used.
func (r *SPSCRing[T]) Len() int {
	head := r.head.Load()
	tail := r.tail.Load()
	if tail < head {
		// head advanced between the two loads
		return 0
	}
	return int(tail - head)
}

// Cap returns fixed buffer capacity.
func (r *SPSCRing[T]) Cap() int {
	return len(r.data)
}
