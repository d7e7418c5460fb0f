// File: core/concurrency/ring_locked.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// LockedRing is the mutex-guarded SPSC ring: one lock covers head, tail and
// the backing slice. It is the reference against which SPSCRing is measured.

package concurrency

import (
	"sync"

	"github.com/momentics/hioload-exec/api"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*LockedRing[any])(nil)

// LockedRing is a bounded FIFO for one producer and one consumer.
type LockedRing[T any] struct {
	mu   sync.Mutex
	data []T
	head uint64 // next slot to consume
	tail uint64 // next slot to produce
}

// NewLockedRing allocates a ring holding up to capacity items.
func NewLockedRing[T any](capacity int) *LockedRing[T] {
	if capacity <= 0 {
		panic("ring capacity must be positive")
	}
	return &LockedRing[T]{data: make([]T, capacity)}
}

// TryEnqueue adds item; returns false if full.
func (r *LockedRing[T]) TryEnqueue(item T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := uint64(len(r.data))
	if r.tail-r.head == n {
		return false
	}
	r.data[r.tail%n] = item
	r.tail++
	return true
}

// TryDequeue removes and returns the oldest item; ok false if empty.
func (r *LockedRing[T]) TryDequeue() (item T, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tail == r.head {
		return item, false
	}
	n := uint64(len(r.data))
	idx := r.head % n
	item = r.data[idx]
	var zero T
	r.data[idx] = zero
	r.head++
	return item, true
}

// Len returns number of items currently in buffer.
func (r *LockedRing[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.tail - r.head)
}

// Cap returns fixed buffer capacity.
func (r *LockedRing[T]) Cap() int {
	return len(r.data)
}
