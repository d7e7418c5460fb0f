// Package api
// Author: momentics@gmail.com
//
// Bounded ring buffer contract for single-producer/single-consumer exchange.

package api

// Ring is a fixed-capacity FIFO used by exactly one producer and one consumer.
// Both operations are non-blocking; callers poll or back off themselves.
type Ring[T any] interface {
	// TryEnqueue adds an item, returns false if full.
	TryEnqueue(item T) bool
	// TryDequeue removes the oldest item, returns false if empty.
	TryDequeue() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns buffer capacity.
	Cap() int
}
