// File: core/concurrency/blocking_queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// BlockingQueue is an unbounded MPMC FIFO. A single mutex guards the
// backing deque; a condition variable signals "became non-empty".

package concurrency

import (
	"sync"

	"github.com/eapache/queue"
)

// BlockingQueue is safe for any number of concurrent producers and consumers.
type BlockingQueue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	items    *queue.Queue
}

// NewBlockingQueue returns an empty queue.
func NewBlockingQueue[T any]() *BlockingQueue[T] {
	q := &BlockingQueue[T]{items: queue.New()}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Push appends item and wakes one blocked Pop.
func (q *BlockingQueue[T]) Push(item T) {
	q.mu.Lock()
	q.items.Add(item)
	q.mu.Unlock()
	q.notEmpty.Signal()
}

// PushMany appends all items in one critical section, so no other Push can
// interleave with them, and wakes every blocked Pop.
func (q *BlockingQueue[T]) PushMany(items ...T) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	for _, item := range items {
		q.items.Add(item)
	}
	q.mu.Unlock()
	q.notEmpty.Broadcast()
}

// Pop blocks until an item is available and removes it from the head.
func (q *BlockingQueue[T]) Pop() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	// Re-check after every wakeup: spurious wakeups and competing consumers.
	for q.items.Length() == 0 {
		q.notEmpty.Wait()
	}
	return q.remove()
}

// TryPop removes the head item without blocking. It returns false when the
// queue is empty or its lock is currently held by another operation; callers
// treat false as "nothing available now".
func (q *BlockingQueue[T]) TryPop() (T, bool) {
	var zero T
	if !q.mu.TryLock() {
		return zero, false
	}
	defer q.mu.Unlock()
	if q.items.Length() == 0 {
		return zero, false
	}
	return q.remove(), true
}

// Empty reports whether the queue was empty at the moment of the call.
// The answer may be stale by the time it is used.
func (q *BlockingQueue[T]) Empty() bool {
	return q.Len() == 0
}

// Len returns a snapshot of the queue length.
func (q *BlockingQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

// remove pops the head; the caller holds mu and has checked Length.
func (q *BlockingQueue[T]) remove() T {
	// A nil interface item comes back untyped; comma-ok yields the zero T.
	item, _ := q.items.Remove().(T)
	return item
}
