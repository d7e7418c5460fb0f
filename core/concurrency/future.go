// File: core/concurrency/future.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Future/Promise pair: a single-assignment cell holding either a value or a
// failure. The Promise side is written once by the executing worker, the
// Future side is read by any number of goroutines.

package concurrency

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-exec/api"
)

// Ensure compile-time interface compliance.
var _ api.Awaitable[int] = (*Future[int])(nil)

// cell is shared by a Promise and its Future.
type cell[T any] struct {
	resolved atomic.Bool
	done     chan struct{}
	result   api.Result[T] // written once before done is closed
}

// Promise is the write side of a result cell.
type Promise[T any] struct {
	c *cell[T]
}

// Future is the read side of a result cell.
type Future[T any] struct {
	c *cell[T]
}

// NewPromise creates an unset cell and returns both of its sides.
func NewPromise[T any]() (*Promise[T], *Future[T]) {
	c := &cell[T]{done: make(chan struct{})}
	return &Promise[T]{c: c}, &Future[T]{c: c}
}

// Resolve stores a success value. It returns false if the cell was already set.
func (p *Promise[T]) Resolve(v T) bool {
	return p.set(api.Result[T]{Value: v})
}

// Reject stores a failure. A nil err is recorded as ErrNilFailure so a
// rejected cell never reads back as a success.
func (p *Promise[T]) Reject(err error) bool {
	if err == nil {
		err = ErrNilFailure
	}
	return p.set(api.Result[T]{Err: err})
}

func (p *Promise[T]) set(r api.Result[T]) bool {
	if !p.c.resolved.CompareAndSwap(false, true) {
		return false
	}
	p.c.result = r
	close(p.c.done)
	return true
}

// Get blocks until the cell is written, then returns the value or the failure.
func (f *Future[T]) Get() (T, error) {
	<-f.c.done
	return f.c.result.Unpack()
}

// GetContext is Get bounded by ctx. On cancellation it returns ctx.Err();
// the task itself keeps running.
func (f *Future[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case <-f.c.done:
		return f.c.result.Unpack()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Poll returns the result if it is available; false means not ready yet.
func (f *Future[T]) Poll() (api.Result[T], bool) {
	select {
	case <-f.c.done:
		return f.c.result, true
	default:
		return api.Result[T]{Err: api.ErrNotReady}, false
	}
}

// WaitFor waits up to d for the result and reports whether it is ready.
func (f *Future[T]) WaitFor(d time.Duration) bool {
	if f.Ready() {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-f.c.done:
		return true
	case <-timer.C:
		return false
	}
}

// Ready reports whether the result has been written.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.c.done:
		return true
	default:
		return false
	}
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.c.done
}
