// Package api
// Author: momentics@gmail.com
//
// Generic result and asynchronous result retrieval.

package api

import "context"

// Result wraps any payload or error. Exactly one of Value/Err is meaningful:
// a non-nil Err marks a failure.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the result is a success.
func (r Result[T]) Ok() bool {
	return r.Err == nil
}

// Unpack returns the value and error pair.
func (r Result[T]) Unpack() (T, error) {
	return r.Value, r.Err
}

// Awaitable is the read side of a single-assignment result cell.
type Awaitable[T any] interface {
	// Get blocks until the result is available.
	Get() (T, error)
	// GetContext blocks until the result is available or ctx is done.
	GetContext(ctx context.Context) (T, error)
	// Poll returns the result without blocking; false means not ready.
	Poll() (Result[T], bool)
	// Done is closed once the result is available.
	Done() <-chan struct{}
}
