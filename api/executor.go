// Package api
// Author: momentics
//
// Executor contract for parallel task dispatch.

package api

// Executor abstracts parallel task execution.
type Executor interface {
	// Execute schedules task for execution without a result handle.
	Execute(task func()) error

	// NumWorkers returns the number of worker routines.
	NumWorkers() int

	// Close stops accepting work, drains queued tasks and joins all workers.
	Close() error
}
