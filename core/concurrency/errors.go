// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for concurrency module.

package concurrency

import (
	"errors"
	"fmt"

	"github.com/momentics/hioload-exec/api"
)

var (
	// ErrInvalidSubmission rejects a nil callable at submit time.
	ErrInvalidSubmission = fmt.Errorf("empty task not allowed: %w", api.ErrInvalidArgument)

	// ErrPoolClosed indicates the pool no longer accepts work.
	ErrPoolClosed = fmt.Errorf("pool: %w", api.ErrExecutorClosed)

	// ErrInvalidWorkerCount indicates invalid worker count configuration.
	ErrInvalidWorkerCount = fmt.Errorf("invalid worker count: %w", api.ErrInvalidArgument)

	// ErrUnknownProtocol indicates an unsupported shutdown protocol.
	ErrUnknownProtocol = fmt.Errorf("unknown shutdown protocol: %w", api.ErrInvalidArgument)

	// ErrNilFailure is stored when a promise is rejected with a nil error.
	ErrNilFailure = errors.New("task failed with nil error")
)

// PanicError carries a value recovered from a panicking task together with
// the stack of the goroutine that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// ErrorCode classifies a panic as a task failure.
func (e *PanicError) ErrorCode() api.ErrorCode {
	return api.ErrCodeTaskFailure
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
