// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-exec.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrExecutorClosed  = errors.New("executor is closed")
	ErrNotReady        = errors.New("result not ready")
	ErrNotSupported    = errors.New("operation not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeClosed
	ErrCodeNotReady
	ErrCodeTaskFailure
	ErrCodeInternal
)

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeClosed:
		return "closed"
	case ErrCodeNotReady:
		return "not_ready"
	case ErrCodeTaskFailure:
		return "task_failure"
	default:
		return "internal"
	}
}

// Coder is implemented by errors that carry their own ErrorCode.
type Coder interface {
	ErrorCode() ErrorCode
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// ErrorCode implements Coder.
func (e *Error) ErrorCode() ErrorCode {
	return e.Code
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// Wrap attaches a cause to the error.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf extracts the ErrorCode carried by err, if any.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var c Coder
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return ErrCodeInvalidArgument
	case errors.Is(err, ErrExecutorClosed):
		return ErrCodeClosed
	case errors.Is(err, ErrNotReady):
		return ErrCodeNotReady
	}
	return ErrCodeInternal
}
