// File: api/shutdown.go
// Package api defines unified graceful shutdown contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// GracefulShutdown is implemented by components that drain and release
// their resources on teardown.
type GracefulShutdown interface {
	// Shutdown stops the component and waits for in-flight work.
	// Calling it more than once is safe.
	Shutdown() error
}
