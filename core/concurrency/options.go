// File: core/concurrency/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool configuration: immutable per pool, assembled from DefaultConfig and
// functional options.

package concurrency

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/momentics/hioload-exec/affinity"
	"github.com/momentics/hioload-exec/control"
)

// ShutdownProtocol selects how Close tells workers to exit.
type ShutdownProtocol int

const (
	// ShutdownSentinel queues one nil task per worker; a worker exits when
	// it dequeues one.
	ShutdownSentinel ShutdownProtocol = iota
	// ShutdownFlag queues one flag-setting task per worker; a worker exits
	// when it sees the pool's stop flag before its next Pop.
	ShutdownFlag
)

func (p ShutdownProtocol) String() string {
	switch p {
	case ShutdownSentinel:
		return "sentinel"
	case ShutdownFlag:
		return "flag"
	default:
		return fmt.Sprintf("ShutdownProtocol(%d)", int(p))
	}
}

// ParseShutdownProtocol maps "sentinel" or "flag" to a ShutdownProtocol.
func ParseShutdownProtocol(s string) (ShutdownProtocol, error) {
	switch s {
	case "sentinel", "":
		return ShutdownSentinel, nil
	case "flag":
		return ShutdownFlag, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownProtocol)
	}
}

// Config holds pool parameters.
type Config struct {
	Name         string               // Label used in logs, metrics and probes
	Workers      int                  // Worker count; 0 means affinity.HardwareConcurrency()
	Protocol     ShutdownProtocol     // Worker exit protocol used by Close
	LockOSThread bool                 // Wire each worker to its own OS thread
	CPUPinning   bool                 // Pin each worker thread to a CPU (implies LockOSThread)
	Logger       *zap.Logger          // Structured logger; never nil after NewPool
	Metrics      *control.PoolMetrics // Optional Prometheus collectors
	PanicHandler func(recovered any)  // Optional hook for panicking tasks
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		Name:     "pool",
		Workers:  0,
		Protocol: ShutdownSentinel,
		Logger:   zap.NewNop(),
	}
}

// validate normalises defaults and rejects invalid settings.
func (c *Config) validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%d: %w", c.Workers, ErrInvalidWorkerCount)
	}
	if c.Workers == 0 {
		c.Workers = affinity.HardwareConcurrency()
	}
	if c.Protocol != ShutdownSentinel && c.Protocol != ShutdownFlag {
		return fmt.Errorf("%s: %w", c.Protocol, ErrUnknownProtocol)
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.CPUPinning {
		c.LockOSThread = true
	}
	return nil
}

// Option customizes pool initialization.
type Option func(*Config)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithShutdownProtocol selects the worker exit protocol.
func WithShutdownProtocol(p ShutdownProtocol) Option {
	return func(c *Config) {
		c.Protocol = p
	}
}

// WithName labels the pool in logs and probes.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *control.PoolMetrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithLockOSThread wires each worker goroutine to a dedicated OS thread.
func WithLockOSThread(on bool) Option {
	return func(c *Config) {
		c.LockOSThread = on
	}
}

// WithCPUPinning pins worker threads to CPUs round-robin.
func WithCPUPinning(on bool) Option {
	return func(c *Config) {
		c.CPUPinning = on
	}
}

// WithPanicHandler installs a hook called with the value recovered from a
// panicking task. The failure is still delivered through the task's Future;
// a panic inside fn is logged and discarded.
func WithPanicHandler(fn func(recovered any)) Option {
	return func(c *Config) {
		c.PanicHandler = fn
	}
}
