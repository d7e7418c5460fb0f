// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity and hardware parallelism discovery.
// Platform-specific implementations are located in separate files
// (affinity_linux.go, affinity_windows.go, affinity_stub.go) guarded by build tags.

package affinity

import (
	"fmt"
	"runtime"
)

// SetAffinity pins the current OS thread to a given logical CPU.
// The caller must hold runtime.LockOSThread for the pin to stay attached to
// the calling goroutine. On unsupported platforms returns ErrNotSupported.
func SetAffinity(cpuID int) error {
	if cpuID < 0 {
		return fmt.Errorf("affinity: invalid cpu %d", cpuID)
	}
	return setAffinityPlatform(cpuID)
}

// HardwareConcurrency returns the number of logical CPUs usable by this
// process. It honours the scheduler affinity mask where the platform exposes
// one and never returns less than 1.
func HardwareConcurrency() int {
	n := hardwareConcurrencyPlatform()
	if n < 1 {
		n = runtime.NumCPU()
	}
	if procs := runtime.GOMAXPROCS(0); procs < n {
		n = procs
	}
	if n < 1 {
		return 1
	}
	return n
}

// CPUFor maps a worker index onto a logical CPU, round-robin over the CPUs
// this process may run on. Where the platform exposes no affinity mask the
// CPUs are assumed to be numbered 0..NumCPU-1.
func CPUFor(workerID int) int {
	if workerID < 0 {
		return 0
	}
	if cpu, ok := cpuForPlatform(workerID); ok {
		return cpu
	}
	n := runtime.NumCPU()
	if n <= 0 {
		return 0
	}
	return workerID % n
}
