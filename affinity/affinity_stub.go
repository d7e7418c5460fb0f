//go:build !linux && !windows

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package affinity

import "runtime"

// setAffinityPlatform is a stub for platforms where CPU affinity is not supported.
func setAffinityPlatform(cpuID int) error {
	return ErrNotSupported
}

func hardwareConcurrencyPlatform() int {
	return runtime.NumCPU()
}

func cpuForPlatform(workerID int) (int, bool) {
	return 0, false
}
