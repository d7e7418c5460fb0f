//go:build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows implementation for setting thread CPU affinity.

package affinity

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/windows"
)

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = modkernel32.NewProc("SetThreadAffinityMask")
)

// setAffinityPlatform sets the calling thread's affinity mask to one CPU.
func setAffinityPlatform(cpuID int) error {
	if cpuID >= 64 {
		return fmt.Errorf("affinity: cpu %d outside single-group mask", cpuID)
	}
	mask := uintptr(1) << uint(cpuID)
	old, _, err := procSetThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	if old == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask cpu %d: %w", cpuID, err)
	}
	return nil
}

// hardwareConcurrencyPlatform reports the logical processor count.
func hardwareConcurrencyPlatform() int {
	return runtime.NumCPU()
}

// cpuForPlatform defers to the round-robin fallback.
func cpuForPlatform(workerID int) (int, bool) {
	return 0, false
}
