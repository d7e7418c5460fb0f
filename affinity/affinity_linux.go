//go:build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux implementation backed by sched_setaffinity(2)/sched_getaffinity(2).

package affinity

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// setAffinityPlatform restricts the calling thread to cpuID.
func setAffinityPlatform(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	// pid 0 addresses the calling thread.
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity cpu %d: %w", cpuID, err)
	}
	return nil
}

// hardwareConcurrencyPlatform counts CPUs in the process affinity mask.
func hardwareConcurrencyPlatform() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0
	}
	return set.Count()
}

// cpuForPlatform returns the workerID-th CPU, modulo the mask size, among
// the CPUs set in the process affinity mask. Under a cpuset such as {4,5}
// worker 0 gets CPU 4, not CPU 0.
func cpuForPlatform(workerID int) (int, bool) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0, false
	}
	n := set.Count()
	if n == 0 {
		return 0, false
	}
	return nthSetCPU(&set, workerID%n)
}

// nthSetCPU returns the id of the n-th (0-based) CPU set in set.
func nthSetCPU(set *unix.CPUSet, n int) (int, bool) {
	bits := len(set) * int(unsafe.Sizeof(set[0])) * 8
	for cpu := 0; cpu < bits; cpu++ {
		if !set.IsSet(cpu) {
			continue
		}
		if n == 0 {
			return cpu, true
		}
		n--
	}
	return 0, false
}
