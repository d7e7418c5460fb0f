// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform probes: CPU topology as seen by the scheduler.

package control

import (
	"runtime"

	"github.com/momentics/hioload-exec/affinity"
)

// RegisterPlatformProbes sets platform debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.gomaxprocs", func() any {
		return runtime.GOMAXPROCS(0)
	})
	dp.RegisterProbe("platform.hardware_concurrency", func() any {
		return affinity.HardwareConcurrency()
	})
	dp.RegisterProbe("platform.goroutines", func() any {
		return runtime.NumGoroutine()
	})
}
