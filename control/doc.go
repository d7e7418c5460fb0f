// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics and debug introspection layer for hioload-exec.
//
// Provides concurrent-safe observability primitives:
//   - Prometheus collectors for worker pools (PoolMetrics)
//   - Debug probe registration and state export (DebugProbes)
//   - Platform probes describing the CPU topology
package control
