// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package concurrency implements the task-execution core of hioload-exec:
//
//   - BlockingQueue: unbounded MPMC FIFO with a blocking Pop and a
//     non-blocking TryPop.
//   - Pool: fixed set of workers draining one BlockingQueue, handing results
//     back through single-assignment Futures. Shutdown uses either sentinel
//     tasks (default) or a per-pool stop flag.
//   - LockedRing and SPSCRing: bounded single-producer/single-consumer FIFOs,
//     one guarded by a mutex, one built from atomics only.
//
// # SPSC precondition
//
// SPSCRing and LockedRing are only correct with exactly ONE producer
// goroutine calling TryEnqueue and exactly ONE consumer goroutine calling
// TryDequeue. Violating this is undefined behavior for SPSCRing; it is not
// detected at runtime.
package concurrency
