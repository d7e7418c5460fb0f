// File: core/concurrency/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker loop. A worker owns no task state between iterations: it pops one
// task, runs it to completion, and pops the next until its exit condition.

package concurrency

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/momentics/hioload-exec/affinity"
)

// worker represents a single pool goroutine.
type worker struct {
	id   int
	pool *Pool
}

func (w *worker) run() {
	p := w.pool
	defer p.wg.Done()

	if p.cfg.LockOSThread {
		runtime.LockOSThread()
		// A pinned thread is not handed back to the scheduler: exiting while
		// still locked terminates it.
		if !p.cfg.CPUPinning {
			defer runtime.UnlockOSThread()
		}
	}
	if p.cfg.CPUPinning {
		cpu := affinity.CPUFor(w.id)
		if err := affinity.SetAffinity(cpu); err != nil {
			p.log.Error("cpu pinning failed",
				zap.Int("worker", w.id), zap.Int("cpu", cpu), zap.Error(err))
		}
	}

	p.cfg.Metrics.WorkerStarted()
	defer p.cfg.Metrics.WorkerStopped()
	p.log.Debug("worker started", zap.Int("worker", w.id))
	defer p.log.Debug("worker stopped", zap.Int("worker", w.id))

	switch p.cfg.Protocol {
	case ShutdownFlag:
		w.runUntilFlag()
	default:
		w.runUntilSentinel()
	}
}

// runUntilSentinel exits on the first nil task.
func (w *worker) runUntilSentinel() {
	for {
		task := w.pool.tasks.Pop()
		if task == nil {
			return
		}
		task()
	}
}

// runUntilFlag checks the stop flag before every Pop. Close queues one
// flag task per worker, so every Pop still pending at shutdown is released
// exactly once.
func (w *worker) runUntilFlag() {
	for !w.pool.stop.Load() {
		task := w.pool.tasks.Pop()
		task()
	}
}
