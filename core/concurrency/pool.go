// File: core/concurrency/pool.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool runs submitted tasks on a fixed set of worker goroutines that share one
// BlockingQueue. Results travel back through per-submission Futures. Close
// drains queued work and joins every worker using the configured
// ShutdownProtocol.

package concurrency

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-exec/api"
)

// Ensure compile-time interface compliance.
var (
	_ api.Executor         = (*Pool)(nil)
	_ api.GracefulShutdown = (*Pool)(nil)
)

// TaskFunc is a unit of work to execute. A nil TaskFunc is the sentinel
// that ends a worker under ShutdownSentinel.
type TaskFunc func()

// PoolState is the lifecycle state of a Pool.
type PoolState int32

const (
	StateRunning PoolState = iota
	StateDraining
	StateStopped
)

func (s PoolState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("PoolState(%d)", int32(s))
	}
}

// Stats is a point-in-time view of pool counters. Fields are read
// independently and may be slightly inconsistent under load.
type Stats struct {
	Name      string
	State     PoolState
	Protocol  ShutdownProtocol
	Workers   int
	Submitted uint64
	Completed uint64
	Failed    uint64
	Rejected  uint64
	Pending   int // queued tasks, shutdown tasks included
	InFlight  int // submitted and not yet completed
}

// Pool manages a fixed set of worker goroutines.
type Pool struct {
	cfg     Config
	log     *zap.Logger
	tasks   *BlockingQueue[TaskFunc]
	workers []*worker
	wg      sync.WaitGroup // joins workers

	// mu orders Submit against the Running->Draining transition: Submit
	// holds it shared across its state check and push, Close exclusively.
	mu        sync.RWMutex
	state     atomic.Int32
	stop      atomic.Bool // ShutdownFlag exit condition
	closeOnce sync.Once

	idleMu   sync.Mutex
	idle     *sync.Cond
	inFlight int

	submitted atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	rejected  atomic.Uint64
}

// NewPool creates a pool and starts its workers.
//
// Example:
//
//	p, err := concurrency.NewPool(
//	    concurrency.WithWorkers(4),
//	    concurrency.WithShutdownProtocol(concurrency.ShutdownFlag),
//	)
func NewPool(opts ...Option) (*Pool, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Pool{
		cfg:     cfg,
		log:     cfg.Logger.With(zap.String("pool", cfg.Name)),
		tasks:   NewBlockingQueue[TaskFunc](),
		workers: make([]*worker, cfg.Workers),
	}
	p.idle = sync.NewCond(&p.idleMu)
	p.state.Store(int32(StateRunning))

	for i := range p.workers {
		p.workers[i] = &worker{id: i, pool: p}
	}
	for _, w := range p.workers {
		p.wg.Add(1)
		go w.run()
	}

	p.log.Info("pool started",
		zap.Int("workers", cfg.Workers),
		zap.Stringer("protocol", cfg.Protocol))
	return p, nil
}

// Submit schedules fn and returns a Future that resolves once fn has run.
// A nil fn is rejected with ErrInvalidSubmission; a closed pool with
// ErrPoolClosed. Neither case enqueues anything.
func (p *Pool) Submit(fn func() error) (*Future[struct{}], error) {
	if fn == nil {
		return nil, p.reject(ErrInvalidSubmission)
	}
	return SubmitValue(p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

// SubmitValue schedules fn on p and returns a Future for its value or
// failure. A panic inside fn is delivered as a *PanicError.
func SubmitValue[T any](p *Pool, fn func() (T, error)) (*Future[T], error) {
	if fn == nil {
		return nil, p.reject(ErrInvalidSubmission)
	}
	promise, future := NewPromise[T]()
	err := p.enqueue(func() {
		var v T
		err := p.invoke(func() error {
			var err error
			v, err = fn()
			return err
		})
		if err != nil {
			promise.Reject(err)
			return
		}
		promise.Resolve(v)
	})
	if err != nil {
		return nil, err
	}
	return future, nil
}

// Execute schedules task without a result handle. Panics are contained and
// counted as failures.
func (p *Pool) Execute(task func()) error {
	if task == nil {
		return p.reject(ErrInvalidSubmission)
	}
	return p.enqueue(func() {
		_ = p.invoke(func() error {
			task()
			return nil
		})
	})
}

// enqueue pushes a wrapped task while the pool is running.
func (p *Pool) enqueue(task TaskFunc) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if PoolState(p.state.Load()) != StateRunning {
		return p.reject(ErrPoolClosed)
	}

	p.idleMu.Lock()
	p.inFlight++
	p.idleMu.Unlock()
	p.submitted.Add(1)
	p.cfg.Metrics.TaskSubmitted()

	p.tasks.Push(func() {
		defer p.taskDone()
		task()
	})
	return nil
}

// reject counts a refused submission and returns err wrapped in an
// api.Error naming the pool.
func (p *Pool) reject(err error) error {
	p.rejected.Add(1)
	p.cfg.Metrics.TaskRejected()
	return api.NewError(api.CodeOf(err), "submit rejected").
		Wrap(err).
		WithContext("pool", p.cfg.Name)
}

func (p *Pool) taskDone() {
	p.idleMu.Lock()
	p.inFlight--
	if p.inFlight == 0 {
		p.idle.Broadcast()
	}
	p.idleMu.Unlock()
}

// invoke runs body, converting a panic into a *PanicError, and records the
// outcome.
func (p *Pool) invoke(body func() error) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
			p.log.Warn("task panicked", zap.Any("panic", r))
			p.callPanicHandler(r)
		}
		p.completed.Add(1)
		if err != nil {
			p.failed.Add(1)
		}
		p.cfg.Metrics.TaskFinished(time.Since(start), err != nil)
	}()
	return body()
}

// callPanicHandler runs the configured hook. A panic inside the hook is
// logged and dropped so the worker and the task's Future are unaffected.
func (p *Pool) callPanicHandler(recovered any) {
	if p.cfg.PanicHandler == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("panic handler panicked", zap.Any("panic", r))
		}
	}()
	p.cfg.PanicHandler(recovered)
}

// Wait blocks until every task submitted so far has completed. The pool
// keeps accepting work.
func (p *Pool) Wait() {
	p.idleMu.Lock()
	defer p.idleMu.Unlock()
	for p.inFlight > 0 {
		p.idle.Wait()
	}
}

// Close stops accepting work, lets workers finish everything already queued,
// and joins them. It is idempotent; concurrent callers all return after the
// workers have exited. Close must not be called from inside a task.
func (p *Pool) Close() error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.state.Store(int32(StateDraining))
		p.mu.Unlock()

		p.log.Debug("pool draining", zap.Int("pending", p.tasks.Len()))
		// One exit task per worker, queued behind every accepted task and
		// never interleaved with each other.
		p.tasks.PushMany(p.exitTasks()...)
		p.wg.Wait()

		// Under ShutdownFlag a worker may see the flag before popping its
		// own flag task; drop those leftovers.
		for !p.tasks.Empty() {
			p.tasks.TryPop()
		}

		p.state.Store(int32(StateStopped))
		p.log.Info("pool stopped",
			zap.Uint64("completed", p.completed.Load()),
			zap.Uint64("failed", p.failed.Load()))
	})
	return nil
}

// Shutdown implements api.GracefulShutdown.
func (p *Pool) Shutdown() error {
	return p.Close()
}

// exitTasks builds the per-worker shutdown batch for the configured protocol.
func (p *Pool) exitTasks() []TaskFunc {
	batch := make([]TaskFunc, len(p.workers))
	if p.cfg.Protocol == ShutdownFlag {
		for i := range batch {
			batch[i] = func() { p.stop.Store(true) }
		}
	}
	// ShutdownSentinel: the zero value of every slot is the nil sentinel.
	return batch
}

// NumWorkers returns the number of workers.
func (p *Pool) NumWorkers() int {
	return len(p.workers)
}

// State returns the lifecycle state.
func (p *Pool) State() PoolState {
	return PoolState(p.state.Load())
}

// Pending returns the number of queued tasks.
func (p *Pool) Pending() int {
	return p.tasks.Len()
}

// Stats returns a snapshot of pool statistics.
func (p *Pool) Stats() Stats {
	p.idleMu.Lock()
	inFlight := p.inFlight
	p.idleMu.Unlock()
	return Stats{
		Name:      p.cfg.Name,
		State:     p.State(),
		Protocol:  p.cfg.Protocol,
		Workers:   len(p.workers),
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
		Rejected:  p.rejected.Load(),
		Pending:   p.tasks.Len(),
		InFlight:  inFlight,
	}
}

// RegisterProbes publishes pool state on a debug registry.
func (p *Pool) RegisterProbes(d api.Debug) {
	d.RegisterProbe(p.cfg.Name+".stats", func() any {
		return p.Stats()
	})
	if p.cfg.Metrics != nil {
		d.RegisterProbe(p.cfg.Name+".metrics", func() any {
			return p.cfg.Metrics.Snapshot()
		})
	}
}
