// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collectors for worker pools. A nil *PoolMetrics is valid and
// records nothing, so pools without metrics pay only a nil check.

package control

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// PoolMetrics holds the collectors of one pool.
type PoolMetrics struct {
	submitted prometheus.Counter
	completed prometheus.Counter
	failed    prometheus.Counter
	rejected  prometheus.Counter
	workers   prometheus.Gauge
	latency   prometheus.Histogram
}

// NewPoolMetrics creates the collectors for pool and registers them with reg.
// A nil reg leaves them unregistered, which is useful in tests.
func NewPoolMetrics(reg prometheus.Registerer, namespace, pool string) (*PoolMetrics, error) {
	labels := prometheus.Labels{"pool": pool}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "pool",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	m := &PoolMetrics{
		submitted: counter("tasks_submitted_total", "Tasks accepted by the pool."),
		completed: counter("tasks_completed_total", "Tasks that finished executing, successfully or not."),
		failed:    counter("tasks_failed_total", "Tasks that returned an error or panicked."),
		rejected:  counter("tasks_rejected_total", "Submissions refused (empty task or closed pool)."),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "pool",
			Name:        "workers_running",
			Help:        "Worker goroutines currently running.",
			ConstLabels: labels,
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "pool",
			Name:        "task_duration_seconds",
			Help:        "Task execution time.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				return nil, fmt.Errorf("control: metrics for pool %q already registered: %w", pool, err)
			}
			return nil, fmt.Errorf("control: register pool metrics: %w", err)
		}
	}
	return m, nil
}

func (m *PoolMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.submitted, m.completed, m.failed, m.rejected, m.workers, m.latency}
}

// TaskSubmitted counts an accepted submission.
func (m *PoolMetrics) TaskSubmitted() {
	if m == nil {
		return
	}
	m.submitted.Inc()
}

// TaskRejected counts a refused submission.
func (m *PoolMetrics) TaskRejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}

// TaskFinished records one executed task.
func (m *PoolMetrics) TaskFinished(d time.Duration, failed bool) {
	if m == nil {
		return
	}
	m.completed.Inc()
	if failed {
		m.failed.Inc()
	}
	m.latency.Observe(d.Seconds())
}

// WorkerStarted and WorkerStopped track running workers.
func (m *PoolMetrics) WorkerStarted() {
	if m == nil {
		return
	}
	m.workers.Inc()
}

func (m *PoolMetrics) WorkerStopped() {
	if m == nil {
		return
	}
	m.workers.Dec()
}

// Snapshot returns the current collector values.
func (m *PoolMetrics) Snapshot() map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return map[string]float64{
		"submitted":     metricValue(m.submitted),
		"completed":     metricValue(m.completed),
		"failed":        metricValue(m.failed),
		"rejected":      metricValue(m.rejected),
		"workers":       metricValue(m.workers),
		"latency_count": metricValue(m.latency),
	}
}

// metricValue reads a counter, gauge or histogram sample count.
func metricValue(c prometheus.Metric) float64 {
	var out dto.Metric
	if err := c.Write(&out); err != nil {
		return 0
	}
	switch {
	case out.Counter != nil:
		return out.Counter.GetValue()
	case out.Gauge != nil:
		return out.Gauge.GetValue()
	case out.Histogram != nil:
		return float64(out.Histogram.GetSampleCount())
	}
	return 0
}
