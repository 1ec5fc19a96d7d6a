package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Spawn results
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Exit outcomes
const (
	OutcomeClean = "clean"
	OutcomeError = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	WorkerSpawns  *prometheus.CounterVec
	WorkerStops   prometheus.Counter
	WorkerExits   *prometheus.CounterVec
	WorkerRunning prometheus.Gauge

	// Snapshot for log summaries
	snapshot MetricsSnapshot
	started  time.Time

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values
type MetricsSnapshot struct {
	Spawns        int64
	SpawnFailures int64
	Stops         int64
	Exits         int64
	Running       bool
	LastSpawnAt   time.Time
}

// NewMetrics registers the supervisor metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		started: time.Now(),

		WorkerSpawns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_worker_spawns_total",
				Help: "Total number of worker spawn attempts",
			},
			[]string{"result"},
		),
		WorkerStops: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shell_worker_stops_total",
				Help: "Total number of termination signals sent to the worker",
			},
		),
		WorkerExits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_worker_exits_total",
				Help: "Total number of observed worker exits",
			},
			[]string{"outcome"},
		),
		WorkerRunning: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "shell_worker_running",
				Help: "Whether a worker process is currently tracked",
			},
		),
	}
}

// RecordSpawn records a spawn attempt
func (m *Metrics) RecordSpawn(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.WorkerSpawns.WithLabelValues(ResultFailure).Inc()
		m.snapshot.SpawnFailures++
		return
	}

	m.WorkerSpawns.WithLabelValues(ResultSuccess).Inc()
	m.WorkerRunning.Set(1)
	m.snapshot.Spawns++
	m.snapshot.Running = true
	m.snapshot.LastSpawnAt = time.Now()
}

// RecordStop records a termination signal
func (m *Metrics) RecordStop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WorkerStops.Inc()
	m.WorkerRunning.Set(0)
	m.snapshot.Stops++
	m.snapshot.Running = false
}

// RecordExit records an observed worker exit
func (m *Metrics) RecordExit(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	outcome := OutcomeClean
	if err != nil {
		outcome = OutcomeError
	}
	m.WorkerExits.WithLabelValues(outcome).Inc()
	m.snapshot.Exits++
}

// Snapshot returns a copy of the current values
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Uptime returns time since the metrics were created
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.started)
}
