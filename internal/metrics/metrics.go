// Package metrics records Prometheus metrics for scoring runs and exports them
// in the node exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jonathan/resume-scorer/internal/types"
)

// overallBuckets are the upper edges of the calibration bands
var overallBuckets = []float64{40, 60, 75, 85, 100}

// Manager owns the scorer metrics. It satisfies scoring.Observer.
type Manager struct {
	namespace       string
	subsystem       string
	durationBuckets []float64
	registry        *prometheus.Registry

	scores          *prometheus.CounterVec
	overall         *prometheus.HistogramVec
	duration        prometheus.Histogram
	categoryStatus  *prometheus.CounterVec
	conditions      *prometheus.CounterVec
	issues          *prometheus.CounterVec
	batchItems      *prometheus.CounterVec
	batchDuration   prometheus.Histogram
	batchInProgress prometheus.Gauge
}

// NewManager creates a manager on a private registry unless one is supplied
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       "resume_scorer",
		durationBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scores = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_total",
		Help:      "Résumés scored, by mode",
	}, []string{"mode"})

	m.overall = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "overall_score",
		Help:      "Overall scores, bucketed on the calibration bands",
		Buckets:   overallBuckets,
	}, []string{"mode"})

	m.duration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_duration_seconds",
		Help:      "Time spent scoring one résumé",
		Buckets:   m.durationBuckets,
	})

	m.categoryStatus = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "category_status_total",
		Help:      "Category results by status",
	}, []string{"category", "status"})

	m.conditions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "conditions_total",
		Help:      "Conditions attached to results",
	}, []string{"condition"})

	m.issues = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "issues_total",
		Help:      "Red-flag issues found, by severity",
	}, []string{"severity"})

	m.batchItems = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_items_total",
		Help:      "Batch items processed, by outcome",
	}, []string{"outcome"})

	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_duration_seconds",
		Help:      "Wall time of a batch run",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
	})

	m.batchInProgress = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_in_progress",
		Help:      "Batch items currently being scored",
	})
}

// ObserveScore records a completed result
func (m *Manager) ObserveScore(result *types.ScoreResult, elapsed time.Duration) {
	if result == nil {
		return
	}
	mode := string(result.Mode)
	m.scores.WithLabelValues(mode).Inc()
	m.overall.WithLabelValues(mode).Observe(result.Overall)
	m.duration.Observe(elapsed.Seconds())

	for _, c := range result.Categories {
		m.categoryStatus.WithLabelValues(c.Name, string(c.Status)).Inc()
	}
	for _, c := range result.Conditions {
		m.conditions.WithLabelValues(c).Inc()
	}
	critical, warnings := types.CountBySeverity(result.Issues)
	m.issues.WithLabelValues(string(types.SeverityCritical)).Add(float64(critical))
	m.issues.WithLabelValues(string(types.SeverityWarning)).Add(float64(warnings))
}

// Batch item outcomes
const (
	OutcomeScored = "scored"
	OutcomeFailed = "failed"
)

// BatchItemStarted marks an item in flight and returns the function that records its outcome
func (m *Manager) BatchItemStarted() func(err error) {
	m.batchInProgress.Inc()
	return func(err error) {
		m.batchInProgress.Dec()
		outcome := OutcomeScored
		if err != nil {
			outcome = OutcomeFailed
		}
		m.batchItems.WithLabelValues(outcome).Inc()
	}
}

// ObserveBatch records the wall time of a finished batch
func (m *Manager) ObserveBatch(elapsed time.Duration) {
	m.batchDuration.Observe(elapsed.Seconds())
}

// Registry returns the registry the metrics live on
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteToTextfile writes every metric to path in the textfile collector format
func (m *Manager) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
