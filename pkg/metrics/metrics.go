// Package metrics provides Prometheus metrics for the paceline result processor.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the result-processing pipeline.
type Manager struct {
	namespace string
	registry  prometheus.Registerer
	enabled   bool

	// Core pipeline metrics
	ridersProcessed    prometheus.Counter
	resultsSkipped     *prometheus.CounterVec
	processingDuration prometheus.Histogram

	// Component metrics
	triggersApplied  prometheus.Counter
	storiesSelected  *prometheus.CounterVec
	stageTimesSynth  prometheus.Counter
	awardsEarned     *prometheus.CounterVec
	persistenceError prometheus.Counter
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithRegistry sets a custom Prometheus registerer.
func WithRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithEnabled toggles metric collection.
func WithEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// New creates a metrics Manager and registers all collectors.
func New(opts ...Option) *Manager {
	m := &Manager{
		namespace: "paceline",
		registry:  prometheus.DefaultRegisterer,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.ridersProcessed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "riders_processed_total",
		Help:      "Number of rider results fully processed and persisted.",
	})
	m.resultsSkipped = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "results_skipped_total",
		Help:      "Number of rider results skipped, by reason.",
	}, []string{"reason"})
	m.processingDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "rider_processing_seconds",
		Help:      "Wall time spent processing a single rider result.",
		Buckets:   prometheus.DefBuckets,
	})
	m.triggersApplied = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "triggers_applied_total",
		Help:      "Number of equipped bonus triggers applied.",
	})
	m.storiesSelected = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "stories_selected_total",
		Help:      "Number of narrative stories selected, by category.",
	}, []string{"category"})
	m.stageTimesSynth = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "stage_times_synthesized_total",
		Help:      "Number of stage times synthesized for the classification.",
	})
	m.awardsEarned = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "awards_earned_total",
		Help:      "Number of awards earned, by award id.",
	}, []string{"award"})
	m.persistenceError = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "persistence_errors_total",
		Help:      "Number of failed persistence writes.",
	})

	return m
}

// RiderProcessed records a fully processed rider result.
func (m *Manager) RiderProcessed(elapsed time.Duration) {
	if m == nil || !m.enabled {
		return
	}
	m.ridersProcessed.Inc()
	m.processingDuration.Observe(elapsed.Seconds())
}

// ResultSkipped records a non-fatal skip with its reason.
func (m *Manager) ResultSkipped(reason string) {
	if m == nil || !m.enabled {
		return
	}
	m.resultsSkipped.WithLabelValues(reason).Inc()
}

// TriggerApplied records an applied bonus trigger.
func (m *Manager) TriggerApplied() {
	if m == nil || !m.enabled {
		return
	}
	m.triggersApplied.Inc()
}

// StorySelected records a narrative story selection.
func (m *Manager) StorySelected(category string) {
	if m == nil || !m.enabled {
		return
	}
	m.storiesSelected.WithLabelValues(category).Inc()
}

// StageTimeSynthesized records one synthesized classification stage time.
func (m *Manager) StageTimeSynthesized() {
	if m == nil || !m.enabled {
		return
	}
	m.stageTimesSynth.Inc()
}

// AwardEarned records an earned award.
func (m *Manager) AwardEarned(award string) {
	if m == nil || !m.enabled {
		return
	}
	m.awardsEarned.WithLabelValues(award).Inc()
}

// PersistenceError records a failed persistence write.
func (m *Manager) PersistenceError() {
	if m == nil || !m.enabled {
		return
	}
	m.persistenceError.Inc()
}
