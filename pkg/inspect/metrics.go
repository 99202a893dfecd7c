package inspect

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/loomui/loom/pkg/loom"
)

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "loom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collector.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "loom",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a Prometheus collector for the hook runtime. It implements
// loom.Observer; attach it with loom.WithObserver (or inspect.Tee) at
// mount.
type Metrics struct {
	rebuildsTotal *prometheus.CounterVec
	effectRuns    prometheus.Counter
	cleanupRuns   prometheus.Counter
	sinkErrors    prometheus.Counter
	liveOwners    prometheus.Gauge
}

// NewMetrics registers and returns the runtime metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		rebuildsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rebuilds_total",
			Help:        "Total number of rebuild passes, by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect body executions",
			ConstLabels: config.ConstLabels,
		}),

		cleanupRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cleanup_runs_total",
			Help:        "Total number of effect cleanup executions",
			ConstLabels: config.ConstLabels,
		}),

		sinkErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sink_errors_total",
			Help:        "Total number of errors delivered to owner error sinks",
			ConstLabels: config.ConstLabels,
		}),

		liveOwners: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_owners",
			Help:        "Number of currently mounted owners",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Mounted implements loom.Observer.
func (m *Metrics) Mounted(*loom.Owner) {
	m.liveOwners.Inc()
}

// PassDone implements loom.Observer.
func (m *Metrics) PassDone(_ *loom.Owner, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.rebuildsTotal.WithLabelValues(status).Inc()
}

// EffectRan implements loom.Observer.
func (m *Metrics) EffectRan(*loom.Owner) {
	m.effectRuns.Inc()
}

// CleanupRan implements loom.Observer.
func (m *Metrics) CleanupRan(*loom.Owner) {
	m.cleanupRuns.Inc()
}

// SinkError implements loom.Observer.
func (m *Metrics) SinkError(*loom.Owner, error) {
	m.sinkErrors.Inc()
}

// Unmounted implements loom.Observer.
func (m *Metrics) Unmounted(*loom.Owner) {
	m.liveOwners.Dec()
}
