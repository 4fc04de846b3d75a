// Package metrics exposes Prometheus collectors for the reactive store and the
// renderer.
//
// A nil *Metrics is valid and records nothing, so packages can call the
// recording methods unconditionally.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the Prometheus collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "minivue").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Namespace: "minivue",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors.
type Metrics struct {
	rendersTotal      *prometheus.CounterVec
	renderDuration    prometheus.Histogram
	renderErrors      *prometheus.CounterVec
	mountsTotal       *prometheus.CounterVec
	patchesTotal      *prometheus.CounterVec
	observersTotal    prometheus.Counter
	notifications     prometheus.Counter
	subscriberUpdates prometheus.Counter
	deferredUpdates   prometheus.Counter
}

// New creates and registers the collectors.
// Registering twice against the same registry panics, as with promauto.
func New(opts ...Option) *Metrics {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return NewWithConfig(config)
}

// NewWithConfig creates and registers the collectors from an explicit config.
func NewWithConfig(config Config) *Metrics {
	if config.Namespace == "" {
		config.Namespace = "minivue"
	}
	if config.Buckets == nil {
		config.Buckets = prometheus.DefBuckets
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of top-level render calls by action",
			ConstLabels: config.ConstLabels,
		}, []string{"action"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Top-level render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of failed render calls by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		mountsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounts_total",
			Help:        "Total number of nodes mounted by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		patchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_total",
			Help:        "Total number of backend mutations applied during reconciliation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		observersTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "observers_total",
			Help:        "Total number of observers created",
			ConstLabels: config.ConstLabels,
		}),

		notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Total number of dependency notifications",
			ConstLabels: config.ConstLabels,
		}),

		subscriberUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "subscriber_updates_total",
			Help:        "Total number of subscriber updates run",
			ConstLabels: config.ConstLabels,
		}),

		deferredUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deferred_updates_total",
			Help:        "Total number of subscriber updates queued for a later flush",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RecordRender records one top-level render call.
func (m *Metrics) RecordRender(action string, d time.Duration) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues(action).Inc()
	m.renderDuration.Observe(d.Seconds())
}

// RecordRenderError records a failed render call.
func (m *Metrics) RecordRenderError(code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	m.renderErrors.WithLabelValues(code).Inc()
}

// RecordMount records a mounted node of the given kind.
func (m *Metrics) RecordMount(kind string) {
	if m == nil {
		return
	}
	m.mountsTotal.WithLabelValues(kind).Inc()
}

// RecordPatch records a backend mutation applied while patching.
func (m *Metrics) RecordPatch(op string) {
	if m == nil {
		return
	}
	m.patchesTotal.WithLabelValues(op).Inc()
}

// RecordObserver records a newly created observer.
func (m *Metrics) RecordObserver() {
	if m == nil {
		return
	}
	m.observersTotal.Inc()
}

// RecordNotify records a dependency notification.
func (m *Metrics) RecordNotify() {
	if m == nil {
		return
	}
	m.notifications.Inc()
}

// RecordUpdate records a subscriber update.
func (m *Metrics) RecordUpdate() {
	if m == nil {
		return
	}
	m.subscriberUpdates.Inc()
}

// RecordDeferred records a subscriber update queued for later.
func (m *Metrics) RecordDeferred() {
	if m == nil {
		return
	}
	m.deferredUpdates.Inc()
}
