package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	qstate "github.com/reoring/qstate"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "qstate").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

// Metrics counts query decode outcomes.
//
// Metrics collected:
//   - qstate_decodes_total: decodes by result ("ok", "fallback", "error")
//   - qstate_fallbacks_total: values replaced by their default, by param
type Metrics struct {
	decodes   *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
}

// NewMetrics registers the collectors with the configured registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := MetricsConfig{Namespace: "qstate", Registry: prometheus.DefaultRegisterer}
	for _, o := range opts {
		o(&cfg)
	}
	factory := promauto.With(cfg.Registry)
	return &Metrics{
		decodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "decodes_total",
			Help:        "Total number of query string decodes by result",
			ConstLabels: cfg.ConstLabels,
		}, []string{"result"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "fallbacks_total",
			Help:        "Total number of query params replaced by their default after failing validation",
			ConstLabels: cfg.ConstLabels,
		}, []string{"param"}),
	}
}

// Observe records one decode. It is a no-op on a nil receiver.
func (m *Metrics) Observe(d qstate.Decoded, err error) { m.observe(d, err) }

func (m *Metrics) observe(d qstate.Decoded, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.decodes.WithLabelValues("error").Inc()
	case len(d.Fallbacks) > 0:
		m.decodes.WithLabelValues("fallback").Inc()
	default:
		m.decodes.WithLabelValues("ok").Inc()
	}
	for _, it := range d.Fallbacks {
		m.fallbacks.WithLabelValues(it.Path).Inc()
	}
}
