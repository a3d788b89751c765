package metrics

import (
	"sapa-hq/relay/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// SessionMetrics tracks in-memory conversations.
type SessionMetrics struct {
	active  prometheus.Gauge
	evicted prometheus.Counter
	resets  prometheus.Counter
}

// NewSessionMetrics creates and registers session metrics.
func NewSessionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *SessionMetrics {
	m := &SessionMetrics{
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Number of conversations held in memory",
		}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "session",
			Name:      "evicted_total",
			Help:      "Conversations evicted after being idle",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "session",
			Name:      "resets_total",
			Help:      "Conversations cleared by an explicit reset",
		}),
	}

	registry.MustRegister(m.active, m.evicted, m.resets)
	return m
}
