package metrics

import (
	"time"

	"sapa-hq/relay/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ChatMetrics tracks inbound chat turns.
//
// Metrics:
//   - relay_chat_requests_total: turns by mode and status
//   - relay_chat_request_duration_seconds: orchestrator latency by mode
//   - relay_chat_reply_fallbacks_total: replies not taken from normalized output
type ChatMetrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	fallbacks *prometheus.CounterVec
}

// NewChatMetrics creates and registers chat metrics.
func NewChatMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ChatMetrics {
	m := &ChatMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "chat",
				Name:      "requests_total",
				Help:      "Total number of chat turns handled",
			},
			[]string{"mode", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "chat",
				Name:      "request_duration_seconds",
				Help:      "Duration of chat turns in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"mode"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "chat",
				Name:      "reply_fallbacks_total",
				Help:      "Replies served from a fallback instead of normalized model output",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(m.requests, m.duration, m.fallbacks)
	return m
}

func (m *ChatMetrics) record(mode, status string, duration time.Duration) {
	m.requests.WithLabelValues(mode, status).Inc()
	m.duration.WithLabelValues(mode).Observe(duration.Seconds())
}
