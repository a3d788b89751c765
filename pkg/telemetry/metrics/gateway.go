package metrics

import (
	"time"

	"sapa-hq/relay/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// GatewayMetrics tracks upstream completion calls.
//
// Metrics:
//   - relay_gateway_calls_total: calls by outcome
//   - relay_gateway_call_duration_seconds: upstream latency
//   - relay_gateway_tokens_total: token usage reported upstream
type GatewayMetrics struct {
	calls    *prometheus.CounterVec
	duration prometheus.Histogram
	tokens   *prometheus.CounterVec
}

// NewGatewayMetrics creates and registers gateway metrics.
func NewGatewayMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *GatewayMetrics {
	m := &GatewayMetrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "gateway",
				Name:      "calls_total",
				Help:      "Total number of upstream completion calls by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "gateway",
				Name:      "call_duration_seconds",
				Help:      "Duration of upstream completion calls in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
		),
		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "gateway",
				Name:      "tokens_total",
				Help:      "Total tokens reported by the upstream endpoint",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(m.calls, m.duration, m.tokens)
	return m
}

func (m *GatewayMetrics) record(outcome string, latency time.Duration) {
	m.calls.WithLabelValues(outcome).Inc()
	m.duration.Observe(latency.Seconds())
}
