package metrics

import (
	"time"

	"sapa-hq/relay/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector owns every Prometheus metric exported by the relay. It is safe
// for concurrent use. All Record methods are no-ops on a nil Collector or
// when metrics are disabled, so components can take one unconditionally.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	chat    *ChatMetrics
	gateway *GatewayMetrics
	session *SessionMetrics
}

// NewCollector creates a collector and registers its metrics with registry.
// If registry is nil a fresh one is created. Go runtime and process
// collectors are registered alongside the relay metrics.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = append([]float64(nil), config.DefaultRequestDurationBuckets...)
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.chat = NewChatMetrics(cfg, registry)
	c.gateway = NewGatewayMetrics(cfg, registry)
	c.session = NewSessionMetrics(cfg, registry)

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.IsEnabled()
}

// Registry returns the registry the collector writes to.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordChat records one finished /chat turn.
//
// Parameters:
//   - mode: "stateless", "stateful", "explicit" or "reset"
//   - status: "ok", "invalid", "cancelled" or a gateway outcome
//   - duration: time spent in the orchestrator
func (c *Collector) RecordChat(mode, status string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.chat.record(mode, status, duration)
}

// RecordFallback records a reply that could not be served from normalized
// model output. Reasons are "empty_raw" (fixed fallback reply used) and
// "empty_normalized" (raw text used).
func (c *Collector) RecordFallback(reason string) {
	if !c.enabled() {
		return
	}
	c.chat.fallbacks.WithLabelValues(reason).Inc()
}

// RecordGatewayCall records one upstream completion call.
//
// Parameters:
//   - outcome: "ok", "misconfigured", "forbidden", "not_found",
//     "transport_error", "upstream_error" or "error"
//   - latency: wall time of the call
func (c *Collector) RecordGatewayCall(outcome string, latency time.Duration) {
	if !c.enabled() {
		return
	}
	c.gateway.record(outcome, latency)
}

// RecordTokens adds upstream token usage.
func (c *Collector) RecordTokens(prompt, completion int) {
	if !c.enabled() {
		return
	}
	if prompt > 0 {
		c.gateway.tokens.WithLabelValues("prompt").Add(float64(prompt))
	}
	if completion > 0 {
		c.gateway.tokens.WithLabelValues("completion").Add(float64(completion))
	}
}

// SetActiveSessions reports the number of conversations held in memory.
func (c *Collector) SetActiveSessions(n int) {
	if !c.enabled() {
		return
	}
	c.session.active.Set(float64(n))
}

// RecordEvictions counts conversations removed by the idle sweeper.
func (c *Collector) RecordEvictions(n int) {
	if !c.enabled() || n <= 0 {
		return
	}
	c.session.evicted.Add(float64(n))
}

// RecordReset counts conversations cleared by an explicit reset.
func (c *Collector) RecordReset() {
	if !c.enabled() {
		return
	}
	c.session.resets.Inc()
}
