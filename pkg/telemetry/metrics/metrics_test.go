package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sapa-hq/relay/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Namespace:              "test",
		RequestDurationBuckets: []float64{0.1, 0.5, 1.0, 5.0},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := &config.MetricsConfig{}
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.Registry() != registry {
		t.Error("collector registry not set correctly")
	}
	if cfg.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("expected default namespace, got %q", cfg.Namespace)
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		t.Error("expected default buckets")
	}
}

func TestCollector_RecordChat(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordChat("stateful", "ok", 200*time.Millisecond)
	collector.RecordChat("stateful", "ok", 300*time.Millisecond)
	collector.RecordChat("stateless", "invalid", time.Millisecond)

	if got := testutil.ToFloat64(collector.chat.requests.WithLabelValues("stateful", "ok")); got != 2 {
		t.Errorf("expected 2 stateful turns, got %v", got)
	}
	if got := testutil.ToFloat64(collector.chat.requests.WithLabelValues("stateless", "invalid")); got != 1 {
		t.Errorf("expected 1 stateless client error, got %v", got)
	}
	if got := testutil.CollectAndCount(collector.chat.duration); got != 2 {
		t.Errorf("expected 2 duration series, got %d", got)
	}
}

func TestCollector_RecordGateway(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordGatewayCall("ok", time.Second)
	collector.RecordGatewayCall("not_found", 50*time.Millisecond)
	collector.RecordTokens(120, 40)
	collector.RecordTokens(0, 10)

	if got := testutil.ToFloat64(collector.gateway.calls.WithLabelValues("not_found")); got != 1 {
		t.Errorf("expected 1 not_found call, got %v", got)
	}
	if got := testutil.ToFloat64(collector.gateway.tokens.WithLabelValues("prompt")); got != 120 {
		t.Errorf("expected 120 prompt tokens, got %v", got)
	}
	if got := testutil.ToFloat64(collector.gateway.tokens.WithLabelValues("completion")); got != 50 {
		t.Errorf("expected 50 completion tokens, got %v", got)
	}
}

func TestCollector_SessionAndFallbacks(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.SetActiveSessions(7)
	collector.RecordEvictions(3)
	collector.RecordEvictions(0)
	collector.RecordReset()
	collector.RecordFallback("empty_raw")

	if got := testutil.ToFloat64(collector.session.active); got != 7 {
		t.Errorf("expected 7 active sessions, got %v", got)
	}
	if got := testutil.ToFloat64(collector.session.evicted); got != 3 {
		t.Errorf("expected 3 evictions, got %v", got)
	}
	if got := testutil.ToFloat64(collector.session.resets); got != 1 {
		t.Errorf("expected 1 reset, got %v", got)
	}
	if got := testutil.ToFloat64(collector.chat.fallbacks.WithLabelValues("empty_raw")); got != 1 {
		t.Errorf("expected 1 fallback, got %v", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	off := false
	cfg.Enabled = &off
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordChat("stateless", "ok", time.Second)
	collector.SetActiveSessions(4)

	if got := testutil.ToFloat64(collector.chat.requests.WithLabelValues("stateless", "ok")); got != 0 {
		t.Errorf("expected no recording when disabled, got %v", got)
	}
	if got := testutil.ToFloat64(collector.session.active); got != 0 {
		t.Errorf("expected gauge untouched when disabled, got %v", got)
	}
}

func TestCollector_NilIsNoop(t *testing.T) {
	var collector *Collector

	collector.RecordChat("stateless", "ok", time.Second)
	collector.RecordGatewayCall("ok", time.Second)
	collector.RecordTokens(1, 1)
	collector.SetActiveSessions(1)
	collector.RecordEvictions(1)
	collector.RecordReset()
	collector.RecordFallback("empty_raw")
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordChat("explicit", "ok", time.Second)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `test_chat_requests_total{mode="explicit",status="ok"} 1`) {
		t.Errorf("expected chat counter in exposition, got:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Error("expected Go runtime metrics in exposition")
	}
}
