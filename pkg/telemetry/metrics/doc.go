// Package metrics provides Prometheus metrics for the relay.
//
// # Metrics
//
//   - relay_chat_requests_total{mode,status}
//   - relay_chat_request_duration_seconds{mode}
//   - relay_chat_reply_fallbacks_total{reason}
//   - relay_gateway_calls_total{outcome}
//   - relay_gateway_call_duration_seconds
//   - relay_gateway_tokens_total{kind}
//   - relay_session_active
//   - relay_session_evicted_total
//   - relay_session_resets_total
//
// Every label has a small fixed value set; conversation identifiers and
// model names are never used as labels.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordChat("stateful", "ok", 850*time.Millisecond)
//	http.Handle("/metrics", collector.Handler())
package metrics
