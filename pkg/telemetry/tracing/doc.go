// Package tracing sets up OpenTelemetry tracing for the relay.
//
// When enabled, spans are exported over OTLP/gRPC and W3C trace context is
// propagated both from inbound requests and to the upstream completion
// endpoint. When disabled, the global provider stays a noop and span
// creation costs next to nothing.
//
// Spans:
//
//   - conversation.turn: one chat turn in the orchestrator
//   - gateway.complete: the upstream chat-completion call
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    sampler: ratio
//	    sample_ratio: 0.25
//	    endpoint: "otel-collector:4317"
//	    insecure: true
package tracing
