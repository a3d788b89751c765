// Package telemetry groups the relay's observability packages.
//
// # Components
//
//   - logging: slog setup with request-scoped fields and credential redaction
//   - metrics: Prometheus counters for chat turns, upstream calls and sessions
//   - tracing: OpenTelemetry spans exported over OTLP/gRPC
//   - health: liveness, readiness and version endpoints
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(context.Background())
//
// Components accept the collector through small recorder interfaces, so
// tests pass fakes and a nil collector records nothing.
package telemetry
