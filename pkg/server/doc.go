// Package server runs the relay's HTTP surface.
//
// It routes requests to the chat and health handlers, the telemetry probes
// and the optional static demo page, and wraps everything in the middleware
// chain (outermost first):
//
//  1. Recovery: turns panics into a 500 JSON error
//  2. RequestID: propagates or generates X-Request-ID
//  3. Tracing: extracts W3C trace context and opens a server span
//  4. Logging: one structured line per request
//  5. CORS: origin allowlist and preflight handling
//
// # Routes
//
//   - POST /chat - one chat turn
//   - GET /health - resolved configuration summary, never calls upstream
//   - GET /live, /ready, /version - probes (paths are configurable)
//   - GET /metrics - Prometheus metrics, when enabled
//   - GET / - files from server.static_dir, when the directory exists
//
// # Lifecycle
//
//	srv := server.NewServer(cfg, server.Options{Orchestrator: orch})
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Start blocks. Cancelling ctx or calling Stop drains in-flight requests
// for up to server.shutdown_timeout.
package server
