// Package logging builds the relay's structured logger on top of log/slog.
//
// The logger returned by New is a plain *slog.Logger; callers install it with
// slog.SetDefault and log through the standard API. Two handler wrappers do
// the work:
//
//   - ContextHandler adds request_id, conversation_id and mode from the
//     context passed to the *Context logging methods.
//   - RedactingHandler masks Hugging Face and OpenAI style tokens, bearer
//     headers and values under credential-like keys.
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	slog.InfoContext(ctx, "chat completed", "latency_ms", 812)
package logging
