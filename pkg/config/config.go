package config

import "time"

// Config is the root configuration structure for the relay.
// It contains the HTTP server, the upstream completion gateway, the persona
// applied to every conversation, session storage and telemetry settings.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, static file serving and CORS.
	Server ServerConfig `yaml:"server"`

	// Gateway contains configuration for the remote OpenAI-compatible
	// chat-completion endpoint.
	Gateway GatewayConfig `yaml:"gateway"`

	// Persona contains the system instruction and reply style settings
	// injected into every completion call.
	Persona PersonaConfig `yaml:"persona"`

	// Session contains in-memory conversation history settings.
	Session SessionConfig `yaml:"session"`

	// Telemetry contains configuration for observability including logging,
	// metrics, tracing and health checks.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for the server to listen on.
	// Format: "host:port" (e.g., ":8000", "127.0.0.1:8000").
	// Default: ":8000"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It must exceed the gateway timeout or slow completions are
	// cut off mid-response.
	// Default: 90s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for in-flight chat
	// turns during graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// StaticDir is the directory served at "/" (the demo chat page).
	// Serving is skipped when the directory does not exist.
	// Default: "public"
	StaticDir string `yaml:"static_dir"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	// Enabled determines whether CORS headers are added to responses.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// AllowedOrigins is the list of origins allowed to call the relay.
	// Use "*" to allow any origin.
	// Default: ["http://localhost:3000", "http://localhost:5173"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is the list of HTTP methods allowed for CORS requests.
	// Default: ["GET", "POST"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is the list of request headers allowed for CORS requests.
	// Default: ["Content-Type"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// ExposedHeaders is the list of response headers exposed to the browser.
	// Default: ["X-Request-ID"]
	ExposedHeaders []string `yaml:"exposed_headers"`

	// MaxAge is how long (in seconds) preflight results can be cached.
	// Default: 3600
	MaxAge int `yaml:"max_age"`
}

// IsEnabled reports whether CORS handling is enabled.
func (c CORSConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// GatewayConfig contains configuration for the remote completion endpoint.
type GatewayConfig struct {
	// BaseURL is the OpenAI-compatible API root. "/chat/completions" is
	// appended to it.
	// Default: "https://router.huggingface.co/v1"
	BaseURL string `yaml:"base_url"`

	// APIKey is the bearer credential sent upstream. Usually supplied via
	// HUGGINGFACE_API_KEY, HF_TOKEN or OPENAI_API_KEY.
	APIKey string `yaml:"api_key"`

	// Model is the model identifier sent with every completion request.
	// Default: "openai/gpt-oss-2b-fireworks-ai"
	Model string `yaml:"model"`

	// Timeout bounds a single completion call, including reading the body.
	// The relay never retries; this is the only deadline on the upstream call.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns is the maximum number of idle upstream connections kept
	// in the pool.
	// Default: 20
	MaxIdleConns int `yaml:"max_idle_conns"`

	// IdleConnTimeout is how long an idle upstream connection stays pooled.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// PersonaConfig describes the system instruction and reply style.
type PersonaConfig struct {
	// SystemPrompt is the persona instruction prepended to every call.
	// It is never stored in session history. An empty prompt disables
	// the system message.
	SystemPrompt string `yaml:"system_prompt"`

	// SystemPromptFile loads the persona instruction from a file. It takes
	// precedence over SystemPrompt when both are set.
	SystemPromptFile string `yaml:"system_prompt_file"`

	// EmojiEnabled keeps a small number of emoji in replies. When false,
	// all emoji are stripped.
	// Default: true
	EmojiEnabled *bool `yaml:"emoji_enabled"`

	// FallbackReply is returned to the caller when the model produced no
	// content at all.
	FallbackReply string `yaml:"fallback_reply"`
}

// Emoji reports whether emoji are kept in replies.
func (p PersonaConfig) Emoji() bool {
	return p.EmojiEnabled == nil || *p.EmojiEnabled
}

// SessionConfig contains in-memory conversation history settings.
type SessionConfig struct {
	// MaxHistory is the number of most recent messages sent upstream per turn.
	// Default: 20
	MaxHistory int `yaml:"max_history"`

	// MaxStoredMessages caps the history kept per conversation. The oldest
	// messages are dropped first. Zero means unbounded.
	// Default: 200
	MaxStoredMessages int `yaml:"max_stored_messages"`

	// IdleTTL evicts conversations that have been inactive for this long.
	// Zero disables eviction; sessions then live for the process lifetime.
	// Default: 0
	IdleTTL time.Duration `yaml:"idle_ttl"`

	// SweepSchedule is the cron expression for the idle eviction sweep.
	// Only used when IdleTTL is positive.
	// Default: "*/5 * * * *"
	SweepSchedule string `yaml:"sweep_schedule"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing configures OpenTelemetry tracing.
	Tracing TracingConfig `yaml:"tracing"`

	// Health configures health check endpoints.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn" or "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json", "text" or "console".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactSecrets masks credentials (API keys, bearer tokens) in log
	// attributes.
	// Default: true
	RedactSecrets *bool `yaml:"redact_secrets"`

	// RedactPatterns contains additional redaction patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern is a custom redaction rule.
type RedactPattern struct {
	// Name identifies the pattern in diagnostics.
	Name string `yaml:"name"`

	// Pattern is a regular expression.
	Pattern string `yaml:"pattern"`

	// Replacement replaces every match.
	Replacement string `yaml:"replacement"`
}

// Redact reports whether secret redaction is enabled.
func (l LoggingConfig) Redact() bool {
	return l.RedactSecrets == nil || *l.RedactSecrets
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled exposes metrics and records them.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is the HTTP path for the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "relay"
	Namespace string `yaml:"namespace"`

	// RequestDurationBuckets are histogram buckets (seconds) for chat turns
	// and upstream calls.
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// IsEnabled reports whether metrics are enabled.
func (m MetricsConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// TracingConfig contains OpenTelemetry tracing settings.
type TracingConfig struct {
	// Enabled turns on span export.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler is "always", "never" or "ratio".
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is used by the "ratio" sampler.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "relay"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS to the collector.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// HealthConfig contains health endpoint settings.
type HealthConfig struct {
	// LivenessPath is the liveness probe path.
	// Default: "/live"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the readiness probe path.
	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`

	// VersionPath reports build information.
	// Default: "/version"
	VersionPath string `yaml:"version_path"`

	// CheckTimeout bounds each readiness check.
	// Default: 2s
	CheckTimeout time.Duration `yaml:"check_timeout"`
}
