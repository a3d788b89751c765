package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = ":8000"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 90 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB
	DefaultStaticDir       = "public"

	// CORS defaults
	DefaultCORSMaxAge = 3600 // 1 hour

	// Gateway defaults
	DefaultGatewayBaseURL         = "https://router.huggingface.co/v1"
	DefaultGatewayModel           = "openai/gpt-oss-2b-fireworks-ai"
	DefaultGatewayTimeout         = 60 * time.Second
	DefaultGatewayMaxIdleConns    = 20
	DefaultGatewayIdleConnTimeout = 90 * time.Second

	// Persona defaults
	DefaultSystemPrompt = "Kamu adalah teman ngobrol yang santai dan suportif. " +
		"Jawab dengan bahasa percakapan sehari-hari, singkat dan hangat. " +
		"Jangan pakai format markdown, judul, atau daftar bernomor. " +
		"Boleh pakai emoji seperlunya."
	DefaultFallbackReply = "Maaf, aku belum bisa jawab yang itu. Bisa dijelaskan lagi maksudnya?"

	// Session defaults
	DefaultMaxHistory        = 20
	DefaultMaxStoredMessages = 200
	DefaultSweepSchedule     = "*/5 * * * *"

	// Telemetry defaults
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "relay"
	DefaultTracingSampler     = "ratio"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingServiceName = "relay"
	DefaultTracingTimeout     = 10 * time.Second
	DefaultLivenessPath       = "/live"
	DefaultReadinessPath      = "/ready"
	DefaultVersionPath        = "/version"
	DefaultCheckTimeout       = 2 * time.Second
)

// Default list values. Slices cannot be constants.
var (
	DefaultCORSAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	DefaultCORSAllowedMethods = []string{"GET", "POST"}
	DefaultCORSAllowedHeaders = []string{"Content-Type"}
	DefaultCORSExposedHeaders = []string{"X-Request-ID"}

	DefaultRequestDurationBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}
)

// ApplyDefaults fills zero-valued fields of cfg with their defaults.
// Fields that were set explicitly are left untouched.
func ApplyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyGatewayDefaults(&cfg.Gateway)

	if cfg.Persona.SystemPrompt == "" && cfg.Persona.SystemPromptFile == "" {
		cfg.Persona.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.Persona.FallbackReply == "" {
		cfg.Persona.FallbackReply = DefaultFallbackReply
	}

	if cfg.Session.MaxHistory == 0 {
		cfg.Session.MaxHistory = DefaultMaxHistory
	}
	if cfg.Session.MaxStoredMessages == 0 {
		cfg.Session.MaxStoredMessages = DefaultMaxStoredMessages
	}
	if cfg.Session.SweepSchedule == "" {
		cfg.Session.SweepSchedule = DefaultSweepSchedule
	}

	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyServerDefaults(s *ServerConfig) {
	if s.ListenAddress == "" {
		s.ListenAddress = DefaultListenAddress
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = DefaultReadTimeout
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = DefaultWriteTimeout
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = DefaultIdleTimeout
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = DefaultShutdownTimeout
	}
	if s.MaxHeaderBytes == 0 {
		s.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if s.StaticDir == "" {
		s.StaticDir = DefaultStaticDir
	}

	if len(s.CORS.AllowedOrigins) == 0 {
		s.CORS.AllowedOrigins = append([]string(nil), DefaultCORSAllowedOrigins...)
	}
	if len(s.CORS.AllowedMethods) == 0 {
		s.CORS.AllowedMethods = append([]string(nil), DefaultCORSAllowedMethods...)
	}
	if len(s.CORS.AllowedHeaders) == 0 {
		s.CORS.AllowedHeaders = append([]string(nil), DefaultCORSAllowedHeaders...)
	}
	if len(s.CORS.ExposedHeaders) == 0 {
		s.CORS.ExposedHeaders = append([]string(nil), DefaultCORSExposedHeaders...)
	}
	if s.CORS.MaxAge == 0 {
		s.CORS.MaxAge = DefaultCORSMaxAge
	}
}

func applyGatewayDefaults(g *GatewayConfig) {
	if g.BaseURL == "" {
		g.BaseURL = DefaultGatewayBaseURL
	}
	if g.Model == "" {
		g.Model = DefaultGatewayModel
	}
	if g.Timeout == 0 {
		g.Timeout = DefaultGatewayTimeout
	}
	if g.MaxIdleConns == 0 {
		g.MaxIdleConns = DefaultGatewayMaxIdleConns
	}
	if g.IdleConnTimeout == 0 {
		g.IdleConnTimeout = DefaultGatewayIdleConnTimeout
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Logging.Level == "" {
		t.Logging.Level = DefaultLogLevel
	}
	if t.Logging.Format == "" {
		t.Logging.Format = DefaultLogFormat
	}

	if t.Metrics.Path == "" {
		t.Metrics.Path = DefaultMetricsPath
	}
	if t.Metrics.Namespace == "" {
		t.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(t.Metrics.RequestDurationBuckets) == 0 {
		t.Metrics.RequestDurationBuckets = append([]float64(nil), DefaultRequestDurationBuckets...)
	}

	if t.Tracing.Sampler == "" {
		t.Tracing.Sampler = DefaultTracingSampler
	}
	if t.Tracing.SampleRatio == 0 {
		t.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if t.Tracing.Endpoint == "" {
		t.Tracing.Endpoint = DefaultTracingEndpoint
		t.Tracing.Insecure = true
	}
	if t.Tracing.ServiceName == "" {
		t.Tracing.ServiceName = DefaultTracingServiceName
	}
	if t.Tracing.Timeout == 0 {
		t.Tracing.Timeout = DefaultTracingTimeout
	}

	if t.Health.LivenessPath == "" {
		t.Health.LivenessPath = DefaultLivenessPath
	}
	if t.Health.ReadinessPath == "" {
		t.Health.ReadinessPath = DefaultReadinessPath
	}
	if t.Health.VersionPath == "" {
		t.Health.VersionPath = DefaultVersionPath
	}
	if t.Health.CheckTimeout == 0 {
		t.Health.CheckTimeout = DefaultCheckTimeout
	}
}
