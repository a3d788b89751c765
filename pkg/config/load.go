package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// credentialEnvVars are checked in order; the first non-empty value wins.
var credentialEnvVars = []string{"HUGGINGFACE_API_KEY", "HF_TOKEN", "OPENAI_API_KEY"}

// LoadConfig loads configuration from a YAML file at the specified path.
// An empty path skips the file and starts from defaults, which is how the
// relay runs when configured purely through the environment.
// It applies default values, resolves the persona prompt file, validates the
// configuration, and returns any errors. Environment variables are not
// consulted; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)

	if err := resolvePersona(&cfg.Persona); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Relay variables follow the naming
// convention RELAY_SECTION_FIELD (e.g., RELAY_GATEWAY_MODEL). The short
// names used by existing deployments are honored as well:
//
//	HUGGINGFACE_API_KEY, HF_TOKEN, OPENAI_API_KEY  gateway.api_key
//	HF_MODEL                                       gateway.model
//	HF_BASE_URL                                    gateway.base_url
//	PORT                                           server.listen_address (":PORT")
//	FRONTEND_ORIGIN                                appended to server.cors.allowed_origins
//	SYSTEM_PROMPT                                  persona.system_prompt
//	ENABLE_EMOJI                                   persona.emoji_enabled
//
// RELAY_* variables take precedence over the short names. Environment
// variables always take precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := resolvePersona(&cfg.Persona); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// resolvePersona reads the persona prompt file when one is configured.
func resolvePersona(p *PersonaConfig) error {
	if p.SystemPromptFile == "" {
		return nil
	}
	data, err := os.ReadFile(p.SystemPromptFile)
	if err != nil {
		return fmt.Errorf("failed to read persona prompt file %q: %w", p.SystemPromptFile, err)
	}
	p.SystemPrompt = strings.TrimSpace(string(data))
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Short names first so RELAY_* can override them.
	for _, name := range credentialEnvVars {
		if val := os.Getenv(name); val != "" {
			cfg.Gateway.APIKey = val
			break
		}
	}
	if val := os.Getenv("HF_MODEL"); val != "" {
		cfg.Gateway.Model = val
	}
	if val := os.Getenv("HF_BASE_URL"); val != "" {
		cfg.Gateway.BaseURL = val
	}
	if val := os.Getenv("PORT"); val != "" {
		cfg.Server.ListenAddress = ":" + val
	}
	if val := os.Getenv("FRONTEND_ORIGIN"); val != "" {
		cfg.Server.CORS.AllowedOrigins = appendUnique(cfg.Server.CORS.AllowedOrigins, val)
	}
	if val := os.Getenv("SYSTEM_PROMPT"); val != "" {
		cfg.Persona.SystemPrompt = val
		cfg.Persona.SystemPromptFile = ""
	}
	if val := os.Getenv("ENABLE_EMOJI"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Persona.EmojiEnabled = &b
		}
	}

	// Server overrides
	if val := os.Getenv("RELAY_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("RELAY_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("RELAY_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("RELAY_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}
	if val := os.Getenv("RELAY_SERVER_STATIC_DIR"); val != "" {
		cfg.Server.StaticDir = val
	}
	if val := os.Getenv("RELAY_SERVER_CORS_ALLOWED_ORIGINS"); val != "" {
		cfg.Server.CORS.AllowedOrigins = splitList(val)
	}
	if val := os.Getenv("RELAY_SERVER_CORS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Server.CORS.Enabled = &b
		}
	}

	// Gateway overrides
	if val := os.Getenv("RELAY_GATEWAY_BASE_URL"); val != "" {
		cfg.Gateway.BaseURL = val
	}
	if val := os.Getenv("RELAY_GATEWAY_API_KEY"); val != "" {
		cfg.Gateway.APIKey = val
	}
	if val := os.Getenv("RELAY_GATEWAY_MODEL"); val != "" {
		cfg.Gateway.Model = val
	}
	if val := os.Getenv("RELAY_GATEWAY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Gateway.Timeout = d
		}
	}

	// Persona overrides
	if val := os.Getenv("RELAY_PERSONA_SYSTEM_PROMPT"); val != "" {
		cfg.Persona.SystemPrompt = val
		cfg.Persona.SystemPromptFile = ""
	}
	if val := os.Getenv("RELAY_PERSONA_SYSTEM_PROMPT_FILE"); val != "" {
		cfg.Persona.SystemPromptFile = val
	}
	if val := os.Getenv("RELAY_PERSONA_EMOJI_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Persona.EmojiEnabled = &b
		}
	}
	if val := os.Getenv("RELAY_PERSONA_FALLBACK_REPLY"); val != "" {
		cfg.Persona.FallbackReply = val
	}

	// Session overrides
	if val := os.Getenv("RELAY_SESSION_MAX_HISTORY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Session.MaxHistory = i
		}
	}
	if val := os.Getenv("RELAY_SESSION_MAX_STORED_MESSAGES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Session.MaxStoredMessages = i
		}
	}
	if val := os.Getenv("RELAY_SESSION_IDLE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Session.IdleTTL = d
		}
	}
	if val := os.Getenv("RELAY_SESSION_SWEEP_SCHEDULE"); val != "" {
		cfg.Session.SweepSchedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("RELAY_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("RELAY_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("RELAY_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = &b
		}
	}
	if val := os.Getenv("RELAY_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("RELAY_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("RELAY_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func appendUnique(list []string, val string) []string {
	for _, existing := range list {
		if existing == val {
			return list
		}
	}
	return append(list, val)
}
