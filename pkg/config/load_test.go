package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relay.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: "0.0.0.0:9000"
  read_timeout: "15s"

gateway:
  base_url: "https://api.example.com/v1"
  api_key: "file-key"
  model: "acme/chat-small"
  timeout: "20s"

persona:
  system_prompt: "be brief"
  emoji_enabled: false

session:
  max_history: 10
  max_stored_messages: 50

telemetry:
  logging:
    level: "debug"
    format: "text"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9000" {
		t.Errorf("expected listen address %q, got %q", "0.0.0.0:9000", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("expected read timeout %v, got %v", 15*time.Second, cfg.Server.ReadTimeout)
	}
	if cfg.Gateway.Model != "acme/chat-small" {
		t.Errorf("expected model %q, got %q", "acme/chat-small", cfg.Gateway.Model)
	}
	if cfg.Gateway.Timeout != 20*time.Second {
		t.Errorf("expected gateway timeout %v, got %v", 20*time.Second, cfg.Gateway.Timeout)
	}
	if cfg.Persona.Emoji() {
		t.Error("expected emoji to be disabled")
	}
	if cfg.Session.MaxHistory != 10 || cfg.Session.MaxStoredMessages != 50 {
		t.Errorf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("expected listen address %q, got %q", DefaultListenAddress, cfg.Server.ListenAddress)
	}
	if cfg.Gateway.BaseURL != DefaultGatewayBaseURL {
		t.Errorf("expected base URL %q, got %q", DefaultGatewayBaseURL, cfg.Gateway.BaseURL)
	}
	if cfg.Gateway.Model != DefaultGatewayModel {
		t.Errorf("expected model %q, got %q", DefaultGatewayModel, cfg.Gateway.Model)
	}
	if cfg.Session.MaxHistory != DefaultMaxHistory {
		t.Errorf("expected max history %d, got %d", DefaultMaxHistory, cfg.Session.MaxHistory)
	}
	if cfg.Session.IdleTTL != 0 {
		t.Errorf("expected idle eviction disabled, got %v", cfg.Session.IdleTTL)
	}
	if !cfg.Persona.Emoji() {
		t.Error("expected emoji enabled by default")
	}
	if !cfg.Server.CORS.IsEnabled() {
		t.Error("expected CORS enabled by default")
	}
	if len(cfg.Server.CORS.AllowedOrigins) != 2 {
		t.Errorf("expected 2 default origins, got %v", cfg.Server.CORS.AllowedOrigins)
	}
	if cfg.Persona.SystemPrompt == "" {
		t.Error("expected default persona prompt")
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/relay.yaml")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected file not found error, got: %v", err)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: ":8000"
  invalid yaml here: [
`)

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
gateway:
  base_url: "ftp://example.com"

telemetry:
  logging:
    level: "loud"
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError in error chain, got %T: %v", err, err)
	}
	if len(validationErr.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(validationErr.Errors), validationErr)
	}
}

func TestLoadConfig_PersonaFile(t *testing.T) {
	dir := t.TempDir()
	promptPath := filepath.Join(dir, "persona.txt")
	if err := os.WriteFile(promptPath, []byte("  kamu pelatih gym.\n"), 0644); err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, "persona:\n  system_prompt_file: \""+promptPath+"\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Persona.SystemPrompt != "kamu pelatih gym." {
		t.Errorf("expected prompt from file, got %q", cfg.Persona.SystemPrompt)
	}

	missing := writeConfig(t, "persona:\n  system_prompt_file: \"/nonexistent/persona.txt\"\n")
	if _, err := LoadConfig(missing); err == nil {
		t.Error("expected error for missing persona file")
	}
}

func TestLoadConfigWithEnvOverrides_ShortNames(t *testing.T) {
	t.Setenv("HUGGINGFACE_API_KEY", "")
	t.Setenv("HF_TOKEN", "hf_token_value")
	t.Setenv("OPENAI_API_KEY", "sk-ignored")
	t.Setenv("HF_MODEL", "meta/llama-tiny")
	t.Setenv("HF_BASE_URL", "http://127.0.0.1:9999/v1")
	t.Setenv("PORT", "8123")
	t.Setenv("FRONTEND_ORIGIN", "https://chat.example.com")
	t.Setenv("SYSTEM_PROMPT", "jawab singkat")
	t.Setenv("ENABLE_EMOJI", "false")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Gateway.APIKey != "hf_token_value" {
		t.Errorf("expected HF_TOKEN to win over OPENAI_API_KEY, got %q", cfg.Gateway.APIKey)
	}
	if cfg.Gateway.Model != "meta/llama-tiny" {
		t.Errorf("expected model from env, got %q", cfg.Gateway.Model)
	}
	if cfg.Gateway.BaseURL != "http://127.0.0.1:9999/v1" {
		t.Errorf("expected base URL from env, got %q", cfg.Gateway.BaseURL)
	}
	if cfg.Server.ListenAddress != ":8123" {
		t.Errorf("expected listen address %q, got %q", ":8123", cfg.Server.ListenAddress)
	}
	origins := strings.Join(cfg.Server.CORS.AllowedOrigins, ",")
	if !strings.Contains(origins, "https://chat.example.com") || !strings.Contains(origins, "http://localhost:3000") {
		t.Errorf("expected frontend origin appended to defaults, got %v", cfg.Server.CORS.AllowedOrigins)
	}
	if cfg.Persona.SystemPrompt != "jawab singkat" {
		t.Errorf("expected prompt from env, got %q", cfg.Persona.SystemPrompt)
	}
	if cfg.Persona.Emoji() {
		t.Error("expected emoji disabled from env")
	}
}

func TestLoadConfigWithEnvOverrides_RelayPrefixWins(t *testing.T) {
	path := writeConfig(t, `
gateway:
  model: "file/model"
`)
	t.Setenv("HF_MODEL", "short/model")
	t.Setenv("RELAY_GATEWAY_MODEL", "relay/model")
	t.Setenv("RELAY_GATEWAY_TIMEOUT", "5s")
	t.Setenv("RELAY_SESSION_IDLE_TTL", "1h")
	t.Setenv("RELAY_TELEMETRY_LOGGING_LEVEL", "warn")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Gateway.Model != "relay/model" {
		t.Errorf("expected RELAY_GATEWAY_MODEL to win, got %q", cfg.Gateway.Model)
	}
	if cfg.Gateway.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Gateway.Timeout)
	}
	if cfg.Session.IdleTTL != time.Hour {
		t.Errorf("expected idle TTL 1h, got %v", cfg.Session.IdleTTL)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected logging level warn, got %q", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidAfterOverride(t *testing.T) {
	t.Setenv("RELAY_TELEMETRY_LOGGING_LEVEL", "verbose")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Fatal("expected validation error after override")
	}
	if !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("unexpected error: %v", err)
	}
}
