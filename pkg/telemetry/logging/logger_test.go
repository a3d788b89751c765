package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"sapa-hq/relay/pkg/config"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "bad level", cfg: Config{Level: "chatty"}},
		{name: "bad format", cfg: Config{Format: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}

	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected warn to be written, got %q", buf.String())
	}
}

func TestNew_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithConversation(ctx, "conv-9")
	ctx = WithMode(ctx, "stateful")
	logger.InfoContext(ctx, "turn completed", "latency_ms", 12)

	entry := decodeLine(t, &buf)
	if entry["request_id"] != "req-1" {
		t.Errorf("expected request_id, got %v", entry["request_id"])
	}
	if entry["conversation_id"] != "conv-9" {
		t.Errorf("expected conversation_id, got %v", entry["conversation_id"])
	}
	if entry["mode"] != "stateful" {
		t.Errorf("expected mode, got %v", entry["mode"])
	}
	if entry["latency_ms"] != float64(12) {
		t.Errorf("expected latency_ms 12, got %v", entry["latency_ms"])
	}
}

func TestNew_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", RedactSecrets: true, Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.With("api_key", "hf_abcdefghijklmnop").Info(
		"upstream rejected Bearer hf_abcdefghijklmnop",
		"detail", "token=supersecret",
		slog.Group("gateway", slog.String("authorization", "Bearer sk-abcdefghijkl")),
	)

	out := buf.String()
	for _, secret := range []string{"hf_abcdefghijklmnop", "supersecret", "sk-abcdefghijkl"} {
		if strings.Contains(out, secret) {
			t.Errorf("secret %q leaked into log output: %s", secret, out)
		}
	}
	if !strings.Contains(out, "upstream rejected") {
		t.Errorf("expected message to survive redaction, got %s", out)
	}
}

func TestNew_NoRedactionWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("debug token", "value", "hf_abcdefghijklmnop")
	if !strings.Contains(buf.String(), "hf_abcdefghijklmnop") {
		t.Errorf("expected raw value with redaction disabled, got %s", buf.String())
	}
}

func TestRedactor_CustomPatterns(t *testing.T) {
	r := NewRedactor([]config.RedactPattern{
		{Name: "session_cookie", Pattern: `sess_[a-z0-9]+`, Replacement: "sess_***"},
		{Name: "broken", Pattern: "[unclosed", Replacement: "***"},
	})

	if len(r.patterns) != len(defaultPatterns)+1 {
		t.Errorf("expected invalid pattern to be skipped, got %d patterns", len(r.patterns))
	}
	if got := r.RedactString("cookie sess_abc123"); got != "cookie sess_***" {
		t.Errorf("unexpected redaction: %q", got)
	}
}

func TestRedactAPIKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"short", "***"},
		{"hf_abcdefgh", "hf_***"},
	}

	for _, tt := range tests {
		if got := RedactAPIKey(tt.in); got != tt.want {
			t.Errorf("RedactAPIKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromConfig(t *testing.T) {
	off := false
	cfg := FromConfig(config.LoggingConfig{Level: "debug", Format: "text", RedactSecrets: &off})
	if cfg.RedactSecrets {
		t.Error("expected redaction disabled")
	}
	if cfg.Level != "debug" || cfg.Format != "text" {
		t.Errorf("unexpected config: %+v", cfg)
	}

	if !FromConfig(config.LoggingConfig{}).RedactSecrets {
		t.Error("expected redaction enabled by default")
	}
}
