package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sapa-hq/relay/pkg/config"
	"sapa-hq/relay/pkg/proxy/types"
)

func TestHealthHandler(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Gateway.APIKey = "hf_secret"

	h := NewHealthHandler(cfg)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body types.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := types.HealthResponse{
		Status:          "ok",
		Model:           config.DefaultGatewayModel,
		BaseURL:         config.DefaultGatewayBaseURL,
		HasKey:          true,
		HasSystemPrompt: true,
	}
	if body != want {
		t.Errorf("body = %+v, want %+v", body, want)
	}
}

func TestHealthHandler_DoesNotLeakKey(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Gateway.APIKey = "hf_secret"

	w := httptest.NewRecorder()
	NewHealthHandler(cfg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if got := w.Body.String(); strings.Contains(got, "hf_secret") {
		t.Errorf("health body leaks the key: %s", got)
	}
}

func TestHealthHandler_RejectsPost(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	w := httptest.NewRecorder()
	NewHealthHandler(cfg).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
