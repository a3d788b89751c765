package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sapa-hq/relay/pkg/config"
	"sapa-hq/relay/pkg/conversation"
	"sapa-hq/relay/pkg/telemetry/health"
)

type stubOrchestrator struct{}

func (stubOrchestrator) Handle(_ context.Context, req conversation.Request) (*conversation.Result, error) {
	if req.Message == "panic" {
		panic("boom")
	}
	return &conversation.Result{Mode: conversation.ModeStateless, Reply: "ok", RawReply: "ok", ModelUsed: "m"}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Server.ListenAddress = "127.0.0.1:0"
	cfg.Server.StaticDir = filepath.Join(t.TempDir(), "missing")
	cfg.Server.ShutdownTimeout = 2 * time.Second
	return cfg
}

func TestHandler_Routes(t *testing.T) {
	cfg := testConfig(t)
	checker := health.New(time.Second)
	checker.RegisterCheck("gateway", func(ctx context.Context) error { return nil })

	srv := NewServer(cfg, Options{
		Orchestrator: stubOrchestrator{},
		Health:       checker,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "relay_chat_requests_total 0\n")
		}),
		Build: BuildInfo{Version: "1.2.3"},
	})
	h := srv.Handler()

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{http.MethodPost, "/chat", `{"message":"hi"}`, http.StatusOK, `"reply":"ok"`},
		{http.MethodGet, "/chat", "", http.StatusMethodNotAllowed, `"error"`},
		{http.MethodGet, "/health", "", http.StatusOK, `"hasKey":false`},
		{http.MethodGet, "/live", "", http.StatusOK, ""},
		{http.MethodGet, "/ready", "", http.StatusOK, "gateway"},
		{http.MethodGet, "/version", "", http.StatusOK, "1.2.3"},
		{http.MethodGet, "/metrics", "", http.StatusOK, "relay_chat_requests_total"},
		{http.MethodGet, "/nope", "", http.StatusNotFound, `"error":"not found"`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", w.Body.String(), tt.wantBody)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("X-Request-ID header missing")
			}
		})
	}
}

func TestHandler_MetricsDisabled(t *testing.T) {
	srv := NewServer(testConfig(t), Options{Orchestrator: stubOrchestrator{}})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 without a metrics handler", w.Code)
	}
}

func TestHandler_RecoversFromPanic(t *testing.T) {
	srv := NewServer(testConfig(t), Options{Orchestrator: stubOrchestrator{}})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"panic"}`)))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "chat failed" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestHandler_Preflight(t *testing.T) {
	srv := NewServer(testConfig(t), Options{Orchestrator: stubOrchestrator{}})

	r := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	r.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestHandler_StaticDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.StaticDir = t.TempDir()
	if err := os.WriteFile(filepath.Join(cfg.Server.StaticDir, "index.html"), []byte("<h1>relay</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := NewServer(cfg, Options{Orchestrator: stubOrchestrator{}})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<h1>relay</h1>") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv := NewServer(testConfig(t), Options{Orchestrator: stubOrchestrator{}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for !srv.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("server did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
	if srv.IsRunning() {
		t.Error("server still running after shutdown")
	}
}

func TestServer_Stop(t *testing.T) {
	srv := NewServer(testConfig(t), Options{Orchestrator: stubOrchestrator{}})

	done := make(chan error, 1)
	go func() { done <- srv.Start(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for !srv.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("server did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}

	srv.Stop()
	srv.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestServer_StartTwice(t *testing.T) {
	cfg := testConfig(t)
	srv := NewServer(cfg, Options{Orchestrator: stubOrchestrator{}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for !srv.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("server did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := srv.Start(ctx); err == nil {
		t.Error("second Start should fail")
	}
}

func TestServer_ListenError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.ListenAddress = "256.0.0.1:bad"

	err := NewServer(cfg, Options{Orchestrator: stubOrchestrator{}}).Start(context.Background())
	if err == nil {
		t.Fatal("expected listen error")
	}
}
