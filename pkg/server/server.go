package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"

	"sapa-hq/relay/pkg/config"
	"sapa-hq/relay/pkg/proxy"
	"sapa-hq/relay/pkg/proxy/handlers"
	"sapa-hq/relay/pkg/proxy/middleware"
	"sapa-hq/relay/pkg/telemetry/health"
	"sapa-hq/relay/pkg/telemetry/tracing"
)

// BuildInfo is reported by the version endpoint.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Options carries the components the server routes to. Only Orchestrator
// is required.
type Options struct {
	// Orchestrator runs chat turns.
	Orchestrator handlers.Orchestrator

	// Health backs the liveness and readiness probes. A checker without
	// registered checks is used when nil.
	Health *health.Checker

	// Metrics serves the Prometheus endpoint. Not mounted when nil.
	Metrics http.Handler

	// Build is reported by the version endpoint.
	Build BuildInfo
}

// Server is the relay's HTTP server.
type Server struct {
	config       *config.Config
	opts         Options
	httpServer   *http.Server
	listener     net.Listener
	shutdownChan chan struct{}
	stopOnce     sync.Once
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server. Nothing listens until Start is called.
func NewServer(cfg *config.Config, opts Options) *Server {
	if opts.Health == nil {
		opts.Health = health.New(cfg.Telemetry.Health.CheckTimeout)
	}
	return &Server{
		config:       cfg,
		opts:         opts,
		shutdownChan: make(chan struct{}),
	}
}

// Start listens on the configured address and blocks until ctx is done,
// Stop is called or the listener fails. It shuts the server down gracefully
// before returning.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	ln, err := net.Listen("tcp", s.config.Server.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.ListenAddress, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:        s.Handler(),
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("relay listening", "address", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	}
}

// Stop asks a running Start to shut down and return.
func (s *Server) Stop() {
	s.stopOnce.Do(func() { close(s.shutdownChan) })
}

// Shutdown stops accepting connections and waits for in-flight requests,
// up to the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		running := s.isRunning
		s.mu.RUnlock()
		if !running {
			return
		}

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("relay stopped")
	})

	return shutdownErr
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning reports whether the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(s.routes(),
		middleware.Recovery,
		middleware.RequestID,
		tracing.HTTPMiddleware,
		middleware.Logging,
		middleware.CORS(s.config.Server.CORS),
	)
}

func (s *Server) routes() *http.ServeMux {
	hc := s.config.Telemetry.Health
	mux := http.NewServeMux()

	mux.Handle("/chat", handlers.NewChatHandler(s.opts.Orchestrator))
	mux.Handle("/health", handlers.NewHealthHandler(s.config))
	mux.Handle(hc.LivenessPath, s.opts.Health.LivenessHandler())
	mux.Handle(hc.ReadinessPath, s.opts.Health.ReadinessHandler())
	mux.Handle(hc.VersionPath, health.VersionHandler(s.opts.Build.Version, s.opts.Build.Commit, s.opts.Build.BuildTime))

	if s.opts.Metrics != nil {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.opts.Metrics)
	}

	if dir := s.config.Server.StaticDir; isDir(dir) {
		mux.Handle("/", http.FileServer(http.Dir(dir)))
	} else {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			_ = proxy.WriteErrorResponse(w, http.StatusNotFound, "not found")
		})
	}

	return mux
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
