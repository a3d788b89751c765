package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"sapa-hq/relay/pkg/cli"
	"sapa-hq/relay/pkg/config"
	"sapa-hq/relay/pkg/conversation"
	"sapa-hq/relay/pkg/gateway/openai"
	"sapa-hq/relay/pkg/normalize"
	"sapa-hq/relay/pkg/session"
	"sapa-hq/relay/pkg/telemetry/logging"
	"sapa-hq/relay/pkg/telemetry/metrics"
)

// relay holds the components shared by run and ask.
type relay struct {
	config       *config.Config
	collector    *metrics.Collector
	store        *session.Store
	gateway      *openai.Client
	orchestrator *conversation.Orchestrator
}

// loadConfig reads path (may be empty) with environment overrides.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, cli.NewConfigError(path, err)
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// setupLogging installs the configured logger as the slog default.
func setupLogging(cfg *config.Config, w io.Writer) error {
	lc := logging.FromConfig(cfg.Telemetry.Logging)
	lc.Writer = w

	logger, err := logging.New(lc)
	if err != nil {
		return cli.NewConfigError("", err)
	}
	slog.SetDefault(logger)
	return nil
}

func newRelay(cfg *config.Config) *relay {
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	store := session.NewStore(session.WithMaxStored(cfg.Session.MaxStoredMessages))
	client := openai.New(cfg.Gateway, collector)

	orch := conversation.NewOrchestrator(
		client,
		store,
		normalize.New(cfg.Persona.Emoji()),
		conversation.ConfigFrom(cfg),
		collector,
	)

	return &relay{
		config:       cfg,
		collector:    collector,
		store:        store,
		gateway:      client,
		orchestrator: orch,
	}
}

// warnings lists configuration that works but is probably unintended.
func (r *relay) warnings() []string {
	var out []string
	if r.config.Gateway.APIKey == "" {
		out = append(out, "no API key configured (HUGGINGFACE_API_KEY, HF_TOKEN or OPENAI_API_KEY); upstream calls will likely be rejected")
	}
	if r.config.Server.WriteTimeout > 0 && r.config.Server.WriteTimeout <= r.config.Gateway.Timeout {
		out = append(out, fmt.Sprintf("server.write_timeout (%s) does not exceed gateway.timeout (%s); slow replies will be cut off",
			r.config.Server.WriteTimeout, r.config.Gateway.Timeout))
	}
	return out
}

// sessionsReady is the readiness check for the session store.
func (r *relay) sessionsReady(context.Context) error {
	r.collector.SetActiveSessions(r.store.Len())
	return nil
}

func (r *relay) Close() error {
	return r.gateway.Close()
}
