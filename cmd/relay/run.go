package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sapa-hq/relay/pkg/cli"
	"sapa-hq/relay/pkg/config"
	"sapa-hq/relay/pkg/server"
	"sapa-hq/relay/pkg/session"
	"sapa-hq/relay/pkg/telemetry/health"
	"sapa-hq/relay/pkg/telemetry/logging"
	"sapa-hq/relay/pkg/telemetry/tracing"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the relay server",
	Long: `Start the relay HTTP server.

The server answers POST /chat, GET /health and the probe endpoints, serves
the static demo page when server.static_dir exists and shuts down gracefully
on SIGINT or SIGTERM.

Examples:
  # Environment only
  HF_TOKEN=hf_xxx relay run

  # With a config file
  relay run --config relay.yaml

  # Override the listen address
  relay run --listen 127.0.0.1:9000

  # Validate config and exit
  relay run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	cfg := config.MustGetConfig()

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	if err := setupLogging(cfg, os.Stdout); err != nil {
		return err
	}

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	ctx, cancel := cli.SetupSignalHandler(context.Background())
	defer cancel()

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Telemetry.Tracing.Timeout)
		defer shutdownCancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	r := newRelay(cfg)
	defer r.Close()

	for _, w := range r.warnings() {
		slog.Warn(w)
	}

	slog.Info("relay configured",
		"model", cfg.Gateway.Model,
		"base_url", cfg.Gateway.BaseURL,
		"api_key", logging.RedactAPIKey(cfg.Gateway.APIKey),
		"system_prompt", cfg.Persona.SystemPrompt != "",
		"emoji", cfg.Persona.Emoji(),
		"max_history", cfg.Session.MaxHistory,
		"tracing", tracer.Enabled(),
	)

	sweeper := session.NewSweeper(r.store, cfg.Session.IdleTTL, cfg.Session.SweepSchedule, r.collector)
	if err := sweeper.Start(ctx); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	defer sweeper.Stop()

	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
	checker.RegisterCheck("gateway", r.gateway.Ready)
	checker.RegisterCheck("sessions", r.sessionsReady)

	opts := server.Options{
		Orchestrator: r.orchestrator,
		Health:       checker,
		Build:        server.BuildInfo{Version: Version, Commit: GitCommit, BuildTime: BuildDate},
	}
	if cfg.Telemetry.Metrics.IsEnabled() {
		opts.Metrics = r.collector.Handler()
	}

	srv := server.NewServer(cfg, opts)
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}
