package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sapa-hq/relay/pkg/config"
	"sapa-hq/relay/pkg/telemetry/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect relay configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and print the resolved settings",
	Long: `Load the configuration file (if any), apply environment overrides and
defaults, validate the result and print a summary. The API key is masked.

Examples:
  relay config validate
  relay config validate --config relay.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	printConfigSummary(cmd.OutOrStdout(), cfg)

	for _, w := range newRelay(cfg).warnings() {
		fmt.Fprintf(cmd.OutOrStdout(), "! %s\n", w)
	}
	return nil
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	source := cfgFile
	if source == "" {
		source = "(environment only)"
	}

	ttl := "disabled"
	if cfg.Session.IdleTTL > 0 {
		ttl = fmt.Sprintf("%s (sweep %q)", cfg.Session.IdleTTL, cfg.Session.SweepSchedule)
	}

	fmt.Fprintf(w, "✓ Configuration valid: %s\n\n", source)
	fmt.Fprintf(w, "Server\n")
	fmt.Fprintf(w, "  listen:          %s\n", cfg.Server.ListenAddress)
	fmt.Fprintf(w, "  static dir:      %s\n", cfg.Server.StaticDir)
	fmt.Fprintf(w, "  cors origins:    %v\n", cfg.Server.CORS.AllowedOrigins)
	fmt.Fprintf(w, "Gateway\n")
	fmt.Fprintf(w, "  base url:        %s\n", cfg.Gateway.BaseURL)
	fmt.Fprintf(w, "  model:           %s\n", cfg.Gateway.Model)
	fmt.Fprintf(w, "  api key:         %s\n", maskedKey(cfg.Gateway.APIKey))
	fmt.Fprintf(w, "  timeout:         %s\n", cfg.Gateway.Timeout)
	fmt.Fprintf(w, "Persona\n")
	fmt.Fprintf(w, "  system prompt:   %d chars\n", len([]rune(cfg.Persona.SystemPrompt)))
	fmt.Fprintf(w, "  emoji:           %t\n", cfg.Persona.Emoji())
	fmt.Fprintf(w, "Session\n")
	fmt.Fprintf(w, "  max history:     %d\n", cfg.Session.MaxHistory)
	fmt.Fprintf(w, "  max stored:      %d\n", cfg.Session.MaxStoredMessages)
	fmt.Fprintf(w, "  idle ttl:        %s\n", ttl)
	fmt.Fprintf(w, "Telemetry\n")
	fmt.Fprintf(w, "  logging:         %s/%s\n", cfg.Telemetry.Logging.Level, cfg.Telemetry.Logging.Format)
	fmt.Fprintf(w, "  metrics:         %t (%s)\n", cfg.Telemetry.Metrics.IsEnabled(), cfg.Telemetry.Metrics.Path)
	fmt.Fprintf(w, "  tracing:         %t\n", cfg.Telemetry.Tracing.Enabled)
}

func maskedKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	return logging.RedactAPIKey(key)
}
