package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sapa-hq/relay/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Relay - persona chat relay for OpenAI-compatible models",
	Long: `Relay sits between a browser chat client and an OpenAI-compatible
chat-completion endpoint (Hugging Face router by default).

Every turn gets the configured persona instruction, conversations keyed by
an ID keep a short in-memory history, and replies are stripped of markdown
and excess emoji before they reach the client.

Configuration comes from an optional YAML file plus environment variables
(HF_TOKEN, HF_MODEL, HF_BASE_URL, PORT, RELAY_*).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the mapped status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (environment only when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
