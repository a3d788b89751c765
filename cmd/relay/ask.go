package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sapa-hq/relay/pkg/cli"
	"sapa-hq/relay/pkg/conversation"
	"sapa-hq/relay/pkg/gateway"
)

var askFlags struct {
	conversationID string
	newID          bool
	output         string
	temperature    float64
	maxTokens      int
	raw            bool
}

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one chat turn and print the reply",
	Long: `Send one chat turn through the same pipeline the server uses and
print the reply.

Without --conversation the turn is stateless. With --conversation (or --new,
which generates an ID) the turn is stateful; history lives only for this
process, so the ID is mainly useful to correlate logs and traces.

Examples:
  relay ask "halo, lagi apa?"
  relay ask --new --output json "ceritain dong soal kopi"
  relay ask --max-tokens 64 --temperature 0.2 "singkat aja ya"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVarP(&askFlags.conversationID, "conversation", "i", "", "conversation ID (stateful turn)")
	askCmd.Flags().BoolVar(&askFlags.newID, "new", false, "generate a new conversation ID")
	askCmd.Flags().StringVarP(&askFlags.output, "output", "o", "text", "output format: text, json")
	askCmd.Flags().Float64Var(&askFlags.temperature, "temperature", conversation.DefaultTemperature, "sampling temperature")
	askCmd.Flags().IntVar(&askFlags.maxTokens, "max-tokens", 0, "completion token limit (mode default when 0)")
	askCmd.Flags().BoolVar(&askFlags.raw, "raw", false, "also print the unnormalized reply (text output)")
}

// askResult is what ask prints.
type askResult struct {
	Reply          string         `json:"reply"`
	RawReply       string         `json:"rawReply"`
	ModelUsed      string         `json:"modelUsed"`
	ConversationID string         `json:"conversationId,omitempty"`
	Usage          *gateway.Usage `json:"usage"`

	showRaw bool
}

func (r askResult) String() string {
	var sb strings.Builder
	sb.WriteString(r.Reply)
	if r.showRaw && r.RawReply != r.Reply {
		sb.WriteString("\n\n--- raw ---\n")
		sb.WriteString(r.RawReply)
	}
	if r.ConversationID != "" {
		fmt.Fprintf(&sb, "\n\n[conversation %s]", r.ConversationID)
	}
	return sb.String()
}

func runAsk(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(askFlags.output)
	if err != nil {
		return cli.NewCommandError("ask", err)
	}

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	// Keep stdout for the reply.
	if err := setupLogging(cfg, os.Stderr); err != nil {
		return err
	}

	r := newRelay(cfg)
	defer r.Close()

	req := conversation.Request{
		Message:        strings.Join(args, " "),
		ConversationID: askFlags.conversationID,
	}
	if askFlags.newID && req.ConversationID == "" {
		req.ConversationID = uuid.NewString()
	}
	if cmd.Flags().Changed("temperature") {
		temp := askFlags.temperature
		req.Options.Temperature = &temp
	}
	if askFlags.maxTokens > 0 {
		maxTokens := askFlags.maxTokens
		req.Options.MaxTokens = &maxTokens
	}

	ctx, cancel := cli.SetupSignalHandler(context.Background())
	defer cancel()

	res, err := r.orchestrator.Handle(ctx, req)
	if err != nil {
		return cli.NewCommandError("ask", err)
	}

	out := askResult{
		Reply:          res.Reply,
		RawReply:       res.RawReply,
		ModelUsed:      res.ModelUsed,
		ConversationID: res.ConversationID,
		Usage:          res.Usage,
		showRaw:        askFlags.raw,
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), out)
}
