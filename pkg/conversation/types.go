package conversation

import (
	"sapa-hq/relay/pkg/config"
	"sapa-hq/relay/pkg/gateway"
)

// Mode is how a request supplies conversational context.
type Mode string

// Modes, in the order they are considered.
const (
	ModeExplicit  Mode = "explicit"
	ModeReset     Mode = "reset"
	ModeStateful  Mode = "stateful"
	ModeStateless Mode = "stateless"
)

// Sampling defaults applied when a request does not override them.
const (
	DefaultTemperature      = 0.7
	DefaultTopP             = 0.95
	DefaultMaxTokens        = 256
	DefaultHistoryMaxTokens = 512
)

// Request is a single chat turn.
type Request struct {
	// Message is the new user turn.
	Message string

	// ConversationID selects a stored session.
	ConversationID string

	// Messages is a caller-supplied history. When non-empty it wins over
	// everything else and Message is ignored.
	Messages []gateway.Message

	// Reset deletes the session named by ConversationID first.
	Reset bool

	// Options override the sampling defaults individually.
	Options Options
}

// Options are per-request overrides. Nil fields keep the default.
type Options struct {
	Temperature *float64
	MaxTokens   *int
	TopP        *float64
}

// Result is the outcome of a turn.
type Result struct {
	// Mode is the mode the request was handled in.
	Mode Mode

	// Reply is the normalized, user-facing text.
	Reply string

	// RawReply is the model output before normalization.
	RawReply string

	// ModelUsed is the model that produced the reply.
	ModelUsed string

	// Usage is nil when the upstream did not report it.
	Usage *gateway.Usage

	// SystemPromptApplied reports whether a persona message was sent.
	SystemPromptApplied bool

	// MessagesUsed is the number of history messages sent upstream. It is
	// nil in stateless mode.
	MessagesUsed *int

	// ConversationID echoes the request's identifier.
	ConversationID string

	// Reset is true for a reset-only turn.
	Reset bool
}

// Config is the persona and history policy of an Orchestrator.
type Config struct {
	// SystemPrompt is prepended to every call. Empty disables it.
	SystemPrompt string

	// FallbackReply is returned when the model produced nothing.
	FallbackReply string

	// MaxHistory bounds the history sent upstream.
	MaxHistory int
}

// ConfigFrom extracts the orchestrator settings from the relay config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		SystemPrompt:  cfg.Persona.SystemPrompt,
		FallbackReply: cfg.Persona.FallbackReply,
		MaxHistory:    cfg.Session.MaxHistory,
	}
}

func (o Options) resolve(defaultMaxTokens int) gateway.Options {
	opts := gateway.Options{
		Temperature: DefaultTemperature,
		MaxTokens:   defaultMaxTokens,
		TopP:        DefaultTopP,
	}
	if o.Temperature != nil {
		opts.Temperature = *o.Temperature
	}
	if o.MaxTokens != nil {
		opts.MaxTokens = *o.MaxTokens
	}
	if o.TopP != nil {
		opts.TopP = *o.TopP
	}
	return opts
}
