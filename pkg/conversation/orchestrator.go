package conversation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sapa-hq/relay/pkg/gateway"
	"sapa-hq/relay/pkg/normalize"
	"sapa-hq/relay/pkg/session"
	"sapa-hq/relay/pkg/telemetry/logging"
	"sapa-hq/relay/pkg/telemetry/tracing"
)

// Fallback reasons reported to the Recorder.
const (
	FallbackEmptyRaw        = "empty_raw"
	FallbackEmptyNormalized = "empty_normalized"
)

// Recorder receives per-turn measurements. *metrics.Collector satisfies it.
type Recorder interface {
	RecordChat(mode, status string, duration time.Duration)
	RecordFallback(reason string)
	RecordReset()
	SetActiveSessions(n int)
}

type noopRecorder struct{}

func (noopRecorder) RecordChat(string, string, time.Duration) {}
func (noopRecorder) RecordFallback(string)                    {}
func (noopRecorder) RecordReset()                             {}
func (noopRecorder) SetActiveSessions(int)                    {}

// Orchestrator wires the session store, the gateway and the normalizer.
type Orchestrator struct {
	gateway    gateway.Gateway
	store      *session.Store
	normalizer *normalize.Normalizer
	config     Config
	recorder   Recorder
	logger     *slog.Logger
}

// NewOrchestrator constructs an Orchestrator. recorder may be nil.
func NewOrchestrator(gw gateway.Gateway, store *session.Store, normalizer *normalize.Normalizer, cfg Config, recorder Recorder) *Orchestrator {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = session.DefaultMaxHistory
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Orchestrator{
		gateway:    gw,
		store:      store,
		normalizer: normalizer,
		config:     cfg,
		recorder:   recorder,
		logger:     slog.Default().With("component", "conversation"),
	}
}

// Handle runs one chat turn.
func (o *Orchestrator) Handle(ctx context.Context, req Request) (result *Result, err error) {
	start := time.Now()
	mode := resolveMode(req)

	ctx = logging.WithMode(ctx, string(mode))
	if req.ConversationID != "" {
		ctx = logging.WithConversation(ctx, req.ConversationID)
	}

	ctx, span := tracing.StartSpan(ctx, "conversation.turn",
		attribute.String(tracing.AttrMode, string(mode)),
		attribute.String(tracing.AttrConversationID, req.ConversationID),
	)
	defer func() {
		o.recorder.RecordChat(string(mode), status(err), time.Since(start))
		tracing.End(span, err)
		if err != nil {
			o.logger.WarnContext(ctx, "chat turn failed", "error", err)
		}
	}()

	if req.Reset && req.ConversationID != "" {
		if o.store.Delete(req.ConversationID) {
			o.recorder.RecordReset()
			o.logger.InfoContext(ctx, "conversation reset")
		}
		o.recorder.SetActiveSessions(o.store.Len())
	}

	switch mode {
	case ModeReset:
		return &Result{Mode: ModeReset, ConversationID: req.ConversationID, Reset: true}, nil
	case ModeExplicit:
		return o.handleExplicit(ctx, req)
	case ModeStateful:
		return o.handleStateful(ctx, req)
	default:
		return o.handleStateless(ctx, req)
	}
}

func resolveMode(req Request) Mode {
	switch {
	case len(req.Messages) > 0:
		return ModeExplicit
	case req.Reset && req.ConversationID != "" && strings.TrimSpace(req.Message) == "":
		return ModeReset
	case req.ConversationID != "":
		return ModeStateful
	default:
		return ModeStateless
	}
}

func (o *Orchestrator) handleExplicit(ctx context.Context, req Request) (*Result, error) {
	history := session.TrimHistory(req.Messages, o.config.MaxHistory)

	res, err := o.complete(ctx, history, req.Options.resolve(DefaultHistoryMaxTokens))
	if err != nil {
		return nil, err
	}

	used := len(history)
	res.Mode = ModeExplicit
	res.MessagesUsed = &used
	res.ConversationID = req.ConversationID
	return res, nil
}

func (o *Orchestrator) handleStateful(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, &ValidationError{Message: MessageRequiredStateful}
	}

	sess := o.store.GetOrCreate(req.ConversationID)
	release, err := sess.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	userMsg := gateway.Message{Role: gateway.RoleUser, Content: req.Message}
	history := session.TrimHistory(append(sess.History(), userMsg), o.config.MaxHistory)

	res, err := o.complete(ctx, history, req.Options.resolve(DefaultHistoryMaxTokens))
	if err != nil {
		return nil, err
	}

	sess.Append(userMsg, gateway.Message{Role: gateway.RoleAssistant, Content: res.Reply})
	o.recorder.SetActiveSessions(o.store.Len())

	used := len(history)
	res.Mode = ModeStateful
	res.MessagesUsed = &used
	res.ConversationID = req.ConversationID
	return res, nil
}

func (o *Orchestrator) handleStateless(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, &ValidationError{Message: MessageRequiredStateless}
	}

	history := []gateway.Message{{Role: gateway.RoleUser, Content: req.Message}}

	res, err := o.complete(ctx, history, req.Options.resolve(DefaultMaxTokens))
	if err != nil {
		return nil, err
	}
	res.Mode = ModeStateless
	return res, nil
}

// complete prepends the persona, calls the gateway and cleans the reply.
func (o *Orchestrator) complete(ctx context.Context, history []gateway.Message, opts gateway.Options) (*Result, error) {
	messages := make([]gateway.Message, 0, len(history)+1)
	applied := o.config.SystemPrompt != ""
	if applied {
		messages = append(messages, gateway.Message{Role: gateway.RoleSystem, Content: o.config.SystemPrompt})
	}
	messages = append(messages, history...)

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Int(tracing.AttrMessages, len(history)))

	completion, err := o.gateway.Complete(ctx, messages, opts)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String(tracing.AttrModel, completion.Model))

	reply := o.postProcess(ctx, completion.Content)

	o.logger.InfoContext(ctx, "chat turn completed",
		"model", completion.Model,
		"messages", len(history),
		"raw_chars", len(completion.Content),
		"reply_chars", len(reply),
	)

	return &Result{
		Reply:               reply,
		RawReply:            completion.Content,
		ModelUsed:           completion.Model,
		Usage:               completion.Usage,
		SystemPromptApplied: applied,
	}, nil
}

func (o *Orchestrator) postProcess(ctx context.Context, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		o.recorder.RecordFallback(FallbackEmptyRaw)
		o.logger.WarnContext(ctx, "model returned an empty reply, using fallback")
		return o.config.FallbackReply
	}

	reply := o.normalizer.Normalize(raw)
	if reply == "" {
		o.recorder.RecordFallback(FallbackEmptyNormalized)
		o.logger.DebugContext(ctx, "normalization emptied the reply, using raw text")
		return raw
	}
	return reply
}

// status labels err for the chat metrics.
func status(err error) string {
	var valErr *ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &valErr):
		return "invalid"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return gateway.Outcome(err)
	}
}
