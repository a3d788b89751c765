package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used on relay spans. Conversation content is never
// recorded; only sizes and identifiers.
const (
	AttrModel          = "relay.model"
	AttrMode           = "relay.mode"
	AttrConversationID = "relay.conversation_id"
	AttrMessages       = "relay.messages"
	AttrStatusCode     = "relay.upstream.status_code"
	AttrReplyEmpty     = "relay.reply.empty"

	AttrTokensPrompt     = "relay.tokens.prompt"
	AttrTokensCompletion = "relay.tokens.completion"

	AttrErrorType = "relay.error.type"
)

// SetTokenAttributes sets token count attributes on a span.
func SetTokenAttributes(span trace.Span, promptTokens, completionTokens int) {
	span.SetAttributes(
		attribute.Int(AttrTokensPrompt, promptTokens),
		attribute.Int(AttrTokensCompletion, completionTokens),
	)
}
