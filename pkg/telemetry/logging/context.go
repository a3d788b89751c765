package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// ConversationKey is the context key for conversation identifiers.
	ConversationKey contextKey = "conversation_id"

	// ModeKey is the context key for the conversation mode of a turn.
	ModeKey contextKey = "mode"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithConversation adds a conversation identifier to the context.
func WithConversation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ConversationKey, id)
}

// GetConversation retrieves the conversation identifier from the context.
func GetConversation(ctx context.Context) string {
	if id, ok := ctx.Value(ConversationKey).(string); ok {
		return id
	}
	return ""
}

// WithMode adds the conversation mode to the context.
func WithMode(ctx context.Context, mode string) context.Context {
	return context.WithValue(ctx, ModeKey, mode)
}

// GetMode retrieves the conversation mode from the context.
func GetMode(ctx context.Context) string {
	if mode, ok := ctx.Value(ModeKey).(string); ok {
		return mode
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
func extractContextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}

	var fields []any
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, string(RequestIDKey), requestID)
	}
	if id := GetConversation(ctx); id != "" {
		fields = append(fields, string(ConversationKey), id)
	}
	if mode := GetMode(ctx); mode != "" {
		fields = append(fields, string(ModeKey), mode)
	}
	return fields
}
