package types

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	// Message is the new user turn.
	Message string `json:"message"`

	// Prompt is accepted as an alias for Message.
	Prompt string `json:"prompt"`

	// ConversationID selects stateful mode.
	ConversationID string `json:"conversationId"`

	// Messages selects explicit-history mode.
	Messages []Message `json:"messages"`

	// Reset clears the session named by ConversationID.
	Reset bool `json:"reset"`

	// Options are per-request sampling overrides.
	Options *RequestOptions `json:"options,omitempty"`
}

// Text returns Message, or Prompt when Message is empty.
func (r *ChatRequest) Text() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Prompt
}

// Message is one caller-supplied history entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RequestOptions override the sampling defaults individually.
type RequestOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}
