package gateway

import "context"

// Role identifies the author of a message.
type Role string

// Message roles understood by chat-completion endpoints.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is a single entry in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Options are the sampling parameters sent with a completion call.
type Options struct {
	// Temperature controls randomness (0.0 to 2.0).
	Temperature float64

	// MaxTokens limits the length of the reply.
	MaxTokens int

	// TopP is the nucleus sampling threshold.
	TopP float64
}

// Usage is the token accounting reported by the upstream endpoint.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is the result of a successful upstream call.
type Completion struct {
	// Content is the first choice's message text with surrounding
	// whitespace trimmed. It may be empty.
	Content string

	// Model is the model that was requested.
	Model string

	// Usage is nil when the endpoint did not report it.
	Usage *Usage
}

// Gateway sends a message list to a remote completion endpoint.
type Gateway interface {
	Complete(ctx context.Context, messages []Message, opts Options) (*Completion, error)
}
