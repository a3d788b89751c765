package types

// ChatResponse is the body of a successful chat turn.
type ChatResponse struct {
	Reply               string  `json:"reply"`
	RawReply            string  `json:"rawReply"`
	ModelUsed           string  `json:"modelUsed"`
	Usage               *Usage  `json:"usage"`
	SystemPromptApplied bool    `json:"systemPromptApplied"`
	MessagesUsed        *int    `json:"messagesUsed,omitempty"`
	ConversationID      *string `json:"conversationId"`
}

// ResetResponse is the body of a reset-only turn.
type ResetResponse struct {
	ConversationID string `json:"conversationId"`
	Reset          bool   `json:"reset"`
}

// Usage is the upstream token accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status          string `json:"status"`
	Model           string `json:"model"`
	BaseURL         string `json:"baseURL"`
	HasKey          bool   `json:"hasKey"`
	HasSystemPrompt bool   `json:"hasSystemPrompt"`
}
