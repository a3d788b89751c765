package openai

import (
	"encoding/json"
	"net/http"
	"strings"

	"sapa-hq/relay/pkg/gateway"
)

// chatRequest is the body of POST {base}/chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	TopP        float64       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse keeps only the fields the relay reads.
type chatResponse struct {
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string  `json:"role"`
		Content *string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// transformRequest converts relay messages to the chat-completions format.
func transformRequest(model string, messages []gateway.Message, opts gateway.Options) *chatRequest {
	req := &chatRequest{
		Model:       model,
		Messages:    make([]chatMessage, len(messages)),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		TopP:        opts.TopP,
	}
	for i, msg := range messages {
		req.Messages[i] = chatMessage{Role: string(msg.Role), Content: msg.Content}
	}
	return req
}

// transformResponse extracts the first choice. Missing choices or a null
// content produce an empty completion, not an error.
func transformResponse(model string, resp *chatResponse) *gateway.Completion {
	out := &gateway.Completion{Model: model}

	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != nil {
		out.Content = strings.TrimSpace(*resp.Choices[0].Message.Content)
	}

	if resp.Usage != nil {
		out.Usage = &gateway.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return out
}

// classifyStatus maps a non-2xx upstream answer to a gateway error.
func classifyStatus(status int, body []byte, model string) error {
	detail := extractErrorMessage(body)

	switch status {
	case http.StatusForbidden:
		return &gateway.PermissionError{Detail: detail}
	case http.StatusNotFound:
		return &gateway.NotFoundError{Model: model, Detail: detail}
	}

	if detail == "" {
		detail = http.StatusText(status)
	}
	if detail == "" {
		detail = "unexpected upstream status"
	}
	return &gateway.GatewayError{Status: status, Message: detail}
}

// extractErrorMessage understands the error shapes seen in the wild:
// {"error":{"message":".."}}, {"error":".."} and {"message":".."}.
func extractErrorMessage(body []byte) string {
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	if len(envelope.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
		var flat string
		if err := json.Unmarshal(envelope.Error, &flat); err == nil && flat != "" {
			return flat
		}
	}

	return envelope.Message
}
