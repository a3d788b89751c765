package proxy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"sapa-hq/relay/pkg/conversation"
	"sapa-hq/relay/pkg/gateway"
	"sapa-hq/relay/pkg/proxy/types"
)

const (
	// MaxRequestBodySize is the maximum accepted request body (1 MiB).
	MaxRequestBodySize = 1 << 20

	// RequestIDHeader is the HTTP header for request ID propagation.
	RequestIDHeader = "X-Request-ID"
)

// RequestError is a body that could not be decoded.
type RequestError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap returns the decoding error.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// StatusCode returns 400.
func (e *RequestError) StatusCode() int {
	return http.StatusBadRequest
}

// ParseChatRequest decodes a chat request body. An empty body decodes to an
// empty request and is left for the orchestrator to reject.
func ParseChatRequest(w http.ResponseWriter, r *http.Request) (*types.ChatRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &RequestError{Message: types.MessageBodyTooLarge, Cause: err}
		}
		return nil, &RequestError{Message: "failed to read request body", Cause: err}
	}

	var req types.ChatRequest
	if len(bytes.TrimSpace(body)) == 0 {
		return &req, nil
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &RequestError{Message: fmt.Sprintf("invalid JSON: %v", err), Cause: err}
	}

	return &req, nil
}

// ToConversationRequest converts the wire request to an orchestrator request.
func ToConversationRequest(req *types.ChatRequest) conversation.Request {
	out := conversation.Request{
		Message:        req.Text(),
		ConversationID: req.ConversationID,
		Reset:          req.Reset,
	}

	if len(req.Messages) > 0 {
		out.Messages = make([]gateway.Message, len(req.Messages))
		for i, m := range req.Messages {
			out.Messages[i] = gateway.Message{Role: gateway.Role(m.Role), Content: m.Content}
		}
	}

	if req.Options != nil {
		out.Options = conversation.Options{
			Temperature: req.Options.Temperature,
			MaxTokens:   req.Options.MaxTokens,
			TopP:        req.Options.TopP,
		}
	}

	return out
}
