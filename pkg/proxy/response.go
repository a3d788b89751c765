package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"

	"sapa-hq/relay/pkg/conversation"
	"sapa-hq/relay/pkg/proxy/types"
)

// FormatChatResponse converts an orchestrator result to its JSON body.
func FormatChatResponse(res *conversation.Result) any {
	if res.Reset {
		return &types.ResetResponse{ConversationID: res.ConversationID, Reset: true}
	}

	out := &types.ChatResponse{
		Reply:               res.Reply,
		RawReply:            res.RawReply,
		ModelUsed:           res.ModelUsed,
		SystemPromptApplied: res.SystemPromptApplied,
		MessagesUsed:        res.MessagesUsed,
	}
	if res.Usage != nil {
		out.Usage = &types.Usage{
			PromptTokens:     res.Usage.PromptTokens,
			CompletionTokens: res.Usage.CompletionTokens,
			TotalTokens:      res.Usage.TotalTokens,
		}
	}
	if res.ConversationID != "" {
		id := res.ConversationID
		out.ConversationID = &id
	}
	return out
}

// WriteJSONResponse writes data as JSON with the given status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}
	return nil
}

// WriteErrorResponse writes {"error": message}.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSONResponse(w, statusCode, &types.ErrorResponse{Error: message})
}
