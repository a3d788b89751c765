package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"sapa-hq/relay/pkg/conversation"
	"sapa-hq/relay/pkg/proxy"
	"sapa-hq/relay/pkg/proxy/types"
)

// Orchestrator runs a chat turn. *conversation.Orchestrator satisfies it.
type Orchestrator interface {
	Handle(ctx context.Context, req conversation.Request) (*conversation.Result, error)
}

// ChatHandler serves POST /chat.
type ChatHandler struct {
	orchestrator Orchestrator
	logger       *slog.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(o Orchestrator) *ChatHandler {
	return &ChatHandler{
		orchestrator: o,
		logger:       slog.Default().With("component", "handlers.chat"),
	}
}

// ServeHTTP implements http.Handler.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		_ = proxy.WriteErrorResponse(w, http.StatusMethodNotAllowed, types.MessageMethodNotAllowed)
		return
	}

	req, err := proxy.ParseChatRequest(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.orchestrator.Handle(r.Context(), proxy.ToConversationRequest(req))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := proxy.WriteJSONResponse(w, http.StatusOK, proxy.FormatChatResponse(result)); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write chat response", "error", err)
	}
}

func (h *ChatHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message, expected := proxy.HandleError(err)
	if !expected {
		h.logger.ErrorContext(r.Context(), "chat failed", "error", err, "status", status)
	}
	_ = proxy.WriteErrorResponse(w, status, message)
}
