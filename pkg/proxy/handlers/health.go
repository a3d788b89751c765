package handlers

import (
	"net/http"

	"sapa-hq/relay/pkg/config"
	"sapa-hq/relay/pkg/proxy"
	"sapa-hq/relay/pkg/proxy/types"
)

// HealthHandler serves GET /health. It reports the resolved configuration
// and never calls upstream.
type HealthHandler struct {
	body types.HealthResponse
}

// NewHealthHandler builds the health body once from cfg.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		body: types.HealthResponse{
			Status:          "ok",
			Model:           cfg.Gateway.Model,
			BaseURL:         cfg.Gateway.BaseURL,
			HasKey:          cfg.Gateway.APIKey != "",
			HasSystemPrompt: cfg.Persona.SystemPrompt != "",
		},
	}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		_ = proxy.WriteErrorResponse(w, http.StatusMethodNotAllowed, types.MessageMethodNotAllowed)
		return
	}
	_ = proxy.WriteJSONResponse(w, http.StatusOK, h.body)
}
