package proxy

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sapa-hq/relay/pkg/gateway"
	"sapa-hq/relay/pkg/proxy/types"
)

func TestParseChatRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
		check   func(t *testing.T, req *types.ChatRequest)
	}{
		{
			name: "stateless message",
			body: `{"message":"halo"}`,
			check: func(t *testing.T, req *types.ChatRequest) {
				if req.Text() != "halo" {
					t.Errorf("Text() = %q, want halo", req.Text())
				}
			},
		},
		{
			name: "prompt alias",
			body: `{"prompt":"apa kabar"}`,
			check: func(t *testing.T, req *types.ChatRequest) {
				if req.Text() != "apa kabar" {
					t.Errorf("Text() = %q, want apa kabar", req.Text())
				}
			},
		},
		{
			name: "message wins over prompt",
			body: `{"message":"satu","prompt":"dua"}`,
			check: func(t *testing.T, req *types.ChatRequest) {
				if req.Text() != "satu" {
					t.Errorf("Text() = %q, want satu", req.Text())
				}
			},
		},
		{
			name: "conversation with options",
			body: `{"message":"hi","conversationId":"abc","reset":true,"options":{"temperature":0.2,"max_tokens":64}}`,
			check: func(t *testing.T, req *types.ChatRequest) {
				if req.ConversationID != "abc" || !req.Reset {
					t.Errorf("conversation = %q reset = %v", req.ConversationID, req.Reset)
				}
				if req.Options == nil || req.Options.Temperature == nil || *req.Options.Temperature != 0.2 {
					t.Fatalf("temperature not decoded: %+v", req.Options)
				}
				if req.Options.MaxTokens == nil || *req.Options.MaxTokens != 64 {
					t.Errorf("max_tokens not decoded: %+v", req.Options)
				}
				if req.Options.TopP != nil {
					t.Errorf("top_p = %v, want unset", *req.Options.TopP)
				}
			},
		},
		{
			name: "empty body",
			body: "",
			check: func(t *testing.T, req *types.ChatRequest) {
				if req.Text() != "" || req.ConversationID != "" || req.Messages != nil {
					t.Errorf("expected an empty request, got %+v", req)
				}
			},
		},
		{
			name:    "invalid JSON",
			body:    `{"message":`,
			wantErr: "invalid JSON",
		},
		{
			name:    "too large",
			body:    `{"message":"` + strings.Repeat("a", MaxRequestBodySize) + `"}`,
			wantErr: types.MessageBodyTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			req, err := ParseChatRequest(w, r)
			if tt.wantErr != "" {
				var reqErr *RequestError
				if !errors.As(err, &reqErr) {
					t.Fatalf("error = %v, want *RequestError", err)
				}
				if !strings.Contains(reqErr.Error(), tt.wantErr) {
					t.Errorf("error = %q, want it to contain %q", reqErr.Error(), tt.wantErr)
				}
				if reqErr.StatusCode() != http.StatusBadRequest {
					t.Errorf("StatusCode() = %d, want 400", reqErr.StatusCode())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, req)
		})
	}
}

func TestToConversationRequest(t *testing.T) {
	temp := 0.1
	req := &types.ChatRequest{
		Prompt:         "ping",
		ConversationID: "c1",
		Messages: []types.Message{
			{Role: "user", Content: "a"},
			{Role: "assistant", Content: "b"},
		},
		Options: &types.RequestOptions{Temperature: &temp},
	}

	out := ToConversationRequest(req)

	if out.Message != "ping" {
		t.Errorf("Message = %q, want ping", out.Message)
	}
	if out.ConversationID != "c1" {
		t.Errorf("ConversationID = %q", out.ConversationID)
	}
	if len(out.Messages) != 2 || out.Messages[1].Role != gateway.RoleAssistant || out.Messages[1].Content != "b" {
		t.Errorf("Messages = %+v", out.Messages)
	}
	if out.Options.Temperature == nil || *out.Options.Temperature != 0.1 {
		t.Errorf("Temperature = %v", out.Options.Temperature)
	}
	if out.Options.MaxTokens != nil || out.Options.TopP != nil {
		t.Error("unset options should stay nil")
	}
}
