// Package openai implements gateway.Gateway for OpenAI-compatible
// chat-completion endpoints (the Hugging Face router, OpenAI, vLLM and
// similar). It owns the wire schema; callers only see gateway types.
package openai
