package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"sapa-hq/relay/pkg/config"
	"sapa-hq/relay/pkg/gateway"
	"sapa-hq/relay/pkg/telemetry/tracing"
)

// maxResponseBytes bounds how much of an upstream body is read.
const maxResponseBytes = 4 << 20

// Recorder receives per-call measurements. *metrics.Collector satisfies it.
type Recorder interface {
	RecordGatewayCall(outcome string, latency time.Duration)
	RecordTokens(prompt, completion int)
}

type noopRecorder struct{}

func (noopRecorder) RecordGatewayCall(string, time.Duration) {}
func (noopRecorder) RecordTokens(int, int)                   {}

// Client talks to an OpenAI-compatible chat-completions endpoint such as the
// Hugging Face router. It is safe for concurrent use.
type Client struct {
	config   config.GatewayConfig
	endpoint string
	client   *http.Client
	recorder Recorder
	logger   *slog.Logger
}

// New creates a client with a pooled transport. The configured timeout is
// applied to the whole call, body included. A nil recorder is allowed.
func New(cfg config.GatewayConfig, recorder Recorder) *Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConns,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Client{
		config:   cfg,
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		recorder: recorder,
		logger:   slog.Default().With("component", "gateway"),
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.config.Model
}

// Ready reports whether the client can issue calls at all. It never touches
// the network.
func (c *Client) Ready(ctx context.Context) error {
	return c.checkConfig()
}

func (c *Client) checkConfig() error {
	if c.config.Model == "" {
		return &gateway.ConfigurationError{Field: "model"}
	}
	if c.config.BaseURL == "" {
		return &gateway.ConfigurationError{Field: "base_url"}
	}
	return nil
}

// Complete sends one chat-completion request. It never retries.
func (c *Client) Complete(ctx context.Context, messages []gateway.Message, opts gateway.Options) (completion *gateway.Completion, err error) {
	ctx, span := tracing.StartSpan(ctx, "gateway.complete",
		attribute.String(tracing.AttrModel, c.config.Model),
		attribute.Int(tracing.AttrMessages, len(messages)),
	)
	start := time.Now()
	defer func() {
		c.recorder.RecordGatewayCall(gateway.Outcome(err), time.Since(start))
		tracing.End(span, err)
	}()

	if err := c.checkConfig(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(transformRequest(c.config.Model, messages, opts))
	if err != nil {
		return nil, &gateway.GatewayError{Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &gateway.GatewayError{Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}
	tracing.Inject(ctx, req.Header)

	c.logger.DebugContext(ctx, "sending completion request",
		"url", c.endpoint,
		"model", c.config.Model,
		"messages", len(messages),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &gateway.GatewayError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int(tracing.AttrStatusCode, resp.StatusCode))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &gateway.GatewayError{Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		classified := classifyStatus(resp.StatusCode, data, c.config.Model)
		c.logger.WarnContext(ctx, "upstream returned error status",
			"status", resp.StatusCode,
			"model", c.config.Model,
			"error", classified,
		)
		return nil, classified
	}

	var decoded chatResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, &gateway.GatewayError{Message: "failed to decode response", Cause: err}
	}

	completion = transformResponse(c.config.Model, &decoded)
	if completion.Usage != nil {
		c.recorder.RecordTokens(completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
		tracing.SetTokenAttributes(span, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}
	span.SetAttributes(attribute.Bool(tracing.AttrReplyEmpty, completion.Content == ""))

	c.logger.DebugContext(ctx, "completion received",
		"model", c.config.Model,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return completion, nil
}

// Close releases idle upstream connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
