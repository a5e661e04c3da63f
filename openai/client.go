// Package openai implements the llm.Client interface against the OpenAI
// chat completions API (or any API-compatible endpoint).
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	sdk "github.com/redline-ai/sdk"
	"github.com/redline-ai/sdk/llm"
)

// DefaultBaseURL is the OpenAI API endpoint used when none is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// Options configures the OpenAI client.
type Options struct {
	// APIKey is the bearer token for the API. Required.
	APIKey string

	// BaseURL is the API base URL (e.g., "https://api.openai.com/v1").
	// Defaults to DefaultBaseURL. Any chat-completions-compatible endpoint works.
	BaseURL string

	// HTTPClient is the underlying HTTP client. Defaults to http.DefaultClient.
	// No explicit request timeout is imposed here; callers control deadlines
	// through the request context.
	HTTPClient *http.Client

	// Logger receives request-level debug logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client calls the OpenAI chat completions API. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new OpenAI client with the given options.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
}

// Configured reports whether the client has an API key set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Wire types for the chat completions endpoint.

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      *int            `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete implements llm.Client by calling POST /chat/completions.
//
// Failures (transport errors, non-2xx responses, unparseable bodies, empty
// choice lists) are returned as ReviewError values wrapping
// sdk.ErrInferenceFailed so the pipeline can classify them uniformly.
func (c *Client) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	const op = "Client.Complete"

	body := chatRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]chatMessage, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, chatMessage{
			Role:    m.Role.String(),
			Content: m.Content,
		})
	}
	if req.ResponseFormat != "" && req.ResponseFormat != llm.FormatText {
		body.ResponseFormat = &responseFormat{Type: string(req.ResponseFormat)}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, sdk.NewInternalError(op, fmt.Errorf("encode request: %w", err))
	}

	url := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, sdk.NewInternalError(op, fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("sending completion request",
		"model", req.Model,
		"messages", len(req.Messages))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, sdk.NewInferenceError(op, fmt.Errorf("%w: %v", sdk.ErrInferenceFailed, err))
	}
	defer sdk.CloseWithLog(resp.Body, c.logger, "response body")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, sdk.NewInferenceError(op, fmt.Errorf("%w: read response: %v", sdk.ErrInferenceFailed, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, sdk.NewInferenceError(op,
			fmt.Errorf("%w: unexpected status %d", sdk.ErrInferenceFailed, resp.StatusCode)).
			WithContext(map[string]any{"status": resp.StatusCode})
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, sdk.NewInferenceError(op, fmt.Errorf("%w: decode response: %v", sdk.ErrMalformedResponse, err))
	}

	if len(chatResp.Choices) == 0 {
		return nil, sdk.NewInferenceError(op, fmt.Errorf("%w: response contained no choices", sdk.ErrMalformedResponse))
	}

	choice := chatResp.Choices[0]
	return &llm.CompletionResponse{
		Content:      choice.Message.Content,
		FinishReason: choice.FinishReason,
		Usage: llm.TokenUsage{
			InputTokens:  chatResp.Usage.PromptTokens,
			OutputTokens: chatResp.Usage.CompletionTokens,
			TotalTokens:  chatResp.Usage.TotalTokens,
		},
	}, nil
}
