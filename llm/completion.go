package llm

// ResponseFormat requests a specific output format from the model.
type ResponseFormat string

const (
	// FormatText requests free-form text output (the provider default).
	FormatText ResponseFormat = "text"

	// FormatJSONObject requests a single well-formed JSON object.
	// Every pipeline stage uses this format so responses can be decoded
	// into typed stage shapes.
	FormatJSONObject ResponseFormat = "json_object"
)

// CompletionRequest represents a request for LLM completion.
type CompletionRequest struct {
	// Model identifies the model to use (e.g., "gpt-4o-mini").
	Model string

	// Messages contains the conversation history.
	Messages []Message

	// Temperature controls randomness in the output (0.0 to 2.0).
	// Lower values make output more focused and deterministic.
	Temperature *float64

	// MaxTokens limits the maximum number of tokens to generate.
	MaxTokens *int

	// ResponseFormat requests a specific output format from the model.
	// Empty means the provider default (free-form text).
	ResponseFormat ResponseFormat
}

// CompletionResponse represents a response from an LLM completion.
type CompletionResponse struct {
	// Content is the generated text content.
	Content string

	// FinishReason indicates why the generation stopped.
	// Common values: "stop", "length", "content_filter"
	FinishReason string

	// Usage contains token usage statistics.
	Usage TokenUsage
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	// InputTokens is the number of tokens in the input/prompt.
	InputTokens int

	// OutputTokens is the number of tokens generated in the response.
	OutputTokens int

	// TotalTokens is the sum of input and output tokens.
	TotalTokens int
}

// CompletionOption is a functional option for configuring CompletionRequest.
type CompletionOption func(*CompletionRequest)

// WithModel sets the model for the completion request.
func WithModel(model string) CompletionOption {
	return func(r *CompletionRequest) {
		r.Model = model
	}
}

// WithTemperature sets the temperature for the completion request.
// Temperature controls randomness (0.0 to 2.0).
func WithTemperature(t float64) CompletionOption {
	return func(r *CompletionRequest) {
		r.Temperature = &t
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) CompletionOption {
	return func(r *CompletionRequest) {
		r.MaxTokens = &n
	}
}

// WithJSONResponse requests a single well-formed JSON object as output.
func WithJSONResponse() CompletionOption {
	return func(r *CompletionRequest) {
		r.ResponseFormat = FormatJSONObject
	}
}

// ApplyOptions applies a set of options to the completion request.
func (r *CompletionRequest) ApplyOptions(opts ...CompletionOption) {
	for _, opt := range opts {
		opt(r)
	}
}

// NewCompletionRequest creates a new CompletionRequest with the given messages and options.
func NewCompletionRequest(messages []Message, opts ...CompletionOption) *CompletionRequest {
	req := &CompletionRequest{
		Messages: messages,
	}
	req.ApplyOptions(opts...)
	return req
}

// HasContent returns true if the response contains text content.
func (r *CompletionResponse) HasContent() bool {
	return r.Content != ""
}

// IsComplete returns true if generation finished normally (not truncated).
func (r *CompletionResponse) IsComplete() bool {
	return r.FinishReason == "stop"
}

// Add combines two TokenUsage instances.
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
	}
}
