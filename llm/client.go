package llm

import "context"

// Client is the narrow interface the review pipeline uses to call a
// hosted inference service. One call corresponds to one pipeline stage.
//
// Implementations must be safe for concurrent use: independent reviews
// may share a single client. A failed call returns a non-nil error; the
// pipeline decides whether that failure is fatal (clause detection) or
// recoverable (all later stages).
//
// Implementations should honor context cancellation but are not required
// to impose their own timeout; any deadline comes from the caller's
// context or the transport defaults.
type Client interface {
	// Complete sends a completion request and returns the model's response.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// ClientFunc adapts a plain function to the Client interface.
// This is primarily useful for stubbing clients in tests.
type ClientFunc func(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

// Complete implements Client by calling the wrapped function.
func (f ClientFunc) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	return f(ctx, req)
}
