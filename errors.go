package sdk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common SDK error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrNoContractText indicates the review was invoked with empty or
	// whitespace-only contract text. No inference call is attempted.
	ErrNoContractText = errors.New("no contract text provided for review")

	// ErrInferenceFailed indicates a call to the inference service failed
	// (network failure, non-2xx response, or an unusable response body).
	ErrInferenceFailed = errors.New("inference call failed")

	// ErrMalformedResponse indicates the inference service returned content
	// that could not be parsed as the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed inference response")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrReportNotFound indicates the requested review report was not found
	// in the report store.
	ErrReportNotFound = errors.New("report not found")
)

// Error kinds categorize errors by their type.
const (
	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindInference represents errors from the external inference service.
	KindInference = "inference"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindStorage represents errors from the report store.
	KindStorage = "storage"

	// KindNotFound represents errors where a resource was not found.
	KindNotFound = "not_found"

	// KindInternal represents internal SDK errors.
	KindInternal = "internal"
)

// ReviewError is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// ReviewError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &ReviewError{
//		Op:   "Reviewer.RunReview",
//		Kind: KindInference,
//		Err:  ErrInferenceFailed,
//	}
type ReviewError struct {
	// Op is the operation that failed (e.g., "Reviewer.RunReview", "Client.Complete").
	Op string

	// Kind categorizes the error (e.g., KindValidation, KindInference).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include stage names, response sizes, or other debugging information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *ReviewError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sdk: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("sdk: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("sdk: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *ReviewError) Unwrap() error {
	return e.Err
}

// Is implements error matching for ReviewError, allowing comparison based on
// the underlying error or the ReviewError itself.
func (e *ReviewError) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is a ReviewError with matching Kind
	if t, ok := target.(*ReviewError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new ReviewError with the provided context added.
// This is useful for adding debugging information to errors.
//
// Example:
//
//	err := &ReviewError{
//		Op:   "Reviewer.RunReview",
//		Kind: KindInference,
//		Err:  ErrInferenceFailed,
//	}
//	err = err.WithContext(map[string]any{
//		"stage": "risk_analysis",
//	})
func (e *ReviewError) WithContext(ctx map[string]any) *ReviewError {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewValidationError creates a new ReviewError with KindValidation.
func NewValidationError(op string, err error) *ReviewError {
	return &ReviewError{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewInferenceError creates a new ReviewError with KindInference.
func NewInferenceError(op string, err error) *ReviewError {
	return &ReviewError{
		Op:   op,
		Kind: KindInference,
		Err:  err,
	}
}

// NewConfigurationError creates a new ReviewError with KindConfiguration.
func NewConfigurationError(op string, err error) *ReviewError {
	return &ReviewError{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewStorageError creates a new ReviewError with KindStorage.
func NewStorageError(op string, err error) *ReviewError {
	return &ReviewError{
		Op:   op,
		Kind: KindStorage,
		Err:  err,
	}
}

// NewNotFoundError creates a new ReviewError with KindNotFound.
func NewNotFoundError(op string, err error) *ReviewError {
	return &ReviewError{
		Op:   op,
		Kind: KindNotFound,
		Err:  err,
	}
}

// NewInternalError creates a new ReviewError with KindInternal.
func NewInternalError(op string, err error) *ReviewError {
	return &ReviewError{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g.,
// "response body", "redis connection"). If logger is nil, slog.Default()
// is used.
//
// Example usage:
//
//	defer sdk.CloseWithLog(resp.Body, logger, "response body")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
