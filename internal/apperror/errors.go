// Package apperror defines the error kinds surfaced by the recipe proxy.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so handlers can map it to a response.
type Kind string

const (
	// KindValidation indicates malformed caller input.
	KindValidation Kind = "validation_error"
	// KindNotFound indicates a route or resource that does not exist.
	KindNotFound Kind = "not_found"
	// KindFilterExtraction indicates model output that could not be turned into search filters.
	KindFilterExtraction Kind = "filter_extraction_error"
	// KindUpstream indicates a failed or malformed response from the recipe provider.
	KindUpstream Kind = "upstream_error"
	// KindGeneration indicates model output that could not be turned into a recipe.
	KindGeneration Kind = "generation_error"
	// KindConfiguration indicates a missing or invalid setting. Fatal at startup.
	KindConfiguration Kind = "configuration_error"
	// KindInternal indicates an unexpected failure inside the service.
	KindInternal Kind = "internal_error"
)

// Error carries a kind, a human-readable message and diagnostic context.
//
// Status is the HTTP status the error should be reported with. Raw holds
// unparsed text (model output or provider body) kept for diagnostics.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Raw     string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status to report, falling back to the kind default.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return defaultStatus(e.Kind)
}

func defaultStatus(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindFilterExtraction, KindGeneration, KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Validation returns a validation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Validationf returns a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// NotFound returns a not found error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// FilterExtraction returns a filter extraction error carrying the raw model output.
func FilterExtraction(message, raw string, cause error) *Error {
	return &Error{Kind: KindFilterExtraction, Message: message, Raw: raw, Cause: cause}
}

// Generation returns a recipe generation error carrying the raw model output.
func Generation(message, raw string, cause error) *Error {
	return &Error{Kind: KindGeneration, Message: message, Raw: raw, Cause: cause}
}

// Upstream returns an error for a provider response with the given status and body.
func Upstream(status int, body string) *Error {
	return &Error{
		Kind:    KindUpstream,
		Message: fmt.Sprintf("recipe provider returned status %d", status),
		Status:  status,
		Raw:     body,
		Context: map[string]any{"upstream_status": status},
	}
}

// BadGateway returns an upstream error for a response that could not be used.
func BadGateway(message, body string, cause error) *Error {
	return &Error{
		Kind:    KindUpstream,
		Message: message,
		Status:  http.StatusBadGateway,
		Raw:     body,
		Cause:   cause,
	}
}

// Configuration returns a configuration error for the named setting.
func Configuration(field, message string) *Error {
	return &Error{
		Kind:    KindConfiguration,
		Message: fmt.Sprintf("%s: %s", field, message),
		Context: map[string]any{"field": field},
	}
}

// Internal wraps an unexpected failure.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// As extracts an *Error from err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}
