// Package errors defines the error model of the portal's user flows.
//
// The remote backend reports failures as free-text messages. Everything
// the rest of the codebase needs to branch on is expressed here as an
// enumerated Kind, and the message-text heuristics inherited from the
// backend contract live in exactly one place (Classify functions) so a
// wording change breaks one package, not every view.
package errors

import (
	"strings"

	"portal/internal/errors"
)

// Kind classifies a flow error for follow-up decisions (what to render,
// where to navigate next).
type Kind int

const (
	// KindValidation is a local input error; the request never reached the network.
	KindValidation Kind = iota
	// KindTransport is a connectivity or malformed-response failure.
	KindTransport
	// KindBackend is a business failure reported by the backend (success:false).
	KindBackend
	// KindTokenInvalid marks a fatal reset-token failure; the held reset
	// token must be discarded and the user sent back to forgot-password.
	KindTokenInvalid
	// KindAlreadyVerified marks the benign "email already verified" outcome.
	KindAlreadyVerified
)

// GenericMessage is shown whenever no human-readable message is available.
const GenericMessage = "An error occurred. Please try again."

// FlowError is an error with a user-facing message and an enumerated kind.
type FlowError struct {
	kind    Kind
	message string
}

// NewFlow creates a FlowError of the given kind.
func NewFlow(kind Kind, message string) *FlowError {
	return &FlowError{kind: kind, message: message}
}

// NewValidation creates a local validation error.
func NewValidation(message string) *FlowError {
	return &FlowError{kind: KindValidation, message: message}
}

func (e *FlowError) Error() string { return e.message }

// Kind returns the enumerated classification of the error.
func (e *FlowError) Kind() Kind { return e.kind }

// APIError is a business failure reported by the backend. Its message is
// surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	message    string
}

// NewAPIError creates a backend-reported error. An empty message falls
// back to the provided default.
func NewAPIError(statusCode int, message, fallback string) *APIError {
	if strings.TrimSpace(message) == "" {
		message = fallback
	}

	return &APIError{StatusCode: statusCode, message: message}
}

func (e *APIError) Error() string { return e.message }

// Message returns the user-facing message.
func (e *APIError) Message() string { return e.message }

// ErrBackendUnreachable is returned when the backend cannot be reached or
// responds with an unreadable body.
var ErrBackendUnreachable = NewFlow(KindTransport, GenericMessage)

// MessageFor extracts the user-facing message from an error. Backend and
// flow errors carry their own text; anything else maps to the fallback.
func MessageFor(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}

	var flowErr *FlowError
	if errors.As(err, &flowErr) {
		return flowErr.Error()
	}

	if fallback != "" {
		return fallback
	}

	return GenericMessage
}

// KindOf returns the kind of an error, defaulting to KindBackend for
// API errors and KindTransport for anything unclassified.
func KindOf(err error) Kind {
	var flowErr *FlowError
	if errors.As(err, &flowErr) {
		return flowErr.Kind()
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return KindBackend
	}

	return KindTransport
}

// ClassifyReset decides whether a reset-password failure is fatal to the
// held reset token. The backend signals invalid or expired tokens only
// through message wording, so this is a substring heuristic by contract.
func ClassifyReset(err error) Kind {
	kind := KindOf(err)
	if kind == KindValidation {
		return kind
	}

	msg := strings.ToLower(MessageFor(err, ""))
	if strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "expired") ||
		strings.Contains(msg, "token") {
		return KindTokenInvalid
	}

	return kind
}

// ClassifyVerification detects the "already verified" outcome of the
// email-verification endpoint from the response message.
func ClassifyVerification(message string) Kind {
	if strings.Contains(strings.ToLower(message), "already verified") {
		return KindAlreadyVerified
	}

	return KindBackend
}
