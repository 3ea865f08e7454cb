package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrorType categorizes backend failures. The orchestrator treats every
// type the same way, a single fallback hop to the deterministic backend,
// but the type is logged and preserved for observability.
type ErrorType string

const (
	// ErrorTypeTimeout indicates the call exceeded its deadline.
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeNetwork indicates connectivity failure before a response.
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeAuth indicates a rejected or missing credential.
	ErrorTypeAuth ErrorType = "authentication"

	// ErrorTypeRateLimit indicates the backend throttled the request.
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeUnavailable indicates the backend service is down.
	ErrorTypeUnavailable ErrorType = "unavailable"

	// ErrorTypeInvalidResponse indicates an unusable response body.
	ErrorTypeInvalidResponse ErrorType = "invalid_response"
)

// Sentinel errors for backend operations.
var (
	// ErrUnknownBackend indicates an unregistered backend name.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrBackendUnavailable indicates connection, auth, or service failure.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrBackendTimeout indicates the generation call timed out.
	ErrBackendTimeout = errors.New("backend timeout")

	// ErrUnparsableAnswer indicates no structured answer could be
	// extracted from the model's raw output.
	ErrUnparsableAnswer = errors.New("unparsable model answer")

	// ErrEmptyCompletion indicates the backend returned no content.
	ErrEmptyCompletion = errors.New("empty completion")
)

// BackendError captures a structured failure from a model backend,
// including HTTP status and classified type for diagnosis.
type BackendError struct {
	Backend    string    `json:"backend"`
	StatusCode int       `json:"status_code,omitempty"`
	Message    string    `json:"message"`
	Type       ErrorType `json:"type"`
}

// Error returns the formatted backend error with status context.
func (e *BackendError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Backend, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Backend, e.Message)
}

// Unwrap maps the classified type onto the sentinel the orchestrator's
// fallback policy matches on.
func (e *BackendError) Unwrap() error {
	if e.Type == ErrorTypeTimeout {
		return ErrBackendTimeout
	}
	return ErrBackendUnavailable
}

// classifyStatus maps an HTTP status code to an ErrorType.
func classifyStatus(statusCode int) ErrorType {
	switch statusCode {
	case http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrorTypeAuth
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrorTypeTimeout
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return ErrorTypeUnavailable
	default:
		if statusCode >= 500 {
			return ErrorTypeUnavailable
		}
		return ErrorTypeInvalidResponse
	}
}

// classifyTransportError wraps a pre-response failure (dial, TLS, deadline)
// as a BackendError with the right type.
func classifyTransportError(backendName string, err error) *BackendError {
	typ := ErrorTypeNetwork
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		typ = ErrorTypeTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		typ = ErrorTypeTimeout
	case strings.Contains(strings.ToLower(err.Error()), "connection refused"):
		typ = ErrorTypeUnavailable
	}
	return &BackendError{
		Backend: backendName,
		Message: err.Error(),
		Type:    typ,
	}
}
