package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Messages returned to callers for the statuses the relay explains itself.
const (
	PermissionMessage = "403 Forbidden: token lacks permission for this model or the inference API. Check the token scope or switch models."
	NotFoundMessage   = "404 Not Found: model name is wrong or not available at the router."
)

// ConfigurationError is returned before any network call when the gateway
// lacks a model or base URL.
type ConfigurationError struct {
	// Field names the missing setting ("model" or "base_url").
	Field string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("gateway misconfigured: %s not set", e.Field)
}

// StatusCode is always 500; the caller cannot fix a server-side setting.
func (e *ConfigurationError) StatusCode() int {
	return http.StatusInternalServerError
}

// PermissionError is returned when the upstream answers 403.
type PermissionError struct {
	// Detail is the upstream's own message, kept for logs.
	Detail string
}

// Error implements the error interface.
func (e *PermissionError) Error() string {
	return PermissionMessage
}

// StatusCode returns 403.
func (e *PermissionError) StatusCode() int {
	return http.StatusForbidden
}

// NotFoundError is returned when the upstream answers 404.
type NotFoundError struct {
	// Model is the model that was requested.
	Model string

	// Detail is the upstream's own message, kept for logs.
	Detail string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return NotFoundMessage
}

// StatusCode returns 404.
func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// GatewayError is any other upstream failure: an unexpected status, a
// transport error or an undecodable body.
type GatewayError struct {
	// Status is the upstream HTTP status, or 0 when no response was read.
	Status int

	// Message is the upstream's error message or a description of the failure.
	Message string

	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	switch {
	case e.Status > 0:
		return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Message)
	case e.Cause != nil && e.Message != "":
		return fmt.Sprintf("upstream error: %s: %v", e.Message, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("upstream error: %v", e.Cause)
	default:
		return fmt.Sprintf("upstream error: %s", e.Message)
	}
}

// Unwrap returns the underlying error for error chain support.
func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// StatusCode relays the upstream status when it describes a failure and
// falls back to 500 otherwise.
func (e *GatewayError) StatusCode() int {
	if e.Status >= 400 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Outcome classifies err for metrics and logs.
func Outcome(err error) string {
	var (
		cfgErr  *ConfigurationError
		permErr *PermissionError
		nfErr   *NotFoundError
		gwErr   *GatewayError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &cfgErr):
		return "misconfigured"
	case errors.As(err, &permErr):
		return "forbidden"
	case errors.As(err, &nfErr):
		return "not_found"
	case errors.As(err, &gwErr):
		if gwErr.Status == 0 {
			return "transport_error"
		}
		return "upstream_error"
	default:
		return "error"
	}
}
