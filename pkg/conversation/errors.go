package conversation

import "net/http"

// Validation messages.
const (
	MessageRequiredStateful  = "message required for conversationId mode"
	MessageRequiredStateless = "message (or prompt) required"
)

// ValidationError reports a request that cannot be handled as sent.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// StatusCode returns 400.
func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}
