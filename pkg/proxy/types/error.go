package types

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Messages for failures the relay reports without a more specific cause.
const (
	MessageInternal         = "chat failed"
	MessageMethodNotAllowed = "method not allowed"
	MessageBodyTooLarge     = "request body too large"
)
