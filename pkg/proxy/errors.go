package proxy

import (
	"errors"
	"net/http"

	"sapa-hq/relay/pkg/conversation"
	"sapa-hq/relay/pkg/gateway"
	"sapa-hq/relay/pkg/proxy/types"
)

// HandleError maps err to an HTTP status and a message that is safe to show
// the caller. The second return value reports whether err was expected;
// unexpected errors deserve an error-level log.
func HandleError(err error) (int, string, bool) {
	var (
		reqErr  *RequestError
		valErr  *conversation.ValidationError
		permErr *gateway.PermissionError
		nfErr   *gateway.NotFoundError
		gwErr   *gateway.GatewayError
		cfgErr  *gateway.ConfigurationError
	)

	switch {
	case errors.As(err, &reqErr):
		return reqErr.StatusCode(), reqErr.Error(), true
	case errors.As(err, &valErr):
		return valErr.StatusCode(), valErr.Error(), true
	case errors.As(err, &permErr):
		return permErr.StatusCode(), permErr.Error(), true
	case errors.As(err, &nfErr):
		return nfErr.StatusCode(), nfErr.Error(), true
	case errors.As(err, &gwErr):
		if gwErr.Status > 0 && gwErr.Message != "" {
			return gwErr.StatusCode(), gwErr.Message, true
		}
		return gwErr.StatusCode(), "upstream request failed", true
	case errors.As(err, &cfgErr):
		return cfgErr.StatusCode(), cfgErr.Error(), false
	default:
		return http.StatusInternalServerError, types.MessageInternal, false
	}
}
