// Package proxy is the HTTP boundary of the relay: it decodes chat requests,
// maps orchestrator results to JSON, and turns errors into status codes.
//
// Error mapping:
//
//	RequestError, conversation.ValidationError  400
//	gateway.PermissionError                     403
//	gateway.NotFoundError                       404
//	gateway.GatewayError                        upstream status when >= 400, else 500
//	gateway.ConfigurationError                  500
//	anything else                               500 "chat failed"
//
// The handlers live in proxy/handlers and the middleware chain in
// proxy/middleware.
package proxy
