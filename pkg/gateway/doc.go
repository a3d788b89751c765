// Package gateway defines the contract between the relay and a remote
// chat-completion endpoint.
//
// A Gateway performs exactly one upstream call per Complete invocation and
// never retries. Failures are reported as typed errors so the HTTP boundary
// can pick a status code with errors.As:
//
//	ConfigurationError  model or base URL unset, no request was sent
//	PermissionError     upstream answered 403
//	NotFoundError       upstream answered 404
//	GatewayError        any other status, transport or decode failure
//
// The wire schema of a concrete endpoint lives in its adapter package
// (see gateway/openai); nothing here knows about JSON field names upstream.
package gateway
