// Package conversation turns one inbound chat request into one upstream
// completion call and a cleaned reply.
//
// The Orchestrator picks a mode from the request, in priority order:
//
//	explicit   the caller supplied the whole history; nothing is stored
//	stateful   a conversation identifier selects a stored session
//	stateless  a single message, nothing is stored
//
// A reset naming a conversation identifier deletes that session before
// anything else happens. A reset with no message and no history is a turn
// of its own (mode "reset") and never reaches the gateway.
//
// Stateful turns hold the session's turn lock from reading the history to
// storing the reply, so two requests for the same identifier never
// interleave. The user message and the reply are stored together only after
// the upstream call succeeds; a failed turn leaves the history untouched.
package conversation
