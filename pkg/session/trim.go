package session

import "sapa-hq/relay/pkg/gateway"

// DefaultMaxHistory is the number of most recent messages sent upstream.
const DefaultMaxHistory = 20

// TrimHistory returns the last limit entries of history, or history itself
// when it is already short enough. A non-positive limit means
// DefaultMaxHistory. The result may share memory with history.
func TrimHistory(history []gateway.Message, limit int) []gateway.Message {
	if limit <= 0 {
		limit = DefaultMaxHistory
	}
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
