package session

import (
	"context"
	"sync"
	"time"

	"sapa-hq/relay/pkg/gateway"
)

// Session is the history of one conversation.
type Session struct {
	id        string
	maxStored int
	now       func() time.Time

	// turn is a one-slot semaphore held for the duration of a chat turn.
	turn chan struct{}

	mu         sync.Mutex
	messages   []gateway.Message
	lastActive time.Time
}

func newSession(id string, maxStored int, now func() time.Time) *Session {
	return &Session{
		id:         id,
		maxStored:  maxStored,
		now:        now,
		turn:       make(chan struct{}, 1),
		lastActive: now(),
	}
}

// ID returns the conversation identifier.
func (s *Session) ID() string {
	return s.id
}

// Acquire takes the turn lock. The returned release function is safe to
// call more than once. If ctx ends first, ctx.Err() is returned.
func (s *Session) Acquire(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case s.turn <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-s.turn })
	}, nil
}

// busy reports whether a turn is in progress.
func (s *Session) busy() bool {
	return len(s.turn) > 0
}

// Append adds messages to the history, dropping the oldest entries when the
// stored cap is exceeded.
func (s *Session) Append(msgs ...gateway.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msgs...)
	if s.maxStored > 0 && len(s.messages) > s.maxStored {
		kept := make([]gateway.Message, s.maxStored)
		copy(kept, s.messages[len(s.messages)-s.maxStored:])
		s.messages = kept
	}
	s.lastActive = s.now()
}

// History returns a copy of the stored messages, oldest first.
func (s *Session) History() []gateway.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]gateway.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of stored messages.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.messages)
}

// LastActive returns when the session was created or last appended to.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastActive
}

// touch marks the session as active without changing its history.
func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = s.now()
	s.mu.Unlock()
}
