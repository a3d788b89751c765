package session

import (
	"sync"
	"time"

	"sapa-hq/relay/pkg/gateway"
)

// Store maps conversation identifiers to sessions. It is safe for
// concurrent use.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	maxStored int
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithMaxStored caps the number of messages kept per session. Zero means
// unbounded.
func WithMaxStored(n int) Option {
	return func(s *Store) {
		if n >= 0 {
			s.maxStored = n
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreate returns the session for id, creating an empty one if needed.
// An existing session is touched while the map lock is held, so an idle
// sweep cannot detach it between lookup and use.
func (s *Store) GetOrCreate(id string) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	if ok {
		sess.touch()
	}
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess = newSession(id, s.maxStored, s.now)
	s.sessions[id] = sess
	return sess
}

// Get returns the session for id without creating it.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	return sess, ok
}

// Delete removes the session for id and reports whether it existed.
// A turn already holding the session finishes against the detached history.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// AppendTurn appends msg to the session for id, creating it if needed.
func (s *Store) AppendTurn(id string, msg gateway.Message) {
	s.GetOrCreate(id).Append(msg)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// EvictIdle removes sessions last active before cutoff and returns how many
// were removed. Sessions with a turn in progress are kept.
func (s *Store) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if sess.busy() || !sess.LastActive().Before(cutoff) {
			continue
		}
		delete(s.sessions, id)
		evicted++
	}
	return evicted
}

// Now returns the store's clock reading.
func (s *Store) Now() time.Time {
	return s.now()
}
