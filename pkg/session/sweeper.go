package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// EvictionRecorder receives sweep results. *metrics.Collector satisfies it.
type EvictionRecorder interface {
	RecordEvictions(n int)
	SetActiveSessions(n int)
}

// Sweeper evicts idle sessions on a cron schedule.
type Sweeper struct {
	store    *Store
	ttl      time.Duration
	schedule string
	recorder EvictionRecorder
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewSweeper creates a sweeper for store. recorder may be nil.
func NewSweeper(store *Store, ttl time.Duration, schedule string, recorder EvictionRecorder) *Sweeper {
	return &Sweeper{
		store:    store,
		ttl:      ttl,
		schedule: schedule,
		recorder: recorder,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   slog.Default().With("component", "session.sweeper"),
	}
}

// Start schedules sweeps. A non-positive TTL disables the sweeper and Start
// returns nil without scheduling anything. The sweeper stops when ctx ends.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		s.logger.Debug("idle TTL not configured, sessions live for the process lifetime")
		return nil
	}
	if s.running {
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}
	if _, err := s.cron.AddFunc(s.schedule, func() { s.Sweep() }); err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("session sweeper started",
		"schedule", s.schedule,
		"idle_ttl", s.ttl.String(),
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Sweep evicts sessions idle longer than the TTL and returns the count.
func (s *Sweeper) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	evicted := s.store.EvictIdle(s.store.Now().Add(-s.ttl))
	active := s.store.Len()

	if s.recorder != nil {
		s.recorder.RecordEvictions(evicted)
		s.recorder.SetActiveSessions(active)
	}

	if evicted > 0 {
		s.logger.Info("evicted idle sessions",
			"evicted", evicted,
			"active", active,
		)
	} else {
		s.logger.Debug("session sweep completed, nothing evicted", "active", active)
	}

	return evicted
}

// Stop stops the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("session sweeper stopped")
}

// IsRunning reports whether sweeps are scheduled.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled sweep, or nil when not running.
func (s *Sweeper) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
