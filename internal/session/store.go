// Package session keeps one booking flow per visitor in memory. Nothing is
// persisted; idle sessions are evicted on a cron schedule.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"barberbook/internal/booking"
	appLog "barberbook/internal/log"
	"barberbook/internal/metrics"
)

// Factory builds a fresh flow for a new visitor.
type Factory func() *booking.Flow

type entry struct {
	flow     *booking.Flow
	lastSeen time.Time
}

// Store maps session IDs to flows.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	newFlow Factory
	ttl     time.Duration
	now     func() time.Time
	metrics *metrics.BookingMetrics

	cron *cron.Cron
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source used for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithMetrics reports the active session count.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(s *Store) { s.metrics = m }
}

// NewStore creates an empty store. Sessions idle longer than ttl are
// removed by Sweep.
func NewStore(newFlow Factory, ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		newFlow: newFlow,
		ttl:     ttl,
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get returns the flow for id and marks it as seen.
func (s *Store) Get(id string) (*booking.Flow, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.flow, true
}

// Create registers a new flow under a fresh ID.
func (s *Store) Create() (string, *booking.Flow) {
	id := uuid.NewString()
	flow := s.newFlow()

	s.mu.Lock()
	s.entries[id] = &entry{flow: flow, lastSeen: s.now()}
	n := len(s.entries)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(n)
	appLog.Debug("session created", "session", id, "active", n)
	return id, flow
}

// GetOrCreate returns the flow for id, creating a new session when id is
// unknown (expired, forged, or empty). The returned ID is the one to hand
// back to the client.
func (s *Store) GetOrCreate(id string) (string, *booking.Flow, bool) {
	if flow, ok := s.Get(id); ok {
		return id, flow, false
	}
	newID, flow := s.Create()
	return newID, flow, true
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep removes sessions idle longer than the TTL and returns how many
// were removed.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	removed := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	n := len(s.entries)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(n)
	if removed > 0 {
		appLog.Info("idle sessions evicted", "removed", removed, "active", n)
	}
	return removed
}

// StartSweeper runs Sweep on the given cron spec (e.g. "*/5 * * * *")
// until StopSweeper is called.
func (s *Store) StartSweeper(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { s.Sweep() }); err != nil {
		return err
	}
	c.Start()

	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()

	appLog.Info("session sweeper started", "schedule", spec, "ttl", s.ttl.String())
	return nil
}

// StopSweeper stops the cron scheduler and waits for a running sweep.
func (s *Store) StopSweeper(ctx context.Context) {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}
}
