// Package ratelimit implements the fixed-window request throttle guarding
// the public contact-event endpoint. It is a best-effort abuse guard, not a
// billing control: lost counts only weaken the throttle.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultCapacity is the number of requests admitted per key per window.
	DefaultCapacity = 30
	// DefaultWindow is the fixed window length.
	DefaultWindow = time.Minute
)

// Result is the outcome of a single admission check.
type Result struct {
	Allowed   bool
	Remaining int
}

// Store tracks per-key counters for one limiter instance.
type Store interface {
	// Check applies one request for key and reports admission. now is the
	// caller's clock reading; distributed stores may ignore it.
	Check(key string, capacity int, window time.Duration, now time.Time) (Result, error)
	// Reset drops all counters.
	Reset()
}

// Limiter throttles requests per key over a fixed window. State lives in the
// injected Store, scoped to this instance; there is no package-level state.
type Limiter struct {
	capacity int
	window   time.Duration
	store    Store
	now      func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock injects a clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithStore swaps the default in-memory store, e.g. for the Redis-backed one
// when several instances must share counters.
func WithStore(s Store) Option {
	return func(l *Limiter) { l.store = s }
}

// New creates a limiter admitting capacity requests per key per window.
func New(capacity int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		capacity: capacity,
		window:   window,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.store == nil {
		l.store = NewMemoryStore()
	}
	return l
}

// Check admits or denies one request for key. Store failures fail open: a
// broken counter store must not take the contact-logging path down with it.
func (l *Limiter) Check(key string) Result {
	res, err := l.store.Check(key, l.capacity, l.window, l.now())
	if err != nil {
		return Result{Allowed: true, Remaining: l.capacity - 1}
	}
	return res
}

// Reset drops all counters, used by tests and teardown.
func (l *Limiter) Reset() {
	l.store.Reset()
}

type memoryEntry struct {
	count   int
	resetAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

// NewMemoryStore returns a mutex-guarded in-process store. Counters do not
// survive a restart, which is acceptable for an abuse guard.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]*memoryEntry)}
}

func (s *memoryStore) Check(key string, capacity int, window time.Duration, now time.Time) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || now.After(entry.resetAt) {
		s.entries[key] = &memoryEntry{count: 1, resetAt: now.Add(window)}
		return Result{Allowed: true, Remaining: capacity - 1}, nil
	}

	if entry.count >= capacity {
		return Result{Allowed: false, Remaining: 0}, nil
	}

	entry.count++
	return Result{Allowed: true, Remaining: capacity - entry.count}, nil
}

func (s *memoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*memoryEntry)
}
