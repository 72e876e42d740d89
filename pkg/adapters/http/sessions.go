package http

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/ports"
	"github.com/google/uuid"
)

// session serializes access to one navigator.
type session struct {
	mu       sync.Mutex
	nav      ports.Navigator
	lastUsed atomic.Int64 // unix nanoseconds
}

// do runs fn with exclusive access to the navigator.
func (s *session) do(fn func(ports.Navigator) domain.View) domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.nav)
}

func (s *session) touch(now time.Time) {
	s.lastUsed.Store(now.UnixNano())
}

func (s *session) idle(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastUsed.Load()))
}

// SessionStore keeps the live sessions of a server, keyed by a random id.
// With a TTL, sessions left idle longer than it are evicted.
type SessionStore struct {
	mu    sync.Mutex
	items map[string]*session
	ttl   time.Duration
	now   func() time.Time
}

// StoreOption configures a SessionStore.
type StoreOption func(*SessionStore)

// WithTTL evicts sessions idle for longer than ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *SessionStore) {
		s.ttl = ttl
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *SessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSessionStore creates an empty store.
func NewSessionStore(opts ...StoreOption) *SessionStore {
	s := &SessionStore{
		items: make(map[string]*session),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers nav and returns its new id. Expired sessions are swept first.
func (s *SessionStore) Add(nav ports.Navigator) string {
	id := uuid.NewString()
	sess := &session{nav: nav}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	sess.touch(now)
	s.items[id] = sess
	return id
}

// get returns a live session and marks it used. An expired session is dropped.
func (s *SessionStore) get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.items[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.items, id)
		return nil, false
	}
	sess.touch(now)
	return sess, true
}

// Remove drops a session. It reports whether it existed.
func (s *SessionStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep evicts every expired session and returns how many were dropped.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

// RunJanitor sweeps every interval until ctx is done.
func (s *SessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *SessionStore) sweepLocked(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	n := 0
	for id, sess := range s.items {
		if s.expired(sess, now) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

func (s *SessionStore) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && sess.idle(now) > s.ttl
}
