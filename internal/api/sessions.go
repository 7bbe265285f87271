// internal/api/sessions.go
package api

import (
	"context"
	"sync"
	"time"

	"sake-reco/internal/catalog"
	apperrors "sake-reco/internal/common/errors"
	"sake-reco/internal/common/logger"
	"sake-reco/internal/common/metrics"
	"sake-reco/internal/questionnaire"
)

type sessionEntry struct {
	mu       sync.Mutex
	session  *questionnaire.Session
	lastSeen time.Time
	// matchedOn is the catalog snapshot the session's results were computed on.
	matchedOn *catalog.Snapshot
}

// SessionStore keeps questionnaire sessions in memory. Sessions idle for
// longer than the TTL are dropped; nothing survives a restart.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	ttl     time.Duration
	now     func() time.Time
	matcher questionnaire.Matcher
	current func() *catalog.Snapshot
	logger  logger.Logger
}

type SessionOption func(*SessionStore)

// TrackCatalog makes completed sessions rematch whenever current returns a
// different snapshot than the one their results were computed on.
func TrackCatalog(current func() *catalog.Snapshot) SessionOption {
	return func(s *SessionStore) { s.current = current }
}

func NewSessionStore(ttl time.Duration, matcher questionnaire.Matcher, log logger.Logger, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		entries: make(map[string]*sessionEntry),
		ttl:     ttl,
		now:     time.Now,
		matcher: matcher,
		current: func() *catalog.Snapshot { return nil },
		logger:  log.WithFields(map[string]interface{}{"component": "sessions"}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session and returns its view.
func (s *SessionStore) Create() SessionView {
	session := questionnaire.NewSession(s.matcher)
	s.mu.Lock()
	s.entries[session.ID()] = &sessionEntry{session: session, lastSeen: s.now()}
	n := len(s.entries)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	s.logger.Debug("session created", map[string]interface{}{"sessionId": session.ID()})
	return newSessionView(session)
}

// With runs fn on the session under its own lock and returns the resulting
// view. fn's error is returned together with the unchanged view. A completed
// session whose results predate the current catalog is rematched first.
func (s *SessionStore) With(id string, fn func(*questionnaire.Session) error) (SessionView, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return SessionView{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// Read before matching so a load landing meanwhile triggers another rematch.
	snap := s.current()
	s.refresh(entry, snap)
	if fn != nil {
		err = fn(entry.session)
		if entry.session.Completed() {
			// fn may have completed or rematched the session.
			entry.matchedOn = snap
		}
	}
	return newSessionView(entry.session), err
}

func (s *SessionStore) refresh(entry *sessionEntry, snap *catalog.Snapshot) {
	if !entry.session.Completed() || entry.matchedOn == snap {
		return
	}
	if _, err := entry.session.Rematch(); err != nil {
		return
	}
	entry.matchedOn = snap
	s.logger.Debug("session rematched", map[string]interface{}{
		"sessionId": entry.session.ID(),
		"count":     len(entry.session.Results()),
	})
}

func (s *SessionStore) lookup(id string) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, apperrors.NewSessionNotFoundError(id)
	}
	now := s.now()
	if s.expired(entry, now) {
		delete(s.entries, id)
		metrics.ActiveSessions.Set(float64(len(s.entries)))
		return nil, apperrors.NewSessionNotFoundError(id)
	}
	entry.lastSeen = now
	return entry, nil
}

func (s *SessionStore) expired(e *sessionEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}

// Sweep drops expired sessions and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
			removed++
		}
	}
	n := len(s.entries)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	if removed > 0 {
		s.logger.Info("sessions expired", map[string]interface{}{"removed": removed, "active": n})
	}
	return removed
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Run sweeps every interval until ctx is done.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
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
