package session

import (
	"sync"
	"time"

	"medicost-dashboard/internal/metrics"

	"github.com/google/uuid"
)

// Store keeps the latest prediction per session, safe for concurrent use.
// A newer Timestamp replaces the stored record; an older or equal one is
// dropped, so a slow response can never overwrite a newer prediction.
type Store struct {
	mu      sync.RWMutex
	data    map[string]Record
	ttl     time.Duration
	metrics *metrics.Registry
}

// NewStore creates a store whose records live for ttl after each write.
// ttl <= 0 keeps records until cleared.
func NewStore(ttl time.Duration, metricsRegistry *metrics.Registry) *Store {
	return &Store{
		data:    make(map[string]Record),
		ttl:     ttl,
		metrics: metricsRegistry,
	}
}

// NewID issues a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Put stores rec for the session unless a newer record is already there.
// It returns rec with its id and expiry filled in, and whether it was stored.
func (s *Store) Put(sessionID string, rec Record) (Record, bool) {
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().UnixNano()
	}
	if rec.PredictionID == "" {
		rec.PredictionID = uuid.NewString()
	}
	if rec.ExpiresAt.IsZero() && s.ttl > 0 {
		rec.ExpiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.data[sessionID]
	if exists && rec.Timestamp <= existing.Timestamp {
		return rec, false
	}

	s.data[sessionID] = rec
	s.metrics.Set(metrics.SessionsActive, int64(len(s.data)))
	return rec, true
}

// Get returns the session's record if present and not expired. Expired
// records are removed on access.
func (s *Store) Get(sessionID string) (Record, bool) {
	s.mu.RLock()
	rec, exists := s.data[sessionID]
	s.mu.RUnlock()

	if !exists {
		return Record{}, false
	}

	if rec.IsExpired(time.Now()) {
		s.mu.Lock()
		// re-check: a fresh Put may have landed in between
		if cur, ok := s.data[sessionID]; ok && cur.IsExpired(time.Now()) {
			delete(s.data, sessionID)
			s.metrics.Inc(metrics.SessionsExpiredTotal)
			s.metrics.Set(metrics.SessionsActive, int64(len(s.data)))
		}
		s.mu.Unlock()
		return Record{}, false
	}

	return rec, true
}

// Clear forgets the session's record (form reset).
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[sessionID]; ok {
		delete(s.data, sessionID)
		s.metrics.Set(metrics.SessionsActive, int64(len(s.data)))
	}
}

// Len counts stored records, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// RemoveExpired drops every expired record and returns how many were removed.
func (s *Store) RemoveExpired() int {
	now := time.Now()
	removed := 0

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range s.data {
		if rec.IsExpired(now) {
			delete(s.data, id)
			removed++
		}
	}

	if removed > 0 {
		s.metrics.Add(metrics.SessionsExpiredTotal, int64(removed))
		s.metrics.Set(metrics.SessionsActive, int64(len(s.data)))
	}
	return removed
}
