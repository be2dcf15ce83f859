package prefs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medicost-dashboard/internal/logs"
	"medicost-dashboard/internal/metrics"
)

const pruneTimeout = 5 * time.Second

// themeKey matches the key the browser dashboard used for local storage,
// namespaced per session.
func themeKey(sessionID string) string {
	return "theme:" + sessionID
}

type sectionEntry struct {
	section Section
	touched time.Time
}

// Manager tracks State per session. The theme goes through KV; the active
// section lives only in memory, like a page reload resetting to home.
type Manager struct {
	kv           KV
	defaultTheme string
	logger       *logs.ComponentLogger
	metrics      *metrics.Registry

	// zero keeps entries forever
	sectionTTL     time.Duration
	themeRetention time.Duration
	now            func() time.Time

	// serializes theme read-modify-write
	toggleMu sync.Mutex

	mu       sync.Mutex
	sections map[string]sectionEntry
}

func NewManager(kv KV, defaultTheme string, logger *logs.Logger, metricsRegistry *metrics.Registry) *Manager {
	return &Manager{
		kv:           kv,
		defaultTheme: defaultTheme,
		logger:       logger.With("prefs"),
		metrics:      metricsRegistry,
		now:          time.Now,
		sections:     make(map[string]sectionEntry),
	}
}

// ExpireAfter drops a session's section once it has not been touched for
// sectionTTL, and its stored theme once it has not been changed for
// themeRetention. Expiry happens in RemoveExpired.
func (m *Manager) ExpireAfter(sectionTTL, themeRetention time.Duration) *Manager {
	m.sectionTTL = sectionTTL
	m.themeRetention = themeRetention
	return m
}

// State loads the session's current state. A storage failure is logged and
// the fallback theme is used.
func (m *Manager) State(ctx context.Context, sessionID string) State {
	stored, _, err := m.kv.Get(ctx, themeKey(sessionID))
	if err != nil {
		m.logger.Warnf("load theme: %v", err)
		stored = ""
	}

	sec := Home
	m.mu.Lock()
	if e, ok := m.sections[sessionID]; ok {
		e.touched = m.now()
		m.sections[sessionID] = e
		sec = e.section
	}
	m.mu.Unlock()

	return State{Theme: Initial(stored, m.defaultTheme), Section: sec}
}

// ToggleTheme flips and persists the session's theme.
func (m *Manager) ToggleTheme(ctx context.Context, sessionID string) (State, error) {
	m.toggleMu.Lock()
	defer m.toggleMu.Unlock()

	cur := m.State(ctx, sessionID)
	next := cur.WithTheme(Toggle(cur.Theme))

	if err := m.kv.Set(ctx, themeKey(sessionID), string(next.Theme)); err != nil {
		return cur, fmt.Errorf("save theme: %w", err)
	}
	m.metrics.Inc(metrics.ThemeTogglesTotal)
	m.logger.Debugf("session %s theme %s -> %s", sessionID, cur.Theme, next.Theme)
	return next, nil
}

// Navigate moves the session to the named section.
func (m *Manager) Navigate(ctx context.Context, sessionID, name string) State {
	sec := Navigate(name)

	m.mu.Lock()
	m.sections[sessionID] = sectionEntry{section: sec, touched: m.now()}
	m.mu.Unlock()

	return m.State(ctx, sessionID).WithSection(sec)
}

// Len counts sessions with a remembered section.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sections)
}

// RemoveExpired drops idle sections and prunes old stored themes. It
// returns the total removed; a storage failure is logged.
func (m *Manager) RemoveExpired() int {
	now := m.now()
	removed := 0

	if m.sectionTTL > 0 {
		cutoff := now.Add(-m.sectionTTL)
		m.mu.Lock()
		for id, e := range m.sections {
			if e.touched.Before(cutoff) {
				delete(m.sections, id)
				removed++
			}
		}
		m.mu.Unlock()
	}

	if m.themeRetention > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
		defer cancel()
		n, err := m.kv.Prune(ctx, now.Add(-m.themeRetention))
		if err != nil {
			m.logger.Warnf("prune themes: %v", err)
		}
		removed += n
	}

	if removed > 0 {
		m.metrics.Add(metrics.PrefsExpiredTotal, int64(removed))
	}
	return removed
}
