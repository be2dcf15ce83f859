package metrics

import (
	"sync"
	"sync/atomic"
)

// MetricKey is a strongly typed metric identifier.
type MetricKey string

const (
	// Predictions
	PredictionsTotal        MetricKey = "predictions_total"
	PredictionFailuresTotal MetricKey = "prediction_failures_total"
	PredictionHighRiskTotal MetricKey = "prediction_high_risk_total"
	PredictionRejectedTotal MetricKey = "prediction_rejected_total"

	// Upstream prediction service
	UpstreamChecksTotal   MetricKey = "upstream_checks_total"
	UpstreamFailuresTotal MetricKey = "upstream_failures_total"
	UpstreamUnhealthy     MetricKey = "upstream_unhealthy"
	StatsFallbackTotal    MetricKey = "dashboard_stats_fallback_total"

	// Sessions
	SessionsActive        MetricKey = "sessions_active"
	SessionsExpiredTotal  MetricKey = "sessions_expired_total"
	SessionSweepRunsTotal MetricKey = "session_sweep_runs_total"
	PrefsExpiredTotal     MetricKey = "prefs_expired_total"

	// API
	ThemeTogglesTotal        MetricKey = "theme_toggles_total"
	HTTPRequestsTotal        MetricKey = "http_requests_total"
	HTTPPanicsRecoveredTotal MetricKey = "http_panics_recovered_total"
)

// Registry stores all metrics.
type Registry struct {
	mu       sync.RWMutex
	counters map[MetricKey]*int64
}

func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[MetricKey]*int64),
	}
}

// Inc increments a metric by 1.
func (r *Registry) Inc(key MetricKey) {
	r.Add(key, 1)
}

// Add increments a metric by delta.
func (r *Registry) Add(key MetricKey, delta int64) {
	atomic.AddInt64(r.slot(key), delta)
}

// Set overwrites a gauge-style metric.
func (r *Registry) Set(key MetricKey, value int64) {
	atomic.StoreInt64(r.slot(key), value)
}

// Get reads a single metric; missing metrics read as zero.
func (r *Registry) Get(key MetricKey) int64 {
	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()
	if !ok {
		return 0
	}
	return atomic.LoadInt64(ptr)
}

func (r *Registry) slot(key MetricKey) *int64 {
	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()
	if ok {
		return ptr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// re-check under the write lock
	if ptr, ok = r.counters[key]; ok {
		return ptr
	}
	ptr = new(int64)
	r.counters[key] = ptr
	return ptr
}
