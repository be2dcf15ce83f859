package upstream

import (
	"context"
	"sync"
	"time"

	"medicost-dashboard/internal/logs"
	"medicost-dashboard/internal/metrics"
	"medicost-dashboard/internal/predictor"
)

// State is the monitor's view of the prediction service.
type State string

const (
	Unknown   State = "unknown"
	Healthy   State = "healthy"
	Unhealthy State = "unhealthy"
)

// HealthChecker is the part of the prediction client the monitor needs.
type HealthChecker interface {
	CheckHealth(ctx context.Context) predictor.HealthReport
}

// Snapshot is a point-in-time copy of the monitor state.
type Snapshot struct {
	State        State                  `json:"state"`
	LastReport   predictor.HealthReport `json:"last_report"`
	LastChecked  time.Time              `json:"last_checked"`
	FailureCount int                    `json:"consecutive_failures"`
	SuccessCount int                    `json:"consecutive_successes"`
}

// Monitor periodically checks the prediction service and debounces its
// health with failure/success thresholds.
type Monitor struct {
	checker HealthChecker
	config  MonitorConfig
	logger  *logs.ComponentLogger
	metrics *metrics.Registry

	mu    sync.RWMutex
	state Snapshot
}

func NewMonitor(
	checker HealthChecker,
	cfg MonitorConfig,
	logger *logs.Logger,
	metricsRegistry *metrics.Registry,
) *Monitor {
	return &Monitor{
		checker: checker,
		config:  cfg,
		logger:  logger.With("upstream"),
		metrics: metricsRegistry,
		state:   Snapshot{State: Unknown},
	}
}

// Start checks once immediately, then on every tick until ctx is cancelled.
// It blocks; run it in its own goroutine.
func (m *Monitor) Start(ctx context.Context) {
	m.CheckNow(ctx)

	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CheckNow(ctx)
		case <-ctx.Done():
			m.logger.Debugf("health monitor stopped")
			return
		}
	}
}

// CheckNow performs one health check and records the outcome.
func (m *Monitor) CheckNow(ctx context.Context) predictor.HealthReport {
	checkCtx := ctx
	if m.config.CheckTimeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, m.config.CheckTimeout)
		defer cancel()
	}

	report := m.checker.CheckHealth(checkCtx)
	m.metrics.Inc(metrics.UpstreamChecksTotal)
	if report.Healthy() {
		m.markSuccess(report)
	} else {
		m.metrics.Inc(metrics.UpstreamFailuresTotal)
		m.markFailure(report)
	}
	return report
}

func (m *Monitor) markFailure(report predictor.HealthReport) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.LastReport = report
	m.state.LastChecked = time.Now()
	m.state.FailureCount++
	m.state.SuccessCount = 0

	if m.state.FailureCount >= m.config.Health.FailureThreshold && m.state.State != Unhealthy {
		m.state.State = Unhealthy
		m.metrics.Set(metrics.UpstreamUnhealthy, 1)
		m.logger.Warnf("prediction service marked unhealthy: %s", describe(report))
	}
}

func (m *Monitor) markSuccess(report predictor.HealthReport) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.LastReport = report
	m.state.LastChecked = time.Now()
	m.state.SuccessCount++
	m.state.FailureCount = 0

	// the first good answer settles an unknown state right away
	if m.state.State == Unknown || m.state.SuccessCount >= m.config.Health.SuccessThreshold {
		if m.state.State == Unhealthy {
			m.logger.Infof("prediction service recovered")
		}
		m.state.State = Healthy
		m.metrics.Set(metrics.UpstreamUnhealthy, 0)
	}
}

func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Monitor) IsHealthy() bool {
	return m.Snapshot().State == Healthy
}

func describe(r predictor.HealthReport) string {
	if r.Error != "" {
		return r.Error
	}
	return "status " + r.Status
}
