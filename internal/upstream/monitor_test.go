package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"medicost-dashboard/internal/logs"
	"medicost-dashboard/internal/metrics"
	"medicost-dashboard/internal/predictor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedChecker replays a fixed sequence of reports, repeating the last one.
type scriptedChecker struct {
	mu      sync.Mutex
	reports []predictor.HealthReport
	calls   int
}

func (s *scriptedChecker) CheckHealth(context.Context) predictor.HealthReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.reports) {
		i = len(s.reports) - 1
	}
	s.calls++
	return s.reports[i]
}

var (
	up   = predictor.HealthReport{Status: predictor.StatusHealthy}
	down = predictor.HealthReport{Status: predictor.StatusUnhealthy, Error: "API health check failed"}
)

func testConfig() MonitorConfig {
	return MonitorConfig{
		Interval:     10 * time.Millisecond,
		CheckTimeout: time.Second,
		Health:       HealthPolicy{FailureThreshold: 3, SuccessThreshold: 2},
	}
}

func TestMonitor_Thresholds(t *testing.T) {
	checker := &scriptedChecker{reports: []predictor.HealthReport{up, down, down, down, up, up}}
	reg := metrics.NewRegistry()
	logger := logs.NewLogger(50, logs.DEBUG)
	m := NewMonitor(checker, testConfig(), logger, reg)
	ctx := context.Background()

	assert.Equal(t, Unknown, m.Snapshot().State)

	m.CheckNow(ctx)
	assert.Equal(t, Healthy, m.Snapshot().State, "first success settles unknown")

	m.CheckNow(ctx)
	m.CheckNow(ctx)
	assert.Equal(t, Healthy, m.Snapshot().State, "below failure threshold")
	assert.Equal(t, 2, m.Snapshot().FailureCount)

	m.CheckNow(ctx)
	snap := m.Snapshot()
	assert.Equal(t, Unhealthy, snap.State)
	assert.Equal(t, "API health check failed", snap.LastReport.Error)
	assert.Equal(t, int64(1), reg.Get(metrics.UpstreamUnhealthy))

	m.CheckNow(ctx)
	assert.Equal(t, Unhealthy, m.Snapshot().State, "one success is not enough to recover")

	m.CheckNow(ctx)
	assert.True(t, m.IsHealthy())
	assert.Equal(t, int64(0), reg.Get(metrics.UpstreamUnhealthy))

	assert.Equal(t, int64(6), reg.Get(metrics.UpstreamChecksTotal))
	assert.Equal(t, int64(3), reg.Get(metrics.UpstreamFailuresTotal))

	var sawWarn, sawRecover bool
	for _, e := range logger.GetLast(50) {
		if e.Level == logs.WARN && e.Component == "upstream" {
			sawWarn = true
		}
		if e.Message == "prediction service recovered" {
			sawRecover = true
		}
	}
	assert.True(t, sawWarn)
	assert.True(t, sawRecover)
}

func TestMonitor_StartStopsOnCancel(t *testing.T) {
	checker := &scriptedChecker{reports: []predictor.HealthReport{down}}
	m := NewMonitor(checker, testConfig(), logs.NewLogger(50, logs.DEBUG), metrics.NewRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return m.Snapshot().State == Unhealthy
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}

func TestMonitor_AgainstRealClient(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if healthy.Load() {
			w.Write([]byte(`{"status":"healthy","model_loaded":true,"model_version":"2.0"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	logger := logs.NewLogger(50, logs.DEBUG)
	reg := metrics.NewRegistry()
	client := predictor.NewClient(server.URL, time.Second, logger, reg)
	m := NewMonitor(client, testConfig(), logger, reg)

	report := m.CheckNow(context.Background())
	require.True(t, report.Healthy())
	assert.Equal(t, "2.0", m.Snapshot().LastReport.ModelVersion)

	healthy.Store(false)
	for i := 0; i < 3; i++ {
		m.CheckNow(context.Background())
	}
	assert.Equal(t, Unhealthy, m.Snapshot().State)
	assert.Equal(t, "API health check failed", m.Snapshot().LastReport.Error)
}
