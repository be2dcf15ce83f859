package insights

import (
	"testing"

	"medicost-dashboard/internal/logs"
	"medicost-dashboard/internal/metrics"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzer_OK(t *testing.T) {
	analyzer := NewAnalyzer(metrics.NewRegistry(), logs.NewLogger(10, logs.DEBUG))
	report := analyzer.Analyze()

	assert.Equal(t, StatusOK, report.OverallStatus)
	assert.Equal(t, "System is healthy", report.Summary)
	assert.Empty(t, report.Signals)
}

func TestAnalyzer_UpstreamUnhealthyIsCritical(t *testing.T) {
	reg := metrics.NewRegistry()
	reg.Set(metrics.UpstreamUnhealthy, 1)

	report := NewAnalyzer(reg, logs.NewLogger(10, logs.DEBUG)).Analyze()

	assert.Equal(t, StatusCritical, report.OverallStatus)
	assert.Contains(t, report.Signals, "Prediction service is unhealthy")
}

func TestAnalyzer_StatsFallbackIsDegraded(t *testing.T) {
	reg := metrics.NewRegistry()
	reg.Inc(metrics.StatsFallbackTotal)

	report := NewAnalyzer(reg, logs.NewLogger(10, logs.DEBUG)).Analyze()

	assert.Equal(t, StatusDegraded, report.OverallStatus)
	assert.Contains(t, report.Signals, "Dashboard stats served from fallback values")
}

func TestAnalyzer_MultipleMetricSignals(t *testing.T) {
	reg := metrics.NewRegistry()
	reg.Inc(metrics.PredictionFailuresTotal)
	reg.Inc(metrics.StatsFallbackTotal)

	report := NewAnalyzer(reg, logs.NewLogger(10, logs.DEBUG)).Analyze()

	assert.Equal(t, StatusDegraded, report.OverallStatus)
	assert.Len(t, report.Signals, 2)
	assert.Len(t, report.Recommendations, 2)
}

func TestAnalyzer_RecoveredUpstreamClearsCritical(t *testing.T) {
	reg := metrics.NewRegistry()
	reg.Set(metrics.UpstreamUnhealthy, 1)
	reg.Set(metrics.UpstreamUnhealthy, 0)

	report := NewAnalyzer(reg, logs.NewLogger(10, logs.DEBUG)).Analyze()
	assert.Equal(t, StatusOK, report.OverallStatus)
}

func TestAnalyzer_LogBasedPredictionFailures(t *testing.T) {
	logger := logs.NewLogger(10, logs.DEBUG)
	for i := 0; i < 3; i++ {
		logger.With("predictor").Warnf("prediction failed: %s", "connection refused")
	}

	report := NewAnalyzer(metrics.NewRegistry(), logger).Analyze()

	assert.Equal(t, StatusDegraded, report.OverallStatus)
	assert.Contains(t, report.Signals, "Repeated prediction failures detected in logs")
}

func TestAnalyzer_FewFailuresInLogsIgnored(t *testing.T) {
	logger := logs.NewLogger(10, logs.DEBUG)
	logger.Warn("prediction failed: timeout")
	logger.Warn("prediction failed: timeout")

	report := NewAnalyzer(metrics.NewRegistry(), logger).Analyze()
	assert.Equal(t, StatusOK, report.OverallStatus)
}

func TestAnalyzer_LogBasedPanicDetection(t *testing.T) {
	reg := metrics.NewRegistry()
	reg.Inc(metrics.StatsFallbackTotal)
	logger := logs.NewLogger(10, logs.DEBUG)
	logger.Error("panic recovered: runtime error")

	report := NewAnalyzer(reg, logger).Analyze()

	assert.Equal(t, StatusCritical, report.OverallStatus)
	assert.Equal(t, "System health issues detected", report.Summary)
	assert.Contains(t, report.Signals, "Application panics detected in logs")
}

func TestEscalate(t *testing.T) {
	assert.Equal(t, StatusDegraded, escalate(StatusOK, StatusDegraded))
	assert.Equal(t, StatusCritical, escalate(StatusDegraded, StatusCritical))
	assert.Equal(t, StatusCritical, escalate(StatusCritical, StatusDegraded))
	assert.Equal(t, StatusDegraded, escalate(StatusDegraded, StatusOK))
}
