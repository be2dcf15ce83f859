// Package insights turns metrics and recent log entries into a short
// status report for operators.
package insights

import (
	"strings"

	"medicost-dashboard/internal/logs"
	"medicost-dashboard/internal/metrics"
)

// How many recent log entries are scanned, and how many failed predictions
// among them count as a pattern.
const (
	logWindow              = 100
	predictionFailureLimit = 3
)

// Analyzer converts metrics + logs into a Report.
type Analyzer struct {
	metrics *metrics.Registry
	logger  *logs.Logger
	rules   []Rule
}

func NewAnalyzer(reg *metrics.Registry, logger *logs.Logger) *Analyzer {
	return &Analyzer{
		metrics: reg,
		logger:  logger,
		rules: []Rule{
			UpstreamUnhealthyRule,
			PredictionFailureRule,
			StatsFallbackRule,
		},
	}
}

// Analyze evaluates metrics and logs and returns a report.
func (a *Analyzer) Analyze() Report {
	snapshot := a.metrics.Snapshot()

	var (
		signals         = []string{}
		recommendations = []string{}
		status          = StatusOK
	)

	/* ---------- METRICS-BASED RULES ---------- */

	for _, rule := range a.rules {
		result := rule(snapshot)
		if !result.Triggered {
			continue
		}
		signals = append(signals, result.Signal)
		recommendations = append(recommendations, result.Recommendation)
		status = escalate(status, result.Severity)
	}

	/* ---------- LOG-BASED SIGNALS ---------- */

	failedPredictions := 0
	panicCount := 0

	for _, entry := range a.logger.GetLast(logWindow) {
		if entry.Level == logs.WARN && strings.Contains(entry.Message, "prediction failed") {
			failedPredictions++
		}
		if entry.Level == logs.ERROR && strings.Contains(entry.Message, "panic") {
			panicCount++
		}
	}

	if failedPredictions >= predictionFailureLimit {
		signals = append(signals, "Repeated prediction failures detected in logs")
		recommendations = append(recommendations, "Check connectivity to the prediction service")
		status = escalate(status, StatusDegraded)
	}

	if panicCount > 0 {
		signals = append(signals, "Application panics detected in logs")
		recommendations = append(recommendations, "Inspect stack traces and stabilize error handling")
		status = StatusCritical
	}

	/* ---------- SUMMARY ---------- */

	summary := "System is healthy"
	if status != StatusOK {
		summary = "System health issues detected"
	}

	return Report{
		OverallStatus:   status,
		Summary:         summary,
		Signals:         signals,
		Recommendations: recommendations,
	}
}
