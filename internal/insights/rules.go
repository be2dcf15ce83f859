package insights

import "medicost-dashboard/internal/metrics"

// RuleResult is the outcome of a single rule.
type RuleResult struct {
	Triggered      bool
	Signal         string
	Recommendation string
	Severity       Status
}

// Rule evaluates a metrics snapshot.
type Rule func(snapshot map[string]int64) RuleResult

// ---------- RULES ----------

// The monitor has marked the prediction service unhealthy.
func UpstreamUnhealthyRule(snapshot map[string]int64) RuleResult {
	if snapshot[string(metrics.UpstreamUnhealthy)] > 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Prediction service is unhealthy",
			Recommendation: "Check that the prediction API is running and the model is loaded",
			Severity:       StatusCritical,
		}
	}
	return RuleResult{}
}

// Predictions have failed since start.
func PredictionFailureRule(snapshot map[string]int64) RuleResult {
	if snapshot[string(metrics.PredictionFailuresTotal)] > 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Prediction requests have failed",
			Recommendation: "Inspect recent prediction errors and the service logs",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}

// The home page is showing sample numbers instead of live stats.
func StatsFallbackRule(snapshot map[string]int64) RuleResult {
	if snapshot[string(metrics.StatsFallbackTotal)] > 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Dashboard stats served from fallback values",
			Recommendation: "Verify the /dashboard-stats endpoint of the prediction service",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}
