package predictor

import (
	"medicost-dashboard/internal/insurance"

	"github.com/goccy/go-json"
)

// PredictionResult is a successful answer from the prediction service.
// A new request replaces it; it is never mutated.
type PredictionResult struct {
	PredictedCost float64                    `json:"predicted_cost"`
	InputData     insurance.DemographicInput `json:"input_data"`
	// Optional fields some service versions echo back.
	ModelInfo   map[string]any `json:"model_info,omitempty"`
	ServiceRisk string         `json:"service_risk_level,omitempty"`
}

// Risk is computed locally from the predicted cost.
func (r PredictionResult) Risk() insurance.RiskLevel {
	return insurance.RiskLevelOf(r.PredictedCost)
}

// Health is computed locally from the echoed BMI.
func (r PredictionResult) Health() insurance.HealthStatus {
	return insurance.HealthStatusOf(r.InputData.BMI)
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthReport is the service health as seen by the client. Error is set
// only when the check itself failed.
type HealthReport struct {
	Status       string `json:"status"`
	ModelLoaded  *bool  `json:"model_loaded,omitempty"`
	ModelVersion string `json:"model_version,omitempty"`
	Error        string `json:"error,omitempty"`
}

func (h HealthReport) Healthy() bool {
	return h.Status == StatusHealthy
}

// DashboardStats are the headline counters on the home page.
type DashboardStats struct {
	TotalPredictions  int64   `json:"total_predictions"`
	AvgCost           float64 `json:"avg_cost"`
	HighRiskPatients  int64   `json:"high_risk_patients"`
	RecentPredictions int64   `json:"recent_predictions"`
	ModelStatus       string  `json:"model_status,omitempty"`
}

// FallbackStats is served whenever /dashboard-stats cannot be read.
func FallbackStats() DashboardStats {
	return DashboardStats{
		TotalPredictions:  1247,
		AvgCost:           13270,
		HighRiskPatients:  312,
		RecentPredictions: 47,
	}
}

// ModelInfo describes the model behind the service. Fields the service
// does not report stay zero.
type ModelInfo struct {
	ModelType        string   `json:"model_type"`
	Features         []string `json:"features"`
	SexCategories    []string `json:"sex_categories,omitempty"`
	SmokerCategories []string `json:"smoker_categories,omitempty"`
	RegionCategories []string `json:"region_categories,omitempty"`
	Version          string   `json:"version,omitempty"`
	CreatedDate      string   `json:"created_date,omitempty"`
	TrainingScore    any      `json:"training_score,omitempty"`
	TestScore        any      `json:"test_score,omitempty"`
}

// ReloadResult reports a model reload attempt.
type ReloadResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ModelLoaded bool   `json:"model_loaded"`
}

/* ---------------- wire shapes ---------------- */

type predictResponse struct {
	PredictedCost *float64        `json:"predicted_cost" validate:"required,gte=0"`
	InputData     json.RawMessage `json:"input_data"`
	ModelInfo     map[string]any  `json:"model_info"`
	RiskLevel     string          `json:"risk_level"`
}

type healthResponse struct {
	Status       string  `json:"status" validate:"required"`
	ModelLoaded  *bool   `json:"model_loaded"`
	ModelVersion *string `json:"model_version"`
}

type statsResponse struct {
	TotalPredictions  *int64   `json:"total_predictions" validate:"required,gte=0"`
	AvgCost           *float64 `json:"avg_cost" validate:"required,gte=0"`
	HighRiskPatients  *int64   `json:"high_risk_patients" validate:"required,gte=0"`
	RecentPredictions *int64   `json:"recent_predictions" validate:"required,gte=0"`
	ModelStatus       string   `json:"model_status"`
}

type modelInfoResponse struct {
	ModelInfo
	// The service answers 200 with an "error" field when no model is loaded.
	Error      string `json:"error"`
	Suggestion string `json:"suggestion"`
}

type reloadResponse struct {
	Success     *bool  `json:"success" validate:"required"`
	Message     string `json:"message"`
	ModelLoaded *bool  `json:"model_loaded" validate:"required"`
}
