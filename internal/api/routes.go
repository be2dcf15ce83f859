package api

import (
	"net/http"

	"medicost-dashboard/internal/logs"
	"medicost-dashboard/internal/metrics"
)

func RegisterRoutes(mux *http.ServeMux, h *Handler, logger *logs.Logger, reg *metrics.Registry) http.Handler {
	// Prediction service
	mux.HandleFunc("GET /api/health", h.GetHealth)
	mux.HandleFunc("GET /api/dashboard-stats", h.GetDashboardStats)
	mux.HandleFunc("GET /api/model-info", h.GetModelInfo)

	// Predictions
	mux.HandleFunc("POST /api/predictions", h.CreatePrediction)
	mux.HandleFunc("/api/predictions/current", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetCurrentPrediction(w, r)
		case http.MethodDelete:
			h.ClearCurrentPrediction(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})
	mux.HandleFunc("GET /api/health-status", h.GetHealthStatus)

	// Dashboard content
	mux.HandleFunc("GET /api/analytics", h.GetAnalytics)
	mux.HandleFunc("GET /api/home", h.GetHome)
	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetState(w, r)
		case http.MethodPut:
			h.UpdateState(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	// Observability APIs
	mux.HandleFunc("GET /api/status", h.GetStatus)
	mux.HandleFunc("GET /metrics", h.GetMetrics)
	mux.HandleFunc("GET /admin/logs", h.GetLogs)
	mux.HandleFunc("POST /admin/reload-model", h.ReloadModel)

	// Middlewares
	return Chain(
		mux,
		RecoveryMiddleware(logger, reg),
		LoggingMiddleware(logger, reg),
		SessionMiddleware,
	)
}
