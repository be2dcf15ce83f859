package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"medicost-dashboard/internal/insights"
	"medicost-dashboard/internal/insurance"
	"medicost-dashboard/internal/logs"
	"medicost-dashboard/internal/metrics"
	"medicost-dashboard/internal/predictor"
	"medicost-dashboard/internal/prefs"
	"medicost-dashboard/internal/session"
	"medicost-dashboard/internal/upstream"

	"github.com/goccy/go-json"
)

// Predictor is the part of the prediction client the handlers call.
type Predictor interface {
	Predict(ctx context.Context, input insurance.DemographicInput) (predictor.PredictionResult, error)
	ModelInfo(ctx context.Context) (predictor.ModelInfo, error)
	DashboardStats(ctx context.Context) predictor.DashboardStats
	ReloadModel(ctx context.Context) (predictor.ReloadResult, error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	client   Predictor
	monitor  *upstream.Monitor
	sessions *session.Store
	prefs    *prefs.Manager
	metrics  *metrics.Registry
	logger   *logs.Logger
	log      *logs.ComponentLogger
	analyzer *insights.Analyzer
	now      func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(
	client Predictor,
	monitor *upstream.Monitor,
	sessions *session.Store,
	prefsManager *prefs.Manager,
	metrics *metrics.Registry,
	logger *logs.Logger,
) *Handler {
	return &Handler{
		client:   client,
		monitor:  monitor,
		sessions: sessions,
		prefs:    prefsManager,
		metrics:  metrics,
		logger:   logger,
		log:      logger.With("api"),
		analyzer: insights.NewAnalyzer(metrics, logger),
		now:      time.Now,
	}
}

/* ---------------- responses ---------------- */

type apiError struct {
	Status  int                    `json:"status"`
	Message string                 `json:"message"`
	Fields  []insurance.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiError{Status: status, Message: message})
}

/* ---------------- GET /api/status ---------------- */

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.analyzer.Analyze())
}

/* ---------------- GET /metrics ---------------- */

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.metrics.Snapshot())
}

/* ---------------- GET /admin/logs ---------------- */

const defaultLogCount = 100

func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	n := defaultLogCount
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "n must be a non-negative integer")
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, h.logger.GetLast(n))
}

/* ---------------- POST /admin/reload-model ---------------- */

// ReloadModel relays the service's answer. A reload the service refused
// is still a 200 with success=false; an unreachable service is a 502.
func (h *Handler) ReloadModel(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.ReloadModel(r.Context())
	if err != nil {
		var perr *predictor.PredictionError
		if !errors.As(err, &perr) {
			h.log.Errorf("reload model: %v", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if perr.Kind != predictor.KindService || perr.Status != http.StatusOK {
			writeError(w, http.StatusBadGateway, perr.Message)
			return
		}
	}
	writeJSON(w, http.StatusOK, result)
}
