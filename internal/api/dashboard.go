package api

import (
	"errors"
	"net/http"

	"medicost-dashboard/internal/analytics"
	"medicost-dashboard/internal/predictor"
	"medicost-dashboard/internal/upstream"

	"github.com/goccy/go-json"
)

/* ---------------- GET /api/health ---------------- */

type healthResponse struct {
	Service predictor.HealthReport `json:"service"`
	Monitor upstream.Snapshot      `json:"monitor"`
}

// GetHealth runs a live check, which also feeds the monitor.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	report := h.monitor.CheckNow(r.Context())
	writeJSON(w, http.StatusOK, healthResponse{
		Service: report,
		Monitor: h.monitor.Snapshot(),
	})
}

/* ---------------- GET /api/dashboard-stats ---------------- */

func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.client.DashboardStats(r.Context()))
}

/* ---------------- GET /api/model-info ---------------- */

func (h *Handler) GetModelInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.client.ModelInfo(r.Context())
	if err != nil {
		var perr *predictor.PredictionError
		if errors.As(err, &perr) {
			writeError(w, http.StatusBadGateway, perr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

/* ---------------- GET /api/analytics ---------------- */

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.Load())
}

/* ---------------- GET /api/home ---------------- */

func (h *Handler) GetHome(w http.ResponseWriter, r *http.Request) {
	stats := h.client.DashboardStats(r.Context())
	writeJSON(w, http.StatusOK, analytics.BuildHome(h.now(), stats))
}

/* ---------------- /api/state ---------------- */

const actionToggleTheme = "toggle_theme"

type stateRequest struct {
	Action  string `json:"action,omitempty"`
	Section string `json:"section,omitempty"`
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.prefs.State(r.Context(), SessionID(r.Context())))
}

func (h *Handler) UpdateState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := SessionID(ctx)

	var req stateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	switch {
	case req.Action == actionToggleTheme:
		st, err := h.prefs.ToggleTheme(ctx, sessionID)
		if err != nil {
			h.log.Errorf("toggle theme: %v", err)
			writeError(w, http.StatusInternalServerError, "could not save theme")
			return
		}
		writeJSON(w, http.StatusOK, st)
	case req.Action == "" && req.Section != "":
		writeJSON(w, http.StatusOK, h.prefs.Navigate(ctx, sessionID, req.Section))
	default:
		writeError(w, http.StatusBadRequest, `expected {"action":"toggle_theme"} or {"section":...}`)
	}
}
