package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"time"

	"medicost-dashboard/internal/insurance"
	"medicost-dashboard/internal/metrics"
	"medicost-dashboard/internal/predictor"
	"medicost-dashboard/internal/session"

	"github.com/goccy/go-json"
)

const (
	maxBodyBytes      = 64 << 10
	msgIncompleteForm = "Please fill in all fields"
)

// formField accepts a JSON string, number or null, so both raw form input
// ("35") and typed input (35) decode to the same text.
type formField string

func (f *formField) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = formField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = formField(n.String())
	return nil
}

type predictionRequest struct {
	Age      formField `json:"age"`
	Sex      formField `json:"sex"`
	BMI      formField `json:"bmi"`
	Children formField `json:"children"`
	Smoker   formField `json:"smoker"`
	Region   formField `json:"region"`
}

func (p predictionRequest) form() insurance.FormValues {
	return insurance.FormValues{
		Age:      string(p.Age),
		Sex:      string(p.Sex),
		BMI:      string(p.BMI),
		Children: string(p.Children),
		Smoker:   string(p.Smoker),
		Region:   string(p.Region),
	}
}

// readForm decodes either a JSON body or an urlencoded form.
func readForm(w http.ResponseWriter, r *http.Request) (insurance.FormValues, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return insurance.FormValues{}, err
		}
		return insurance.FormValues{
			Age:      r.PostForm.Get("age"),
			Sex:      r.PostForm.Get("sex"),
			BMI:      r.PostForm.Get("bmi"),
			Children: r.PostForm.Get("children"),
			Smoker:   r.PostForm.Get("smoker"),
			Region:   r.PostForm.Get("region"),
		}, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return insurance.FormValues{}, err
	}
	var req predictionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return insurance.FormValues{}, err
	}
	return req.form(), nil
}

// invalidInput turns a parse or validation failure into a 400 listing the
// offending fields.
func invalidInput(err error) apiError {
	resp := apiError{Status: http.StatusBadRequest, Message: err.Error()}
	var verr *insurance.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	} else {
		resp.Message = "invalid input"
	}
	return resp
}

/* ---------------- POST /api/predictions ---------------- */

func (h *Handler) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	// taken before the upstream call so a slow earlier request cannot
	// replace a newer result
	issued := time.Now().UnixNano()
	sessionID := SessionID(r.Context())

	form, err := readForm(w, r)
	if err != nil {
		h.reject(w, apiError{Status: http.StatusBadRequest, Message: "invalid request body"})
		return
	}
	if !form.Complete() {
		h.reject(w, apiError{Status: http.StatusBadRequest, Message: msgIncompleteForm})
		return
	}

	input, err := insurance.ParseForm(form)
	if err == nil {
		err = input.Validate()
	}
	if err != nil {
		h.reject(w, invalidInput(err))
		return
	}

	result, err := h.client.Predict(r.Context(), input)
	if err != nil {
		var perr *predictor.PredictionError
		if errors.As(err, &perr) {
			writeError(w, http.StatusBadGateway, perr.Message)
			return
		}
		h.log.Errorf("predict: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	rec, stored := h.sessions.Put(sessionID, session.Record{
		Result:     result,
		Assessment: insurance.Assess(result.InputData.BMI, result.PredictedCost),
		Timestamp:  issued,
	})
	if !stored {
		h.log.Debugf("session %s: prediction superseded by a newer one", sessionID)
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) reject(w http.ResponseWriter, resp apiError) {
	h.metrics.Inc(metrics.PredictionRejectedTotal)
	writeJSON(w, resp.Status, resp)
}

/* ---------------- /api/predictions/current ---------------- */

func (h *Handler) GetCurrentPrediction(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.sessions.Get(SessionID(r.Context()))
	if !ok {
		writeError(w, http.StatusNotFound, "no prediction yet")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) ClearCurrentPrediction(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(SessionID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

/* ---------------- GET /api/health-status ---------------- */

type healthStatusResponse struct {
	BMI    float64                `json:"bmi"`
	Status insurance.HealthStatus `json:"health_status"`
	Tone   insurance.Tone         `json:"tone"`
}

func (h *Handler) GetHealthStatus(w http.ResponseWriter, r *http.Request) {
	bmi, err := strconv.ParseFloat(r.URL.Query().Get("bmi"), 64)
	if err != nil || math.IsNaN(bmi) || math.IsInf(bmi, 0) {
		writeError(w, http.StatusBadRequest, "bmi must be a number")
		return
	}
	status := insurance.HealthStatusOf(bmi)
	writeJSON(w, http.StatusOK, healthStatusResponse{BMI: bmi, Status: status, Tone: status.Tone()})
}
