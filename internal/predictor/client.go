// Package predictor is the HTTP client for the insurance cost prediction
// service. Every call is a single stateless request: no caching and no
// retries. Callers own any retry policy.
package predictor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"medicost-dashboard/internal/insurance"
	"medicost-dashboard/internal/logs"
	"medicost-dashboard/internal/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	msgPredictFailed   = "Failed to predict insurance cost"
	msgModelInfoFailed = "Failed to get model info"
	msgHealthFailed    = "API health check failed"
	msgStatsFailed     = "Failed to get dashboard stats"
	msgReloadFailed    = "Failed to reload model"

	maxBodyBytes = 1 << 20
)

var schema = validator.New(validator.WithRequiredStructEnabled())

// Client talks to the prediction service.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *logs.ComponentLogger
	metrics *metrics.Registry
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(
	baseURL string,
	timeout time.Duration,
	logger *logs.Logger,
	metricsRegistry *metrics.Registry,
) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("predictor"),
		metrics: metricsRegistry,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

/* ---------------- POST /predict ---------------- */

// Predict submits one demographic record. Ranges are not re-checked here;
// the caller validates before submitting.
func (c *Client) Predict(ctx context.Context, input insurance.DemographicInput) (PredictionResult, error) {
	var resp predictResponse
	if err := c.do(ctx, http.MethodPost, "/predict", input, &resp, msgPredictFailed); err != nil {
		c.metrics.Inc(metrics.PredictionFailuresTotal)
		c.logger.Warnf("prediction failed: %s", err.Detail())
		return PredictionResult{}, err
	}

	echo := input
	if len(resp.InputData) > 0 && !bytes.Equal(resp.InputData, []byte("null")) {
		if err := json.Unmarshal(resp.InputData, &echo); err != nil {
			c.metrics.Inc(metrics.PredictionFailuresTotal)
			perr := malformed("/predict", msgPredictFailed, err)
			c.logger.Warnf("prediction failed: %s", perr.Detail())
			return PredictionResult{}, perr
		}
	}

	result := PredictionResult{
		PredictedCost: *resp.PredictedCost,
		InputData:     echo,
		ModelInfo:     resp.ModelInfo,
		ServiceRisk:   resp.RiskLevel,
	}

	c.metrics.Inc(metrics.PredictionsTotal)
	if result.Risk() == insurance.RiskHigh {
		c.metrics.Inc(metrics.PredictionHighRiskTotal)
	}
	c.logger.Infof("prediction succeeded: %s (risk %s)", insurance.FormatCurrency(result.PredictedCost), result.Risk())

	return result, nil
}

// PredictForm coerces raw form strings and submits them.
func (c *Client) PredictForm(ctx context.Context, form insurance.FormValues) (PredictionResult, error) {
	input, err := insurance.ParseForm(form)
	if err != nil {
		return PredictionResult{}, fmt.Errorf("coerce form: %w", err)
	}
	return c.Predict(ctx, input)
}

/* ---------------- GET /model-info ---------------- */

func (c *Client) ModelInfo(ctx context.Context) (ModelInfo, error) {
	var resp modelInfoResponse
	if err := c.do(ctx, http.MethodGet, "/model-info", nil, &resp, msgModelInfoFailed); err != nil {
		c.logger.Warnf("model info failed: %s", err.Detail())
		return ModelInfo{}, err
	}
	if resp.Error != "" {
		return ModelInfo{}, &PredictionError{
			Kind:    KindService,
			Op:      "/model-info",
			Status:  http.StatusOK,
			Message: resp.Error,
			Err:     fmt.Errorf("GET /model-info: %s (%s)", resp.Error, resp.Suggestion),
		}
	}
	return resp.ModelInfo, nil
}

/* ---------------- GET /health ---------------- */

// CheckHealth never fails: any error becomes an unhealthy report.
func (c *Client) CheckHealth(ctx context.Context) HealthReport {
	var resp healthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp, msgHealthFailed); err != nil {
		c.logger.Debugf("health check failed: %s", err.Detail())
		return HealthReport{Status: StatusUnhealthy, Error: err.Message}
	}

	report := HealthReport{
		Status:      resp.Status,
		ModelLoaded: resp.ModelLoaded,
	}
	if resp.ModelVersion != nil {
		report.ModelVersion = *resp.ModelVersion
	}
	return report
}

/* ---------------- GET /dashboard-stats ---------------- */

// DashboardStats never fails: any error yields FallbackStats. Each
// fallback is counted and logged so a masked outage stays visible.
func (c *Client) DashboardStats(ctx context.Context) DashboardStats {
	var resp statsResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard-stats", nil, &resp, msgStatsFailed); err != nil {
		c.metrics.Inc(metrics.StatsFallbackTotal)
		c.logger.Warnf("dashboard stats unavailable, serving fallback: %s", err.Detail())
		return FallbackStats()
	}

	return DashboardStats{
		TotalPredictions:  *resp.TotalPredictions,
		AvgCost:           *resp.AvgCost,
		HighRiskPatients:  *resp.HighRiskPatients,
		RecentPredictions: *resp.RecentPredictions,
		ModelStatus:       resp.ModelStatus,
	}
}

/* ---------------- POST /reload-model ---------------- */

// ReloadModel asks the service to load its model from disk again. A
// reload the service reports as failed is a KindService error.
func (c *Client) ReloadModel(ctx context.Context) (ReloadResult, error) {
	var resp reloadResponse
	if err := c.do(ctx, http.MethodPost, "/reload-model", nil, &resp, msgReloadFailed); err != nil {
		c.logger.Errorf("model reload failed: %s", err.Detail())
		return ReloadResult{}, err
	}

	result := ReloadResult{
		Success:     *resp.Success,
		Message:     resp.Message,
		ModelLoaded: *resp.ModelLoaded,
	}
	if !result.Success {
		if result.Message == "" {
			result.Message = msgReloadFailed
		}
		c.logger.Warnf("model reload refused: %s", result.Message)
		return result, &PredictionError{
			Kind:    KindService,
			Op:      "/reload-model",
			Status:  http.StatusOK,
			Message: result.Message,
			Err:     fmt.Errorf("POST /reload-model: %s", result.Message),
		}
	}

	c.logger.Infof("model reloaded (loaded=%t)", result.ModelLoaded)
	return result, nil
}

/* ---------------- transport ---------------- */

// do performs one request and decodes a 2xx body into out, validating it
// against its struct tags.
func (c *Client) do(ctx context.Context, method, path string, body, out any, generic string) *PredictionError {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &PredictionError{Kind: KindTransport, Op: path, Message: generic, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &PredictionError{Kind: KindTransport, Op: path, Message: generic, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &PredictionError{Kind: KindTransport, Op: path, Message: generic, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &PredictionError{Kind: KindTransport, Op: path, Status: resp.StatusCode, Message: generic, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := detailMessage(raw)
		if msg == "" {
			msg = generic
		}
		return &PredictionError{
			Kind:    KindService,
			Op:      path,
			Status:  resp.StatusCode,
			Message: msg,
			Err:     fmt.Errorf("%s %s: %s", method, path, resp.Status),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return malformed(path, generic, err)
	}
	if err := schema.Struct(out); err != nil {
		return malformed(path, generic, err)
	}
	return nil
}

func malformed(path, generic string, err error) *PredictionError {
	return &PredictionError{
		Kind:    KindTransport,
		Op:      path,
		Message: generic,
		Err:     fmt.Errorf("malformed response: %w", err),
	}
}
