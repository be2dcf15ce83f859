package session

import (
	"time"

	"medicost-dashboard/internal/insurance"
	"medicost-dashboard/internal/predictor"
)

// Record is the latest prediction shown to one session.
//
// Timestamp orders writes (last write wins). A zero ExpiresAt never expires.
type Record struct {
	PredictionID string                     `json:"prediction_id"`
	Result       predictor.PredictionResult `json:"result"`
	Assessment   insurance.Assessment       `json:"assessment"`
	Timestamp    int64                      `json:"timestamp"`
	ExpiresAt    time.Time                  `json:"expires_at"`
}

// IsExpired checks whether the record is expired at the given time.
func (r Record) IsExpired(now time.Time) bool {
	if r.ExpiresAt.IsZero() {
		return false
	}
	return now.After(r.ExpiresAt)
}
