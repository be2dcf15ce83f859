package predictor

import (
	"strings"

	"github.com/goccy/go-json"
)

// ErrorKind separates failures that never reached a well-formed answer
// from answers the service rejected.
type ErrorKind string

const (
	// KindTransport: unreachable, timed out, or a malformed response body.
	KindTransport ErrorKind = "transport"
	// KindService: the service answered with a non-2xx status.
	KindService ErrorKind = "service"
)

// PredictionError is the single error value returned by Client calls.
// Message is safe to show to an end user.
type PredictionError struct {
	Kind    ErrorKind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *PredictionError) Error() string {
	return e.Message
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// Detail returns the underlying cause for logs.
func (e *PredictionError) Detail() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Op + ": " + e.Err.Error()
}

// detailMessage extracts a readable message from an error body. FastAPI
// puts it under "detail" as a string, an object or a list of
// validation issues.
func detailMessage(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(envelope.Detail, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		return obj.Error
	}

	var issues []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &issues); err == nil {
		msgs := make([]string, 0, len(issues))
		for _, is := range issues {
			if is.Msg != "" {
				msgs = append(msgs, is.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
