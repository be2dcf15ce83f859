package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formArgs(api string, extra ...string) []string {
	args := []string{
		"-api", api,
		"-age", "35", "-sex", "male", "-bmi", "27.5",
		"-children", "2", "-smoker", "no", "-region", "northeast",
	}
	return append(args, extra...)
}

func predictServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestRun_PrintsPrediction(t *testing.T) {
	server, _ := predictServer(t, http.StatusOK, `{"predicted_cost":16884.92}`)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), formArgs(server.URL), &stdout, &stderr)

	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "Predicted annual cost: $16,885")
	assert.Contains(t, stdout.String(), "Risk level:            High")
	assert.Contains(t, stdout.String(), "Health status:         Overweight (BMI 27.5)")
}

func TestRun_JSONOutput(t *testing.T) {
	server, _ := predictServer(t, http.StatusOK, `{"predicted_cost":4200}`)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), formArgs(server.URL, "-json"), &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	var got output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, 4200.0, got.Result.PredictedCost)
	assert.Equal(t, "Low", string(got.Assessment.Risk))
	assert.Equal(t, "northeast", string(got.Result.InputData.Region))
}

func TestRun_RejectsBadInput(t *testing.T) {
	server, calls := predictServer(t, http.StatusOK, `{"predicted_cost":1}`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Missing", []string{"-api", server.URL, "-age", "35"}, "Please fill in all fields"},
		{"OutOfRange", formArgs(server.URL, "-age", "120"), "age must be between 18 and 100"},
		{"Unparsable", formArgs(server.URL, "-bmi", "x"), "bmi"},
		{"UnknownFlag", []string{"-colour", "red"}, "flag provided but not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr)
			assert.Equal(t, exitBadUsage, code)
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
	assert.Zero(t, calls.Load(), "invalid input never reaches the service")
}

func TestRun_ServiceErrorIsNotRetried(t *testing.T) {
	server, calls := predictServer(t, http.StatusBadRequest, `{"detail":"Invalid region"}`)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), formArgs(server.URL, "-retries", "3"), &stdout, &stderr)

	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr.String(), "error: Invalid region")
	assert.Equal(t, int32(1), calls.Load())
}

func TestRun_TransportErrorIsRetried(t *testing.T) {
	server, calls := predictServer(t, http.StatusOK, `not json`)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), formArgs(server.URL, "-retries", "1"), &stdout, &stderr)

	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr.String(), "Failed to predict insurance cost")
	assert.Equal(t, int32(2), calls.Load())
}

func TestRun_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := "http://" + ln.Addr().String()
	ln.Close()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), formArgs(addr), &stdout, &stderr)

	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr.String(), "Failed to predict insurance cost")
}
