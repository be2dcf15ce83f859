package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"medicost-dashboard/internal/logs"
	"medicost-dashboard/internal/metrics"
	"medicost-dashboard/internal/session"
)

// Middleware types
type Middleware func(http.Handler) http.Handler

func Chain(h http.Handler, m ...Middleware) http.Handler {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}

// LoggingMiddleware counts every request and logs it. Server errors are
// logged at WARN, everything else at DEBUG.
func LoggingMiddleware(logger *logs.Logger, reg *metrics.Registry) Middleware {
	l := logger.With("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			reg.Inc(metrics.HTTPRequestsTotal)
			if rw.status >= http.StatusInternalServerError {
				l.Warnf("%s %s %d %s", r.Method, r.URL.Path, rw.status, time.Since(start))
				return
			}
			l.Debugf("%s %s %d %s", r.Method, r.URL.Path, rw.status, time.Since(start))
		})
	}
}

// Recovery Middleware

func RecoveryMiddleware(logger *logs.Logger, reg *metrics.Registry) Middleware {
	l := logger.With("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					reg.Inc(metrics.HTTPPanicsRecoveredTotal)
					l.Errorf("panic recovered: %v", err)
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

/* ---------------- Sessions ---------------- */

// SessionHeader carries the caller's session id in both directions.
const SessionHeader = "X-Session-ID"

const maxSessionIDLen = 128

type sessionKey struct{}

// SessionMiddleware attaches a session id to the request context, issuing a
// new one when the caller sent none, and echoes it in the response.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(SessionHeader))
		if id == "" || len(id) > maxSessionIDLen {
			id = session.NewID()
		}
		w.Header().Set(SessionHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

// SessionID returns the id set by SessionMiddleware, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// ResponseWriter wrapper
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
