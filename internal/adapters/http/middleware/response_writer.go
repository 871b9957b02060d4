// Package middleware provides HTTP middleware for the inbound request pipeline.
//
// Every request passes through:
//
//	Recovery → RequestID → CorrelationID → Session → OpenTelemetry → Logging → Timeout → Handler
//
// The HTML settings forms additionally sit behind CSRF. Each middleware is a
// func(http.Handler) http.Handler and can be composed with Chain.
package middleware

import "net/http"

// statusRecorder remembers what a handler sent so that recovery, tracing and
// access logging can report on it.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	started bool
	bytes   int64
}

func record(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader forwards the first status only.
func (sr *statusRecorder) WriteHeader(code int) {
	if sr.started {
		return
	}
	sr.status, sr.started = code, true
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	sr.started = true
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += int64(n)
	return n, err
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}
