package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/console-settings/internal/platform/httpclient"
)

// maxIDLength bounds caller-supplied request and correlation IDs.
const maxIDLength = 128

type requestIDKey struct{}

// WithRequestID stores id in ctx and marks it for forwarding to the
// settings API as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return httpclient.WithRequestID(context.WithValue(ctx, requestIDKey{}, id), id)
}

// RequestIDFromContext returns the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestID assigns every request an ID: a well-formed incoming
// X-Request-ID, or else a fresh UUID v4.
func RequestID() func(http.Handler) http.Handler {
	return traceID(httpclient.HeaderRequestID, WithRequestID, func(*http.Request) string {
		return uuid.NewString()
	})
}

// traceID adopts the named header when it is usable and otherwise takes
// fallback's value. The chosen ID is echoed on the response and stored in
// the request context with store.
func traceID(
	header string,
	store func(context.Context, string) context.Context,
	fallback func(*http.Request) string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(header)
			if !validID(id) {
				id = fallback(r)
			}
			w.Header().Set(header, id)
			next.ServeHTTP(w, r.WithContext(store(r.Context(), id)))
		})
	}
}

// validID accepts non-empty, bounded, printable ASCII without spaces, which
// is safe to log and forward.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for _, c := range []byte(id) {
		if c <= ' ' || c > '~' {
			return false
		}
	}
	return true
}
