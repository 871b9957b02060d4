package middleware

import (
	"context"
	"net/http"

	"github.com/jsamuelsen11/console-settings/internal/platform/httpclient"
)

type correlationIDKey struct{}

// WithCorrelationID stores id in ctx and marks it for forwarding to the
// settings API as X-Correlation-ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return httpclient.WithCorrelationID(context.WithValue(ctx, correlationIDKey{}, id), id)
}

// CorrelationIDFromContext returns the correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// CorrelationID keeps a well-formed incoming X-Correlation-ID and otherwise
// reuses the request ID, so it must run after RequestID.
func CorrelationID() func(http.Handler) http.Handler {
	return traceID(httpclient.HeaderCorrelationID, WithCorrelationID, func(r *http.Request) string {
		return RequestIDFromContext(r.Context())
	})
}
