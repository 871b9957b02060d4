package httpclient

import (
	"context"
	"net/http"
)

// Headers forwarded from the inbound request to the settings API.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

type (
	headersKey    struct{}
	idempotentKey struct{}
)

// WithRequestID makes outbound requests sent with ctx carry id as
// X-Request-ID. An empty id leaves ctx unchanged.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withHeader(ctx, HeaderRequestID, id)
}

// WithCorrelationID makes outbound requests sent with ctx carry id as
// X-Correlation-ID. An empty id leaves ctx unchanged.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return withHeader(ctx, HeaderCorrelationID, id)
}

// WithIdempotent marks requests sent with ctx as safe to retry whatever
// their method.
func WithIdempotent(ctx context.Context) context.Context {
	return context.WithValue(ctx, idempotentKey{}, true)
}

func isMarkedIdempotent(ctx context.Context) bool {
	marked, _ := ctx.Value(idempotentKey{}).(bool)
	return marked
}

// withHeader copies the headers already carried by ctx, so a parent context
// never sees values set for a child.
func withHeader(ctx context.Context, name, value string) context.Context {
	if value == "" {
		return ctx
	}
	h := forwarded(ctx).Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set(name, value)
	return context.WithValue(ctx, headersKey{}, h)
}

func forwarded(ctx context.Context) http.Header {
	h, _ := ctx.Value(headersKey{}).(http.Header)
	return h
}

// propagate sets the headers carried by ctx on req.
func propagate(ctx context.Context, req *http.Request) {
	for name, values := range forwarded(ctx) {
		req.Header[name] = append([]string(nil), values...)
	}
}
