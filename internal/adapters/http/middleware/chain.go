package middleware

import (
	"net/http"
	"slices"
)

// Chain folds middlewares into one. The first wraps all the others, so it
// sees the request first and the response last. An empty Chain returns the
// handler unchanged.
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		for _, mw := range slices.Backward(middlewares) {
			h = mw(h)
		}
		return h
	}
}
