package middleware

import "net/http"

// Middleware wraps an http.Handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain folds middleware around a handler, outermost first:
// Chain(Recovery, Auth)(mux) recovers around everything and
// authenticates before the mux routes. The app wires the full stack
// this way in one place.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}
