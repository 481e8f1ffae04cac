// Package middleware provides the HTTP middleware chain for the proxy.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// contextKey is a custom type to avoid context key collisions.
type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDHeader carries the request id back to clients. The same id keys
// the request_logs row written after inference.
const RequestIDHeader = "X-Request-ID"

// GetRequestID returns the request id assigned by RequestID, or "" when the
// handler runs outside the middleware chain.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestID tags every request with a UUID, honoring an id supplied by the
// caller so upstream proxies (e.g. a Cloud Run load balancer) can correlate.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
