package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID on requests and responses.
// A client-supplied value is honored so MCP tool-call logs can be tied
// back to the caller's own tracing.
const RequestIDHeader = "X-Request-ID"

type requestIDContextKey struct{}

// RequestID ensures every request carries a correlation ID: the inbound
// X-Request-ID header wins, then chi's generated ID, then a fresh UUID.
// The resolved ID is echoed on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = middleware.GetReqID(r.Context())
		}
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDContextKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the correlation ID resolved by RequestID, falling
// back to chi's ID when the middleware did not run (direct handler tests).
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDContextKey{}).(string); ok {
		return id
	}
	return middleware.GetReqID(ctx)
}
