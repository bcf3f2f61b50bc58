package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	apierrors "github.com/multilead/multilead-mcp/internal/errors"
	"github.com/multilead/multilead-mcp/internal/metrics"
)

// Middleware gates HTTP requests through the governor, keyed by the
// client's remote address. Requests rejected locally never reach the
// wrapped handler.
func Middleware(g *Governor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := clientIdentity(r)

			decision := g.Allow(identity)
			if !decision.Allowed {
				metrics.RecordRateLimitRejection("http")

				retrySeconds := int(decision.RetryAfter.Seconds())
				if retrySeconds < 1 {
					retrySeconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retrySeconds))

				envelope := apierrors.NewRateLimitedError("rate limit exceeded, slow down")
				envelope = envelope.WithDetails(map[string]interface{}{
					"retry_after_seconds": retrySeconds,
				})
				apierrors.RespondWithEnvelope(w, r, envelope)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIdentity derives the governor key from the request. The chi
// RealIP middleware has already rewritten RemoteAddr from forwarding
// headers when present, so stripping the port is enough here.
func clientIdentity(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return "unknown"
	}
	return fmt.Sprintf("ip:%s", host)
}
