package server

import (
	"net"
	"net/http"

	"github.com/multilead/multilead-mcp/internal/invoke"
)

// identityMiddleware tags the request context with the client identity
// so the invocation pipeline keys its quotas the same way the HTTP
// middleware does. RealIP has already normalized RemoteAddr.
func identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if host == "" {
			host = "unknown"
		}

		ctx := invoke.WithClientIdentity(r.Context(), "ip:"+host)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
