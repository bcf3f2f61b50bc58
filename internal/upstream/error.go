// Package upstream implements the Multilead API client and the response
// mediation that classifies every failure into a stable taxonomy.
package upstream

import (
	"fmt"
	"time"
)

// Kind identifies a failure class in the mediation taxonomy. Kinds are
// stable identifiers: callers and logs key off them, never off raw
// upstream status codes.
type Kind string

const (
	// KindLocallyThrottled means the local rate governor rejected the
	// request before any upstream dispatch.
	KindLocallyThrottled Kind = "RATE_LIMITED"

	// KindAuthenticationFailed covers upstream 401 and 403 responses.
	KindAuthenticationFailed Kind = "AUTHENTICATION_FAILED"

	// KindNotFound covers upstream 404 responses.
	KindNotFound Kind = "NOT_FOUND"

	// KindUpstreamThrottled covers upstream 429 responses.
	KindUpstreamThrottled Kind = "UPSTREAM_THROTTLED"

	// KindUpstreamServerError covers upstream 5xx responses.
	KindUpstreamServerError Kind = "UPSTREAM_SERVER_ERROR"

	// KindUpstreamTimeout means the request exceeded its deadline.
	KindUpstreamTimeout Kind = "UPSTREAM_TIMEOUT"

	// KindNetworkUnavailable means the upstream host could not be reached.
	KindNetworkUnavailable Kind = "NETWORK_UNAVAILABLE"

	// KindUnexpectedUpstreamError covers any other non-2xx response.
	KindUnexpectedUpstreamError Kind = "UNEXPECTED_UPSTREAM_ERROR"

	// KindConfigurationMissing means the upstream credential is absent,
	// detected before any network activity.
	KindConfigurationMissing Kind = "CONFIGURATION_MISSING"

	// KindInvalidArguments means the tool call itself was malformed,
	// detected before any network activity.
	KindInvalidArguments Kind = "INVALID_INPUT"
)

// Error is the mediated form of any upstream failure.
//
// Message must never include the API credential. Raw upstream bodies are
// only carried for unexpected kinds, truncated, and likewise credential-free.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string

	// RetryAfter is advisory wait time, populated for throttled kinds.
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e == nil {
		return "upstream error"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("multilead request failed: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("multilead request failed: %s", e.Message)
}

// Temporary reports whether retrying later could succeed without any
// configuration change.
func (e *Error) Temporary() bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindLocallyThrottled, KindUpstreamThrottled, KindUpstreamServerError,
		KindUpstreamTimeout, KindNetworkUnavailable:
		return true
	default:
		return false
	}
}
