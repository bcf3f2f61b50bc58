package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ClassifyStatus maps an upstream HTTP status code to a failure kind.
// The mapping is total and idempotent: every status resolves to exactly
// one kind, and a 2xx status resolves to no failure at all (empty Kind).
func ClassifyStatus(status int) Kind {
	switch {
	case status >= 200 && status < 300:
		return ""
	case status == 401 || status == 403:
		return KindAuthenticationFailed
	case status == 404:
		return KindNotFound
	case status == 429:
		return KindUpstreamThrottled
	case status >= 500 && status <= 599:
		return KindUpstreamServerError
	default:
		return KindUnexpectedUpstreamError
	}
}

// statusMessage returns a safe, fixed description for classified statuses.
// Raw upstream bodies are only surfaced for unexpected kinds.
func statusMessage(kind Kind, status int) string {
	switch kind {
	case KindAuthenticationFailed:
		return "authentication with the Multilead API failed, check the configured credential"
	case KindNotFound:
		return "the requested resource was not found"
	case KindUpstreamThrottled:
		return "the Multilead API rate limited this request, retry later"
	case KindUpstreamServerError:
		return fmt.Sprintf("the Multilead API returned a server error (status %d)", status)
	default:
		return fmt.Sprintf("the Multilead API returned an unexpected status %d", status)
	}
}

// Classify normalizes any transport-level error into *Error. Already
// classified errors pass through unchanged, so the mapping is idempotent.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var mediated *Error
	if errors.As(err, &mediated) && mediated != nil {
		return mediated
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindUpstreamTimeout, Message: "request to the Multilead API timed out"}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return &Error{Kind: KindUpstreamTimeout, Message: "request to the Multilead API timed out"}
		}
		return &Error{Kind: KindNetworkUnavailable, Message: "the Multilead API could not be reached"}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindUpstreamTimeout, Message: "request to the Multilead API timed out"}
	}

	return &Error{Kind: KindUnexpectedUpstreamError, Message: err.Error()}
}
