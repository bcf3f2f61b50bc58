package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/multilead/multilead-mcp/internal/metrics"
)

const defaultBaseURL = "https://api.multilead.io/api/open-api/v1"

// maxErrorBodyBytes bounds how much of an unexpected upstream body is
// carried in the mediated error message.
const maxErrorBodyBytes = 512

// Client talks to the Multilead API over HTTP with bearer authentication.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewClient returns a client with defaults applied.
func NewClient(baseURL, apiKey string) *Client {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = defaultBaseURL
	}

	return &Client{
		BaseURL: u,
		APIKey:  strings.TrimSpace(apiKey),
		Timeout: 30 * time.Second,
	}
}

// Configured reports whether a credential is present. No network check
// is performed; a present credential may still be rejected upstream.
func (c *Client) Configured() bool {
	return c != nil && strings.TrimSpace(c.APIKey) != ""
}

// Get issues a GET request against the given endpoint.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) (any, error) {
	return c.Request(ctx, http.MethodGet, endpoint, query, nil)
}

// Request dispatches one authenticated request and mediates the response.
// endpoint is an API path relative to BaseURL, e.g. "/v1/leads". A nil
// body sends no payload; anything else is JSON-encoded.
//
// Every failure returns *Error carrying a taxonomy Kind. The credential
// never appears in returned errors.
func (c *Client) Request(ctx context.Context, method, endpoint string, query url.Values, body any) (any, error) {
	if c == nil || !c.Configured() {
		return nil, &Error{
			Kind:    KindConfigurationMissing,
			Message: "Multilead API key is not configured, set MULTILEAD_API_KEY",
		}
	}

	start := time.Now()
	payload, err := c.dispatch(ctx, method, endpoint, query, body)
	duration := time.Since(start)

	if err != nil {
		mediated := Classify(err)
		metrics.RecordUpstreamRequest(string(mediated.Kind), duration)
		return nil, mediated
	}

	metrics.RecordUpstreamRequest("success", duration)
	return payload, nil
}

func (c *Client) dispatch(ctx context.Context, method, endpoint string, query url.Values, body any) (any, error) {
	ctx, cancel := withTimeout(ctx, c.Timeout)
	if cancel != nil {
		defer cancel()
	}

	reqURL := c.resolveURL(endpoint)
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if kind := ClassifyStatus(resp.StatusCode); kind != "" {
		return nil, c.mediateFailure(kind, resp, respBody)
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return map[string]any{"success": true}, nil
	}

	var parsed any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return parsed, nil
}

// resolveURL joins the endpoint onto the configured base. Endpoints
// beginning with "/api/" are root-relative (the v2 surface lives beside,
// not under, the v1 base) and resolve against the host root instead.
func (c *Client) resolveURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "/api/") {
		if base, err := url.Parse(c.BaseURL); err == nil && base.Host != "" {
			return base.Scheme + "://" + base.Host + endpoint
		}
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// mediateFailure builds the taxonomy error for a non-2xx response.
func (c *Client) mediateFailure(kind Kind, resp *http.Response, body []byte) *Error {
	mediated := &Error{
		Kind:       kind,
		StatusCode: resp.StatusCode,
		Message:    statusMessage(kind, resp.StatusCode),
	}

	if kind == KindUpstreamThrottled {
		mediated.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	}

	if kind == KindUnexpectedUpstreamError {
		if detail := truncate(strings.TrimSpace(string(body)), maxErrorBodyBytes); detail != "" {
			mediated.Message = fmt.Sprintf("%s: %s", mediated.Message, detail)
		}
	}

	return mediated
}

func parseRetryAfter(header string) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, nil
	}
	return context.WithTimeout(ctx, timeout)
}
