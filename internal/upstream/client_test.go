package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	c := NewClient(serverURL, "test-key")
	c.Timeout = 2 * time.Second
	return c
}

func TestRequestSuccess(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":1}],"total":1}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	query := url.Values{}
	query.Set("limit", "10")

	payload, err := client.Get(context.Background(), "/v1/leads", query)
	require.NoError(t, err)
	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "/v1/leads", gotPath)
	require.Equal(t, "limit=10", gotQuery)

	result, ok := payload.(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(1), result["total"])
}

func TestRequestNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	payload, err := client.Request(context.Background(), http.MethodDelete, "/v1/leads/42", nil, nil)
	require.NoError(t, err)

	result, ok := payload.(map[string]any)
	require.True(t, ok)
	require.Equal(t, true, result["success"])
}

func TestRequestMissingCredential(t *testing.T) {
	client := NewClient("http://localhost:1", "")

	_, err := client.Get(context.Background(), "/v1/leads", nil)
	var mediated *Error
	require.ErrorAs(t, err, &mediated)
	require.Equal(t, KindConfigurationMissing, mediated.Kind)
}

func TestRequestStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{http.StatusUnauthorized, KindAuthenticationFailed},
		{http.StatusForbidden, KindAuthenticationFailed},
		{http.StatusNotFound, KindNotFound},
		{http.StatusTooManyRequests, KindUpstreamThrottled},
		{http.StatusInternalServerError, KindUpstreamServerError},
		{http.StatusBadGateway, KindUpstreamServerError},
		{http.StatusTeapot, KindUnexpectedUpstreamError},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
		}))

		client := newTestClient(server.URL)
		_, err := client.Get(context.Background(), "/v1/leads/99", nil)

		var mediated *Error
		require.ErrorAs(t, err, &mediated, "status %d", tc.status)
		require.Equal(t, tc.kind, mediated.Kind, "status %d", tc.status)
		require.Equal(t, tc.status, mediated.StatusCode)
		require.NotContains(t, mediated.Error(), "test-key", "credential must not leak")

		server.Close()
	}
}

func TestRequestUpstreamRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "42")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Get(context.Background(), "/v1/leads", nil)

	var mediated *Error
	require.ErrorAs(t, err, &mediated)
	require.Equal(t, KindUpstreamThrottled, mediated.Kind)
	require.Equal(t, 42*time.Second, mediated.RetryAfter)
	require.True(t, mediated.Temporary())
}

func TestRequestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.Timeout = 50 * time.Millisecond

	_, err := client.Get(context.Background(), "/v1/leads", nil)

	var mediated *Error
	require.ErrorAs(t, err, &mediated)
	require.Equal(t, KindUpstreamTimeout, mediated.Kind)
}

func TestRequestNetworkUnavailable(t *testing.T) {
	// Closed server yields connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := newTestClient(serverURL)
	_, err := client.Get(context.Background(), "/v1/leads", nil)

	var mediated *Error
	require.ErrorAs(t, err, &mediated)
	require.Equal(t, KindNetworkUnavailable, mediated.Kind)
}

func TestClassifyIdempotent(t *testing.T) {
	original := &Error{Kind: KindNotFound, StatusCode: 404, Message: "gone"}
	require.Same(t, original, Classify(original))
	require.Same(t, original, Classify(Classify(original)))
}

func TestClassifyDeadlineExceeded(t *testing.T) {
	mediated := Classify(context.DeadlineExceeded)
	require.Equal(t, KindUpstreamTimeout, mediated.Kind)
}

func TestClassifyUnknownError(t *testing.T) {
	mediated := Classify(errors.New("something odd"))
	require.Equal(t, KindUnexpectedUpstreamError, mediated.Kind)
}

func TestResolveURL(t *testing.T) {
	client := NewClient("https://api.multilead.io/api/open-api/v1", "k")

	require.Equal(t,
		"https://api.multilead.io/api/open-api/v1/v1/leads/42",
		client.resolveURL("/v1/leads/42"))
	require.Equal(t,
		"https://api.multilead.io/api/open-api/v2/users/7/transfer_credits",
		client.resolveURL("/api/open-api/v2/users/7/transfer_credits"))
}

func TestClassifyStatusTotal(t *testing.T) {
	require.Equal(t, Kind(""), ClassifyStatus(200))
	require.Equal(t, Kind(""), ClassifyStatus(204))
	require.Equal(t, KindAuthenticationFailed, ClassifyStatus(401))
	require.Equal(t, KindNotFound, ClassifyStatus(404))
	require.Equal(t, KindUpstreamThrottled, ClassifyStatus(429))
	require.Equal(t, KindUpstreamServerError, ClassifyStatus(503))
	require.Equal(t, KindUnexpectedUpstreamError, ClassifyStatus(302))
	require.Equal(t, KindUnexpectedUpstreamError, ClassifyStatus(400))
}
