package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/multilead/multilead-mcp/internal/config"
	"github.com/multilead/multilead-mcp/internal/ratelimit"
	"github.com/multilead/multilead-mcp/internal/server/handlers"
	"github.com/multilead/multilead-mcp/internal/tools"
	"github.com/multilead/multilead-mcp/internal/upstream"
)

func newTestServer(t *testing.T, apiKey string, perMinute, perHour int) *Server {
	t.Helper()

	cfg := &config.Config{
		APIKey:             apiKey,
		BaseURL:            "https://upstream.invalid/api/open-api/v1",
		TimeoutSeconds:     5,
		RateLimitPerMinute: perMinute,
		RateLimitPerHour:   perHour,
		Server:             config.ServerConfig{Host: "localhost", Port: 0},
	}

	client := upstream.NewClient(cfg.BaseURL, cfg.APIKey)
	registry := tools.NewRegistry(client)
	governor := ratelimit.New(perMinute, perHour)
	health := handlers.NewHealthManager("multilead-mcp", "test", "http", cfg)

	return New(cfg, registry, governor, health)
}

func TestHealthRoute(t *testing.T) {
	srv := newTestServer(t, "test-key", 100, 1000)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body.Status)
	require.True(t, body.APIConfigured)
}

func TestHealthRouteDegraded(t *testing.T) {
	srv := newTestServer(t, "", 100, 1000)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "degraded", body.Status)
	require.False(t, body.APIConfigured)
}

func TestVersionRoute(t *testing.T) {
	srv := newTestServer(t, "test-key", 100, 1000)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestNotFoundEnvelope(t *testing.T) {
	srv := newTestServer(t, "test-key", 100, 1000)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "NOT_FOUND", body.Error.Code)
	require.NotEmpty(t, body.Error.Message)
}

func TestMCPRouteRateLimited(t *testing.T) {
	srv := newTestServer(t, "test-key", 2, 100)

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
		req.RemoteAddr = "10.1.2.3:55000"
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		return rec
	}

	// The first two requests pass the governor and reach the MCP handler;
	// whatever it answers, it is not a quota rejection.
	require.NotEqual(t, http.StatusTooManyRequests, call().Code)
	require.NotEqual(t, http.StatusTooManyRequests, call().Code)

	rec := call()
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "RATE_LIMITED", body.Error.Code)
}

func TestMCPQuotaIsPerClient(t *testing.T) {
	srv := newTestServer(t, "test-key", 1, 100)

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		return rec.Code
	}

	require.NotEqual(t, http.StatusTooManyRequests, call("10.0.0.1:1111"))
	require.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1111"))

	// A different client address has its own windows.
	require.NotEqual(t, http.StatusTooManyRequests, call("10.0.0.2:2222"))
}
