package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticCredential bool

func (s staticCredential) Configured() bool { return bool(s) }

func TestHealthHandlerConfigured(t *testing.T) {
	hm := NewHealthManager("multilead-mcp", "1.2.3", "http", staticCredential(true))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	hm.HealthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Status != "healthy" {
		t.Errorf("expected healthy, got %s", body.Status)
	}
	if !body.APIConfigured {
		t.Error("expected api_configured true")
	}
	if body.Service != "multilead-mcp" || body.Version != "1.2.3" || body.Transport != "http" {
		t.Errorf("unexpected identity fields: %+v", body)
	}
	if body.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestHealthHandlerMissingCredential(t *testing.T) {
	hm := NewHealthManager("multilead-mcp", "1.2.3", "stdio", staticCredential(false))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	hm.HealthHandler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var body HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Status != "degraded" {
		t.Errorf("expected degraded, got %s", body.Status)
	}
	if body.APIConfigured {
		t.Error("expected api_configured false")
	}
	if body.Message == "" {
		t.Error("expected an explanatory message")
	}
}

func TestVersionHandler(t *testing.T) {
	SetVersionInfo("9.9.9", "abc123", "2026-01-01")

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	VersionHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body VersionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.App.Version != "9.9.9" || body.App.Commit != "abc123" {
		t.Errorf("unexpected app info: %+v", body.App)
	}
	if body.Runtime.NumCPU <= 0 {
		t.Errorf("unexpected runtime info: %+v", body.Runtime)
	}
}
