// Package handlers implements the plain HTTP endpoints that sit beside
// the MCP surface: health, version.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// CredentialReporter reports whether the upstream credential is present.
// Presence only: no network call is made and the value never leaves the
// process.
type CredentialReporter interface {
	Configured() bool
}

// HealthResponse is the health endpoint body. api_configured reflects
// credential presence, not validity.
type HealthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Version       string `json:"version"`
	Timestamp     string `json:"timestamp"`
	Transport     string `json:"transport"`
	APIConfigured bool   `json:"api_configured"`
	Message       string `json:"message,omitempty"`
}

// HealthManager serves health requests for one transport.
type HealthManager struct {
	service    string
	version    string
	transport  string
	credential CredentialReporter
}

// NewHealthManager creates a health manager.
func NewHealthManager(service, version, transport string, credential CredentialReporter) *HealthManager {
	return &HealthManager{
		service:    service,
		version:    version,
		transport:  transport,
		credential: credential,
	}
}

// Check builds the current health snapshot.
func (hm *HealthManager) Check() HealthResponse {
	configured := hm.credential != nil && hm.credential.Configured()

	response := HealthResponse{
		Status:        "healthy",
		Service:       hm.service,
		Version:       hm.version,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Transport:     hm.transport,
		APIConfigured: configured,
	}

	if !configured {
		response.Status = "degraded"
		response.Message = "API key not configured"
	}

	return response
}

// HealthHandler handles health check requests. Load balancers treat
// anything but "healthy" as out of rotation, so a missing credential
// answers 503 while still describing itself in the body.
func (hm *HealthManager) HealthHandler(w http.ResponseWriter, r *http.Request) {
	response := hm.Check()

	statusCode := http.StatusOK
	if response.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}
