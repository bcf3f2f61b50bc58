package tools

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/multilead/multilead-mcp/internal/config"
)

const (
	configResourceURI = "multilead://config"
	statsResourceURI  = "multilead://stats"
)

// attachResources registers the read-only server resources. The config
// resource never exposes the credential value, only whether one is set.
func (r *Registry) attachResources(server *mcp.Server) {
	server.AddResource(&mcp.Resource{
		URI:         configResourceURI,
		Name:        "Multilead MCP Server Configuration",
		Description: "Current server configuration including API base URL, timeout settings, and tool catalog summary",
		MIMEType:    "text/markdown",
	}, r.handleConfigResource)

	server.AddResource(&mcp.Resource{
		URI:         statsResourceURI,
		Name:        "Multilead API Statistics",
		Description: "Account statistics including lead count, campaign count, and rate limit usage",
		MIMEType:    "text/markdown",
	}, r.handleStatsResource)
}

func (r *Registry) handleConfigResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	cfg := config.GetConfig()
	if cfg == nil {
		cfg = &config.Config{BaseURL: r.client.BaseURL}
	}

	keyStatus := "NOT CONFIGURED"
	if r.client.Configured() {
		keyStatus = "Configured"
	}

	text := fmt.Sprintf(`# Multilead MCP Server Configuration

**API Base URL:** %s
**Timeout:** %d seconds
**API Key Status:** %s
**Rate Limit:** %d requests/minute, %d requests/hour
**Registered Tools:** %d

## Environment Variables
- MULTILEAD_API_KEY: %s
- MULTILEAD_BASE_URL: %s
- MULTILEAD_TIMEOUT_SECONDS: %d

To use this server, ensure a valid Multilead API key is set as
MULTILEAD_API_KEY and the host can reach the API base URL.
`,
		cfg.BaseURL,
		cfg.TimeoutSeconds,
		keyStatus,
		cfg.RateLimitPerMinute,
		cfg.RateLimitPerHour,
		r.Len(),
		keyStatus,
		cfg.BaseURL,
		cfg.TimeoutSeconds,
	)

	return resourceText(configResourceURI, text), nil
}

func (r *Registry) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	payload, err := r.client.Request(ctx, http.MethodGet, "/v1/account/stats", nil, nil)
	if err != nil {
		text := fmt.Sprintf("# Multilead API Statistics\n\nError fetching statistics: %v\n", err)
		return resourceText(statsResourceURI, text), nil
	}

	stats, _ := payload.(map[string]any)
	account, _ := stats["account"].(map[string]any)
	usage, _ := stats["usage"].(map[string]any)

	text := fmt.Sprintf(`# Multilead API Statistics

**Total Leads:** %s
**Total Campaigns:** %s
**Active Campaigns:** %s
**API Requests (Today):** %s
**Rate Limit:** %s requests/hour
**Rate Limit Remaining:** %s

Last updated: %s
`,
		statValue(account, "leads_count", stats, "total_leads"),
		statValue(account, "campaigns_count", stats, "campaigns_count"),
		statValue(account, "active_campaigns", stats, "active_campaigns"),
		statValue(usage, "api_calls_today", stats, "api_requests_today"),
		statValue(usage, "rate_limit", stats, "rate_limit"),
		statValue(usage, "rate_limit_remaining", stats, "rate_limit_remaining"),
		time.Now().Format(time.RFC3339),
	)

	return resourceText(statsResourceURI, text), nil
}

// statValue reads a stat from the nested section, falling back to the
// flat top-level key some API versions use.
func statValue(section map[string]any, key string, top map[string]any, fallbackKey string) string {
	if v, ok := section[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	if v, ok := top[fallbackKey]; ok {
		return fmt.Sprintf("%v", v)
	}
	return "N/A"
}

func resourceText(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: "text/markdown", Text: text},
		},
	}
}
