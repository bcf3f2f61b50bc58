package metrics

import (
	"time"

	"github.com/multilead/multilead-mcp/internal/observability"
)

// Application-level metrics following Prometheus conventions
var (
	// Tool invocation metrics
	ToolInvocationsTotal    = "app_tool_invocations_total"
	ToolInvocationDuration  = "app_tool_invocation_duration_ms"
	RateLimitRejectionTotal = "app_rate_limit_rejections_total"

	// Upstream call metrics
	UpstreamRequestsTotal   = "app_upstream_requests_total"
	UpstreamRequestDuration = "app_upstream_request_duration_ms"

	// Server lifecycle metrics
	ServerStartTime = "app_server_start_time_seconds"
)

// RecordToolInvocation records one tool invocation with its outcome
// classification ("success" or a failure kind).
func RecordToolInvocation(tool, outcome string, duration time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}

	labels := map[string]string{
		"tool":    tool,
		"outcome": outcome,
	}

	_ = observability.TelemetrySystem.Counter(ToolInvocationsTotal, 1, labels)
	_ = observability.TelemetrySystem.Histogram(ToolInvocationDuration, duration, labels)
}

// RecordRateLimitRejection records a local rate-governor rejection.
// Scope is "http" or "stdio" depending on the transport that hit the limit.
func RecordRateLimitRejection(scope string) {
	if observability.TelemetrySystem == nil {
		return
	}

	_ = observability.TelemetrySystem.Counter(
		RateLimitRejectionTotal,
		1,
		map[string]string{"scope": scope},
	)
}

// RecordUpstreamRequest records one upstream API call with its outcome.
func RecordUpstreamRequest(outcome string, duration time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}

	labels := map[string]string{"outcome": outcome}

	_ = observability.TelemetrySystem.Counter(UpstreamRequestsTotal, 1, labels)
	_ = observability.TelemetrySystem.Histogram(UpstreamRequestDuration, duration, labels)
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerStartTime,
			float64(timestamp),
			nil,
		)
	}
}
