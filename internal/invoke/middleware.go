package invoke

import (
	"context"
	"time"

	"github.com/multilead/multilead-mcp/internal/metrics"
	"github.com/multilead/multilead-mcp/internal/ratelimit"
	"github.com/multilead/multilead-mcp/internal/upstream"
	"go.uber.org/zap"
)

// WithRateLimit gates invocations through the governor using the client
// identity from the context. Rejected invocations never reach the
// handler, so no upstream quota is consumed.
func WithRateLimit(g *ratelimit.Governor, scope string) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, inv *Invocation) *Result {
			identity := ClientIdentityFrom(ctx)

			decision := g.Allow(identity)
			if !decision.Allowed {
				metrics.RecordRateLimitRejection(scope)
				return Fail(&upstream.Error{
					Kind:       upstream.KindLocallyThrottled,
					Message:    "rate limit exceeded, slow down",
					RetryAfter: decision.RetryAfter,
				})
			}

			return next(ctx, inv)
		}
	}
}

// InvocationLogger is the slice of the application logger the pipeline
// needs. *logging.Logger satisfies it.
type InvocationLogger interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
}

// WithLogging emits exactly one structured log record per invocation,
// covering both success and failure. Arguments and credentials are
// never logged; only the tool name, outcome, and timing are.
func WithLogging(logger InvocationLogger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, inv *Invocation) *Result {
			start := time.Now()
			result := next(ctx, inv)
			duration := time.Since(start)

			outcome := "success"
			if result != nil && result.Err != nil {
				outcome = string(result.Err.Kind)
			}

			metrics.RecordToolInvocation(inv.Tool, outcome, duration)

			if logger != nil {
				fields := []zap.Field{
					zap.String("tool", inv.Tool),
					zap.String("outcome", outcome),
					zap.Duration("duration", duration),
					zap.String("client", ClientIdentityFrom(ctx)),
				}
				if result != nil && result.Err != nil {
					if result.Err.StatusCode > 0 {
						fields = append(fields, zap.Int("upstream_status", result.Err.StatusCode))
					}
					logger.Warn("tool invocation failed", fields...)
				} else {
					logger.Info("tool invocation completed", fields...)
				}
			}

			return result
		}
	}
}

// WithClassification normalizes stray failures so every Result the
// transport sees carries a taxonomy kind. Applying it twice changes
// nothing.
func WithClassification() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, inv *Invocation) *Result {
			result := next(ctx, inv)
			if result == nil {
				return Fail(&upstream.Error{
					Kind:    upstream.KindUnexpectedUpstreamError,
					Message: "tool handler returned no result",
				})
			}
			if result.Err != nil {
				result.Err = upstream.Classify(result.Err)
			}
			return result
		}
	}
}
