package invoke

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/multilead/multilead-mcp/internal/ratelimit"
	"github.com/multilead/multilead-mcp/internal/upstream"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func echoHandler(ctx context.Context, inv *Invocation) *Result {
	return Ok(map[string]any{"tool": inv.Tool})
}

func TestChainOrdering(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, inv *Invocation) *Result {
				order = append(order, name)
				return next(ctx, inv)
			}
		}
	}

	h := Chain(echoHandler, tag("outer"), tag("inner"))
	result := h(context.Background(), &Invocation{Tool: "get_lead"})

	require.Nil(t, result.Err)
	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestWithRateLimitRejectsOverQuota(t *testing.T) {
	g := ratelimit.New(2, 100)
	h := Chain(echoHandler, WithRateLimit(g, "stdio"))

	ctx := WithClientIdentity(context.Background(), "session-1")

	require.Nil(t, h(ctx, &Invocation{Tool: "list_leads"}).Err)
	require.Nil(t, h(ctx, &Invocation{Tool: "list_leads"}).Err)

	result := h(ctx, &Invocation{Tool: "list_leads"})
	require.NotNil(t, result.Err)
	require.Equal(t, upstream.KindLocallyThrottled, result.Err.Kind)
	require.Greater(t, result.Err.RetryAfter, time.Duration(0))
	require.LessOrEqual(t, result.Err.RetryAfter, time.Minute)
}

func TestWithRateLimitDoesNotInvokeHandlerOnReject(t *testing.T) {
	g := ratelimit.New(1, 100)
	calls := 0
	counting := func(ctx context.Context, inv *Invocation) *Result {
		calls++
		return Ok(nil)
	}

	h := Chain(counting, WithRateLimit(g, "stdio"))
	ctx := WithClientIdentity(context.Background(), "session-2")

	h(ctx, &Invocation{Tool: "get_lead"})
	h(ctx, &Invocation{Tool: "get_lead"})
	h(ctx, &Invocation{Tool: "get_lead"})

	require.Equal(t, 1, calls)
}

func TestClientIdentityDefaultsToLocal(t *testing.T) {
	require.Equal(t, LocalIdentity, ClientIdentityFrom(context.Background()))

	ctx := WithClientIdentity(context.Background(), "ip:10.0.0.1")
	require.Equal(t, "ip:10.0.0.1", ClientIdentityFrom(ctx))
}

func TestWithClassificationNormalizesNilResult(t *testing.T) {
	broken := func(ctx context.Context, inv *Invocation) *Result { return nil }
	h := Chain(broken, WithClassification())

	result := h(context.Background(), &Invocation{Tool: "get_lead"})
	require.NotNil(t, result)
	require.NotNil(t, result.Err)
	require.Equal(t, upstream.KindUnexpectedUpstreamError, result.Err.Kind)
}

func TestWithClassificationIdempotent(t *testing.T) {
	failure := &upstream.Error{Kind: upstream.KindNotFound, StatusCode: 404, Message: "gone"}
	failing := func(ctx context.Context, inv *Invocation) *Result { return Fail(failure) }

	h := Chain(failing, WithClassification(), WithClassification())
	result := h(context.Background(), &Invocation{Tool: "get_lead"})

	require.Same(t, failure, result.Err)
}

func TestWithLoggingPassesThroughNilLogger(t *testing.T) {
	h := Chain(echoHandler, WithLogging(nil))
	result := h(context.Background(), &Invocation{Tool: "get_lead"})
	require.Nil(t, result.Err)
	require.NotNil(t, result.Payload)
}

type logRecord struct {
	level  string
	msg    string
	fields map[string]any
}

// recordingLogger captures what WithLogging emits.
type recordingLogger struct {
	records []logRecord
}

func (r *recordingLogger) capture(level, msg string, fields []zap.Field) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	r.records = append(r.records, logRecord{level: level, msg: msg, fields: enc.Fields})
}

func (r *recordingLogger) Info(msg string, fields ...zap.Field) { r.capture("info", msg, fields) }
func (r *recordingLogger) Warn(msg string, fields ...zap.Field) { r.capture("warn", msg, fields) }

func TestWithLoggingEmitsOneRecordPerInvocation(t *testing.T) {
	rec := &recordingLogger{}
	h := Chain(echoHandler, WithLogging(rec))

	ctx := WithClientIdentity(context.Background(), "ip:10.0.0.1")
	result := h(ctx, &Invocation{Tool: "get_lead", Args: map[string]any{"lead_id": "42"}})
	require.Nil(t, result.Err)

	require.Len(t, rec.records, 1)
	record := rec.records[0]
	require.Equal(t, "info", record.level)
	require.Equal(t, "get_lead", record.fields["tool"])
	require.Equal(t, "success", record.fields["outcome"])
	require.Equal(t, "ip:10.0.0.1", record.fields["client"])
	require.Contains(t, record.fields, "duration")
}

func TestWithLoggingEmitsOneRecordOnFailure(t *testing.T) {
	rec := &recordingLogger{}
	failing := func(ctx context.Context, inv *Invocation) *Result {
		return Fail(&upstream.Error{Kind: upstream.KindNotFound, StatusCode: 404, Message: "lead not found"})
	}
	h := Chain(failing, WithLogging(rec))

	result := h(context.Background(), &Invocation{Tool: "get_lead", Args: map[string]any{"lead_id": "99"}})
	require.NotNil(t, result.Err)

	require.Len(t, rec.records, 1)
	record := rec.records[0]
	require.Equal(t, "warn", record.level)
	require.Equal(t, string(upstream.KindNotFound), record.fields["outcome"])
	require.EqualValues(t, 404, record.fields["upstream_status"])
}

func TestWithLoggingNeverLogsArgumentsOrCredentials(t *testing.T) {
	rec := &recordingLogger{}
	h := Chain(echoHandler, WithLogging(rec))

	const secretKey = "sk-multilead-secret"
	const secretArg = "hunter2-password"
	client := upstream.NewClient("https://api.example.com", secretKey)

	result := h(context.Background(), &Invocation{
		Tool:   "connect_linkedin_account",
		Args:   map[string]any{"email": "a@b.com", "password": secretArg},
		Client: client,
	})
	require.Nil(t, result.Err)

	require.Len(t, rec.records, 1)
	rendered := fmt.Sprint(rec.records[0].msg, rec.records[0].fields)
	require.NotContains(t, rendered, secretKey)
	require.NotContains(t, rendered, secretArg)
	require.NotContains(t, rendered, "a@b.com")
}

func TestThrottledInvocationStillLogged(t *testing.T) {
	rec := &recordingLogger{}
	g := ratelimit.New(1, 100)
	h := Chain(echoHandler,
		WithClassification(),
		WithLogging(rec),
		WithRateLimit(g, "stdio"),
	)

	ctx := WithClientIdentity(context.Background(), "session-3")
	require.Nil(t, h(ctx, &Invocation{Tool: "get_lead"}).Err)

	result := h(ctx, &Invocation{Tool: "get_lead"})
	require.NotNil(t, result.Err)
	require.Equal(t, upstream.KindLocallyThrottled, result.Err.Kind)

	require.Len(t, rec.records, 2)
	rejected := rec.records[1]
	require.Equal(t, "warn", rejected.level)
	require.Equal(t, string(upstream.KindLocallyThrottled), rejected.fields["outcome"])
}
