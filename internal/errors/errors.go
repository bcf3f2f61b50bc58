// Package errors shapes every HTTP-visible failure as a gofulmen
// ErrorEnvelope with a stable code. The codes mirror the tool-invocation
// failure taxonomy so callers see one classification on both transports.
package errors

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulmenhq/gofulmen/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/multilead/multilead-mcp/internal/metrics"
	"github.com/multilead/multilead-mcp/internal/observability"
	"github.com/multilead/multilead-mcp/internal/server/middleware"
)

// Envelope codes used across the HTTP surface.
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeNotFound        = "NOT_FOUND"
	CodeMethodNotAllow  = "METHOD_NOT_ALLOWED"
	CodeRateLimited     = "RATE_LIMITED"
	CodeConfigMissing   = "CONFIGURATION_MISSING"
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeInternal        = "INTERNAL_ERROR"
	CodeUpstreamFailure = "EXTERNAL_SERVICE_ERROR"
	CodeTimeout         = "TIMEOUT"
)

// codeStatus maps envelope codes to HTTP statuses. Unlisted codes answer 500.
var codeStatus = map[string]int{
	CodeInvalidInput:      http.StatusBadRequest,
	"VALIDATION_FAILED":   http.StatusBadRequest,
	CodeNotFound:          http.StatusNotFound,
	CodeMethodNotAllow:    http.StatusMethodNotAllowed,
	CodeRateLimited:       http.StatusTooManyRequests,
	CodeTimeout:           http.StatusGatewayTimeout,
	CodeUpstreamFailure:   http.StatusBadGateway,
	CodeConfigMissing:     http.StatusServiceUnavailable,
	"SERVICE_UNAVAILABLE": http.StatusServiceUnavailable,
}

// New builds an envelope with the given code.
func New(code, message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(code, message)
}

func NewNotFoundError(message string) *errors.ErrorEnvelope {
	return New(CodeNotFound, message)
}

func NewMethodNotAllowedError(message string) *errors.ErrorEnvelope {
	return New(CodeMethodNotAllow, message)
}

func NewRateLimitedError(message string) *errors.ErrorEnvelope {
	return New(CodeRateLimited, message)
}

func NewInternalError(message string) *errors.ErrorEnvelope {
	return New(CodeInternal, message)
}

// WrapInternal wraps err as an internal failure, correlated to the request.
func WrapInternal(ctx context.Context, err error, message string) *errors.ErrorEnvelope {
	return wrap(ctx, err, CodeInternal, message)
}

// WrapConfigInvalid wraps a configuration loading or validation failure.
func WrapConfigInvalid(ctx context.Context, err error, message string) *errors.ErrorEnvelope {
	return wrap(ctx, err, CodeConfigInvalid, message)
}

func wrap(ctx context.Context, err error, code, message string) *errors.ErrorEnvelope {
	envelope := New(code, message).WithCorrelationID(correlationID(ctx))
	if err != nil {
		if updated, uerr := envelope.WithContext(map[string]interface{}{
			"wrapped_error": err.Error(),
		}); uerr == nil {
			envelope = updated
		}
	}
	return envelope
}

// correlationID resolves the request ID from context, minting one when absent.
func correlationID(ctx context.Context) string {
	if ctx != nil {
		if id := middleware.GetRequestID(ctx); id != "" {
			return id
		}
	}
	return uuid.NewString()
}

// EnsureEnvelope normalizes any error into an ErrorEnvelope. Plain errors
// become INTERNAL_ERROR with the wrapped message carried in context, not
// in the caller-visible message.
func EnsureEnvelope(err error) *errors.ErrorEnvelope {
	if envelope, ok := err.(*errors.ErrorEnvelope); ok && envelope != nil {
		return envelope
	}

	envelope := New(CodeInternal, "unexpected error")
	if err != nil {
		if updated, uerr := envelope.WithContext(map[string]interface{}{
			"wrapped_error": err.Error(),
		}); uerr == nil {
			envelope = updated
		}
	}
	envelope, _ = envelope.WithSeverity(errors.SeverityHigh)
	return envelope
}

// StatusFor resolves the HTTP status for an envelope.
func StatusFor(envelope *errors.ErrorEnvelope) int {
	if envelope != nil {
		if status, ok := codeStatus[envelope.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// HTTPErrorDetail is the error body returned to callers.
type HTTPErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// HTTPErrorResponse wraps HTTPErrorDetail in the standard envelope structure.
type HTTPErrorResponse struct {
	Error HTTPErrorDetail `json:"error"`
}

// RespondWithError normalizes err and writes the JSON error response.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	RespondWithEnvelope(w, r, EnsureEnvelope(err))
}

// RespondWithEnvelope finalizes the envelope (correlation ID, log record,
// metrics) and writes it.
func RespondWithEnvelope(w http.ResponseWriter, r *http.Request, envelope *errors.ErrorEnvelope) {
	if w == nil || envelope == nil {
		return
	}

	if envelope.CorrelationID == "" {
		var ctx context.Context
		if r != nil {
			ctx = r.Context()
		}
		envelope = envelope.WithCorrelationID(correlationID(ctx))
	}

	status := StatusFor(envelope)

	logEnvelope(envelope, status)
	metrics.RecordError(envelope.Code, status)
	if r != nil {
		metrics.RecordErrorByEndpoint(r.URL.Path, envelope.Code)
	}

	body := HTTPErrorResponse{
		Error: HTTPErrorDetail{
			Code:      envelope.Code,
			Message:   envelope.Message,
			Details:   responseDetails(envelope),
			RequestID: envelope.CorrelationID,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// responseDetails merges envelope details and context, details winning.
func responseDetails(envelope *errors.ErrorEnvelope) map[string]interface{} {
	if len(envelope.Details) == 0 && len(envelope.Context) == 0 {
		return nil
	}

	details := make(map[string]interface{}, len(envelope.Details)+len(envelope.Context))
	for key, value := range envelope.Context {
		details[key] = value
	}
	for key, value := range envelope.Details {
		details[key] = value
	}
	return details
}

// logEnvelope emits one log record per error response, leveled by severity.
func logEnvelope(envelope *errors.ErrorEnvelope, status int) {
	if observability.ServerLogger == nil {
		return
	}

	fields := []zap.Field{
		zap.String("error_code", envelope.Code),
		zap.Int("http_status", status),
		zap.String("request_id", envelope.CorrelationID),
	}
	if envelope.Severity != "" {
		fields = append(fields, zap.String("severity", string(envelope.Severity)))
	}
	for key, value := range envelope.Context {
		fields = append(fields, zap.Any(key, value))
	}

	switch envelope.Severity {
	case errors.SeverityCritical, errors.SeverityHigh:
		observability.ServerLogger.Error(envelope.Message, fields...)
	case errors.SeverityMedium:
		observability.ServerLogger.Warn(envelope.Message, fields...)
	default:
		observability.ServerLogger.Info(envelope.Message, fields...)
	}
}
