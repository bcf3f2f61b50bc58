// Package invoke defines the tool-invocation pipeline: a handler type
// plus composable middleware applied to every tool call regardless of
// transport. The chain enforces rate limits, classifies failures, and
// emits exactly one log record per invocation.
package invoke

import (
	"context"

	"github.com/multilead/multilead-mcp/internal/upstream"
)

// Invocation carries one tool call through the pipeline.
type Invocation struct {
	// Tool is the registered tool name, e.g. "create_lead".
	Tool string

	// Args holds the decoded tool arguments.
	Args map[string]any

	// Client is the upstream API client handlers dispatch through.
	Client *upstream.Client
}

// Result is the outcome of an invocation. Exactly one of Payload or Err
// is meaningful: a nil Err means Payload holds the mediated response.
type Result struct {
	Payload any
	Err     *upstream.Error
}

// Ok wraps a successful payload.
func Ok(payload any) *Result {
	return &Result{Payload: payload}
}

// Fail wraps a mediated failure.
func Fail(err *upstream.Error) *Result {
	return &Result{Err: err}
}

// Handler executes one tool invocation.
type Handler func(ctx context.Context, inv *Invocation) *Result

// Middleware wraps a handler with cross-cutting behavior.
type Middleware func(Handler) Handler

// Chain composes middlewares around a handler. The first middleware is
// outermost, matching net/http middleware ordering.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
