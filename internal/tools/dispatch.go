package tools

import (
	"context"
	"errors"
	"net/url"

	"github.com/multilead/multilead-mcp/internal/invoke"
	"github.com/multilead/multilead-mcp/internal/upstream"
)

// dispatch performs one upstream request and folds the outcome into a
// Result. All tool handlers terminate here.
func (r *Registry) dispatch(ctx context.Context, inv *invoke.Invocation, method, endpoint string, query url.Values, reqBody any) *invoke.Result {
	payload, err := inv.Client.Request(ctx, method, endpoint, query, reqBody)
	if err != nil {
		var mediated *upstream.Error
		if errors.As(err, &mediated) {
			return invoke.Fail(mediated)
		}
		return invoke.Fail(upstream.Classify(err))
	}
	return invoke.Ok(payload)
}

// seatArgs extracts the user_id/account_id pair most seat-scoped
// endpoints require.
func seatArgs(args map[string]any) (userID, accountID string, fail *invoke.Result) {
	userID, fail = stringArg(args, "user_id")
	if fail != nil {
		return "", "", fail
	}
	accountID, fail = stringArg(args, "account_id")
	if fail != nil {
		return "", "", fail
	}
	return userID, accountID, nil
}
