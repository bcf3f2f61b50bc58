package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/multilead/multilead-mcp/internal/invoke"
)

func (r *Registry) registerStatisticsTools() {
	r.add(&Tool{
		Name:        "get_statistics",
		Description: "Retrieve seat statistics, optionally filtered to one campaign and a date range (YYYY-MM-DD).",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			map[string]string{"campaign_id": "string", "start_date": "string", "end_date": "string"},
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/statistics", userID, accountID),
				statisticsQuery(inv.Args), nil)
		},
	})

	r.add(&Tool{
		Name:        "get_step_statistics",
		Description: "Retrieve per-step statistics for a seat's campaigns.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			map[string]string{"campaign_id": "string", "start_date": "string", "end_date": "string"},
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/statistics/steps", userID, accountID),
				statisticsQuery(inv.Args), nil)
		},
	})

	r.add(&Tool{
		Name:        "export_statistics_csv",
		Description: "Export seat statistics as CSV, optionally filtered by campaign and date range.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			map[string]string{"campaign_id": "string", "start_date": "string", "end_date": "string"},
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/statistics/export_csv", userID, accountID),
				statisticsQuery(inv.Args), nil)
		},
	})

	r.add(&Tool{
		Name:        "get_all_campaigns_statistics",
		Description: "Retrieve aggregate statistics across every campaign on a seat.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			map[string]string{"start_date": "string", "end_date": "string"},
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/all_campaigns_statistics", userID, accountID),
				statisticsQuery(inv.Args), nil)
		},
	})
}

// statisticsQuery builds the shared campaign/date-range filter query.
func statisticsQuery(args map[string]any) url.Values {
	q := url.Values{}
	if campaignID := optStringArg(args, "campaign_id"); campaignID != "" {
		q.Set("campaignId", campaignID)
	}
	if start := optStringArg(args, "start_date"); start != "" {
		q.Set("startDate", start)
	}
	if end := optStringArg(args, "end_date"); end != "" {
		q.Set("endDate", end)
	}
	return q
}
