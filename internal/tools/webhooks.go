package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/multilead/multilead-mcp/internal/invoke"
)

func (r *Registry) registerWebhookTools() {
	r.add(&Tool{
		Name:        "create_webhook",
		Description: "Register webhooks on a seat. Each webhook is an object with event and target URL.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "webhooks": "[]map[string]any"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			webhooks, fail := listArg(inv.Args, "webhooks")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/accounts/%s/webhooks", userID, accountID), nil,
				body{"webhooks": webhooks})
		},
	})

	r.add(&Tool{
		Name:        "create_global_webhook",
		Description: "Register global webhooks on a seat, firing for events across all campaigns.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "webhooks": "[]map[string]any"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			webhooks, fail := listArg(inv.Args, "webhooks")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/accounts/%s/global_webhook", userID, accountID), nil,
				body{"webhooks": webhooks})
		},
	})

	r.add(&Tool{
		Name:        "list_webhooks",
		Description: "List the webhooks registered on a seat.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			nil,
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/webhooks", userID, accountID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "list_global_webhooks",
		Description: "List the global webhooks registered on a seat.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			nil,
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/global_webhooks", userID, accountID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "delete_webhook",
		Description: "Delete one webhook from a seat.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "webhook_id": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			webhookID, fail := stringArg(inv.Args, "webhook_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodDelete,
				fmt.Sprintf("/users/%s/accounts/%s/webhooks/%s", userID, accountID, webhookID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "delete_global_webhook",
		Description: "Delete the global webhook registered on a seat.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodDelete,
				fmt.Sprintf("/users/%s/accounts/%s/delete_global_webhook", userID, accountID), nil, nil)
		},
	})
}
