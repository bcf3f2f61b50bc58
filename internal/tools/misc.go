package tools

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/multilead/multilead-mcp/internal/invoke"
)

func (r *Registry) registerMiscTools() {
	r.add(&Tool{
		Name:        "connect_linkedin_account",
		Description: "Connect a LinkedIn account to a seat using its credentials. The credentials are forwarded upstream and never stored or logged by this server.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "email": "string", "password": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			email, fail := stringArg(inv.Args, "email")
			if fail != nil {
				return fail
			}
			password, fail := stringArg(inv.Args, "password")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/accounts/%s/connect_linkedin", userID, accountID), nil,
				body{"email": email, "password": password})
		},
	})

	r.add(&Tool{
		Name:        "disconnect_linkedin_account",
		Description: "Disconnect the LinkedIn account attached to a seat.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPatch,
				fmt.Sprintf("/users/%s/accounts/%s/disconnect_linkedin", userID, accountID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "get_linkedin_user_info",
		Description: "Retrieve a LinkedIn user's profile. Only available once a conversation with them exists on the seat.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "linkedin_user_id": "string"},
			nil,
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			linkedinUserID, fail := stringArg(inv.Args, "linkedin_user_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/linkedin_users/%s", userID, accountID, linkedinUserID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "get_description_for_id_type",
		Description: "Resolve internal identifier types to human-readable descriptions. Accepts one or more ids.",
		Schema:      objectSchema(map[string]string{"ids": "[]string"}, nil),
		ReadOnly:    true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			ids, fail := listArg(inv.Args, "ids")
			if fail != nil {
				return fail
			}
			parts := make([]string, 0, len(ids))
			for _, id := range ids {
				s, ok := id.(string)
				if !ok || s == "" {
					return argError("argument ids must contain non-empty strings")
				}
				parts = append(parts, s)
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/identityType/ids/%s", strings.Join(parts, ",")), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "activate_inboxflare_warmup",
		Description: "Activate Inboxflare email warmup for a user.",
		Schema:      objectSchema(map[string]string{"user_id": "string"}, nil),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/activate_warmup_inboxflare", userID), nil, nil)
		},
	})
}
