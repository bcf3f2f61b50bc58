package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/multilead/multilead-mcp/internal/invoke"
)

func (r *Registry) registerLeadTools() {
	r.add(&Tool{
		Name:        "create_lead",
		Description: "Create a new lead. Optional profile fields are omitted from the request when empty.",
		Schema: objectSchema(
			map[string]string{"email": "string"},
			map[string]string{
				"first_name":    "string",
				"last_name":     "string",
				"company":       "string",
				"title":         "string",
				"phone":         "string",
				"tags":          "[]string",
				"custom_fields": "map[string]any",
			},
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			email, fail := stringArg(inv.Args, "email")
			if fail != nil {
				return fail
			}

			lead := body{"email": email}
			lead.setString("first_name", optStringArg(inv.Args, "first_name"))
			lead.setString("last_name", optStringArg(inv.Args, "last_name"))
			lead.setString("company", optStringArg(inv.Args, "company"))
			lead.setString("title", optStringArg(inv.Args, "title"))
			lead.setString("phone", optStringArg(inv.Args, "phone"))
			lead.setList("tags", optListArg(inv.Args, "tags"))
			lead.setMap("custom_fields", optMapArg(inv.Args, "custom_fields"))

			return r.dispatch(ctx, inv, http.MethodPost, "/v1/leads", nil, lead)
		},
	})

	r.add(&Tool{
		Name:        "get_lead",
		Description: "Retrieve a single lead by its identifier.",
		Schema:      objectSchema(map[string]string{"lead_id": "string"}, nil),
		ReadOnly:    true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			leadID, fail := stringArg(inv.Args, "lead_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet, fmt.Sprintf("/v1/leads/%s", leadID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "list_leads",
		Description: "List and filter leads with pagination. Not available on every API version; the campaign-scoped lead tools are the alternative.",
		Schema: objectSchema(
			nil,
			map[string]string{
				"tags":           "[]string",
				"company":        "string",
				"created_after":  "string",
				"created_before": "string",
				"limit":          "int",
				"offset":         "int",
			},
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			q := url.Values{}
			q.Set("limit", strconv.Itoa(optIntArg(inv.Args, "limit", 100)))
			q.Set("offset", strconv.Itoa(optIntArg(inv.Args, "offset", 0)))
			if tags := optListArg(inv.Args, "tags"); len(tags) > 0 {
				q.Set("tags", commaJoin(tags))
			}
			if company := optStringArg(inv.Args, "company"); company != "" {
				q.Set("company", company)
			}
			if after := optStringArg(inv.Args, "created_after"); after != "" {
				q.Set("created_after", after)
			}
			if before := optStringArg(inv.Args, "created_before"); before != "" {
				q.Set("created_before", before)
			}
			return r.dispatch(ctx, inv, http.MethodGet, "/v1/leads", q, nil)
		},
	})

	r.add(&Tool{
		Name:        "update_lead",
		Description: "Update an existing lead. Only the provided fields are sent upstream.",
		Schema: objectSchema(
			map[string]string{"lead_id": "string"},
			map[string]string{
				"email":         "string",
				"first_name":    "string",
				"last_name":     "string",
				"company":       "string",
				"title":         "string",
				"phone":         "string",
				"custom_fields": "map[string]any",
			},
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			leadID, fail := stringArg(inv.Args, "lead_id")
			if fail != nil {
				return fail
			}

			update := body{}
			update.setString("email", optStringArg(inv.Args, "email"))
			update.setString("first_name", optStringArg(inv.Args, "first_name"))
			update.setString("last_name", optStringArg(inv.Args, "last_name"))
			update.setString("company", optStringArg(inv.Args, "company"))
			update.setString("title", optStringArg(inv.Args, "title"))
			update.setString("phone", optStringArg(inv.Args, "phone"))
			update.setMap("custom_fields", optMapArg(inv.Args, "custom_fields"))
			if len(update) == 0 {
				return argError("update_lead requires at least one field to change")
			}

			return r.dispatch(ctx, inv, http.MethodPut, fmt.Sprintf("/v1/leads/%s", leadID), nil, update)
		},
	})

	r.add(&Tool{
		Name:        "delete_lead",
		Description: "Permanently delete a lead by its identifier.",
		Schema:      objectSchema(map[string]string{"lead_id": "string"}, nil),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			leadID, fail := stringArg(inv.Args, "lead_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodDelete, fmt.Sprintf("/v1/leads/%s", leadID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "add_leads_to_campaign",
		Description: "Add one or more leads to a campaign. Each lead is an object of profile fields.",
		Schema: objectSchema(
			map[string]string{"campaign_id": "string", "leads": "[]map[string]any"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			campaignID, fail := stringArg(inv.Args, "campaign_id")
			if fail != nil {
				return fail
			}
			leads, fail := listArg(inv.Args, "leads")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/campaign/%s/leads", campaignID), nil, body{"leads": leads})
		},
	})

	r.add(&Tool{
		Name:        "update_lead_in_campaign",
		Description: "Update a lead's fields within the scope of one campaign.",
		Schema: objectSchema(
			map[string]string{"campaign_id": "string", "lead_id": "string", "fields": "map[string]any"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			campaignID, fail := stringArg(inv.Args, "campaign_id")
			if fail != nil {
				return fail
			}
			leadID, fail := stringArg(inv.Args, "lead_id")
			if fail != nil {
				return fail
			}
			fields := optMapArg(inv.Args, "fields")
			if len(fields) == 0 {
				return argError("update_lead_in_campaign requires a non-empty fields object")
			}
			return r.dispatch(ctx, inv, http.MethodPut,
				fmt.Sprintf("/api/open-api/v2/campaigns/%s/leads/%s", campaignID, leadID), nil, body(fields))
		},
	})

	r.add(&Tool{
		Name:        "pause_lead_execution",
		Description: "Pause campaign execution for a lead.",
		Schema:      objectSchema(map[string]string{"lead_id": "string"}, nil),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			leadID, fail := stringArg(inv.Args, "lead_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPatch, fmt.Sprintf("/leads/%s/pause", leadID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "resume_lead_execution",
		Description: "Resume campaign execution for a previously paused lead.",
		Schema:      objectSchema(map[string]string{"lead_id": "string"}, nil),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			leadID, fail := stringArg(inv.Args, "lead_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPatch, fmt.Sprintf("/leads/%s/continue", leadID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "get_leads_from_campaign",
		Description: "List the leads enrolled in a campaign, with optional pagination.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "campaign_id": "string"},
			map[string]string{"limit": "int", "offset": "int"},
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			campaignID, fail := stringArg(inv.Args, "campaign_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/campaigns/%s/leads", userID, accountID, campaignID),
				pagination(inv.Args), nil)
		},
	})

	r.add(&Tool{
		Name:        "get_leads_from_seat",
		Description: "List all leads visible to a seat, with optional pagination.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			map[string]string{"limit": "int", "offset": "int"},
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/leads", userID, accountID),
				pagination(inv.Args), nil)
		},
	})

	r.add(&Tool{
		Name:        "return_lead_to_campaign",
		Description: "Move a lead back into a campaign after it was removed or completed.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "lead_id": "string", "campaign_id": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			leadID, fail := stringArg(inv.Args, "lead_id")
			if fail != nil {
				return fail
			}
			campaignID, fail := stringArg(inv.Args, "campaign_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPatch,
				fmt.Sprintf("/users/%s/accounts/%s/leads/%s/change_campaign", userID, accountID, leadID),
				nil, body{"campaignId": campaignID})
		},
	})

	r.add(&Tool{
		Name:        "get_tags_for_leads",
		Description: "Retrieve the tags attached to specific leads.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "lead_ids": "[]string"},
			nil,
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			leadIDs, fail := listArg(inv.Args, "lead_ids")
			if fail != nil {
				return fail
			}
			q := url.Values{}
			q.Set("leadIds", "["+commaJoin(leadIDs)+"]")
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/leads/tags", userID, accountID), q, nil)
		},
	})

	r.add(&Tool{
		Name:        "assign_tag_to_lead",
		Description: "Assign an existing tag to a lead.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "lead_id": "string", "tag_id": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			return r.leadTagCall(ctx, inv, http.MethodPost)
		},
	})

	r.add(&Tool{
		Name:        "remove_tag_from_lead",
		Description: "Remove a tag from a lead.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "lead_id": "string", "tag_id": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			return r.leadTagCall(ctx, inv, http.MethodDelete)
		},
	})
}

// leadTagCall shares the tag assign/remove plumbing; only the method differs.
func (r *Registry) leadTagCall(ctx context.Context, inv *invoke.Invocation, method string) *invoke.Result {
	userID, accountID, fail := seatArgs(inv.Args)
	if fail != nil {
		return fail
	}
	leadID, fail := stringArg(inv.Args, "lead_id")
	if fail != nil {
		return fail
	}
	tagID, fail := stringArg(inv.Args, "tag_id")
	if fail != nil {
		return fail
	}
	return r.dispatch(ctx, inv, method,
		fmt.Sprintf("/users/%s/accounts/%s/leads/%s/tags/%s", userID, accountID, leadID, tagID), nil, nil)
}
