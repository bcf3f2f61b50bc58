package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/multilead/multilead-mcp/internal/invoke"
)

func (r *Registry) registerCampaignTools() {
	r.add(&Tool{
		Name:        "get_campaign_list",
		Description: "List campaigns for a seat, with optional pagination.",
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
				fmt.Sprintf("/users/%s/accounts/%s/campaigns", userID, accountID),
				pagination(inv.Args), nil)
		},
	})

	r.add(&Tool{
		Name:        "get_campaign_info",
		Description: "Retrieve the full details of one campaign, including its sequence steps.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "campaign_id": "string"},
			nil,
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
				fmt.Sprintf("/users/%s/accounts/%s/campaigns/%s/details", userID, accountID, campaignID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "get_users_sequence_templates",
		Description: "List the saved sequence templates available to a user within a team.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "team_id": "string"},
			nil,
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			teamID, fail := stringArg(inv.Args, "team_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/teams/%s/saved_sequences", userID, teamID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "create_campaign_from_template",
		Description: "Create a campaign on a seat, optionally cloning an existing campaign template and attaching a lead source URL.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "name": "string"},
			map[string]string{"campaign_template_id": "string", "lead_source_url": "string"},
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			name, fail := stringArg(inv.Args, "name")
			if fail != nil {
				return fail
			}

			campaign := body{"name": name}
			campaign.setString("campaignTemplateId", optStringArg(inv.Args, "campaign_template_id"))
			campaign.setString("leadSourceUrl", optStringArg(inv.Args, "lead_source_url"))

			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/accounts/%s/campaigns", userID, accountID), nil, campaign)
		},
	})

	r.add(&Tool{
		Name:        "create_lead_source",
		Description: "Create a lead source on a seat from a search or list URL.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "url": "string"},
			map[string]string{"name": "string"},
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			sourceURL, fail := stringArg(inv.Args, "url")
			if fail != nil {
				return fail
			}

			source := body{"url": sourceURL}
			source.setString("name", optStringArg(inv.Args, "name"))

			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/accounts/%s/lead_sources", userID, accountID), nil, source)
		},
	})

	r.add(&Tool{
		Name:        "export_all_campaigns",
		Description: "Start an export of every campaign on a seat.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/accounts/%s/campaigns/export", userID, accountID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "export_leads_from_campaign",
		Description: "Start an export of the leads in one campaign.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "campaign_id": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			campaignID, fail := stringArg(inv.Args, "campaign_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/accounts/%s/campaigns/%s/export", userID, accountID, campaignID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "get_tags_for_seat",
		Description: "List the tags defined on a seat.",
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
				fmt.Sprintf("/users/%s/accounts/%s/tags", userID, accountID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "create_tag",
		Description: "Create a tag on a seat.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "name": "string"},
			map[string]string{"color": "string"},
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			name, fail := stringArg(inv.Args, "name")
			if fail != nil {
				return fail
			}

			tag := body{"name": name}
			tag.setString("color", optStringArg(inv.Args, "color"))

			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/accounts/%s/tags", userID, accountID), nil, tag)
		},
	})
}
