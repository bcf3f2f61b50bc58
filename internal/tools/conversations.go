package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/multilead/multilead-mcp/internal/invoke"
)

func (r *Registry) registerConversationTools() {
	r.add(&Tool{
		Name:        "get_all_conversations",
		Description: "List every conversation on a seat, with optional pagination.",
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
				fmt.Sprintf("/users/%s/accounts/%s/conversations", userID, accountID),
				pagination(inv.Args), nil)
		},
	})

	r.add(&Tool{
		Name:        "get_unread_conversations",
		Description: "List conversations with unread messages on a seat.",
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
				fmt.Sprintf("/users/%s/accounts/%s/conversations/unread", userID, accountID),
				pagination(inv.Args), nil)
		},
	})

	r.add(&Tool{
		Name:        "get_other_conversations",
		Description: "List conversations on a seat that are not tied to any campaign.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			map[string]string{"limit": "int", "offset": "int", "name": "string"},
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			q := url.Values{}
			q.Set("limit", strconv.Itoa(optIntArg(inv.Args, "limit", 100)))
			q.Set("offset", strconv.Itoa(optIntArg(inv.Args, "offset", 0)))
			if name := optStringArg(inv.Args, "name"); name != "" {
				q.Set("name", name)
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/conversations/other", userID, accountID), q, nil)
		},
	})

	r.add(&Tool{
		Name:        "get_conversations_by_identifiers",
		Description: "Look up conversations by lead identifiers such as email addresses or LinkedIn profile URLs.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "identifiers": "[]string"},
			nil,
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			identifiers, fail := listArg(inv.Args, "identifiers")
			if fail != nil {
				return fail
			}
			q := url.Values{}
			q.Set("identifiers", jsonList(identifiers))
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/conversations/identifiers", userID, accountID), q, nil)
		},
	})

	r.add(&Tool{
		Name:        "get_messages_from_a_specific_thread",
		Description: "Retrieve the messages in one conversation thread.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "thread_id": "string"},
			nil,
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			threadID, fail := stringArg(inv.Args, "thread_id")
			if fail != nil {
				return fail
			}
			q := pagination(inv.Args)
			q.Set("thread", threadID)
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/conversations/threads", userID, accountID), q, nil)
		},
	})

	r.add(&Tool{
		Name:        "get_leads_from_thread",
		Description: "List the leads participating in a conversation thread.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "thread_id": "string"},
			nil,
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			threadID, fail := stringArg(inv.Args, "thread_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/conversations/%s/belonged_leads", userID, accountID, threadID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "mark_messages_as_seen",
		Description: "Mark a conversation thread as seen.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "thread_id": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			threadID, fail := stringArg(inv.Args, "thread_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPatch,
				fmt.Sprintf("/users/%s/accounts/%s/conversations/%s/seen", userID, accountID, threadID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "send_new_email",
		Description: "Send a new outbound email from a seat, outside any sequence.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "recipient": "string", "subject": "string", "content": "string"},
			map[string]string{"signature_id": "string"},
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			recipient, fail := stringArg(inv.Args, "recipient")
			if fail != nil {
				return fail
			}
			subject, fail := stringArg(inv.Args, "subject")
			if fail != nil {
				return fail
			}
			content, fail := stringArg(inv.Args, "content")
			if fail != nil {
				return fail
			}

			email := body{"recipient": recipient, "subject": subject, "content": content}
			email.setString("signatureId", optStringArg(inv.Args, "signature_id"))

			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/accounts/%s/conversations/send_email_manually", userID, accountID), nil, email)
		},
	})

	r.add(&Tool{
		Name:        "send_email_reply",
		Description: "Reply by email within an existing conversation thread.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "thread_id": "string", "message": "string"},
			map[string]string{"lead_id": "string", "campaign_id": "string", "recipient": "string"},
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			threadID, fail := stringArg(inv.Args, "thread_id")
			if fail != nil {
				return fail
			}
			message, fail := stringArg(inv.Args, "message")
			if fail != nil {
				return fail
			}

			reply := body{"message": message}
			reply.setString("leadId", optStringArg(inv.Args, "lead_id"))
			reply.setString("campaignId", optStringArg(inv.Args, "campaign_id"))
			reply.setString("recipient", optStringArg(inv.Args, "recipient"))

			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/accounts/%s/conversations/%s/email", userID, accountID, threadID), nil, reply)
		},
	})

	r.add(&Tool{
		Name:        "send_linkedin_message",
		Description: "Send a LinkedIn message to a lead from a seat.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "lead_id": "string", "message": "string"},
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
			message, fail := stringArg(inv.Args, "message")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/accounts/%s/conversations/send_message", userID, accountID), nil,
				body{"leadId": leadID, "message": message})
		},
	})

	r.add(&Tool{
		Name:        "sync_linkedin_messages",
		Description: "Trigger a fetch of new LinkedIn conversations for a seat.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/fetch_conversations", userID, accountID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "get_lead_messages",
		Description: "Retrieve the conversation history with one lead.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string", "lead_id": "string"},
			nil,
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			leadID, fail := stringArg(inv.Args, "lead_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/conversations/leads/%s", userID, accountID, leadID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "get_messages_for_leads",
		Description: "Retrieve conversation messages across several leads at once.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_id": "string"},
			map[string]string{"lead_ids": "[]string", "limit": "int"},
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			q := url.Values{}
			q.Set("limit", strconv.Itoa(optIntArg(inv.Args, "limit", 100)))
			if leadIDs := optListArg(inv.Args, "lead_ids"); len(leadIDs) > 0 {
				q.Set("leadIds", jsonList(leadIDs))
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/accounts/%s/conversations/leads", userID, accountID), q, nil)
		},
	})

	r.add(&Tool{
		Name:        "get_campaign_conversations",
		Description: "List the conversations generated by one campaign.",
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
				fmt.Sprintf("/users/%s/accounts/%s/campaigns/%s/messages", userID, accountID, campaignID),
				pagination(inv.Args), nil)
		},
	})
}
