package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/multilead/multilead-mcp/internal/invoke"
	"github.com/multilead/multilead-mcp/internal/ratelimit"
	"github.com/multilead/multilead-mcp/internal/upstream"
	"github.com/stretchr/testify/require"
)

// fakeUpstream records the last request and replies with canned JSON.
type fakeUpstream struct {
	method string
	path   string
	query  string
	status int
	reply  string
}

func (f *fakeUpstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.method = r.Method
		f.path = r.URL.Path
		f.query = r.URL.RawQuery
		status := f.status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		reply := f.reply
		if reply == "" {
			reply = `{"ok":true}`
		}
		_, _ = w.Write([]byte(reply))
	}
}

func newTestRegistry(t *testing.T, fake *fakeUpstream, chain ...invoke.Middleware) *Registry {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	client := upstream.NewClient(server.URL, "test-key")
	client.Timeout = 2 * time.Second
	return NewRegistry(client, chain...)
}

func TestCatalogCoversAllGroups(t *testing.T) {
	r := newTestRegistry(t, &fakeUpstream{})

	expected := []string{
		// leads
		"create_lead", "get_lead", "list_leads", "update_lead", "delete_lead",
		"add_leads_to_campaign", "update_lead_in_campaign",
		"pause_lead_execution", "resume_lead_execution",
		"get_leads_from_campaign", "get_leads_from_seat",
		"return_lead_to_campaign", "get_tags_for_leads",
		"assign_tag_to_lead", "remove_tag_from_lead",
		// campaigns
		"get_campaign_list", "get_campaign_info", "get_users_sequence_templates",
		"create_campaign_from_template",
		"create_lead_source", "export_all_campaigns", "export_leads_from_campaign",
		"get_tags_for_seat", "create_tag",
		// statistics
		"get_statistics", "get_step_statistics", "export_statistics_csv",
		"get_all_campaigns_statistics",
		// blacklist
		"add_keywords_to_blacklist", "add_keywords_to_global_blacklist",
		"import_keywords_to_blacklist_csv", "import_keywords_to_global_blacklist_csv",
		// seats
		"get_user_information", "list_all_seats_of_a_specific_user",
		"create_seat", "cancel_seat", "reactivate_seat", "suspend_or_unsuspend_seat",
		"list_users_associated_with_a_specific_seat", "transfer_credits",
		"register_new_user", "list_all_users_as_a_whitelabel",
		"change_a_password", "send_password_reset_email",
		"resend_email_confirmation_message",
		// teams
		"create_team", "list_teams_under_the_users_white_label", "get_team_members",
		"invite_team_member", "update_team_member", "get_team_roles", "create_team_role",
		// conversations
		"get_all_conversations", "get_unread_conversations",
		"get_other_conversations", "get_conversations_by_identifiers",
		"get_messages_from_a_specific_thread", "get_leads_from_thread",
		"mark_messages_as_seen", "send_new_email", "send_email_reply",
		"send_linkedin_message", "sync_linkedin_messages", "get_lead_messages",
		"get_messages_for_leads", "get_campaign_conversations",
		// webhooks
		"create_webhook", "create_global_webhook", "list_webhooks",
		"list_global_webhooks", "delete_webhook", "delete_global_webhook",
		// misc
		"connect_linkedin_account", "disconnect_linkedin_account",
		"get_linkedin_user_info",
		"get_description_for_id_type", "activate_inboxflare_warmup",
	}

	names := make(map[string]bool, r.Len())
	for _, tool := range r.Tools() {
		names[tool.Name] = true
		require.NotEmpty(t, tool.Description, "tool %s needs a description", tool.Name)
		require.NotNil(t, tool.Schema, "tool %s needs a schema", tool.Name)
		require.NotNil(t, tool.Handler, "tool %s needs a handler", tool.Name)
	}

	for _, name := range expected {
		require.True(t, names[name], "missing tool: %s", name)
	}
	require.Equal(t, len(expected), r.Len())
}

func TestGetLeadDispatch(t *testing.T) {
	fake := &fakeUpstream{reply: `{"id":"42","email":"a@b.com"}`}
	r := newTestRegistry(t, fake)

	result := r.Call(context.Background(), "get_lead", map[string]any{"lead_id": "42"})
	require.Nil(t, result.Err)
	require.Equal(t, http.MethodGet, fake.method)
	require.Equal(t, "/v1/leads/42", fake.path)

	payload, ok := result.Payload.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "42", payload["id"])
}

func TestCreateLeadOmitsEmptyFields(t *testing.T) {
	fake := &fakeUpstream{}
	r := newTestRegistry(t, fake)

	result := r.Call(context.Background(), "create_lead", map[string]any{
		"email":      "lead@example.com",
		"first_name": "Ada",
	})
	require.Nil(t, result.Err)
	require.Equal(t, http.MethodPost, fake.method)
	require.Equal(t, "/v1/leads", fake.path)
}

func TestSeatScopedPathConstruction(t *testing.T) {
	fake := &fakeUpstream{}
	r := newTestRegistry(t, fake)

	result := r.Call(context.Background(), "get_leads_from_campaign", map[string]any{
		"user_id":     "u1",
		"account_id":  "a2",
		"campaign_id": "c3",
		"limit":       float64(25),
	})
	require.Nil(t, result.Err)
	require.Equal(t, "/users/u1/accounts/a2/campaigns/c3/leads", fake.path)
	require.Equal(t, "limit=25", fake.query)
}

func TestMissingArgumentFailsLocally(t *testing.T) {
	fake := &fakeUpstream{}
	r := newTestRegistry(t, fake)

	result := r.Call(context.Background(), "get_lead", map[string]any{})
	require.NotNil(t, result.Err)
	require.Equal(t, upstream.KindInvalidArguments, result.Err.Kind)
	require.Empty(t, fake.method, "nothing must be dispatched upstream")
}

func TestUnknownToolFails(t *testing.T) {
	r := newTestRegistry(t, &fakeUpstream{})

	result := r.Call(context.Background(), "no_such_tool", nil)
	require.NotNil(t, result.Err)
	require.Equal(t, upstream.KindNotFound, result.Err.Kind)
}

func TestUpstreamNotFoundClassified(t *testing.T) {
	fake := &fakeUpstream{status: http.StatusNotFound, reply: `{"error":"missing"}`}
	r := newTestRegistry(t, fake)

	result := r.Call(context.Background(), "get_lead", map[string]any{"lead_id": "99"})
	require.NotNil(t, result.Err)
	require.Equal(t, upstream.KindNotFound, result.Err.Kind)
	require.NotContains(t, result.Err.Error(), "test-key")
}

func TestChainAppliesRateLimit(t *testing.T) {
	fake := &fakeUpstream{}
	g := ratelimit.New(2, 100)
	r := newTestRegistry(t, fake,
		invoke.WithClassification(),
		invoke.WithRateLimit(g, "stdio"),
	)

	ctx := invoke.WithClientIdentity(context.Background(), "tester")
	args := map[string]any{"lead_id": "1"}

	require.Nil(t, r.Call(ctx, "get_lead", args).Err)
	require.Nil(t, r.Call(ctx, "get_lead", args).Err)

	result := r.Call(ctx, "get_lead", args)
	require.NotNil(t, result.Err)
	require.Equal(t, upstream.KindLocallyThrottled, result.Err.Kind)
	require.Greater(t, result.Err.RetryAfter, time.Duration(0))
	require.LessOrEqual(t, result.Err.RetryAfter, time.Minute)
}

func TestTransferCreditsUsesV2Surface(t *testing.T) {
	fake := &fakeUpstream{}
	r := newTestRegistry(t, fake)

	result := r.Call(context.Background(), "transfer_credits", map[string]any{
		"user_id":             "u7",
		"destination_user_id": float64(9),
		"quantity":            float64(100),
	})
	require.Nil(t, result.Err)
	require.Equal(t, "/api/open-api/v2/users/u7/transfer_credits", fake.path)
}

func TestGetTagsForLeadsQueryFormat(t *testing.T) {
	fake := &fakeUpstream{}
	r := newTestRegistry(t, fake)

	result := r.Call(context.Background(), "get_tags_for_leads", map[string]any{
		"user_id":    "u1",
		"account_id": "a2",
		"lead_ids":   []any{"7", "8", "9"},
	})
	require.Nil(t, result.Err)
	require.Equal(t, "/users/u1/accounts/a2/leads/tags", fake.path)

	q, err := url.ParseQuery(fake.query)
	require.NoError(t, err)
	require.Equal(t, "[7,8,9]", q.Get("leadIds"))
}

func TestGetConversationsByIdentifiersEncodesJSON(t *testing.T) {
	fake := &fakeUpstream{}
	r := newTestRegistry(t, fake)

	result := r.Call(context.Background(), "get_conversations_by_identifiers", map[string]any{
		"user_id":     "u1",
		"account_id":  "a2",
		"identifiers": []any{"a@b.com", "linkedin.com/in/c"},
	})
	require.Nil(t, result.Err)
	require.Equal(t, "/users/u1/accounts/a2/conversations/identifiers", fake.path)

	q, err := url.ParseQuery(fake.query)
	require.NoError(t, err)
	require.Equal(t, `["a@b.com","linkedin.com/in/c"]`, q.Get("identifiers"))
}

func TestListLeadsFilters(t *testing.T) {
	fake := &fakeUpstream{}
	r := newTestRegistry(t, fake)

	result := r.Call(context.Background(), "list_leads", map[string]any{
		"tags":    []any{"warm", "demo"},
		"company": "Acme",
	})
	require.Nil(t, result.Err)
	require.Equal(t, "/v1/leads", fake.path)

	q, err := url.ParseQuery(fake.query)
	require.NoError(t, err)
	require.Equal(t, "warm,demo", q.Get("tags"))
	require.Equal(t, "Acme", q.Get("company"))
	require.Equal(t, "100", q.Get("limit"))
	require.Equal(t, "0", q.Get("offset"))
}

func TestBlacklistKeywordPayloadRequiresTypes(t *testing.T) {
	fake := &fakeUpstream{}
	r := newTestRegistry(t, fake)

	result := r.Call(context.Background(), "add_keywords_to_blacklist", map[string]any{
		"user_id":    "u1",
		"account_id": "a2",
		"keywords":   []any{"spam"},
	})
	require.NotNil(t, result.Err)
	require.Equal(t, upstream.KindInvalidArguments, result.Err.Kind)
	require.Empty(t, fake.method, "nothing must be dispatched upstream")

	result = r.Call(context.Background(), "add_keywords_to_blacklist", map[string]any{
		"user_id":         "u1",
		"account_id":      "a2",
		"keywords":        []any{"spam"},
		"keyword_type":    "company",
		"comparison_type": "contains",
	})
	require.Nil(t, result.Err)
	require.Equal(t, http.MethodPatch, fake.method)
	require.Equal(t, "/users/u1/accounts/a2/blacklists/add_keyword", fake.path)
}

func TestCSVImportFailsLocallyWithGuidance(t *testing.T) {
	fake := &fakeUpstream{}
	r := newTestRegistry(t, fake)

	for _, name := range []string{
		"import_keywords_to_blacklist_csv",
		"import_keywords_to_global_blacklist_csv",
	} {
		result := r.Call(context.Background(), name, map[string]any{
			"user_id":         "u1",
			"account_id":      "a2",
			"team_id":         "t3",
			"csv_file_path":   "/tmp/keywords.csv",
			"keyword_type":    "company",
			"comparison_type": "contains",
		})
		require.NotNil(t, result.Err, name)
		require.Equal(t, upstream.KindInvalidArguments, result.Err.Kind, name)
		require.Contains(t, result.Err.Message, "Multilead web interface", name)
		require.Empty(t, fake.method, "nothing must be dispatched upstream")
	}
}

func TestRenderFailureFormat(t *testing.T) {
	msg := renderFailure(&upstream.Error{
		Kind:       upstream.KindUpstreamThrottled,
		StatusCode: 429,
		Message:    "slow down",
		RetryAfter: 30 * time.Second,
	})
	require.Equal(t, "UPSTREAM_THROTTLED: slow down (status 429), retry after 30s", msg)
}
