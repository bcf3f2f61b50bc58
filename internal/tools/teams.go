package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/multilead/multilead-mcp/internal/invoke"
)

func (r *Registry) registerTeamTools() {
	r.add(&Tool{
		Name:        "create_team",
		Description: "Create a team under a user's white label.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "name": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			name, fail := stringArg(inv.Args, "name")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/create_team", userID), nil, body{"name": name})
		},
	})

	r.add(&Tool{
		Name:        "list_teams_under_the_users_white_label",
		Description: "List the teams belonging to a user's white label.",
		Schema:      objectSchema(map[string]string{"user_id": "string"}, nil),
		ReadOnly:    true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/users/%s/teams", userID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "get_team_members",
		Description: "List the members of a team.",
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
				fmt.Sprintf("/users/%s/teams/%s/get_team_members", userID, teamID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "invite_team_member",
		Description: "Invite a member to a team with a role.",
		Schema: objectSchema(
			map[string]string{"team_id": "string", "user_id": "string", "email": "string"},
			map[string]string{"role_id": "string"},
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			teamID, fail := stringArg(inv.Args, "team_id")
			if fail != nil {
				return fail
			}
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			email, fail := stringArg(inv.Args, "email")
			if fail != nil {
				return fail
			}

			invite := body{"email": email}
			invite.setString("roleId", optStringArg(inv.Args, "role_id"))

			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/teams/%s/users/%s/invite_team_member", teamID, userID), nil, invite)
		},
	})

	r.add(&Tool{
		Name:        "update_team_member",
		Description: "Update a team member's seat roles and webhook-management permission.",
		Schema: objectSchema(
			map[string]string{"team_id": "string", "user_id": "string", "email": "string"},
			map[string]string{"account_roles": "[]map[string]any", "can_manage_team_global_webhooks": "bool"},
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			teamID, fail := stringArg(inv.Args, "team_id")
			if fail != nil {
				return fail
			}
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			email, fail := stringArg(inv.Args, "email")
			if fail != nil {
				return fail
			}

			member := body{"email": email}
			member.setList("accountRoles", optListArg(inv.Args, "account_roles"))
			if canManage, ok := inv.Args["can_manage_team_global_webhooks"].(bool); ok {
				member["canManageTeamGlobalWebhooks"] = canManage
			}

			return r.dispatch(ctx, inv, http.MethodPatch,
				fmt.Sprintf("/teams/%s/users/%s/update_team_member", teamID, userID), nil, member)
		},
	})

	r.add(&Tool{
		Name:        "get_team_roles",
		Description: "List the roles defined on a team.",
		Schema: objectSchema(
			map[string]string{"team_id": "string", "user_id": "string"},
			nil,
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			teamID, fail := stringArg(inv.Args, "team_id")
			if fail != nil {
				return fail
			}
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodGet,
				fmt.Sprintf("/teams/%s/users/%s/get_roles", teamID, userID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "create_team_role",
		Description: "Create a role on a team with a set of permissions.",
		Schema: objectSchema(
			map[string]string{"team_id": "string", "user_id": "string", "name": "string"},
			map[string]string{"permissions": "[]string"},
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			teamID, fail := stringArg(inv.Args, "team_id")
			if fail != nil {
				return fail
			}
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			name, fail := stringArg(inv.Args, "name")
			if fail != nil {
				return fail
			}

			role := body{"name": name}
			role.setList("permissions", optListArg(inv.Args, "permissions"))

			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/teams/%s/users/%s/create_role", teamID, userID), nil, role)
		},
	})
}
