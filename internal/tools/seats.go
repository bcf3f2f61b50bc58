package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/multilead/multilead-mcp/internal/invoke"
)

func (r *Registry) registerSeatTools() {
	r.add(&Tool{
		Name:        "get_user_information",
		Description: "Retrieve the profile of the user owning the configured API key.",
		Schema:      objectSchema(nil, nil),
		ReadOnly:    true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			return r.dispatch(ctx, inv, http.MethodGet, "/user/me", nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "list_all_seats_of_a_specific_user",
		Description: "List the seats (accounts) owned by a user, with optional pagination.",
		Schema: objectSchema(
			nil,
			map[string]string{"limit": "int", "offset": "int"},
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			return r.dispatch(ctx, inv, http.MethodGet, "/accounts", pagination(inv.Args), nil)
		},
	})

	r.add(&Tool{
		Name:        "create_seat",
		Description: "Register a new seat under a user.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "email": "string"},
			map[string]string{"first_name": "string", "last_name": "string"},
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			email, fail := stringArg(inv.Args, "email")
			if fail != nil {
				return fail
			}

			seat := body{"email": email}
			seat.setString("firstName", optStringArg(inv.Args, "first_name"))
			seat.setString("lastName", optStringArg(inv.Args, "last_name"))

			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/accounts/register", userID), nil, seat)
		},
	})

	r.add(&Tool{
		Name:        "cancel_seat",
		Description: "Cancel the subscription attached to a seat.",
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
				fmt.Sprintf("/users/%s/subscriptions/accounts/%s", userID, accountID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "reactivate_seat",
		Description: "Reactivate a previously cancelled or suspended seat.",
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
				fmt.Sprintf("/users/%s/accounts/%s/reactivate", userID, accountID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "suspend_or_unsuspend_seat",
		Description: "Suspend or unsuspend a set of seats under a user.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "account_ids": "[]string", "suspend": "bool"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			accountIDs, fail := listArg(inv.Args, "account_ids")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPut,
				fmt.Sprintf("/users/%s/accounts/suspend", userID), nil,
				body{
					"accountIds": accountIDs,
					"suspend":    optBoolArg(inv.Args, "suspend", true),
				})
		},
	})

	r.add(&Tool{
		Name:        "list_users_associated_with_a_specific_seat",
		Description: "List the users who have access to a seat.",
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
				fmt.Sprintf("/users/%s/accounts/%s/get_associated_users", userID, accountID), nil, nil)
		},
	})

	r.add(&Tool{
		Name:        "transfer_credits",
		Description: "Transfer credits from one user to another within the same white label.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "destination_user_id": "int", "quantity": "int"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			destinationID := optIntArg(inv.Args, "destination_user_id", 0)
			if destinationID <= 0 {
				return argError("argument destination_user_id must be a positive integer")
			}
			quantity := optIntArg(inv.Args, "quantity", 0)
			if quantity <= 0 {
				return argError("argument quantity must be a positive integer")
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/api/open-api/v2/users/%s/transfer_credits", userID), nil,
				body{"destinationUserId": destinationID, "quantity": quantity})
		},
	})

	r.add(&Tool{
		Name:        "register_new_user",
		Description: "Register a new user under a white label.",
		Schema: objectSchema(
			map[string]string{"email": "string", "password": "string", "full_name": "string", "whitelabel_id": "int"},
			map[string]string{"phone": "string", "invitation_id": "string", "skip_confirmation_email": "bool"},
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			email, fail := stringArg(inv.Args, "email")
			if fail != nil {
				return fail
			}
			password, fail := stringArg(inv.Args, "password")
			if fail != nil {
				return fail
			}
			fullName, fail := stringArg(inv.Args, "full_name")
			if fail != nil {
				return fail
			}
			whitelabelID := optIntArg(inv.Args, "whitelabel_id", 0)
			if whitelabelID <= 0 {
				return argError("argument whitelabel_id must be a positive integer")
			}

			user := body{
				"email":        email,
				"password":     password,
				"fullName":     fullName,
				"whitelabelId": whitelabelID,
			}
			user.setString("phone", optStringArg(inv.Args, "phone"))
			user.setString("invitationId", optStringArg(inv.Args, "invitation_id"))
			if skip, ok := inv.Args["skip_confirmation_email"].(bool); ok {
				user["skipConfirmationEmail"] = skip
			}

			return r.dispatch(ctx, inv, http.MethodPost, "/users/register", nil, user)
		},
	})

	r.add(&Tool{
		Name:        "list_all_users_as_a_whitelabel",
		Description: "List every user under the white label owning the API key, with optional pagination.",
		Schema: objectSchema(
			nil,
			map[string]string{"limit": "int", "offset": "int"},
		),
		ReadOnly: true,
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			return r.dispatch(ctx, inv, http.MethodGet, "/users", pagination(inv.Args), nil)
		},
	})

	r.add(&Tool{
		Name:        "change_a_password",
		Description: "Set a new password for a user.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "new_password": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			newPassword, fail := stringArg(inv.Args, "new_password")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/change_password", userID), nil,
				body{"newPassword": newPassword})
		},
	})

	r.add(&Tool{
		Name:        "send_password_reset_email",
		Description: "Send a password reset email to a user.",
		Schema: objectSchema(
			map[string]string{"email": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			email, fail := stringArg(inv.Args, "email")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				"/users/reset_password_email", nil, body{"email": email})
		},
	})

	r.add(&Tool{
		Name:        "resend_email_confirmation_message",
		Description: "Resend the account confirmation email for a user.",
		Schema: objectSchema(
			map[string]string{"user_id": "string", "email": "string"},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, fail := stringArg(inv.Args, "user_id")
			if fail != nil {
				return fail
			}
			email, fail := stringArg(inv.Args, "email")
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPost,
				fmt.Sprintf("/users/%s/resend_confirmation", userID), nil, body{"email": email})
		},
	})
}
