package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/multilead/multilead-mcp/internal/invoke"
)

// blacklistEntry builds the keyword payload shared by the seat and
// global blacklist endpoints. Entries added through the API are always
// tagged as manual.
func blacklistEntry(args map[string]any) (body, *invoke.Result) {
	keywords, fail := listArg(args, "keywords")
	if fail != nil {
		return nil, fail
	}
	keywordType, fail := stringArg(args, "keyword_type")
	if fail != nil {
		return nil, fail
	}
	comparisonType, fail := stringArg(args, "comparison_type")
	if fail != nil {
		return nil, fail
	}
	return body{
		"keywords":       keywords,
		"type":           keywordType,
		"comparisonType": comparisonType,
		"source":         "manual",
	}, nil
}

const csvImportGuidance = "CSV file upload is not supported by this server; " +
	"use %s with a list of keywords instead, or upload the CSV file directly " +
	"via the Multilead web interface"

func (r *Registry) registerBlacklistTools() {
	r.add(&Tool{
		Name:        "add_keywords_to_blacklist",
		Description: "Add keywords to a seat's blacklist so matching leads are skipped.",
		Schema: objectSchema(
			map[string]string{
				"user_id":         "string",
				"account_id":      "string",
				"keywords":        "[]string",
				"keyword_type":    "string",
				"comparison_type": "string",
			},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			userID, accountID, fail := seatArgs(inv.Args)
			if fail != nil {
				return fail
			}
			entry, fail := blacklistEntry(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPatch,
				fmt.Sprintf("/users/%s/accounts/%s/blacklists/add_keyword", userID, accountID),
				nil, entry)
		},
	})

	r.add(&Tool{
		Name:        "add_keywords_to_global_blacklist",
		Description: "Add keywords to a team's global blacklist, applied across all seats.",
		Schema: objectSchema(
			map[string]string{
				"team_id":         "string",
				"user_id":         "string",
				"keywords":        "[]string",
				"keyword_type":    "string",
				"comparison_type": "string",
			},
			nil,
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
			entry, fail := blacklistEntry(inv.Args)
			if fail != nil {
				return fail
			}
			return r.dispatch(ctx, inv, http.MethodPatch,
				fmt.Sprintf("/teams/%s/users/%s/global_blacklists/add_keyword", teamID, userID),
				nil, entry)
		},
	})

	r.add(&Tool{
		Name:        "import_keywords_to_blacklist_csv",
		Description: "Import blacklist keywords for a seat from a CSV file. Not supported; returns guidance toward add_keywords_to_blacklist.",
		Schema: objectSchema(
			map[string]string{
				"user_id":         "string",
				"account_id":      "string",
				"csv_file_path":   "string",
				"keyword_type":    "string",
				"comparison_type": "string",
			},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			return argError(csvImportGuidance, "add_keywords_to_blacklist")
		},
	})

	r.add(&Tool{
		Name:        "import_keywords_to_global_blacklist_csv",
		Description: "Import global blacklist keywords for a team from a CSV file. Not supported; returns guidance toward add_keywords_to_global_blacklist.",
		Schema: objectSchema(
			map[string]string{
				"team_id":         "string",
				"user_id":         "string",
				"csv_file_path":   "string",
				"keyword_type":    "string",
				"comparison_type": "string",
			},
			nil,
		),
		Handler: func(ctx context.Context, inv *invoke.Invocation) *invoke.Result {
			return argError(csvImportGuidance, "add_keywords_to_global_blacklist")
		},
	})
}
