package tools

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/multilead/multilead-mcp/internal/invoke"
	"github.com/multilead/multilead-mcp/internal/upstream"
)

// argError builds the failure returned when a tool call carries bad
// arguments. These are local failures; nothing was dispatched upstream.
func argError(format string, a ...any) *invoke.Result {
	return invoke.Fail(&upstream.Error{
		Kind:    upstream.KindInvalidArguments,
		Message: fmt.Sprintf(format, a...),
	})
}

// stringArg extracts a required non-empty string argument.
func stringArg(args map[string]any, key string) (string, *invoke.Result) {
	raw, ok := args[key]
	if !ok {
		return "", argError("missing required argument: %s", key)
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", argError("argument %s must be a non-empty string", key)
	}
	return s, nil
}

// optStringArg extracts an optional string argument; absent yields "".
func optStringArg(args map[string]any, key string) string {
	if s, ok := args[key].(string); ok {
		return s
	}
	return ""
}

// optIntArg extracts an optional integer argument; absent yields def.
// JSON numbers decode as float64, so both forms are accepted.
func optIntArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// optBoolArg extracts an optional boolean argument; absent yields def.
func optBoolArg(args map[string]any, key string, def bool) bool {
	if b, ok := args[key].(bool); ok {
		return b
	}
	return def
}

// optMapArg extracts an optional object argument; absent yields nil.
func optMapArg(args map[string]any, key string) map[string]any {
	if m, ok := args[key].(map[string]any); ok {
		return m
	}
	return nil
}

// optListArg extracts an optional array argument; absent yields nil.
func optListArg(args map[string]any, key string) []any {
	if l, ok := args[key].([]any); ok {
		return l
	}
	return nil
}

// listArg extracts a required non-empty array argument.
func listArg(args map[string]any, key string) ([]any, *invoke.Result) {
	l, ok := args[key].([]any)
	if !ok || len(l) == 0 {
		return nil, argError("argument %s must be a non-empty array", key)
	}
	return l, nil
}

// body assembles a JSON request body, skipping empty values so optional
// fields stay absent rather than null.
type body map[string]any

func (b body) setString(key, value string) {
	if value != "" {
		b[key] = value
	}
}

func (b body) setList(key string, value []any) {
	if len(value) > 0 {
		b[key] = value
	}
}

func (b body) setMap(key string, value map[string]any) {
	if len(value) > 0 {
		b[key] = value
	}
}

// commaJoin renders a list argument as a comma-separated string, the
// form several list-valued query parameters expect.
func commaJoin(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, ",")
}

// jsonList renders a list argument as a JSON array string, the form the
// conversation endpoints expect for identifier filters.
func jsonList(values []any) string {
	encoded, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

// pagination builds the standard limit/offset query from arguments.
func pagination(args map[string]any) url.Values {
	q := url.Values{}
	if limit := optIntArg(args, "limit", 0); limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset := optIntArg(args, "offset", -1); offset >= 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return q
}
