// Package tools defines the Multilead tool catalog and binds it to an
// MCP server. Every tool is a thin adapter: decode arguments, dispatch
// one upstream request through the invocation pipeline, and render the
// mediated response.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/multilead/multilead-mcp/internal/invoke"
	"github.com/multilead/multilead-mcp/internal/upstream"
)

// Tool is one catalog entry. Handler performs the upstream dispatch;
// the registry wraps it with the shared middleware chain and the MCP
// encoding concerns.
type Tool struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema
	Handler     invoke.Handler
	ReadOnly    bool
}

// Registry holds the tool catalog bound to one upstream client and one
// middleware chain.
type Registry struct {
	client *upstream.Client
	chain  []invoke.Middleware
	tools  map[string]*Tool
}

// NewRegistry builds the full catalog. The middleware chain applies to
// every tool in registration order (first is outermost).
func NewRegistry(client *upstream.Client, chain ...invoke.Middleware) *Registry {
	r := &Registry{
		client: client,
		chain:  chain,
		tools:  make(map[string]*Tool, 64),
	}

	r.registerLeadTools()
	r.registerCampaignTools()
	r.registerStatisticsTools()
	r.registerBlacklistTools()
	r.registerSeatTools()
	r.registerTeamTools()
	r.registerConversationTools()
	r.registerWebhookTools()
	r.registerMiscTools()

	return r
}

func (r *Registry) add(t *Tool) {
	if _, exists := r.tools[t.Name]; exists {
		panic(fmt.Sprintf("duplicate tool registration: %s", t.Name))
	}
	r.tools[t.Name] = t
}

// Tools returns the catalog sorted by name.
func (r *Registry) Tools() []*Tool {
	out := make([]*Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the catalog size.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Call runs one tool through the middleware chain. Used directly by
// tests and indirectly by the MCP handlers.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) *invoke.Result {
	t, ok := r.tools[name]
	if !ok {
		return invoke.Fail(&upstream.Error{
			Kind:    upstream.KindNotFound,
			Message: fmt.Sprintf("unknown tool: %s", name),
		})
	}

	handler := invoke.Chain(t.Handler, r.chain...)
	return handler(ctx, &invoke.Invocation{
		Tool:   name,
		Args:   args,
		Client: r.client,
	})
}

// Attach registers every tool, resource, and prompt on the MCP server.
func (r *Registry) Attach(server *mcp.Server) {
	for _, t := range r.Tools() {
		tool := &mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.Schema,
		}
		server.AddTool(tool, r.mcpHandler(t.Name))
	}

	r.attachResources(server)
	r.attachPrompts(server)
}

// mcpHandler adapts one catalog entry to the MCP tool handler contract.
// Failures become in-band error results, never protocol errors, so the
// calling model can read and react to them.
func (r *Registry) mcpHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := parseArguments(req)
		if err != nil {
			return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		result := r.Call(ctx, name, args)
		if result.Err != nil {
			return errorResult(renderFailure(result.Err)), nil
		}

		rendered, err := json.MarshalIndent(result.Payload, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("failed to render response: %v", err)), nil
		}
		return textResult(string(rendered)), nil
	}
}

// renderFailure formats a mediated failure for the tool caller.
func renderFailure(e *upstream.Error) string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.RetryAfter > 0 {
		msg = fmt.Sprintf("%s, retry after %s", msg, e.RetryAfter)
	}
	return msg
}

// parseArguments unmarshals CallToolRequest arguments into a map.
func parseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}
	return args, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}
}
