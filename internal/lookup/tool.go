package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-lookup/internal/docsource"
	"github.com/sha1n/mcp-docs-lookup/internal/render"
)

// ToolName is the name the lookup tool is registered under.
const ToolName = "lookup_docs"

// LookupArgument defines the lookup tool parameters.
type LookupArgument struct {
	Query          string `json:"query" jsonschema:"Entity to look up, e.g. MessageButton, Client#ready or Client.login()"`
	Source         string `json:"source,omitempty" jsonschema:"Package selector <package>/<version> (e.g. discord.js/stable); comma separated for several"`
	IncludePrivate *bool  `json:"include_private,omitempty" jsonschema:"Include private members in the results"`
}

// ToolHandler handles the lookup MCP tool.
type ToolHandler struct {
	service *Service
}

// NewToolHandler creates a handler backed by service.
func NewToolHandler(service *Service) *ToolHandler {
	return &ToolHandler{service: service}
}

// Handle resolves the query and returns the result as markdown. Failures
// are reported as tool errors.
func (h *ToolHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args LookupArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	result, err := h.service.Lookup(ctx, Request{
		Query:          args.Query,
		Source:         args.Source,
		IncludePrivate: args.IncludePrivate,
	})
	if err != nil {
		return errorResult(describeError(err, args.Source, h.service.DefaultSource())), nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: render.Markdown(result)},
		},
	}, nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *ToolHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name: ToolName,
		Description: "Look up classes, interfaces, typedefs and their members in the indexed API documentation. " +
			"An exact name returns its details; anything else returns the closest matches.",
	}
}

// RegisterTool registers the lookup tool with an MCP server.
func RegisterTool(server *mcp.Server, service *Service) {
	handler := NewToolHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

func describeError(err error, source, defaultSource string) string {
	if source == "" {
		source = defaultSource
	}

	switch {
	case errors.Is(err, docsource.ErrInvalidSource):
		return fmt.Sprintf("Invalid source %q: expected <package>/<version>, e.g. %s", source, docsource.DefaultSource)
	case errors.Is(err, docsource.ErrSourceNotFound):
		return fmt.Sprintf("No documentation available for %s", source)
	default:
		return fmt.Sprintf("Lookup failed: %s", err)
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}
