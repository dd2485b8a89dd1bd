package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-lookup/internal/domain"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("Expected content in result")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("Expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func TestToolHandler_Detail(t *testing.T) {
	handler := NewToolHandler(newTestService(t, newMemLoader()))

	result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, LookupArgument{Query: "ColorResolvable"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Unexpected error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.HasPrefix(text, "## __ColorResolvable__\n") {
		t.Errorf("Unexpected heading: %q", text)
	}
	if !strings.Contains(text, "**Type**\n`string` `number` `Array<number>`") {
		t.Errorf("Missing Type field: %q", text)
	}
}

func TestToolHandler_Summary(t *testing.T) {
	handler := NewToolHandler(newTestService(t, newMemLoader()))

	result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, LookupArgument{Query: "messageb", Source: "discord.js/stable"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	text := resultText(t, result)
	if !strings.HasPrefix(text, "## Search Results:\n") {
		t.Errorf("Expected summary, got %q", text)
	}
}

func TestToolHandler_Errors(t *testing.T) {
	handler := NewToolHandler(newTestService(t, newMemLoader()))

	tests := []struct {
		name string
		args LookupArgument
		want string
	}{
		{"empty query", LookupArgument{Query: "  "}, "Query cannot be empty"},
		{"invalid source", LookupArgument{Query: "Client", Source: "discord.js"}, `Invalid source "discord.js"`},
		{"missing source", LookupArgument{Query: "Client", Source: "discord.js/main"}, "No documentation available for discord.js/main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, tt.args)
			if err != nil {
				t.Fatalf("Handle returned error: %v", err)
			}
			if !result.IsError {
				t.Error("Expected error result")
			}
			if text := resultText(t, result); !strings.Contains(text, tt.want) {
				t.Errorf("Expected %q in %q", tt.want, text)
			}
		})
	}
}

func TestToolHandler_Definition(t *testing.T) {
	handler := NewToolHandler(nil)

	tool := handler.GetToolDefinition()
	if tool.Name != ToolName {
		t.Errorf("Name = %q, want %q", tool.Name, ToolName)
	}
	if tool.Description == "" {
		t.Error("Expected a description")
	}
}

func TestRegisterTool(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "1.0.0"}, nil)
	RegisterTool(server, newTestService(t, newMemLoader()))
}

func TestEmbedHandler(t *testing.T) {
	handler := NewEmbedHandler(newTestService(t, newMemLoader()))

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantTitle  string
	}{
		{"detail", http.MethodGet, "/embed?q=Client", http.StatusOK, "__Client__"},
		{"explicit source", http.MethodGet, "/embed?q=messageb&src=discord.js/stable", http.StatusOK, "Search Results:"},
		{"private", http.MethodGet, "/embed?q=Client.token&includePrivate=true", http.StatusOK, "__Client.token__"},
		{"invalid source", http.MethodGet, "/embed?q=Client&src=nope", http.StatusBadRequest, ""},
		{"missing source", http.MethodGet, "/embed?q=Client&src=discord.js/main", http.StatusNotFound, ""},
		{"invalid flag", http.MethodGet, "/embed?q=Client&includePrivate=maybe", http.StatusBadRequest, ""},
		{"wrong method", http.MethodPost, "/embed?q=Client", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("Status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}

			if tt.wantStatus != http.StatusOK {
				var body errorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("Failed to decode error body: %v", err)
				}
				if body.Error == "" {
					t.Error("Expected error message")
				}
				return
			}

			var result domain.RenderedResult
			if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
				t.Fatalf("Failed to decode result: %v", err)
			}
			if result.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", result.Title, tt.wantTitle)
			}
		})
	}
}
