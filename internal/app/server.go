package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-lookup/internal/config"
	"github.com/sha1n/mcp-docs-lookup/internal/lookup"
)

// StartSSEServer starts the SSE server
func StartSSEServer(s *mcp.Server, svc *lookup.Service, settings *config.Settings) error {
	srv := NewSSEServer(s, svc, settings)

	slog.Info("Server listening (HTTP)", "addr", srv.Addr)
	return srv.ListenAndServe()
}

// NewSSEServer creates the HTTP server exposing the MCP SSE endpoint, the
// embed endpoint of svc (when not nil) and a health check.
func NewSSEServer(s *mcp.Server, svc *lookup.Service, settings *config.Settings) *http.Server {
	// Factory function returns the server instance for each request
	sseHandler := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
		return s
	}, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/sse", sseHandler)
	if svc != nil {
		mux.Handle(lookup.EmbedPath, lookup.NewEmbedHandler(svc))
	}

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", settings.Host, settings.Port),
		Handler: RequestIDMiddleware(mux),
	}
}
