package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-lookup/internal/config"
	"github.com/sha1n/mcp-docs-lookup/internal/docsource"
	"github.com/sha1n/mcp-docs-lookup/internal/lookup"
	mcputil "github.com/sha1n/mcp-docs-lookup/internal/mcp"
	"github.com/sha1n/mcp-docs-lookup/internal/render"
	"github.com/spf13/pflag"
)

// ServerName is the MCP implementation name reported to clients
const ServerName = "docs-lookup-mcp"

// RunParams contains dependencies for the run function
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	StartSSEServer    func(*mcp.Server, *lookup.Service, *config.Settings) error
	CreateServer      func(*config.Settings, string) (*mcp.Server, *lookup.Service, func(), error)
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:   config.LoadSettingsWithFlags,
		ValidSettings:  config.ValidateSettings,
		StartSSEServer: StartSSEServer,
		CreateServer:   CreateMCPServer,
	}
}

// RunWithDeps executes the server with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	// Load settings
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Configure logging - always use stderr to avoid buffering issues
	handler := NewRequestIDHandler(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(slog.New(handler))

	slog.Info("Starting docs lookup MCP server", "version", version)
	config.Log(settings)

	mcpServer, lookupSvc, cleanup, err := params.CreateServer(settings, version)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	if settings.Transport == config.TransportStdio {
		// Use custom transport if provided (for testing), otherwise use stdio
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return mcpServer.Run(ctx, transport)
	}

	slog.Info("Starting SSE server", "host", settings.Host, "port", settings.Port)
	return params.StartSSEServer(mcpServer, lookupSvc, settings)
}

// CreateMCPServer syncs the data directory when a repository is configured,
// creates the lookup service and registers its tool on a new MCP server.
func CreateMCPServer(settings *config.Settings, version string) (*mcp.Server, *lookup.Service, func(), error) {
	ctx := context.Background()

	svc, err := NewLookupService(ctx, settings)
	if err != nil {
		return nil, nil, nil, err
	}

	// A missing default source is reported per request, not at startup
	if err := svc.Warm(ctx, ""); err != nil {
		slog.Warn("Failed to build the default documentation index", "source", svc.DefaultSource(), "error", err)
	}

	cleanup := func() {
		if err := svc.Close(); err != nil {
			slog.Error("Failed to close lookup service", "error", err)
		}
	}

	server := mcputil.CreateServer(mcputil.ServerConfig{
		Name:      ServerName,
		Version:   version,
		LookupSvc: svc,
	})

	return server, svc, cleanup, nil
}

// NewLookupService creates a lookup service reading documentation files from
// the configured data directory.
func NewLookupService(ctx context.Context, settings *config.Settings) (*lookup.Service, error) {
	docs := settings.Docs

	if docs.Git.Enabled() {
		syncer := docsource.NewSyncer(docs.DataDir, docsource.SyncOptions{
			URL:     docs.Git.URL,
			Branch:  docs.Git.Branch,
			Timeout: docs.Git.SyncTimeout,
		}, nil)

		// Continue with whatever is already on disk
		if err := syncer.Sync(ctx); err != nil {
			slog.Error("Documentation sync failed", "url", docsource.RedactURL(docs.Git.URL), "error", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loader := docsource.NewLoggingLoader(docsource.NewFileLoader(docs.DataDir))

	return lookup.NewService(loader, lookup.Options{
		DefaultSource:  docs.DefaultSource,
		IncludePrivate: docs.IncludePrivate,
		MaxResults:     docs.MaxResults,
		URLs: render.URLs{
			SiteURL:       docs.SiteURL,
			RepositoryURL: docs.RepositoryURL,
		},
	}), nil
}
