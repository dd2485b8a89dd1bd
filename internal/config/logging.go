package config

import (
	"context"
	"log/slog"

	"github.com/sha1n/mcp-docs-lookup/internal/docsource"
)

// Log logs the resolved settings in a granular way, skipping irrelevant ones
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: transport", "value", s.Transport)
	if s.Transport == TransportSSE {
		logger.InfoContext(ctx, "Config: host", "value", s.Host)
		logger.InfoContext(ctx, "Config: port", "value", s.Port)
	}

	logger.InfoContext(ctx, "Config: docs.data_dir", "value", s.Docs.DataDir)
	logger.InfoContext(ctx, "Config: docs.default_source", "value", s.Docs.DefaultSource)
	logger.InfoContext(ctx, "Config: docs.include_private", "value", s.Docs.IncludePrivate)
	logger.InfoContext(ctx, "Config: docs.max_results", "value", s.Docs.MaxResults)
	logger.InfoContext(ctx, "Config: docs.site_url", "value", s.Docs.SiteURL)
	logger.InfoContext(ctx, "Config: docs.repository_url", "value", s.Docs.RepositoryURL)

	if s.Docs.Git.Enabled() {
		logger.InfoContext(ctx, "Config: docs.git.url", "value", docsource.RedactURL(s.Docs.Git.URL))
		logger.InfoContext(ctx, "Config: docs.git.branch", "value", s.Docs.Git.Branch)
		logger.InfoContext(ctx, "Config: docs.git.sync_timeout", "value", s.Docs.Git.SyncTimeout)
	}
}
