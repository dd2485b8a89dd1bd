package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sha1n/mcp-docs-lookup/internal/config"
	"github.com/sha1n/mcp-docs-lookup/internal/lookup"
	"github.com/sha1n/mcp-docs-lookup/internal/render"
	"github.com/spf13/pflag"
)

// QueryParams contains dependencies for a one-shot lookup
type QueryParams struct {
	LoadSettings  func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings func(*config.Settings) error
	Out           io.Writer
	NoColor       bool
}

// DefaultQueryParams returns production dependencies writing to stdout
func DefaultQueryParams(noColor bool) QueryParams {
	return QueryParams{
		LoadSettings:  config.LoadSettingsWithFlags,
		ValidSettings: config.ValidateSettings,
		Out:           os.Stdout,
		NoColor:       noColor,
	}
}

// RunQuery resolves a single request against the configured documentation
// and prints the result to params.Out.
func RunQuery(ctx context.Context, params QueryParams, flags *pflag.FlagSet, req lookup.Request) error {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Only problems reach the terminal
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	slog.SetDefault(slog.New(handler))

	svc, err := NewLookupService(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			slog.Error("Failed to close lookup service", "error", err)
		}
	}()

	result, err := svc.Lookup(ctx, req)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	return render.NewTerminalPrinter(params.NoColor).Print(params.Out, result)
}
