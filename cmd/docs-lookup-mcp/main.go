package main

import (
	"context"
	"os"
	"strings"

	"github.com/sha1n/mcp-docs-lookup/internal/app"
	"github.com/sha1n/mcp-docs-lookup/internal/lookup"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "docs-lookup-mcp"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	if err := Execute(Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing
func Execute(version, build, programName string, args []string) error {
	rootCmd := &cobra.Command{
		Use:     programName,
		Short:   "Documentation lookup MCP server",
		Long:    "Serves fuzzy lookups of discord.js style documentation entities over MCP and HTTP",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithFlags(cmd.Flags(), version)
		},
	}

	rootCmd.SetVersionTemplate(`{{.Version}}
`)

	app.RegisterFlags(rootCmd.Flags())
	rootCmd.AddCommand(newQueryCommand(app.DefaultQueryParams))
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

func newQueryCommand(params func(noColor bool) app.QueryParams) *cobra.Command {
	var (
		source  string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Look up a documentation entity and print it",
		Example: `  query Client
  query "Client#ready"
  query --source discord.js/main MessageButton`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := lookup.Request{
				Query:  strings.Join(args, " "),
				Source: source,
			}
			return app.RunQuery(cmd.Context(), params(noColor), cmd.Flags(), req)
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "Documentation source, e.g. discord.js/stable (default: configured default source)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	app.RegisterDocsFlags(cmd.Flags())

	return cmd
}

func runWithFlags(flags *pflag.FlagSet, version string) error {
	return app.RunWithDeps(context.Background(), app.DefaultRunParams(), flags, version)
}
