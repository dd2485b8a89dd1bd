package app

import (
	"github.com/sha1n/mcp-docs-lookup/internal/docsource"
	"github.com/spf13/pflag"
)

// RegisterFlags registers all server CLI flags on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("transport", "t", "", "Transport type: stdio or sse")
	flags.StringP("host", "H", "", "Host for SSE transport")
	flags.IntP("port", "p", 0, "Port for SSE transport")
	RegisterDocsFlags(flags)
	flags.String("git-url", "", "Git repository to sync the data directory from")
	flags.String("git-branch", "", "Git branch to sync (default: remote HEAD)")
	flags.Duration("git-sync-timeout", docsource.DefaultSyncTimeout, "How long to wait for another instance's sync")
}

// RegisterDocsFlags registers the flags that control documentation lookups
func RegisterDocsFlags(flags *pflag.FlagSet) {
	flags.StringP("data-dir", "d", "", "Directory holding <package>/<version>.json documentation files")
	flags.String("default-source", "", "Source used when a query names none, e.g. discord.js/stable")
	flags.Bool("include-private", false, "Include private members in lookups by default")
	flags.Int("max-results", 0, "Maximum number of candidates in a summary")
	flags.String("site-url", "", "Base URL of the documentation site")
	flags.String("repository-url", "", "Base URL of the source repository")
}
