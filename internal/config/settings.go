package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sha1n/mcp-docs-lookup/internal/docsource"
	"github.com/sha1n/mcp-docs-lookup/internal/render"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Transport constants
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// EnvPrefix is the prefix of every environment variable read by the server
const EnvPrefix = "DOCS_LOOKUP"

// GitSettings configuration for syncing the data directory from git
type GitSettings struct {
	URL         string        `mapstructure:"url"`
	Branch      string        `mapstructure:"branch"`
	SyncTimeout time.Duration `mapstructure:"sync_timeout"`
}

// Enabled reports whether a repository is configured
func (g GitSettings) Enabled() bool {
	return g.URL != ""
}

// DocsSettings configuration for documentation lookups
type DocsSettings struct {
	DataDir        string      `mapstructure:"data_dir"`
	DefaultSource  string      `mapstructure:"default_source"`
	IncludePrivate bool        `mapstructure:"include_private"`
	MaxResults     int         `mapstructure:"max_results"`
	SiteURL        string      `mapstructure:"site_url"`
	RepositoryURL  string      `mapstructure:"repository_url"`
	Git            GitSettings `mapstructure:"git"`
}

// Settings application settings
type Settings struct {
	Transport string       `mapstructure:"transport"`
	Host      string       `mapstructure:"host"`
	Port      int          `mapstructure:"port"`
	Docs      DocsSettings `mapstructure:"docs"`
}

// configKeys maps every nested settings key to its CLI flag name.
var configKeys = map[string]string{
	"transport":             "transport",
	"host":                  "host",
	"port":                  "port",
	"docs.data_dir":         "data-dir",
	"docs.default_source":   "default-source",
	"docs.include_private":  "include-private",
	"docs.max_results":      "max-results",
	"docs.site_url":         "site-url",
	"docs.repository_url":   "repository-url",
	"docs.git.url":          "git-url",
	"docs.git.branch":       "git-branch",
	"docs.git.sync_timeout": "git-sync-timeout",
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("transport", TransportStdio)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)

	// Docs defaults
	v.SetDefault("docs.data_dir", defaultDataDir())
	v.SetDefault("docs.default_source", docsource.DefaultSource)
	v.SetDefault("docs.include_private", false)
	v.SetDefault("docs.max_results", 10)
	v.SetDefault("docs.site_url", render.DefaultSiteURL)
	v.SetDefault("docs.repository_url", render.DefaultRepositoryURL)
	v.SetDefault("docs.git.url", "")
	v.SetDefault("docs.git.branch", "")
	v.SetDefault("docs.git.sync_timeout", docsource.DefaultSyncTimeout)

	// Environment variables: docs.git.url -> DOCS_LOOKUP_DOCS_GIT_URL
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key := range configKeys {
		_ = v.BindEnv(key, EnvVar(key))
	}

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		for key, flag := range configKeys {
			if f := flags.Lookup(flag); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	// Helper to look for .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	settings.Docs.DataDir = expandHomeDir(strings.TrimSpace(settings.Docs.DataDir))
	settings.Docs.DefaultSource = strings.TrimSpace(settings.Docs.DefaultSource)
	settings.Docs.Git.URL = strings.TrimSpace(settings.Docs.Git.URL)

	return &settings, nil
}

// EnvVar returns the environment variable bound to a settings key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// defaultDataDir returns the default documentation data directory
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".docs-lookup", "data")
	}
	return filepath.Join(home, ".docs-lookup", "data")
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

// ValidateSettings checks the settings for invalid or conflicting values.
func ValidateSettings(s *Settings) error {
	switch s.Transport {
	case TransportStdio, TransportSSE:
		// valid
	default:
		return errors.New("transport must be 'stdio' or 'sse', got: " + s.Transport)
	}

	if s.Transport == TransportSSE && (s.Port <= 0 || s.Port > 65535) {
		return fmt.Errorf("port must be between 1 and 65535, got: %d", s.Port)
	}

	return validateDocsSettings(&s.Docs)
}

// validateDocsSettings validates the documentation configuration
func validateDocsSettings(d *DocsSettings) error {
	if d.DataDir == "" {
		return errors.New("data-dir cannot be empty")
	}

	if _, err := docsource.ParseSources(d.DefaultSource); err != nil {
		return fmt.Errorf("default-source: %w", err)
	}

	if d.MaxResults <= 0 {
		return errors.New("max-results must be positive")
	}

	for name, raw := range map[string]string{"site-url": d.SiteURL, "repository-url": d.RepositoryURL} {
		if err := validateBaseURL(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if d.Git.Enabled() && d.Git.SyncTimeout <= 0 {
		return errors.New("git-sync-timeout must be positive")
	}

	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme in %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
