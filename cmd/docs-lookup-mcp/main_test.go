package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sha1n/mcp-docs-lookup/internal/app"
	"github.com/sha1n/mcp-docs-lookup/internal/catalog"
	"github.com/sha1n/mcp-docs-lookup/internal/config"
)

func TestExecute_Version(t *testing.T) {
	err := Execute("1.0.0", "abc123", "docs-lookup-mcp", []string{"--version"})
	if err != nil {
		t.Errorf("Expected no error for --version, got: %v", err)
	}
}

func TestExecute_Help(t *testing.T) {
	err := Execute("1.0.0", "abc123", "docs-lookup-mcp", []string{"--help"})
	if err != nil {
		t.Errorf("Expected no error for --help, got: %v", err)
	}
}

func TestExecute_InvalidFlag(t *testing.T) {
	err := Execute("1.0.0", "abc123", "docs-lookup-mcp", []string{"--invalid-flag"})
	if err == nil {
		t.Error("Expected error for invalid flag")
	}
}

func TestExecute_InvalidTransport(t *testing.T) {
	err := Execute("1.0.0", "abc123", "docs-lookup-mcp", []string{"--transport", "invalid"})
	if err == nil {
		t.Fatal("Expected error for invalid transport")
	}
	if !strings.Contains(err.Error(), "transport") {
		t.Errorf("Expected error about transport, got: %v", err)
	}
}

func TestExecute_InvalidDefaultSource(t *testing.T) {
	err := Execute("1.0.0", "abc123", "docs-lookup-mcp", []string{"--default-source", "discord.js"})
	if err == nil {
		t.Fatal("Expected error for invalid default source")
	}
	if !strings.Contains(err.Error(), "default-source") {
		t.Errorf("Expected error about default-source, got: %v", err)
	}
}

func TestExecute_QueryRequiresText(t *testing.T) {
	err := Execute("1.0.0", "abc123", "docs-lookup-mcp", []string{"query"})
	if err == nil {
		t.Error("Expected error for query without text")
	}
}

func TestQueryCommand(t *testing.T) {
	dataDir := t.TempDir()
	data, err := json.Marshal(catalog.SampleDocumentation())
	if err != nil {
		t.Fatalf("Failed to marshal sample docs: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dataDir, "discord.js"), 0o755); err != nil {
		t.Fatalf("Failed to create package dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "discord.js", "stable.json"), data, 0o644); err != nil {
		t.Fatalf("Failed to write docs: %v", err)
	}

	var out bytes.Buffer
	var gotNoColor bool
	cmd := newQueryCommand(func(noColor bool) app.QueryParams {
		gotNoColor = noColor
		return app.QueryParams{
			LoadSettings:  config.LoadSettingsWithFlags,
			ValidSettings: config.ValidateSettings,
			Out:           &out,
			NoColor:       noColor,
		}
	})
	cmd.SetArgs([]string{"--no-color", "-d", dataDir, "-s", "discord.js/stable", "Client#ready"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !gotNoColor {
		t.Error("Expected --no-color to be passed through")
	}
	if !strings.HasPrefix(out.String(), "__Client#ready__\n") {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestRunMain_Success(t *testing.T) {
	exitCode := -1
	mockExit := func(code int) {
		exitCode = code
	}

	// --help should succeed
	runMain([]string{"docs-lookup-mcp", "--help"}, mockExit)

	if exitCode != -1 {
		t.Errorf("Expected no exit call for --help, got exit code: %d", exitCode)
	}
}

func TestRunMain_Failure(t *testing.T) {
	exitCode := -1
	mockExit := func(code int) {
		exitCode = code
	}

	runMain([]string{"docs-lookup-mcp", "--invalid"}, mockExit)

	if exitCode != 1 {
		t.Errorf("Expected exit code 1 for invalid flag, got: %d", exitCode)
	}
}
