package docsource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleJSON = `{
  "classes": [
    {
      "name": "MessageButton",
      "description": "Represents a button message component.",
      "extends": [[["BaseMessageComponent"]]],
      "props": [{"name": "customId", "type": [[["string"]]]}],
      "methods": [{"name": "setCustomId"}],
      "meta": {"line": 12, "file": "MessageButton.js", "path": "src/structures"}
    }
  ],
  "typedefs": [
    {"name": "ColorResolvable", "type": [[["string"], ["number"], ["Array", "<"], ["number", ">"]]]}
  ]
}`

func writeDoc(t *testing.T, dataDir, pkg, version, content string) {
	t.Helper()
	dir := filepath.Join(dataDir, pkg)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, version+".json"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write doc: %v", err)
	}
}

func TestFileLoader_Load(t *testing.T) {
	dataDir := t.TempDir()
	writeDoc(t, dataDir, "discord.js", "stable", sampleJSON)

	loader := NewFileLoader(dataDir)
	doc, err := loader.Load(context.Background(), Source{Package: "discord.js", Version: "stable"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(doc.Classes) != 1 || doc.Classes[0].Name != "MessageButton" {
		t.Fatalf("Unexpected classes: %+v", doc.Classes)
	}
	if got := doc.Classes[0].Extends; len(got) != 1 || got[0] != "BaseMessageComponent" {
		t.Errorf("Unexpected extends: %q", got)
	}
	if len(doc.Typedefs) != 1 || len(doc.Typedefs[0].Type) != 6 {
		t.Errorf("Unexpected typedefs: %+v", doc.Typedefs)
	}
	if doc.Interfaces != nil {
		t.Errorf("Expected absent interfaces, got %+v", doc.Interfaces)
	}
}

func TestFileLoader_Path(t *testing.T) {
	loader := NewFileLoader("/data")
	got := loader.Path(Source{Package: "discord.js", Version: "13.1.0"})
	if got != filepath.Join("/data", "discord.js", "13.1.0.json") {
		t.Errorf("Path = %q", got)
	}
}

func TestFileLoader_NotFound(t *testing.T) {
	loader := NewFileLoader(t.TempDir())

	_, err := loader.Load(context.Background(), Source{Package: "discord.js", Version: "main"})
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Expected ErrSourceNotFound, got %v", err)
	}
}

func TestFileLoader_InvalidJSON(t *testing.T) {
	dataDir := t.TempDir()
	writeDoc(t, dataDir, "discord.js", "stable", "{not json")

	_, err := NewFileLoader(dataDir).Load(context.Background(), Source{Package: "discord.js", Version: "stable"})
	if err == nil {
		t.Fatal("Expected parse error")
	}
	if errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Parse error should not be ErrSourceNotFound: %v", err)
	}
}

func TestFileLoader_CanceledContext(t *testing.T) {
	dataDir := t.TempDir()
	writeDoc(t, dataDir, "discord.js", "stable", sampleJSON)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileLoader(dataDir).Load(ctx, Source{Package: "discord.js", Version: "stable"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestLoggingLoader_PassesThrough(t *testing.T) {
	dataDir := t.TempDir()
	writeDoc(t, dataDir, "discord.js", "stable", sampleJSON)
	loader := NewLoggingLoader(NewFileLoader(dataDir))

	doc, err := loader.Load(context.Background(), Source{Package: "discord.js", Version: "stable"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Classes) != 1 {
		t.Errorf("Unexpected classes: %+v", doc.Classes)
	}

	_, err = loader.Load(context.Background(), Source{Package: "discord.js", Version: "main"})
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Expected ErrSourceNotFound, got %v", err)
	}
}
