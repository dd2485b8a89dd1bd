package docsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sha1n/mcp-docs-lookup/internal/domain"
)

// ErrSourceNotFound indicates that no documentation exists for a source.
var ErrSourceNotFound = errors.New("documentation not found")

// Loader loads the documentation tree of a source.
type Loader interface {
	Load(ctx context.Context, src Source) (*domain.Documentation, error)
}

// FileLoader reads documentation from <dataDir>/<package>/<version>.json.
type FileLoader struct {
	dataDir string
}

// NewFileLoader creates a loader rooted at dataDir.
func NewFileLoader(dataDir string) *FileLoader {
	return &FileLoader{dataDir: dataDir}
}

// Path returns the file a source is read from.
func (l *FileLoader) Path(src Source) string {
	return filepath.Join(l.dataDir, src.Package, src.Version+".json")
}

// Load implements Loader.
func (l *FileLoader) Load(ctx context.Context, src Source) (*domain.Documentation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.Path(src))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
		}
		return nil, fmt.Errorf("failed to read documentation for %s: %w", src, err)
	}

	var doc domain.Documentation
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse documentation for %s: %w", src, err)
	}

	return &doc, nil
}

// LoggingLoader logs every load performed by the wrapped loader.
type LoggingLoader struct {
	next Loader
}

// NewLoggingLoader wraps next with logging.
func NewLoggingLoader(next Loader) *LoggingLoader {
	return &LoggingLoader{next: next}
}

// Load implements Loader.
func (l *LoggingLoader) Load(ctx context.Context, src Source) (*domain.Documentation, error) {
	start := time.Now()

	doc, err := l.next.Load(ctx, src)
	if err != nil {
		slog.Warn("Failed to load documentation", "source", src.String(), "error", err)
		return nil, err
	}

	slog.Info("Loaded documentation",
		"source", src.String(),
		"classes", len(doc.Classes),
		"interfaces", len(doc.Interfaces),
		"typedefs", len(doc.Typedefs),
		"duration", time.Since(start),
	)
	return doc, nil
}
