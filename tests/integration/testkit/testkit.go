// Package testkit runs the docs lookup server for integration tests.
package testkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-lookup/internal/app"
	"github.com/sha1n/mcp-docs-lookup/internal/config"
	"github.com/sha1n/mcp-docs-lookup/internal/docsource"
	"github.com/sha1n/mcp-docs-lookup/internal/domain"
	"github.com/sha1n/mcp-docs-lookup/internal/lookup"
	"github.com/spf13/pflag"
)

const (
	startTimeout    = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Options configures a DocsServer
type Options struct {
	DataDir string // Defaults to a new temporary directory
	GitURL  string // Leaves git sync disabled if empty
	// Docs are written into DataDir before the server starts, keyed by selector
	Docs map[string]*domain.Documentation
}

// WriteDocs writes doc as the documentation file of selector under dataDir.
func WriteDocs(t testing.TB, dataDir, selector string, doc *domain.Documentation) {
	t.Helper()

	src, err := docsource.ParseSource(selector)
	if err != nil {
		t.Fatalf("Invalid selector %q: %v", selector, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal documentation: %v", err)
	}

	path := docsource.NewFileLoader(dataDir).Path(src)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// Flags returns the command line flags of an SSE server on a free local
// port serving opts.DataDir, which must be set.
func Flags(t testing.TB, opts Options) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	app.RegisterFlags(flags)

	set := func(name, value string) {
		if err := flags.Set(name, value); err != nil {
			t.Fatalf("Failed to set --%s: %v", name, err)
		}
	}

	set("transport", config.TransportSSE)
	set("host", "127.0.0.1")
	set("port", strconv.Itoa(freePort(t)))
	set("data-dir", opts.DataDir)
	if opts.GitURL != "" {
		set("git-url", opts.GitURL)
	}

	return flags
}

func freePort(t testing.TB) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find a free port: %v", err)
	}
	defer func() { _ = ln.Close() }()
	return ln.Addr().(*net.TCPAddr).Port
}

// DocsServer is a running docs lookup server.
type DocsServer struct {
	dataDir string

	mu        sync.Mutex
	srv       *http.Server
	listening chan struct{}
	done      chan error

	stopOnce sync.Once
	stopErr  error
}

// StartDocsServer writes opts.Docs, starts the complete server over SSE and
// stops it when the test ends.
func StartDocsServer(t testing.TB, opts Options) *DocsServer {
	t.Helper()

	if opts.DataDir == "" {
		opts.DataDir = t.TempDir()
	}
	for selector, doc := range opts.Docs {
		WriteDocs(t, opts.DataDir, selector, doc)
	}

	s := &DocsServer{
		dataDir:   opts.DataDir,
		listening: make(chan struct{}),
		done:      make(chan error, 1),
	}
	if err := s.start(Flags(t, opts)); err != nil {
		t.Fatalf("Failed to start docs server: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Stop(); err != nil {
			t.Errorf("Failed to stop docs server: %v", err)
		}
	})
	return s
}

// BaseURL returns the HTTP base URL of the server.
func (s *DocsServer) BaseURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return "http://" + s.srv.Addr
}

// DataDir returns the documentation directory the server reads.
func (s *DocsServer) DataDir() string {
	return s.dataDir
}

// Stop shuts the HTTP server down and waits for the run loop to return.
// Subsequent calls return the result of the first.
func (s *DocsServer) Stop() error {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Open SSE streams keep Shutdown waiting
		if err := srv.Shutdown(ctx); err != nil {
			_ = srv.Close()
		}
		s.stopErr = <-s.done
	})
	return s.stopErr
}

func (s *DocsServer) start(flags *pflag.FlagSet) error {
	params := app.DefaultRunParams()
	params.StartSSEServer = s.serve

	go func() {
		s.done <- app.RunWithDeps(context.Background(), params, flags, "test")
	}()

	select {
	case <-s.listening:
		return nil
	case err := <-s.done:
		return fmt.Errorf("server exited before listening: %w", err)
	case <-time.After(startTimeout):
		return errors.New("timed out waiting for server to listen")
	}
}

func (s *DocsServer) serve(m *mcp.Server, svc *lookup.Service, settings *config.Settings) error {
	srv := app.NewSSEServer(m, svc, settings)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()
	close(s.listening)

	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
