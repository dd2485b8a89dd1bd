package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sha1n/mcp-docs-lookup/internal/catalog"
	"github.com/sha1n/mcp-docs-lookup/internal/docsource"
	"github.com/sha1n/mcp-docs-lookup/internal/domain"
	"github.com/sha1n/mcp-docs-lookup/internal/render"
)

const site = "https://discord.js.org/#/docs/discord.js/stable"

// memLoader serves documentation from memory and counts loads.
type memLoader struct {
	mu    sync.Mutex
	docs  map[string]*domain.Documentation
	delay time.Duration
	loads atomic.Int32
	// checkContext makes loads fail once their context is done
	checkContext bool
}

func newMemLoader() *memLoader {
	return &memLoader{docs: map[string]*domain.Documentation{
		"discord.js/stable": catalog.SampleDocumentation(),
	}}
}

func (l *memLoader) put(selector string, doc *domain.Documentation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs[selector] = doc
}

func (l *memLoader) Load(ctx context.Context, src docsource.Source) (*domain.Documentation, error) {
	l.loads.Add(1)
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	if l.checkContext && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	doc, ok := l.docs[src.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", docsource.ErrSourceNotFound, src)
	}
	return doc, nil
}

func newTestService(t *testing.T, loader docsource.Loader) *Service {
	t.Helper()
	svc := NewService(loader, Options{DefaultSource: "discord.js/stable", MaxResults: 25})
	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return svc
}

func lookup(t *testing.T, svc *Service, req Request) domain.RenderedResult {
	t.Helper()
	result, err := svc.Lookup(context.Background(), req)
	if err != nil {
		t.Fatalf("Lookup(%+v) failed: %v", req, err)
	}
	return result
}

func boolPtr(b bool) *bool {
	return &b
}

func TestLookup_ExactClassMatch(t *testing.T) {
	loader := newMemLoader()
	loader.put("discord.js/main", &domain.Documentation{Classes: []domain.Class{{
		Name:    "MessageButton",
		Props:   []domain.Property{{Name: "customId"}, {Name: "disabled"}},
		Methods: []domain.Method{{Name: "setCustomId"}, {Name: "toJSON"}},
	}}})
	svc := newTestService(t, loader)

	got := lookup(t, svc, Request{Query: "MessageButton", Source: "discord.js/main"})

	if got.Title != "__MessageButton__" {
		t.Errorf("Title = %q", got.Title)
	}
	props, _ := got.Field(render.FieldProperties)
	if props.Value != "`customId` `disabled`" {
		t.Errorf("Properties = %q", props.Value)
	}
	methods, _ := got.Field(render.FieldMethods)
	if methods.Value != "`setCustomId` `toJSON`" {
		t.Errorf("Methods = %q", methods.Value)
	}
}

func TestLookup_PartialQueryReturnsSummary(t *testing.T) {
	svc := newTestService(t, newMemLoader())

	got := lookup(t, svc, Request{Query: "messageb"})

	if got.Title != render.SummaryTitle {
		t.Fatalf("Expected summary, got %+v", got)
	}
	prefix := render.GlyphClass + "[MessageButton](" + site + "/class/MessageButton)"
	if !strings.HasPrefix(got.Description, prefix) {
		t.Errorf("Summary should start with %q, got %q", prefix, got.Description)
	}
}

func TestLookup_TypedefType(t *testing.T) {
	svc := newTestService(t, newMemLoader())

	got := lookup(t, svc, Request{Query: "ColorResolvable"})

	typeField, ok := got.Field(render.FieldType)
	if !ok || typeField.Value != "`string` `number` `Array<number>`" {
		t.Errorf("Unexpected Type field: %+v", typeField)
	}
}

func TestLookup_CaseInsensitiveMemberMatch(t *testing.T) {
	svc := newTestService(t, newMemLoader())

	tests := []struct {
		query string
		title string
	}{
		{"messagebutton", "__MessageButton__"},
		{"messagebutton.setcustomid", "__MessageButton.setCustomId()__"},
		{"Client.login()", "__Client.login()__"},
		{"client#ready", "__Client#ready__"},
		{"  Client  ", "__Client__"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := lookup(t, svc, Request{Query: tt.query})
			if got.Title != tt.title {
				t.Errorf("Title = %q, want %q", got.Title, tt.title)
			}
		})
	}
}

func TestLookup_PrivateMembers(t *testing.T) {
	svc := newTestService(t, newMemLoader())

	hidden := lookup(t, svc, Request{Query: "MessageButton.resolveStyle()"})
	if hidden.Title != render.SummaryTitle {
		t.Errorf("Private method should not match exactly, got %q", hidden.Title)
	}
	if strings.Contains(hidden.Description, "resolveStyle") {
		t.Errorf("Private method should not be listed: %q", hidden.Description)
	}

	shown := lookup(t, svc, Request{Query: "MessageButton.resolveStyle()", IncludePrivate: boolPtr(true)})
	if shown.Title != "__MessageButton.resolveStyle()__" {
		t.Errorf("Expected private method detail, got %q", shown.Title)
	}
}

func TestLookup_DefaultIncludePrivate(t *testing.T) {
	svc := NewService(newMemLoader(), Options{IncludePrivate: true})
	defer func() { _ = svc.Close() }()

	got := lookup(t, svc, Request{Query: "Client.token"})
	if got.Title != "__Client.token__" {
		t.Errorf("Expected private property detail, got %q", got.Title)
	}

	got = lookup(t, svc, Request{Query: "Client.token", IncludePrivate: boolPtr(false)})
	if got.Title == "__Client.token__" {
		t.Error("Explicit includePrivate=false should hide private members")
	}
}

func TestLookup_NoCandidates(t *testing.T) {
	svc := newTestService(t, newMemLoader())

	got := lookup(t, svc, Request{Query: "zzzzqqqq"})
	if got.Title != render.SummaryTitle || got.Description != "" {
		t.Errorf("Expected empty summary, got %+v", got)
	}

	got = lookup(t, svc, Request{Query: ""})
	if got.Title != render.SummaryTitle || got.Description != "" {
		t.Errorf("Expected empty summary for empty query, got %+v", got)
	}
}

func TestLookup_MultipleSources(t *testing.T) {
	loader := newMemLoader()
	loader.put("collection/main", &domain.Documentation{Classes: []domain.Class{{
		Name:        "Collection",
		Description: "A Map with additional utility methods.",
		Meta:        &domain.Meta{Line: 5, File: "index.ts", Path: "src"},
	}}})
	svc := newTestService(t, loader)

	got := lookup(t, svc, Request{Query: "Collection", Source: "discord.js/stable,collection/main"})

	if got.URL != "https://discord.js.org/#/docs/collection/main/class/Collection" {
		t.Errorf("URL = %q", got.URL)
	}
	if got.Footer == nil || !strings.Contains(got.Footer.Text, "/blob/main/src/index.ts#L5") {
		t.Errorf("Unexpected footer: %+v", got.Footer)
	}

	got = lookup(t, svc, Request{Query: "Client", Source: "discord.js/stable,collection/main"})
	if got.Title != "__Client__" {
		t.Errorf("Expected Client from the first source, got %q", got.Title)
	}
}

func TestLookup_Errors(t *testing.T) {
	svc := newTestService(t, newMemLoader())

	_, err := svc.Lookup(context.Background(), Request{Query: "Client", Source: "discord.js/v14"})
	if !errors.Is(err, docsource.ErrInvalidSource) {
		t.Errorf("Expected ErrInvalidSource, got %v", err)
	}

	_, err = svc.Lookup(context.Background(), Request{Query: "Client", Source: "discord.js/main"})
	if !errors.Is(err, docsource.ErrSourceNotFound) {
		t.Errorf("Expected ErrSourceNotFound, got %v", err)
	}
}

func TestLookup_FailedBuildIsNotCached(t *testing.T) {
	loader := newMemLoader()
	svc := newTestService(t, loader)

	if _, err := svc.Lookup(context.Background(), Request{Query: "Client", Source: "discord.js/main"}); err == nil {
		t.Fatal("Expected error for missing source")
	}

	loader.put("discord.js/main", catalog.SampleDocumentation())

	got := lookup(t, svc, Request{Query: "Client", Source: "discord.js/main"})
	if got.Title != "__Client__" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestLookup_BuildsOncePerKey(t *testing.T) {
	loader := newMemLoader()
	svc := newTestService(t, loader)

	lookup(t, svc, Request{Query: "Client"})
	lookup(t, svc, Request{Query: "MessageButton", Source: "discord.js/stable"})
	if n := loader.loads.Load(); n != 1 {
		t.Errorf("Expected 1 load, got %d", n)
	}

	lookup(t, svc, Request{Query: "Client", IncludePrivate: boolPtr(true)})
	if n := loader.loads.Load(); n != 2 {
		t.Errorf("Expected a second build for the private index, got %d loads", n)
	}
	if n := svc.cache.Len(); n != 2 {
		t.Errorf("Expected 2 cached resolvers, got %d", n)
	}
}

func TestLookup_ConcurrentFirstRequests(t *testing.T) {
	loader := newMemLoader()
	loader.delay = 50 * time.Millisecond
	svc := newTestService(t, loader)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Lookup(context.Background(), Request{Query: "Client"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Lookup failed: %v", err)
	}
	if n := loader.loads.Load(); n != 1 {
		t.Errorf("Expected a single build, got %d loads", n)
	}
}

func TestLookup_CanceledCallerDoesNotFailSharedBuild(t *testing.T) {
	loader := newMemLoader()
	loader.checkContext = true
	loader.delay = 50 * time.Millisecond
	svc := newTestService(t, loader)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		first <- svc.Warm(ctx, "")
	}()

	time.Sleep(10 * time.Millisecond)
	waiter := make(chan error, 1)
	go func() {
		_, err := svc.Lookup(context.Background(), Request{Query: "Client"})
		waiter <- err
	}()
	cancel()

	if err := <-first; err != nil {
		t.Errorf("Expected the build to outlive its caller, got %v", err)
	}
	if err := <-waiter; err != nil {
		t.Errorf("Expected the waiting lookup to succeed, got %v", err)
	}
	if n := loader.loads.Load(); n != 1 {
		t.Errorf("Expected a single build, got %d loads", n)
	}
}

func TestService_Warm(t *testing.T) {
	loader := newMemLoader()
	svc := newTestService(t, loader)

	if err := svc.Warm(context.Background(), ""); err != nil {
		t.Fatalf("Warm failed: %v", err)
	}
	lookup(t, svc, Request{Query: "Client"})

	if n := loader.loads.Load(); n != 1 {
		t.Errorf("Expected warmed index to be reused, got %d loads", n)
	}
}

func TestService_Closed(t *testing.T) {
	svc := NewService(newMemLoader(), Options{})
	lookupOnce := func() error {
		_, err := svc.Lookup(context.Background(), Request{Query: "Client"})
		return err
	}

	if err := lookupOnce(); err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}
	if err := lookupOnce(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(newMemLoader(), Options{})
	defer func() { _ = svc.Close() }()

	if svc.DefaultSource() != docsource.DefaultSource {
		t.Errorf("DefaultSource = %q", svc.DefaultSource())
	}
	if svc.opts.URLs != render.DefaultURLs() {
		t.Errorf("URLs = %+v", svc.opts.URLs)
	}
}
