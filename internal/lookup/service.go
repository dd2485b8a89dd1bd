package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sha1n/mcp-docs-lookup/internal/catalog"
	"github.com/sha1n/mcp-docs-lookup/internal/docsource"
	"github.com/sha1n/mcp-docs-lookup/internal/domain"
	"github.com/sha1n/mcp-docs-lookup/internal/fuzzy"
	"github.com/sha1n/mcp-docs-lookup/internal/render"
)

// Options configure a Service.
type Options struct {
	// DefaultSource is the selector used when a request names none
	DefaultSource string
	// IncludePrivate is used when a request does not say
	IncludePrivate bool
	// MaxResults bounds the candidates ranked per query
	MaxResults int
	// URLs are the link bases of rendered results
	URLs render.URLs
}

// Request is a single documentation query.
type Request struct {
	Query          string
	Source         string
	IncludePrivate *bool
}

// Service loads documentation on demand and resolves queries against it.
// Indexes are built once per source list and privacy flag.
type Service struct {
	loader docsource.Loader
	cache  *Cache
	opts   Options
}

// NewService creates a service reading documentation through loader.
func NewService(loader docsource.Loader, opts Options) *Service {
	if opts.DefaultSource == "" {
		opts.DefaultSource = docsource.DefaultSource
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = fuzzy.DefaultMaxResults
	}
	if opts.URLs == (render.URLs{}) {
		opts.URLs = render.DefaultURLs()
	}

	return &Service{
		loader: loader,
		cache:  NewCache(),
		opts:   opts,
	}
}

// Lookup resolves a request. It fails with docsource.ErrInvalidSource for a
// malformed selector and docsource.ErrSourceNotFound when documentation for
// a selected source is missing.
func (s *Service) Lookup(ctx context.Context, req Request) (domain.RenderedResult, error) {
	resolver, err := s.resolver(ctx, req.Source, s.includePrivate(req))
	if err != nil {
		return domain.RenderedResult{}, err
	}
	return resolver.Resolve(ctx, req.Query)
}

// Warm builds the index of a selector ahead of the first request. An empty
// selector warms the default source.
func (s *Service) Warm(ctx context.Context, source string) error {
	_, err := s.resolver(ctx, source, s.opts.IncludePrivate)
	return err
}

// DefaultSource returns the selector used for requests without one.
func (s *Service) DefaultSource() string {
	return s.opts.DefaultSource
}

// Close releases every cached index.
func (s *Service) Close() error {
	return s.cache.Close()
}

func (s *Service) includePrivate(req Request) bool {
	if req.IncludePrivate != nil {
		return *req.IncludePrivate
	}
	return s.opts.IncludePrivate
}

func (s *Service) resolver(ctx context.Context, source string, includePrivate bool) (*Resolver, error) {
	if strings.TrimSpace(source) == "" {
		source = s.opts.DefaultSource
	}

	sources, err := docsource.ParseSources(source)
	if err != nil {
		return nil, err
	}

	key := CacheKey{Sources: docsource.Key(sources), IncludePrivate: includePrivate}
	// The build is shared by concurrent callers and outlives each of them
	buildCtx := context.WithoutCancel(ctx)
	return s.cache.GetOrBuild(key, func() (*Resolver, error) {
		return s.build(buildCtx, sources, includePrivate)
	})
}

func (s *Service) build(ctx context.Context, sources []docsource.Source, includePrivate bool) (*Resolver, error) {
	start := time.Now()

	docs := make([]catalog.PackageDocs, 0, len(sources))
	for _, src := range sources {
		doc, err := s.loader.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		docs = append(docs, catalog.PackageDocs{Package: src.String(), Doc: doc})
	}

	index := catalog.BuildAll(docs)
	names := index.Names(includePrivate)

	ranker, err := fuzzy.NewBleveRanker(names, s.opts.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to build ranker: %w", err)
	}

	slog.Info("Built entity index",
		"sources", docsource.Key(sources),
		"include_private", includePrivate,
		"entities", index.Len(),
		"ranked", len(names),
		"duration", time.Since(start),
	)

	return NewResolver(index, ranker, render.NewRenderer(index, s.opts.URLs)), nil
}
