// Package lookup answers documentation queries: it decides between an exact
// and an ambiguous match and renders the answer.
package lookup

import (
	"context"

	"github.com/sha1n/mcp-docs-lookup/internal/catalog"
	"github.com/sha1n/mcp-docs-lookup/internal/domain"
	"github.com/sha1n/mcp-docs-lookup/internal/fuzzy"
	"github.com/sha1n/mcp-docs-lookup/internal/render"
)

// Resolver resolves queries against one entity index.
type Resolver struct {
	index    *catalog.Index
	ranker   fuzzy.Ranker
	renderer *render.Renderer
}

// NewResolver creates a resolver. The ranker must rank names of index.
func NewResolver(index *catalog.Index, ranker fuzzy.Ranker, renderer *render.Renderer) *Resolver {
	return &Resolver{
		index:    index,
		ranker:   ranker,
		renderer: renderer,
	}
}

// Resolve renders the detail of the best candidate when it is the entity the
// query names, and a summary of all candidates otherwise. A query without
// candidates yields an empty summary.
func (r *Resolver) Resolve(ctx context.Context, q string) (domain.RenderedResult, error) {
	candidates, err := r.ranker.Rank(ctx, q)
	if err != nil {
		return domain.RenderedResult{}, err
	}

	if len(candidates) > 0 && catalog.Normalize(candidates[0]) == catalog.Normalize(q) {
		if e, ok := r.index.Get(candidates[0]); ok {
			return r.renderer.Detail(e), nil
		}
	}

	return r.renderer.Summary(candidates), nil
}

// Close releases the ranker.
func (r *Resolver) Close() error {
	return r.ranker.Close()
}
