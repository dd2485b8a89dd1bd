// Package fuzzy ranks entity names against free-text queries.
package fuzzy

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/sha1n/mcp-docs-lookup/internal/catalog"
)

const (
	// DefaultMaxResults is the number of candidates returned when no limit is given.
	DefaultMaxResults = 10

	// MaxBatchSize is the maximum number of names per index batch.
	MaxBatchSize = 500

	// minFuzzyWordLength is the shortest query word matched with edit distance.
	minFuzzyWordLength = 4
)

// Query clause boosts, strongest first.
const (
	boostNormalized = 100.0
	boostKey        = 50.0
	boostPrefix     = 10.0
	boostWildcard   = 5.0
	boostWordPrefix = 2.0
	boostWordFuzzy  = 1.0
)

// Ranker orders a fixed set of entity names by similarity to a query.
type Ranker interface {
	// Rank returns candidate names, best match first. Names of equal rank keep
	// their input order. An empty query yields no candidates.
	Rank(ctx context.Context, q string) ([]string, error)

	// Close releases the resources held by the ranker.
	Close() error
}

// BleveRanker is a Ranker backed by an in-memory Bleve index.
type BleveRanker struct {
	index      bleve.Index
	maxResults int
}

var _ Ranker = (*BleveRanker)(nil)

// NewBleveRanker indexes names and returns a ranker over them. maxResults
// bounds the number of candidates per query; zero or less selects
// DefaultMaxResults.
func NewBleveRanker(names []string, maxResults int) (*BleveRanker, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	indexMapping, err := CreateIndexMapping()
	if err != nil {
		return nil, fmt.Errorf("failed to create index mapping: %w", err)
	}

	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	if err := indexNames(index, names); err != nil {
		_ = index.Close()
		return nil, err
	}

	return &BleveRanker{
		index:      index,
		maxResults: maxResults,
	}, nil
}

func indexNames(index bleve.Index, names []string) error {
	batch := index.NewBatch()

	for i, name := range names {
		doc := map[string]interface{}{
			FieldKey:        name,
			FieldNormalized: catalog.Normalize(name),
			FieldWords:      strings.Join(SplitWords(name), " "),
			FieldSeq:        float64(i),
		}
		if err := batch.Index(name, doc); err != nil {
			return fmt.Errorf("failed to index %q: %w", name, err)
		}

		if batch.Size() >= MaxBatchSize {
			if err := index.Batch(batch); err != nil {
				return fmt.Errorf("batch index failed: %w", err)
			}
			batch = index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("final batch index failed: %w", err)
		}
	}

	return nil
}

// Rank implements Ranker.
func (r *BleveRanker) Rank(ctx context.Context, q string) ([]string, error) {
	if strings.TrimSpace(q) == "" {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(buildQuery(q), r.maxResults, 0, false)
	req.SortBy([]string{"-_score", FieldSeq})

	results, err := r.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	names := make([]string, 0, len(results.Hits))
	for _, hit := range results.Hits {
		names = append(names, hit.ID)
	}
	return names, nil
}

// Close implements Ranker.
func (r *BleveRanker) Close() error {
	return r.index.Close()
}

// buildQuery combines the match strategies into a single disjunction. An
// exact hit on the trimmed name outweighs everything else so that a query
// naming an entity always ranks that entity first.
func buildQuery(q string) query.Query {
	q = strings.TrimSpace(q)
	lower := strings.ToLower(q)

	normalizedQuery := bleve.NewTermQuery(catalog.Normalize(q))
	normalizedQuery.SetField(FieldNormalized)
	normalizedQuery.SetBoost(boostNormalized)

	keyQuery := bleve.NewTermQuery(lower)
	keyQuery.SetField(FieldKey)
	keyQuery.SetBoost(boostKey)

	prefixQuery := bleve.NewPrefixQuery(lower)
	prefixQuery.SetField(FieldKey)
	prefixQuery.SetBoost(boostPrefix)

	disjunction := bleve.NewDisjunctionQuery(normalizedQuery, keyQuery, prefixQuery)

	// Wildcard characters typed by the user are matched literally elsewhere
	if pattern := strings.NewReplacer("*", "", "?", "").Replace(lower); pattern != "" {
		wildcardQuery := bleve.NewWildcardQuery("*" + pattern + "*")
		wildcardQuery.SetField(FieldKey)
		wildcardQuery.SetBoost(boostWildcard)
		disjunction.AddQuery(wildcardQuery)
	}

	for _, word := range SplitWords(q) {
		wordPrefix := bleve.NewPrefixQuery(word)
		wordPrefix.SetField(FieldWords)
		wordPrefix.SetBoost(boostWordPrefix)
		disjunction.AddQuery(wordPrefix)

		if len(word) >= minFuzzyWordLength {
			wordFuzzy := bleve.NewFuzzyQuery(word)
			wordFuzzy.SetField(FieldWords)
			wordFuzzy.SetFuzziness(fuzzinessFor(word))
			wordFuzzy.SetBoost(boostWordFuzzy)
			disjunction.AddQuery(wordFuzzy)
		}
	}

	return disjunction
}

func fuzzinessFor(word string) int {
	if len(word) >= 8 {
		return 2
	}
	return 1
}
