package fuzzy

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Field names of an indexed entity name.
const (
	// FieldKey holds the whole name, lower-cased, as a single term.
	FieldKey = "key"

	// FieldNormalized holds the name after the trim rule is applied.
	FieldNormalized = "normalized"

	// FieldWords holds the camelCase and punctuation separated words of the name.
	FieldWords = "words"

	// FieldSeq holds the position of the name in the input list.
	FieldSeq = "seq"
)

const (
	lowercaseKeywordAnalyzer = "lowercase_keyword"
	wordsAnalyzer            = "name_words"
)

// CreateIndexMapping creates the Bleve index mapping for entity names.
func CreateIndexMapping() (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer(lowercaseKeywordAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}

	// No stop word filter: "is", "for" and "to" are legitimate name words.
	err = indexMapping.AddCustomAnalyzer(wordsAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}

	docMapping := bleve.NewDocumentMapping()

	keyField := bleve.NewTextFieldMapping()
	keyField.Analyzer = lowercaseKeywordAnalyzer
	docMapping.AddFieldMappingsAt(FieldKey, keyField)

	// Already lower-cased by the trim rule
	normalizedField := bleve.NewTextFieldMapping()
	normalizedField.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt(FieldNormalized, normalizedField)

	wordsField := bleve.NewTextFieldMapping()
	wordsField.Analyzer = wordsAnalyzer
	docMapping.AddFieldMappingsAt(FieldWords, wordsField)

	seqField := bleve.NewNumericFieldMapping()
	docMapping.AddFieldMappingsAt(FieldSeq, seqField)

	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = keyword.Name

	return indexMapping, nil
}
