package fuzzy

import (
	"strings"
	"unicode"
)

// SplitWords breaks an entity name or query into lower-case words on
// punctuation and camelCase boundaries. An upper-case run followed by a
// lower-case letter keeps its last letter for the next word, so
// "JSONParser" yields "json" and "parser".
func SplitWords(s string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}

		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}

		cur = append(cur, r)
	}
	flush()

	return words
}
