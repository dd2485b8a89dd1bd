package render

import "strings"

// isTypePunctuation reports whether a type token is a separator fragment
// such as "<", ">", ", " or "> | " rather than a type name.
func isTypePunctuation(token string) bool {
	return strings.ContainsAny(token, "<> ,")
}

// GroupTypeTokens reassembles a tokenized type signature into display groups.
//
// A type name seen outside any generic brackets opens a new group; every
// other token (punctuation or a name nested inside brackets) is appended to
// the open group. Tokens ["string", "Array", "<", "Map", "<", "string", ", ",
// "number", ">", ">"] produce the groups "string" and
// "Array<Map<string, number>>". Type names are passed through link, which
// may be nil.
func GroupTypeTokens(tokens []string, link func(string) string) []string {
	var groups []string
	level := 0

	for _, token := range tokens {
		punct := isTypePunctuation(token)

		text := token
		if !punct && link != nil {
			text = link(token)
		}

		if (level == 0 && !punct) || len(groups) == 0 {
			groups = append(groups, text)
		} else {
			groups[len(groups)-1] += text
		}

		level = max(level+strings.Count(token, "<")-strings.Count(token, ">"), 0)
	}

	return groups
}
