package catalog

import (
	"regexp"
	"strings"

	"github.com/sha1n/mcp-docs-lookup/internal/domain"
)

// trimPattern splits a subject into its parent part and an optional
// ".member", ".member()" or "#member" tail.
var trimPattern = regexp.MustCompile(`^(.*?)\s*([.#]\s*(.*?)(\(\))?)?\s*$`)

// MemberName derives the index key of a node from its parent's name.
//
// Examples:
//   - Name:   "Client"
//   - Event:  "Client#ready"
//   - Method: "Client.login()"
//   - Prop:   "Client.user"
func MemberName(memberType domain.MemberType, parent, member string) string {
	switch memberType {
	case domain.MemberEvent:
		return parent + "#" + member
	case domain.MemberMethod:
		return parent + "." + member + "()"
	case domain.MemberProp:
		return parent + "." + member
	default:
		return parent
	}
}

// Normalize returns the comparison key used to decide whether a query
// names an entity exactly. The member tail is replaced by "*" plus the
// member name and the result is lower-cased, so "Foo.bar()", "foo.bar" and
// "FOO.bar" all yield "foo*bar" while "Foo" yields "foo*".
func Normalize(s string) string {
	return strings.ToLower(trimPattern.ReplaceAllString(strings.TrimSpace(s), "${1}*${3}"))
}
