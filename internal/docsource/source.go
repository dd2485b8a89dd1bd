// Package docsource locates and loads the documentation trees lookups are
// served from.
package docsource

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultSource is the selector used when a request names none.
const DefaultSource = "discord.js/stable"

var (
	// ErrInvalidSource indicates a malformed package selector
	ErrInvalidSource = errors.New("invalid source identifier")

	// Matches: discord.js/stable, discord.js/13.1.0, collection/main
	sourcePattern = regexp.MustCompile(`^(?P<package>[A-Za-z0-9.]+)/(?P<version>[A-Za-z]+|[0-9.]+)$`)
)

// Source identifies one version of one documented package.
type Source struct {
	Package string
	Version string
}

// String returns the selector form, <package>/<version>.
func (s Source) String() string {
	return s.Package + "/" + s.Version
}

// ParseSource parses a "<package>/<version>" selector.
//
// Examples:
//   - discord.js/stable -> {discord.js stable}
//   - discord.js/13.1.0 -> {discord.js 13.1.0}
//   - discord.js/v13    -> ErrInvalidSource
func ParseSource(selector string) (Source, error) {
	selector = strings.TrimSpace(selector)

	matches := sourcePattern.FindStringSubmatch(selector)
	if matches == nil {
		return Source{}, fmt.Errorf("%w: %q", ErrInvalidSource, selector)
	}

	src := Source{
		Package: matches[sourcePattern.SubexpIndex("package")],
		Version: matches[sourcePattern.SubexpIndex("version")],
	}

	// Dot-only segments would escape the data directory
	if isDots(src.Package) || isDots(src.Version) {
		return Source{}, fmt.Errorf("%w: %q", ErrInvalidSource, selector)
	}

	return src, nil
}

// ParseSources parses a comma separated list of selectors. Duplicates are
// dropped, keeping the first occurrence. An empty list is invalid.
func ParseSources(selectors string) ([]Source, error) {
	var sources []Source
	seen := make(map[Source]bool)

	for _, part := range strings.Split(selectors, ",") {
		src, err := ParseSource(part)
		if err != nil {
			return nil, err
		}
		if seen[src] {
			continue
		}
		seen[src] = true
		sources = append(sources, src)
	}

	return sources, nil
}

// Key returns the canonical selector string of a source list, as accepted
// by ParseSources.
func Key(sources []Source) string {
	parts := make([]string, len(sources))
	for i, s := range sources {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

func isDots(s string) bool {
	return strings.Trim(s, ".") == ""
}
