package render

import (
	"strconv"
	"strings"

	"github.com/sha1n/mcp-docs-lookup/internal/domain"
)

const (
	// DefaultSiteURL is the documentation site entity links point to.
	DefaultSiteURL = "https://discord.js.org"

	// DefaultRepositoryURL is the source repository "View Source" links point to.
	DefaultRepositoryURL = "https://github.com/discordjs/discord.js"
)

// URLs holds the base URLs rendered links are built from.
type URLs struct {
	SiteURL       string
	RepositoryURL string
}

// DefaultURLs returns the discord.js documentation and repository URLs.
func DefaultURLs() URLs {
	return URLs{
		SiteURL:       DefaultSiteURL,
		RepositoryURL: DefaultRepositoryURL,
	}
}

// DocsURL returns the documentation page of an entity.
//
// Examples:
//   - Client          -> <site>/#/docs/discord.js/stable/class/Client
//   - Client#ready    -> <site>/#/docs/discord.js/stable/class/Client?scrollTo=e-ready
//   - Client.login()  -> <site>/#/docs/discord.js/stable/class/Client?scrollTo=login
func (u URLs) DocsURL(e domain.Entity) string {
	search := strings.Replace(e.Name, "#", "?scrollTo=e-", 1)
	search = strings.Replace(search, ".", "?scrollTo=", 1)
	search = strings.Replace(search, "()", "", 1)

	return strings.TrimSuffix(u.SiteURL, "/") + "/#/docs/" + e.Package + "/" +
		strings.ToLower(string(e.ObjectType)) + "/" + search
}

// SourceURL returns the repository location of a documented node, taking the
// branch from the version part of the package selector. It returns an empty
// string when meta carries no path.
//
// Example: discord.js/stable + {src/structures, MessageButton.js, 12} ->
// <repo>/blob/stable/src/structures/MessageButton.js#L12
func (u URLs) SourceURL(pkg string, meta *domain.Meta) string {
	if meta == nil || meta.Path == "" {
		return ""
	}

	_, version, _ := strings.Cut(pkg, "/")

	var sb strings.Builder
	sb.WriteString(strings.TrimSuffix(u.RepositoryURL, "/"))
	sb.WriteString("/blob/")
	sb.WriteString(version)
	sb.WriteString("/")
	sb.WriteString(meta.Path)
	if meta.File != "" {
		sb.WriteString("/")
		sb.WriteString(meta.File)
	}
	if meta.Line > 0 {
		sb.WriteString("#L")
		sb.WriteString(strconv.Itoa(meta.Line))
	}
	return sb.String()
}
