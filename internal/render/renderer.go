package render

import (
	"sort"
	"strings"

	"github.com/sha1n/mcp-docs-lookup/internal/catalog"
	"github.com/sha1n/mcp-docs-lookup/internal/domain"
)

const (
	// SummaryTitle is the title of every search result list.
	SummaryTitle = "Search Results:"

	// MaxSummaryRows is the number of candidates a summary lists.
	MaxSummaryRows = 10
)

// Field names of a detail result.
const (
	FieldProperties = "Properties"
	FieldMethods    = "Methods"
	FieldType       = "Type"
)

// Renderer turns indexed entities into rendered results. Cross references
// are resolved against the index it was created with.
type Renderer struct {
	index *catalog.Index
	urls  URLs
}

// NewRenderer creates a renderer over the given index.
func NewRenderer(index *catalog.Index, urls URLs) *Renderer {
	return &Renderer{
		index: index,
		urls:  urls,
	}
}

// Detail renders the full description of a single entity.
func (r *Renderer) Detail(e domain.Entity) domain.RenderedResult {
	result := domain.RenderedResult{
		Title:       "__" + e.Name + "__",
		URL:         r.urls.DocsURL(e),
		Description: r.description(e.Object),
		Fields:      r.fields(e.Object),
	}

	if src := r.urls.SourceURL(e.Package, sourceOf(e.Object)); src != "" {
		result.Footer = &domain.Footer{Text: "[View Source](" + src + ")"}
	}

	return result
}

// Summary renders a ranked candidate list, best match first. Only the first
// MaxSummaryRows candidates are listed.
func (r *Renderer) Summary(candidates []string) domain.RenderedResult {
	if len(candidates) > MaxSummaryRows {
		candidates = candidates[:MaxSummaryRows]
	}

	lines := make([]string, 0, len(candidates))
	for _, name := range candidates {
		e, ok := r.index.Get(name)
		if !ok {
			lines = append(lines, name)
			continue
		}
		lines = append(lines, Glyph(e.ObjectType, e.MemberType)+r.Link(name))
	}

	return domain.RenderedResult{
		Title:       SummaryTitle,
		Description: strings.Join(lines, "\n"),
	}
}

// Link returns a markdown link to the named entity, or the bare name when
// the index does not know it.
func (r *Renderer) Link(name string) string {
	e, ok := r.index.Get(name)
	if !ok {
		return name
	}
	return "[" + name + "](" + r.urls.DocsURL(e) + ")"
}

func (r *Renderer) description(obj domain.Object) string {
	if obj == nil {
		return ""
	}

	c, ok := obj.(*domain.Class)
	if !ok || len(c.Extends) == 0 {
		return obj.Summary()
	}

	links := make([]string, len(c.Extends))
	for i, name := range c.Extends {
		links[i] = r.Link(name)
	}
	return "*extends " + strings.Join(links, ",") + "*\n" + obj.Summary()
}

func (r *Renderer) fields(obj domain.Object) []domain.Field {
	var fields []domain.Field

	switch o := obj.(type) {
	case *domain.Class:
		if o.Props != nil {
			fields = append(fields, propertiesField(o.Props))
		}
		if o.Methods != nil {
			fields = append(fields, methodsField(o.Methods))
		}
	case *domain.Typedef:
		if o.Props != nil {
			fields = append(fields, propertiesField(o.Props))
		}
		if o.Type != nil {
			fields = append(fields, r.typeField(o.Type))
		}
	case *domain.Property:
		if o.Props != nil {
			fields = append(fields, propertiesField(o.Props))
		}
		if o.Type != nil {
			fields = append(fields, r.typeField(o.Type))
		}
	}

	return fields
}

func (r *Renderer) typeField(t domain.TypeExpr) domain.Field {
	groups := GroupTypeTokens(t, r.Link)
	for i, g := range groups {
		groups[i] = code(g)
	}
	return domain.Field{Name: FieldType, Value: strings.Join(groups, " ")}
}

func propertiesField(props []domain.Property) domain.Field {
	names := make([]string, 0, len(props))
	for _, p := range props {
		if p.Access != domain.AccessPrivate {
			names = append(names, code(p.Name))
		}
	}
	return memberField(FieldProperties, names)
}

func methodsField(methods []domain.Method) domain.Field {
	names := make([]string, 0, len(methods))
	for _, m := range methods {
		if m.Access != domain.AccessPrivate {
			names = append(names, code(m.Name))
		}
	}
	return memberField(FieldMethods, names)
}

func memberField(name string, values []string) domain.Field {
	sort.Strings(values)
	return domain.Field{Name: name, Value: strings.Join(values, " ")}
}

func sourceOf(obj domain.Object) *domain.Meta {
	if obj == nil {
		return nil
	}
	return obj.Source()
}

func code(s string) string {
	return "`" + s + "`"
}
