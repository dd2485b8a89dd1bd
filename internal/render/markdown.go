package render

import (
	"strings"

	"github.com/sha1n/mcp-docs-lookup/internal/domain"
)

// Markdown formats a rendered result as a markdown document.
func Markdown(r domain.RenderedResult) string {
	var sb strings.Builder

	sb.WriteString("## ")
	sb.WriteString(r.Title)
	sb.WriteString("\n")
	if r.URL != "" {
		sb.WriteString(r.URL)
		sb.WriteString("\n")
	}

	if desc := strings.TrimSpace(r.Description); desc != "" {
		sb.WriteString("\n")
		sb.WriteString(desc)
		sb.WriteString("\n")
	}

	for _, f := range r.Fields {
		sb.WriteString("\n**")
		sb.WriteString(f.Name)
		sb.WriteString("**\n")
		if f.Value == "" {
			sb.WriteString("_none_\n")
		} else {
			sb.WriteString(f.Value)
			sb.WriteString("\n")
		}
	}

	if r.Footer != nil && r.Footer.Text != "" {
		sb.WriteString("\n")
		sb.WriteString(r.Footer.Text)
		sb.WriteString("\n")
	}

	return sb.String()
}
