package render

import (
	"fmt"
	"io"
	"regexp"

	"github.com/fatih/color"
	"github.com/sha1n/mcp-docs-lookup/internal/domain"
)

var markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// TerminalPrinter writes rendered results to a terminal with ANSI colors.
type TerminalPrinter struct {
	title *color.Color
	label *color.Color
	link  *color.Color
	muted *color.Color
}

// NewTerminalPrinter creates a printer. When noColor is set no escape
// sequences are written.
func NewTerminalPrinter(noColor bool) *TerminalPrinter {
	p := &TerminalPrinter{
		title: color.New(color.Bold, color.FgCyan),
		label: color.New(color.Bold),
		link:  color.New(color.FgBlue, color.Underline),
		muted: color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{p.title, p.label, p.link, p.muted} {
			c.DisableColor()
		}
	}
	return p
}

// Print writes r to w. Markdown links are shown as their colored label.
func (p *TerminalPrinter) Print(w io.Writer, r domain.RenderedResult) error {
	if _, err := p.title.Fprintln(w, r.Title); err != nil {
		return err
	}
	if r.URL != "" {
		if _, err := p.muted.Fprintln(w, r.URL); err != nil {
			return err
		}
	}
	if r.Description != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", p.links(r.Description)); err != nil {
			return err
		}
	}
	for _, f := range r.Fields {
		if _, err := p.label.Fprintf(w, "\n%s\n", f.Name); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, p.links(f.Value)); err != nil {
			return err
		}
	}
	if r.Footer != nil {
		if _, err := p.muted.Fprintf(w, "\n%s\n", markdownLinkPattern.ReplaceAllString(r.Footer.Text, "$1: $2")); err != nil {
			return err
		}
	}
	return nil
}

func (p *TerminalPrinter) links(s string) string {
	return markdownLinkPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := markdownLinkPattern.FindStringSubmatch(m)
		return p.link.Sprint(sub[1])
	})
}
