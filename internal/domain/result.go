package domain

// RenderedResult is the renderer output handed to transports (MCP, HTTP, CLI).
// Its JSON shape matches a chat embed.
type RenderedResult struct {
	Title       string  `json:"title"`
	URL         string  `json:"url,omitempty"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields,omitempty"`
	Footer      *Footer `json:"footer,omitempty"`
}

// Field is a named block of a detail result.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Footer is the trailing line of a detail result.
type Footer struct {
	Text string `json:"text"`
}

// Field returns the field with the given name.
func (r RenderedResult) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
