package render

import "github.com/sha1n/mcp-docs-lookup/internal/domain"

// Glyphs prefixed to summary rows.
const (
	GlyphClass     = ":regional_indicator_c:"
	GlyphInterface = ":regional_indicator_i:"
	GlyphTypedef   = ":regional_indicator_t:"
	GlyphEvent     = ":regional_indicator_e:"
	GlyphMethod    = ":regional_indicator_m:"
	GlyphProp      = ":regional_indicator_p:"
)

// Glyph returns the emoji shortcode for an entity kind. Top-level objects
// are told apart by object type, members by member type only.
func Glyph(objectType domain.ObjectType, memberType domain.MemberType) string {
	switch memberType {
	case domain.MemberEvent:
		return GlyphEvent
	case domain.MemberMethod:
		return GlyphMethod
	case domain.MemberProp:
		return GlyphProp
	}

	switch objectType {
	case domain.ObjectInterface:
		return GlyphInterface
	case domain.ObjectTypedef:
		return GlyphTypedef
	default:
		return GlyphClass
	}
}
