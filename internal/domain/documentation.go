package domain

import (
	"encoding/json"
	"fmt"
)

// AccessPrivate is the access marker of members hidden from public listings.
const AccessPrivate = "private"

// Documentation is the parsed documentation tree of one package version.
// It mirrors the JSON emitted by the documentation generator.
type Documentation struct {
	Classes    []Class   `json:"classes,omitempty"`
	Interfaces []Class   `json:"interfaces,omitempty"`
	Typedefs   []Typedef `json:"typedefs,omitempty"`
}

// Meta is the source location of a documented node.
type Meta struct {
	Line int    `json:"line"`
	File string `json:"file"`
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Class describes a class or an interface.
//
// A nil member slice means the list is absent from the documentation, while a
// non-nil empty slice means it is present but empty.
type Class struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Access      string     `json:"access,omitempty"`
	Extends     TypeExpr   `json:"extends,omitempty"`
	Props       []Property `json:"props,omitempty"`
	Methods     []Method   `json:"methods,omitempty"`
	Events      []Event    `json:"events,omitempty"`
	Meta        *Meta      `json:"meta,omitempty"`
}

// Typedef describes a type definition.
type Typedef struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Access      string     `json:"access,omitempty"`
	Type        TypeExpr   `json:"type"`
	Props       []Property `json:"props,omitempty"`
	Meta        *Meta      `json:"meta,omitempty"`
}

// Method describes a class or interface method.
type Method struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Access      string `json:"access,omitempty"`
	Meta        *Meta  `json:"meta,omitempty"`
}

// Event describes an event emitted by a class or interface.
type Event struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Access      string `json:"access,omitempty"`
	Meta        *Meta  `json:"meta,omitempty"`
}

// Property describes a property of a class, interface or typedef.
// Properties of structured types carry their own nested props.
type Property struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Access      string     `json:"access,omitempty"`
	Type        TypeExpr   `json:"type,omitempty"`
	Props       []Property `json:"props,omitempty"`
	Meta        *Meta      `json:"meta,omitempty"`
}

// TypeExpr is a tokenized type signature such as ["Array", "<", "string", ">"].
//
// The generator nests the tokens in arrays (usually three levels deep, with
// null entries allowed); decoding flattens them depth-first.
type TypeExpr []string

// UnmarshalJSON flattens an arbitrarily nested array of strings.
func (t *TypeExpr) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse type expression: %w", err)
	}
	if raw == nil {
		*t = nil
		return nil
	}

	tokens := TypeExpr{}
	if err := flattenTokens(raw, &tokens); err != nil {
		return err
	}
	*t = tokens
	return nil
}

func flattenTokens(v any, out *TypeExpr) error {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		*out = append(*out, val)
		return nil
	case []any:
		for _, item := range val {
			if err := flattenTokens(item, out); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unexpected type token %v (%T)", val, val)
	}
}
