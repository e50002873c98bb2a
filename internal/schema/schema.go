// Package schema declares the record shape each agent domain expects back
// from the generation model and validates raw payloads against it.
package schema

import (
	"agenthub/internal/types"
)

type Kind string

const (
	KindString      Kind = "string"
	KindInteger     Kind = "integer"
	KindStringArray Kind = "string-array"
	KindEnum        Kind = "enum"
)

// Field describes one required property of a result record.
type Field struct {
	Name        string
	Kind        Kind
	Enum        []string
	Required    bool
	Description string
	// Min is the smallest accepted value for integer fields.
	Min *int64
}

// Schema is the array-of-records contract for one domain.
type Schema struct {
	Domain   types.Domain
	Fields   []Field
	MaxItems int
}

// DefaultMaxItems caps every agent result list.
const DefaultMaxItems = 4

var registry = map[types.Domain]*Schema{
	types.DomainWellness: {
		Domain:   types.DomainWellness,
		Fields:   MustFieldsFromStruct(types.WellnessEvent{}),
		MaxItems: DefaultMaxItems,
	},
	types.DomainIssues: {
		Domain:   types.DomainIssues,
		Fields:   MustFieldsFromStruct(types.IssueSuggestion{}),
		MaxItems: DefaultMaxItems,
	},
	types.DomainAlerts: {
		Domain:   types.DomainAlerts,
		Fields:   MustFieldsFromStruct(types.DisasterAlert{}),
		MaxItems: DefaultMaxItems,
	},
}

// Lookup returns the registered schema, or nil for an unknown domain.
func Lookup(d types.Domain) *Schema {
	return registry[d]
}

// For returns the field list for a domain. Unknown domains have no fields.
func For(d types.Domain) []Field {
	s := Lookup(d)
	if s == nil {
		return nil
	}
	out := make([]Field, len(s.Fields))
	copy(out, s.Fields)
	return out
}

// Required lists the names of the required fields in declaration order.
func (s *Schema) Required() []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}
