package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Violation reports why a payload does not satisfy a Schema. Index is -1 for
// problems with the payload as a whole.
type Violation struct {
	Index  int
	Field  string
	Reason string
}

func (v *Violation) Error() string {
	switch {
	case v.Index < 0:
		return "schema: " + v.Reason
	case v.Field == "":
		return fmt.Sprintf("schema: item %d: %s", v.Index, v.Reason)
	default:
		return fmt.Sprintf("schema: item %d field %q: %s", v.Index, v.Field, v.Reason)
	}
}

// Validate checks that raw is a JSON array of at most MaxItems objects that
// carry every required field with its declared type. Enum membership is not
// enforced here; unknown enum values are defaulted when rendered.
func (s *Schema) Validate(raw []byte) error {
	if s == nil {
		return &Violation{Index: -1, Reason: "no schema"}
	}
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimSpace(raw)))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return &Violation{Index: -1, Reason: "not valid JSON: " + err.Error()}
	}
	if _, err := dec.Token(); err != io.EOF {
		return &Violation{Index: -1, Reason: "trailing data after JSON value"}
	}
	items, ok := doc.([]any)
	if !ok {
		return &Violation{Index: -1, Reason: "expected a JSON array"}
	}
	if s.MaxItems > 0 && len(items) > s.MaxItems {
		return &Violation{Index: -1, Reason: fmt.Sprintf("got %d items, want at most %d", len(items), s.MaxItems)}
	}
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return &Violation{Index: i, Reason: "expected an object"}
		}
		if reason := s.checkKeyCase(obj); reason != "" {
			return &Violation{Index: i, Reason: reason}
		}
		for _, f := range s.Fields {
			val, present := obj[f.Name]
			if !present {
				if f.Required {
					return &Violation{Index: i, Field: f.Name, Reason: "missing required field"}
				}
				continue
			}
			if reason := checkKind(f, val); reason != "" {
				return &Violation{Index: i, Field: f.Name, Reason: reason}
			}
		}
	}
	return nil
}

// checkKeyCase rejects keys that match a field name only case-insensitively.
// Decoding into the record types folds case, so such a key would silently
// override the value that was validated.
func (s *Schema) checkKeyCase(obj map[string]any) string {
	for key := range obj {
		for _, f := range s.Fields {
			if key != f.Name && strings.EqualFold(key, f.Name) {
				return fmt.Sprintf("key %q differs from field %q only by case", key, f.Name)
			}
		}
	}
	return ""
}

func checkKind(f Field, val any) string {
	switch f.Kind {
	case KindString, KindEnum:
		if _, ok := val.(string); !ok {
			return "expected string, got " + jsonKind(val)
		}
	case KindInteger:
		num, ok := val.(json.Number)
		if !ok {
			return "expected integer, got " + jsonKind(val)
		}
		if strings.ContainsAny(num.String(), ".eE") {
			return "expected integer, got " + num.String()
		}
		n, err := strconv.ParseInt(num.String(), 10, 64)
		if err != nil {
			return "integer out of range: " + num.String()
		}
		if f.Min != nil && n < *f.Min {
			return fmt.Sprintf("value %d below minimum %d", n, *f.Min)
		}
	case KindStringArray:
		arr, ok := val.([]any)
		if !ok {
			return "expected array of strings, got " + jsonKind(val)
		}
		for j, el := range arr {
			if _, ok := el.(string); !ok {
				return fmt.Sprintf("element %d: expected string, got %s", j, jsonKind(el))
			}
		}
	default:
		return "unknown field kind " + string(f.Kind)
	}
	return ""
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
