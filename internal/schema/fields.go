package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// FieldOptions controls how struct tags map to Field.
type FieldOptions struct {
	NameTag         string
	DescTag         string
	EnumTag         string
	MinTag          string
	RequiredDefault bool
}

// DefaultFieldOptions returns the standard tag mapping.
func DefaultFieldOptions() FieldOptions {
	return FieldOptions{
		NameTag:         "json",
		DescTag:         "desc",
		EnumTag:         "enum",
		MinTag:          "min",
		RequiredDefault: true,
	}
}

// FieldsFromStruct builds schema fields from a record struct using tags.
func FieldsFromStruct(v any, opts ...FieldOptions) ([]Field, error) {
	if v == nil {
		return nil, fmt.Errorf("schema: struct is nil")
	}
	cfg := DefaultFieldOptions()
	if len(opts) > 0 {
		cfg = opts[0]
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: expected struct, got %s", t.Kind())
	}
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f, cfg.NameTag)
		if name == "" {
			continue
		}
		enum := splitList(f.Tag.Get(cfg.EnumTag))
		kind, err := fieldKind(f.Type, len(enum) > 0)
		if err != nil {
			return nil, fmt.Errorf("schema: field %s: %w", f.Name, err)
		}
		field := Field{
			Name:        name,
			Kind:        kind,
			Enum:        enum,
			Required:    cfg.RequiredDefault,
			Description: strings.TrimSpace(f.Tag.Get(cfg.DescTag)),
		}
		if raw := strings.TrimSpace(f.Tag.Get(cfg.MinTag)); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("schema: field %s: bad min %q", f.Name, raw)
			}
			field.Min = &n
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// MustFieldsFromStruct panics on error; useful for registry literals.
func MustFieldsFromStruct(v any, opts ...FieldOptions) []Field {
	fields, err := FieldsFromStruct(v, opts...)
	if err != nil {
		panic(err)
	}
	return fields
}

func fieldName(f reflect.StructField, nameTag string) string {
	tag := strings.TrimSpace(f.Tag.Get(nameTag))
	if tag != "" {
		name := strings.Split(tag, ",")[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func fieldKind(t reflect.Type, hasEnum bool) (Kind, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		if hasEnum {
			return KindEnum, nil
		}
		return KindString, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInteger, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.String {
			return KindStringArray, nil
		}
	}
	return "", fmt.Errorf("unsupported type %s", t)
}

func splitList(tag string) []string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(tag, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
