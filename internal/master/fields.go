package master

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FieldType constrains the value of a field after normalization.
type FieldType string

const (
	TypeAny    FieldType = ""
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeBool   FieldType = "bool"
	TypeList   FieldType = "list"
	TypeMap    FieldType = "map"
)

// FieldDefinition describes one field of a master.
type FieldDefinition struct {
	Description string
	Type        FieldType
	Required    bool
	// Markup fields hold markdown or HTML and are converted to HTML.
	Markup  bool
	Default any
}

// Fields holds the normalized field values of one slide.
type Fields map[string]any

// String returns the string value of key or "".
func (f Fields) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// Bool returns the bool value of key or false.
func (f Fields) Bool(key string) bool {
	b, _ := f[key].(bool)
	return b
}

// Int returns the numeric value of key truncated to int.
func (f Fields) Int(key string) (int, bool) {
	switch v := f[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// List returns the list value of key.
func (f Fields) List(key string) []any {
	l, _ := f[key].([]any)
	return l
}

// Strings returns the string members of the list value of key.
func (f Fields) Strings(key string) []string {
	var out []string
	for _, item := range f.List(key) {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Has reports whether key is set to a non-nil value.
func (f Fields) Has(key string) bool {
	v, ok := f[key]
	return ok && v != nil
}

// SortedKeys returns the keys in lexical order.
func (f Fields) SortedKeys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func coerce(value any, t FieldType) (any, error) {
	switch t {
	case TypeAny:
		return value, nil
	case TypeString:
		switch v := value.(type) {
		case string:
			return v, nil
		case int, int64, float64, bool:
			return fmt.Sprint(v), nil
		default:
			return nil, fmt.Errorf("expected a string, got %T", value)
		}
	case TypeNumber:
		switch v := value.(type) {
		case int, int64, float64:
			return v, nil
		case string:
			s := strings.TrimSpace(v)
			if i, err := strconv.Atoi(s); err == nil {
				return i, nil
			}
			if fl, err := strconv.ParseFloat(s, 64); err == nil {
				return fl, nil
			}
			return nil, fmt.Errorf("expected a number, got %q", v)
		default:
			return nil, fmt.Errorf("expected a number, got %T", value)
		}
	case TypeBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("expected a boolean, got %q", v)
			}
			return b, nil
		default:
			return nil, fmt.Errorf("expected a boolean, got %T", value)
		}
	case TypeList:
		switch v := value.(type) {
		case []any:
			return v, nil
		case []string:
			out := make([]any, len(v))
			for i, s := range v {
				out[i] = s
			}
			return out, nil
		case map[string]any:
			return nil, fmt.Errorf("expected a list, got a mapping")
		default:
			return []any{v}, nil
		}
	case TypeMap:
		if m, ok := value.(map[string]any); ok {
			return m, nil
		}
		return nil, fmt.Errorf("expected a mapping, got %T", value)
	default:
		return nil, fmt.Errorf("unknown field type %q", t)
	}
}
