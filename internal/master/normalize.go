package master

import (
	"fmt"
	"sort"
	"strings"

	"baldr/internal/mediauri"
)

// Normalize runs the field pipeline for one slide: short form expansion,
// custom input normalization, unknown and required field checks, defaults,
// type coercion, markup conversion and the instantiation hook. conv may be
// nil when no field needs markup conversion.
func Normalize(m Master, raw any, conv MarkupConverter, slideNo int) (Fields, error) {
	if sf, ok := m.(ShortFormer); ok && sf.ShortFormField() != "" && isScalar(raw) {
		raw = map[string]any{sf.ShortFormField(): raw}
	}

	var fields Fields
	if n, ok := m.(InputNormalizer); ok {
		normalized, err := n.NormalizeFieldsInput(raw)
		if err != nil {
			return nil, &InvalidFieldsError{SlideNo: slideNo, Master: m.Name(), Reason: err.Error(), Err: err}
		}
		fields = normalized
	} else {
		switch v := raw.(type) {
		case nil:
			fields = Fields{}
		case map[string]any:
			fields = Fields(v).Clone()
		case Fields:
			fields = v.Clone()
		default:
			return nil, &InvalidFieldsError{SlideNo: slideNo, Master: m.Name(),
				Reason: fmt.Sprintf("expected a mapping of fields, got %T", raw)}
		}
	}
	if fields == nil {
		fields = Fields{}
	}

	defs := m.FieldsDefinition()
	for _, name := range fields.SortedKeys() {
		if _, ok := defs[name]; !ok {
			return nil, &UnknownFieldError{SlideNo: slideNo, Master: m.Name(), Field: name}
		}
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := defs[name]
		if def.Required && !fields.Has(name) {
			return nil, &MissingFieldError{SlideNo: slideNo, Master: m.Name(), Field: name}
		}
		if def.Default != nil && !fields.Has(name) {
			fields[name] = def.Default
		}
		if !fields.Has(name) {
			continue
		}
		value, err := coerce(fields[name], def.Type)
		if err != nil {
			return nil, &InvalidFieldsError{SlideNo: slideNo, Master: m.Name(), Field: name, Reason: err.Error(), Err: err}
		}
		if def.Markup {
			if conv == nil {
				return nil, &InvalidFieldsError{SlideNo: slideNo, Master: m.Name(), Field: name, Reason: "no markup converter configured"}
			}
			value, err = convertNested(value, conv)
			if err != nil {
				return nil, &InvalidFieldsError{SlideNo: slideNo, Master: m.Name(), Field: name, Reason: err.Error(), Err: err}
			}
		}
		fields[name] = value
	}

	if inst, ok := m.(FieldsInstantiator); ok {
		out, err := inst.CollectFieldsOnInstantiation(fields)
		if err != nil {
			return nil, &InvalidFieldsError{SlideNo: slideNo, Master: m.Name(), Reason: err.Error(), Err: err}
		}
		fields = out
	}
	return fields, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, int, int64, float64, bool:
		return true
	default:
		return false
	}
}

func convertNested(value any, conv MarkupConverter) (any, error) {
	switch v := value.(type) {
	case string:
		return conv.ConvertToHTML(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := convertNested(item, conv)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			converted, err := convertNested(item, conv)
			if err != nil {
				return nil, err
			}
			out[k] = converted
		}
		return out, nil
	default:
		return value, nil
	}
}

// CollectMediaURIs returns the required URIs of a slide with fragments removed.
func CollectMediaURIs(m Master, fields Fields) ([]string, error) {
	c, ok := m.(MediaURICollector)
	if !ok {
		return nil, nil
	}
	uris, err := c.CollectMediaURIs(fields)
	if err != nil {
		return nil, err
	}
	return stripFragments(uris)
}

// CollectOptionalMediaURIs returns the optional URIs of a slide with fragments removed.
func CollectOptionalMediaURIs(m Master, fields Fields) ([]string, error) {
	c, ok := m.(OptionalMediaURICollector)
	if !ok {
		return nil, nil
	}
	uris, err := c.CollectOptionalMediaURIs(fields)
	if err != nil {
		return nil, err
	}
	return stripFragments(uris)
}

func stripFragments(uris []string) ([]string, error) {
	set := mediauri.NewOrderedSet()
	for _, uri := range uris {
		u, err := mediauri.Parse(uri)
		if err != nil {
			return nil, err
		}
		set.Add(u.WithoutFragment())
	}
	return set.Values(), nil
}

// CollectStepsOnInstantiation runs the instantiation step hook if present.
func CollectStepsOnInstantiation(m Master, fields Fields, steps *StepCollector) error {
	if c, ok := m.(InstantiationStepCollector); ok {
		return c.CollectStepsOnInstantiation(fields, steps)
	}
	return nil
}

// Finalize runs the post-resolution hooks: fields first, then steps.
func Finalize(m Master, fields Fields, steps *StepCollector, r Resolver) (Fields, error) {
	if c, ok := m.(ResolvedFieldsCollector); ok {
		out, err := c.CollectFieldsAfterResolution(fields, r)
		if err != nil {
			return nil, err
		}
		fields = out
	}
	if c, ok := m.(ResolvedStepCollector); ok {
		if err := c.CollectStepsAfterResolution(fields, steps, r); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

// HasResolutionHooks reports whether the master defines any post-resolution hook.
func HasResolutionHooks(m Master) bool {
	_, fieldsHook := m.(ResolvedFieldsCollector)
	_, stepsHook := m.(ResolvedStepCollector)
	return fieldsHook || stepsHook
}

// DeriveTitle returns the master derived title, if any.
func DeriveTitle(m Master, fields Fields) string {
	if d, ok := m.(TitleDeriver); ok {
		return strings.TrimSpace(d.DeriveTitleFromFields(fields))
	}
	return ""
}

// DerivePlainText returns the master's plain text summary, falling back to all
// string fields (in key order) joined by " | ".
func DerivePlainText(m Master, fields Fields) string {
	if d, ok := m.(PlainTextDeriver); ok {
		return strings.TrimSpace(d.DerivePlainTextFromFields(fields))
	}
	var segments []string
	for _, key := range fields.SortedKeys() {
		if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
			segments = append(segments, s)
		}
	}
	return strings.Join(segments, " | ")
}
