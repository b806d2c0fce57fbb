package masters

import (
	"fmt"
	"strconv"
	"strings"

	"baldr/internal/master"
)

// Counter counts through a sequence of elements, one per step. The sequence
// is a list or a range shorthand: `1-5`, `a-d`, `I-IV`.
type Counter struct{}

func (Counter) Name() string        { return "counter" }
func (Counter) DisplayName() string { return "Zähler" }

func (Counter) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"counterElements": {Type: master.TypeList, Required: true, Description: "The elements to count."},
	}
}

func (Counter) NormalizeFieldsInput(raw any) (master.Fields, error) {
	switch v := raw.(type) {
	case string:
		elements, err := expandCounter(v)
		if err != nil {
			return nil, err
		}
		return master.Fields{"counterElements": elements}, nil
	case int:
		return master.Fields{"counterElements": expandNumbers(1, v)}, nil
	case []any:
		return master.Fields{"counterElements": v}, nil
	case map[string]any:
		if s, ok := v["counterElements"].(string); ok {
			elements, err := expandCounter(s)
			if err != nil {
				return nil, err
			}
			out := master.Fields(v).Clone()
			out["counterElements"] = elements
			return out, nil
		}
		return master.Fields(v).Clone(), nil
	default:
		return nil, errUnsupportedInput("counter", raw)
	}
}

func (Counter) CollectStepsOnInstantiation(fields master.Fields, steps *master.StepCollector) error {
	for _, element := range fields.List("counterElements") {
		steps.Add(fmt.Sprintf("Zähle „%v“", element))
	}
	return nil
}

func (Counter) DerivePlainTextFromFields(fields master.Fields) string {
	parts := make([]string, 0, len(fields.List("counterElements")))
	for _, element := range fields.List("counterElements") {
		parts = append(parts, fmt.Sprint(element))
	}
	return strings.Join(parts, ", ")
}

var romanNumerals = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII", "XIII", "XIV", "XV", "XVI", "XVII", "XVIII", "XIX", "XX"}

func expandCounter(spec string) ([]any, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(spec), "-")
	if !ok {
		return nil, fmt.Errorf("counter %q: expected a range like 1-5, a-d or I-IV", spec)
	}
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)

	if a, errA := strconv.Atoi(from); errA == nil {
		b, errB := strconv.Atoi(to)
		if errB != nil || b < a {
			return nil, fmt.Errorf("counter %q: invalid number range", spec)
		}
		return expandNumbers(a, b), nil
	}
	if ai, bi := romanIndex(from), romanIndex(to); ai >= 0 && bi >= 0 {
		if bi < ai {
			return nil, fmt.Errorf("counter %q: invalid roman range", spec)
		}
		out := make([]any, 0, bi-ai+1)
		for i := ai; i <= bi; i++ {
			out = append(out, romanNumerals[i])
		}
		return out, nil
	}
	if len(from) == 1 && len(to) == 1 && isLetter(from[0]) && isLetter(to[0]) && from[0] <= to[0] {
		out := make([]any, 0, int(to[0]-from[0])+1)
		for c := from[0]; c <= to[0]; c++ {
			out = append(out, string(c))
		}
		return out, nil
	}
	return nil, fmt.Errorf("counter %q: expected a range like 1-5, a-d or I-IV", spec)
}

func expandNumbers(from, to int) []any {
	out := make([]any, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func romanIndex(s string) int {
	for i, numeral := range romanNumerals {
		if numeral == s {
			return i
		}
	}
	return -1
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
