package masters

import (
	"fmt"
	"strings"

	"baldr/internal/master"
	"baldr/internal/textutil"
)

// Question shows questions with optional answers, revealed one step each.
// Short keys are accepted: `q` question, `a` answer, `h` heading and `s`
// sub questions.
type Question struct{}

func (Question) Name() string        { return "question" }
func (Question) DisplayName() string { return "Frage" }

func (Question) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"questions": {Type: master.TypeList, Required: true, Markup: true},
	}
}

var questionAliases = map[string]string{
	"q":            "question",
	"question":     "question",
	"a":            "answer",
	"answer":       "answer",
	"h":            "heading",
	"heading":      "heading",
	"s":            "subQuestions",
	"subQuestions": "subQuestions",
	"questions":    "subQuestions",
}

func (Question) NormalizeFieldsInput(raw any) (master.Fields, error) {
	if m, ok := raw.(map[string]any); ok {
		if inner, ok := m["questions"]; ok && len(m) == 1 {
			raw = inner
		}
	}
	questions, err := normalizeQuestions(raw)
	if err != nil {
		return nil, err
	}
	return master.Fields{"questions": questions}, nil
}

func normalizeQuestions(raw any) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			q, err := normalizeQuestion(item)
			if err != nil {
				return nil, err
			}
			out = append(out, q)
		}
		return out, nil
	default:
		q, err := normalizeQuestion(raw)
		if err != nil {
			return nil, err
		}
		return []any{q}, nil
	}
}

func normalizeQuestion(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case string:
		return map[string]any{"question": v}, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			name, ok := questionAliases[key]
			if !ok {
				return nil, fmt.Errorf("unknown question key %q", key)
			}
			if name == "subQuestions" {
				sub, err := normalizeQuestions(value)
				if err != nil {
					return nil, err
				}
				out[name] = sub
				continue
			}
			s, ok := value.(string)
			if !ok {
				s = fmt.Sprint(value)
			}
			out[name] = s
		}
		return out, nil
	default:
		return nil, errUnsupportedInput("question", raw)
	}
}

func (Question) CollectStepsOnInstantiation(fields master.Fields, steps *master.StepCollector) error {
	var counter int
	walkQuestions(fields.List("questions"), func(q map[string]any) {
		if _, ok := q["question"]; !ok {
			return
		}
		counter++
		steps.Add(fmt.Sprintf("Frage %d", counter))
		if _, ok := q["answer"]; ok {
			steps.Add(fmt.Sprintf("Antwort %d", counter))
		}
	})
	if steps.Len() == 1 {
		steps.Reset()
	}
	return nil
}

func (Question) DeriveTitleFromFields(fields master.Fields) string {
	var title string
	walkQuestions(fields.List("questions"), func(q map[string]any) {
		if title != "" {
			return
		}
		if s, ok := q["heading"].(string); ok && s != "" {
			title = textutil.StripTags(s)
		} else if s, ok := q["question"].(string); ok {
			title = textutil.StripTags(s)
		}
	})
	return title
}

func (Question) DerivePlainTextFromFields(fields master.Fields) string {
	var parts []string
	walkQuestions(fields.List("questions"), func(q map[string]any) {
		for _, key := range []string{"heading", "question", "answer"} {
			if s, ok := q[key].(string); ok && s != "" {
				parts = append(parts, textutil.StripTags(s))
			}
		}
	})
	return strings.Join(parts, " | ")
}

// walkQuestions visits questions depth first in document order.
func walkQuestions(questions []any, fn func(map[string]any)) {
	for _, item := range questions {
		q, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fn(q)
		if sub, ok := q["subQuestions"].([]any); ok {
			walkQuestions(sub, fn)
		}
	}
}
