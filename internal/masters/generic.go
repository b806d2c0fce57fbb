package masters

import (
	"fmt"
	"strings"

	"baldr/internal/master"
	"baldr/internal/textutil"
)

// Generic shows markup. A list of markup chunks is revealed one chunk per
// step; stepWords reveals word by word instead.
type Generic struct{}

func (Generic) Name() string           { return "generic" }
func (Generic) DisplayName() string    { return "Folie" }
func (Generic) ShortFormField() string { return "markup" }

func (Generic) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"markup":            {Type: master.TypeList, Required: true, Markup: true, Description: "Markup or a list of markup chunks."},
		"charactersOnSlide": {Type: master.TypeNumber, Default: 400, Description: "Split long text into chunks of this size."},
		"stepWords":         {Type: master.TypeBool, Default: false, Description: "Reveal the text word by word."},
		"stepSubset":        {Type: master.TypeString, Description: "Only show these steps."},
	}
}

func (Generic) NormalizeFieldsInput(raw any) (master.Fields, error) {
	switch v := raw.(type) {
	case []any, string:
		return master.Fields{"markup": v}, nil
	case map[string]any:
		return master.Fields(v).Clone(), nil
	default:
		return nil, errUnsupportedInput("generic", raw)
	}
}

// CollectFieldsOnInstantiation splits a single long chunk at block
// boundaries so no chunk exceeds charactersOnSlide visible characters.
func (Generic) CollectFieldsOnInstantiation(fields master.Fields) (master.Fields, error) {
	chunks := fields.Strings("markup")
	limit, ok := fields.Int("charactersOnSlide")
	if len(chunks) != 1 || !ok || limit <= 0 || fields.Bool("stepWords") {
		return fields, nil
	}
	if len([]rune(textutil.StripTags(chunks[0]))) <= limit {
		return fields, nil
	}
	var split []any
	current := ""
	for _, block := range strings.Split(chunks[0], "\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		candidate := block
		if current != "" {
			candidate = current + "\n" + block
		}
		if current != "" && len([]rune(textutil.StripTags(candidate))) > limit {
			split = append(split, current)
			current = block
			continue
		}
		current = candidate
	}
	if current != "" {
		split = append(split, current)
	}
	out := fields.Clone()
	out["markup"] = split
	return out, nil
}

func (Generic) CollectStepsOnInstantiation(fields master.Fields, steps *master.StepCollector) error {
	chunks := fields.Strings("markup")
	if fields.Bool("stepWords") {
		for _, chunk := range chunks {
			addWordSteps(chunk, steps)
		}
	} else if len(chunks) > 1 {
		for i, chunk := range chunks {
			steps.Add(fmt.Sprintf("%d. %s", i+1, textutil.ShortenText(textutil.StripTags(chunk), 40)))
		}
	}
	return applySubset(steps, fields.String("stepSubset"))
}

func (Generic) DerivePlainTextFromFields(fields master.Fields) string {
	chunks := fields.Strings("markup")
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, textutil.StripTags(chunk))
	}
	return strings.Join(parts, " | ")
}

func addWordSteps(markup string, steps *master.StepCollector) {
	for _, word := range splitWords(markup) {
		steps.Add(word)
	}
}
