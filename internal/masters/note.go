package masters

import (
	"strings"

	"baldr/internal/master"
	"baldr/internal/textutil"
)

// Note is a notebook entry revealed word by word.
type Note struct{}

func (Note) Name() string           { return "note" }
func (Note) DisplayName() string    { return "Hefteintrag" }
func (Note) ShortFormField() string { return "markup" }

func (Note) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"markup":     {Type: master.TypeString, Required: true, Markup: true},
		"items":      {Type: master.TypeList, Markup: true, Description: "Additional list items, one step each."},
		"stepSubset": {Type: master.TypeString, Description: "Only show these steps."},
	}
}

func (Note) CollectStepsOnInstantiation(fields master.Fields, steps *master.StepCollector) error {
	addWordSteps(fields.String("markup"), steps)
	for _, item := range fields.Strings("items") {
		steps.Add(textutil.ShortenText(textutil.StripTags(item), 40))
	}
	return applySubset(steps, fields.String("stepSubset"))
}

func (Note) DerivePlainTextFromFields(fields master.Fields) string {
	return plainText(fields, "markup")
}

// splitWords returns the words of markup after tags are stripped.
func splitWords(markup string) []string {
	return strings.Fields(textutil.StripTags(markup))
}
