package masters

import (
	"baldr/internal/master"
	"baldr/internal/textutil"
)

// Section introduces a part of the presentation. It usually carries the
// following slides as nested `slides`.
type Section struct{}

func (Section) Name() string           { return "section" }
func (Section) DisplayName() string    { return "Abschnitt" }
func (Section) ShortFormField() string { return "heading" }

func (Section) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"heading": {Type: master.TypeString, Required: true, Markup: true},
	}
}

func (Section) DeriveTitleFromFields(fields master.Fields) string {
	return textutil.StripTags(fields.String("heading"))
}
