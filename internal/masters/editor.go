package masters

import "baldr/internal/master"

// Editor is an editable text area that starts with optional markup.
type Editor struct{}

func (Editor) Name() string           { return "editor" }
func (Editor) DisplayName() string    { return "Hefteintrag" }
func (Editor) ShortFormField() string { return "markup" }

func (Editor) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"markup": {Type: master.TypeString, Markup: true, Default: "", Description: "Initial text; `…` marks a placeholder to fill in."},
	}
}

func (Editor) DerivePlainTextFromFields(fields master.Fields) string {
	return plainText(fields, "markup")
}
