package masters

import "baldr/internal/master"

// Task shows a work assignment.
type Task struct{}

func (Task) Name() string           { return "task" }
func (Task) DisplayName() string    { return "Arbeitsauftrag" }
func (Task) ShortFormField() string { return "markup" }

func (Task) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"markup": {Type: master.TypeString, Required: true, Markup: true},
	}
}

func (Task) DerivePlainTextFromFields(fields master.Fields) string {
	return plainText(fields, "markup")
}
