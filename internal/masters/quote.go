package masters

import (
	"fmt"
	"strings"

	"baldr/internal/master"
	"baldr/internal/textutil"
)

// Quote shows a citation with author and date.
type Quote struct{}

func (Quote) Name() string           { return "quote" }
func (Quote) DisplayName() string    { return "Zitat" }
func (Quote) ShortFormField() string { return "text" }

func (Quote) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"text":   {Type: master.TypeString, Required: true, Markup: true},
		"author": {Type: master.TypeString},
		"date":   {Type: master.TypeString},
		"source": {Type: master.TypeString, Markup: true},
		"prolog": {Type: master.TypeString, Markup: true},
		"epilog": {Type: master.TypeString, Markup: true},
	}
}

func (Quote) DeriveTitleFromFields(fields master.Fields) string {
	if author := fields.String("author"); author != "" {
		return "Zitat von " + author
	}
	return "Zitat"
}

func (Quote) DerivePlainTextFromFields(fields master.Fields) string {
	text := textutil.StripTags(fields.String("text"))
	if author := strings.TrimSpace(fields.String("author")); author != "" {
		text = fmt.Sprintf("%s (%s)", text, author)
	}
	return text
}
