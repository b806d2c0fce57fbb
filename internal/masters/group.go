package masters

import (
	"baldr/internal/master"
	"baldr/internal/textutil"
)

// Group bundles related slides under an optional heading. The grouped slides
// are given as nested `slides`; on its own the group shows the heading and
// the description.
type Group struct{}

func (Group) Name() string        { return "group" }
func (Group) DisplayName() string { return "Gruppe" }

func (Group) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"heading":     {Type: master.TypeString, Markup: true},
		"description": {Type: master.TypeString, Markup: true},
	}
}

func (Group) NormalizeFieldsInput(raw any) (master.Fields, error) {
	switch v := raw.(type) {
	case nil:
		return master.Fields{}, nil
	case string:
		return master.Fields{"heading": v}, nil
	case map[string]any:
		return master.Fields(v).Clone(), nil
	default:
		return nil, errUnsupportedInput("group", raw)
	}
}

func (Group) DeriveTitleFromFields(fields master.Fields) string {
	return textutil.StripTags(fields.String("heading"))
}
