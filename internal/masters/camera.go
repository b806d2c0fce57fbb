package masters

import "baldr/internal/master"

// Camera shows the live picture of a document camera. It takes no fields, so
// the bare form `- camera` is the usual way to write it.
type Camera struct{}

func (Camera) Name() string        { return "camera" }
func (Camera) DisplayName() string { return "Dokumentenkamera" }

func (Camera) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{}
}
