package masters

import (
	"baldr/internal/master"
	"baldr/internal/media"
)

// Video plays one sample of a video asset.
type Video struct{}

func (Video) Name() string           { return "video" }
func (Video) DisplayName() string    { return "Video" }
func (Video) ShortFormField() string { return "src" }

func (Video) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"src":      {Type: master.TypeString, Required: true, Description: "Media URI of the video sample."},
		"title":    {Type: master.TypeString, Markup: true},
		"showMeta": {Type: master.TypeBool, Default: false, Description: "Show title and description below the video."},
		"autoplay": {Type: master.TypeBool, Default: false},
	}
}

func (Video) CollectMediaURIs(fields master.Fields) ([]string, error) {
	return appendIfSet(nil, fields, "src"), nil
}

func (Video) DeriveTitleFromFields(fields master.Fields) string {
	return fields.String("title")
}

func (Video) CollectFieldsAfterResolution(fields master.Fields, r master.Resolver) (master.Fields, error) {
	return resolvePlayable(fields, r, media.CategoryVideo)
}
