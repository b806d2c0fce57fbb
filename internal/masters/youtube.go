package masters

import (
	"baldr/internal/master"
)

const youtubePrefix = "YT_"

// YouTube embeds a video. An offline copy from the catalog (`ref:YT_<id>`) is
// used when the catalog has one.
type YouTube struct{}

func (YouTube) Name() string           { return "youtube" }
func (YouTube) DisplayName() string    { return "YouTube" }
func (YouTube) ShortFormField() string { return "youtubeId" }

func (YouTube) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"youtubeId": {Type: master.TypeString, Required: true, Description: "The id of the video, e.g. `xtKavZG1KiM`."},
		"heading":   {Type: master.TypeString, Markup: true},
		"info":      {Type: master.TypeString, Markup: true},
	}
}

func (YouTube) CollectFieldsOnInstantiation(fields master.Fields) (master.Fields, error) {
	out := fields.Clone()
	out["embedHttpUrl"] = "https://www.youtube-nocookie.com/embed/" + fields.String("youtubeId")
	return out, nil
}

func (YouTube) CollectOptionalMediaURIs(fields master.Fields) ([]string, error) {
	return []string{youtubeURI(fields)}, nil
}

func (YouTube) DeriveTitleFromFields(fields master.Fields) string {
	if h := fields.String("heading"); h != "" {
		return h
	}
	return "YouTube " + fields.String("youtubeId")
}

func (YouTube) DerivePlainTextFromFields(fields master.Fields) string {
	return plainText(fields, "heading", "info")
}

// CollectFieldsAfterResolution switches to the offline copy when it resolved.
func (YouTube) CollectFieldsAfterResolution(fields master.Fields, r master.Resolver) (master.Fields, error) {
	asset, err := r.Asset(youtubeURI(fields))
	if err != nil {
		return fields, nil
	}
	out := fields.Clone()
	out["offline"] = true
	out["httpUrl"] = asset.HTTPURL
	return out, nil
}

func youtubeURI(fields master.Fields) string {
	return refWithPrefix(youtubePrefix, fields.String("youtubeId"))
}
