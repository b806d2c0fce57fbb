package masters

import (
	"fmt"

	"baldr/internal/master"
	"baldr/internal/media"
)

// Audio plays one sample of an audio asset: `- audio: ref:Song#refrain`.
type Audio struct{}

func (Audio) Name() string           { return "audio" }
func (Audio) DisplayName() string    { return "Hörbeispiel" }
func (Audio) ShortFormField() string { return "src" }

func (Audio) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"src":         {Type: master.TypeString, Required: true, Description: "Media URI of the sample, e.g. `ref:Fuer-Elise#complete`."},
		"title":       {Type: master.TypeString, Markup: true, Description: "Overrides the sample title."},
		"composer":    {Type: master.TypeString, Description: "Overrides the composer from the asset."},
		"artist":      {Type: master.TypeString, Description: "Overrides the artist from the asset."},
		"partOf":      {Type: master.TypeString, Description: "The larger work the sample belongs to."},
		"cover":       {Type: master.TypeString, Description: "Media URI of a cover image."},
		"description": {Type: master.TypeString, Markup: true},
		"autoplay":    {Type: master.TypeBool, Default: false},
		"playthrough": {Type: master.TypeBool, Default: false, Description: "Keep playing when the slide changes."},
	}
}

func (Audio) CollectMediaURIs(fields master.Fields) ([]string, error) {
	return appendIfSet(appendIfSet(nil, fields, "src"), fields, "cover"), nil
}

func (Audio) DeriveTitleFromFields(fields master.Fields) string {
	return fields.String("title")
}

func (Audio) DerivePlainTextFromFields(fields master.Fields) string {
	return plainText(fields, "title", "composer", "artist", "partOf", "description")
}

func (Audio) CollectFieldsAfterResolution(fields master.Fields, r master.Resolver) (master.Fields, error) {
	return resolvePlayable(fields, r, media.CategoryAudio)
}

// resolvePlayable attaches the sample behind `src` and the cover URL. Metadata
// of the asset fills fields the slide left empty.
func resolvePlayable(fields master.Fields, r master.Resolver, want media.Category) (master.Fields, error) {
	sample, err := r.Sample(fields.String("src"))
	if err != nil {
		return nil, err
	}
	if sample.Asset.Category != want {
		return nil, fmt.Errorf("%s is a %s asset, expected %s", sample.Asset.Ref, sample.Asset.Category, want)
	}
	out := fields.Clone()
	out["sample"] = sampleInfo(sample)
	if !out.Has("title") {
		out["title"] = sampleTitle(sample)
	}
	if rec := sample.Asset.Record; rec != nil {
		for _, key := range []string{"composer", "artist", "partOf"} {
			if v, ok := rec.Meta[key].(string); ok && !out.Has(key) {
				out[key] = v
			}
		}
	}
	if cover := fields.String("cover"); cover != "" {
		asset, err := r.Asset(cover)
		if err != nil {
			return nil, err
		}
		out["coverHttpUrl"] = asset.HTTPURL
	} else if sample.Asset.PreviewHTTPURL != "" {
		out["coverHttpUrl"] = sample.Asset.PreviewHTTPURL
	}
	return out, nil
}
