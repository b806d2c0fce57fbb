package masters

import (
	"baldr/internal/master"
)

const songPrefix = "LD_"

// Song shows the multipart score of a song from the song collection, one page
// per step.
type Song struct{}

func (Song) Name() string           { return "song" }
func (Song) DisplayName() string    { return "Lied" }
func (Song) ShortFormField() string { return "songId" }

func (Song) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"songId":     {Type: master.TypeString, Required: true, Description: "The id without the `LD_` prefix."},
		"stepSubset": {Type: master.TypeString, Description: "Only show these pages."},
	}
}

func (Song) CollectMediaURIs(fields master.Fields) ([]string, error) {
	return []string{songURI(fields)}, nil
}

func (Song) DeriveTitleFromFields(fields master.Fields) string {
	return humanizeID(fields.String("songId"))
}

var songMetaKeys = []string{"composer", "lyricist", "subtitle", "country"}

func (Song) CollectFieldsAfterResolution(fields master.Fields, r master.Resolver) (master.Fields, error) {
	asset, err := r.Asset(songURI(fields))
	if err != nil {
		return nil, err
	}
	sel, err := r.MultipartSelection(songURI(fields))
	if err != nil {
		return nil, err
	}
	urls, err := partURLs(sel)
	if err != nil {
		return nil, err
	}
	out := fields.Clone()
	out["asset"] = assetInfo(asset)
	out["title"] = asset.TitleSafe()
	out["partHttpUrls"] = urls
	if asset.Record != nil {
		meta := master.Fields(asset.Record.Meta)
		for _, key := range songMetaKeys {
			if s := meta.String(key); s != "" {
				out[key] = s
			}
		}
	}
	return out, nil
}

func (Song) CollectStepsAfterResolution(fields master.Fields, steps *master.StepCollector, r master.Resolver) error {
	if err := partSteps(songURI(fields), steps, r, "Seite"); err != nil {
		return err
	}
	return applySubset(steps, fields.String("stepSubset"))
}

func (Song) DerivePlainTextFromFields(fields master.Fields) string {
	return plainText(fields, "title", "composer", "lyricist")
}

func songURI(fields master.Fields) string {
	return refWithPrefix(songPrefix, fields.String("songId"))
}
