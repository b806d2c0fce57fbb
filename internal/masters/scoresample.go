package masters

import (
	"baldr/internal/master"
	"baldr/internal/media"
)

// ScoreSample shows a score excerpt with an optional audio sample.
type ScoreSample struct{}

func (ScoreSample) Name() string           { return "scoreSample" }
func (ScoreSample) DisplayName() string    { return "Notenbeispiel" }
func (ScoreSample) ShortFormField() string { return "score" }

func (ScoreSample) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"heading": {Type: master.TypeString, Markup: true},
		"score":   {Type: master.TypeString, Required: true, Description: "Media URI of the score image."},
		"audio":   {Type: master.TypeString, Description: "Media URI of an audio sample."},
	}
}

func (ScoreSample) CollectMediaURIs(fields master.Fields) ([]string, error) {
	return appendIfSet(appendIfSet(nil, fields, "score"), fields, "audio"), nil
}

func (ScoreSample) DeriveTitleFromFields(fields master.Fields) string {
	return fields.String("heading")
}

func (ScoreSample) CollectFieldsAfterResolution(fields master.Fields, r master.Resolver) (master.Fields, error) {
	score, err := r.Asset(fields.String("score"))
	if err != nil {
		return nil, err
	}
	sel, err := r.MultipartSelection(fields.String("score"))
	if err != nil {
		return nil, err
	}
	urls, err := partURLs(sel)
	if err != nil {
		return nil, err
	}
	out := fields.Clone()
	out["scoreAsset"] = assetInfo(score)
	out["partHttpUrls"] = urls
	if fields.String("audio") != "" {
		audio, err := resolvePlayable(master.Fields{"src": fields.String("audio")}, r, media.CategoryAudio)
		if err != nil {
			return nil, err
		}
		out["sample"] = audio["sample"]
	}
	return out, nil
}

func (ScoreSample) CollectStepsAfterResolution(fields master.Fields, steps *master.StepCollector, r master.Resolver) error {
	return partSteps(fields.String("score"), steps, r, "Seite")
}
