package masters

import (
	"baldr/internal/master"
	"baldr/internal/mediauri"
)

// SampleList plays several samples from one slide. samples accepts a URI, a
// map with `uri` and `title`, or a list of both.
type SampleList struct{}

func (SampleList) Name() string           { return "sampleList" }
func (SampleList) DisplayName() string    { return "Audio-Ausschnitte" }
func (SampleList) ShortFormField() string { return "samples" }

func (SampleList) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"samples":     {Required: true, Description: "The samples to play."},
		"heading":     {Type: master.TypeString, Markup: true},
		"notNumbered": {Type: master.TypeBool, Default: false},
	}
}

func (SampleList) NormalizeFieldsInput(raw any) (master.Fields, error) {
	switch v := raw.(type) {
	case []any, string:
		return master.Fields{"samples": v}, nil
	case map[string]any:
		if _, ok := v["uri"]; ok {
			return master.Fields{"samples": v}, nil
		}
		return master.Fields(v).Clone(), nil
	default:
		return nil, errUnsupportedInput("sample list", raw)
	}
}

func (SampleList) CollectFieldsOnInstantiation(fields master.Fields) (master.Fields, error) {
	list, err := mediauri.NewWrappedURIList(fields["samples"])
	if err != nil {
		return nil, err
	}
	samples := make([]any, 0, len(list))
	for _, w := range list {
		entry := map[string]any{"uri": w.URI}
		if w.Title != "" {
			entry["title"] = w.Title
		}
		samples = append(samples, entry)
	}
	out := fields.Clone()
	out["samples"] = samples
	return out, nil
}

func (SampleList) CollectMediaURIs(fields master.Fields) ([]string, error) {
	list, err := mediauri.NewWrappedURIList(fields["samples"])
	if err != nil {
		return nil, err
	}
	return list.URIs(), nil
}

func (SampleList) DeriveTitleFromFields(fields master.Fields) string {
	return fields.String("heading")
}

func (SampleList) CollectFieldsAfterResolution(fields master.Fields, r master.Resolver) (master.Fields, error) {
	list, err := mediauri.NewWrappedURIList(fields["samples"])
	if err != nil {
		return nil, err
	}
	resolved := make([]any, 0, len(list))
	for _, w := range list {
		sample, err := r.Sample(w.URI)
		if err != nil {
			return nil, err
		}
		info := sampleInfo(sample)
		info["uri"] = w.URI
		if w.Title != "" {
			info["title"] = w.Title
		}
		resolved = append(resolved, info)
	}
	out := fields.Clone()
	out["samples"] = resolved
	return out, nil
}

func (SampleList) CollectStepsAfterResolution(fields master.Fields, steps *master.StepCollector, _ master.Resolver) error {
	for _, item := range fields.List("samples") {
		info, _ := item.(map[string]any)
		title, _ := info["title"].(string)
		steps.Add(title)
	}
	return nil
}
