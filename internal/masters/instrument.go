package masters

import (
	"fmt"

	"baldr/internal/master"
)

const instrumentPrefix = "IN_"

// Instrument shows an instrument picture and the audio samples linked from the
// instrument's catalog record under `audioSamples`.
type Instrument struct{}

func (Instrument) Name() string           { return "instrument" }
func (Instrument) DisplayName() string    { return "Instrument" }
func (Instrument) ShortFormField() string { return "instrumentId" }

func (Instrument) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"instrumentId": {Type: master.TypeString, Required: true, Description: "The id without the `IN_` prefix, e.g. `Floete`."},
	}
}

func (Instrument) CollectMediaURIs(fields master.Fields) ([]string, error) {
	return []string{instrumentURI(fields)}, nil
}

func (Instrument) DeriveTitleFromFields(fields master.Fields) string {
	return humanizeID(fields.String("instrumentId"))
}

func (Instrument) CollectFieldsAfterResolution(fields master.Fields, r master.Resolver) (master.Fields, error) {
	asset, err := r.Asset(instrumentURI(fields))
	if err != nil {
		return nil, err
	}
	out := fields.Clone()
	out["asset"] = assetInfo(asset)
	out["name"] = asset.TitleSafe()

	var samples []any
	if asset.Record != nil {
		for _, uri := range master.Fields(asset.Record.Meta).Strings("audioSamples") {
			sample, err := r.Sample(uri)
			if err != nil {
				return nil, fmt.Errorf("instrument %s: %w", asset.Ref, err)
			}
			samples = append(samples, sampleInfo(sample))
		}
	}
	out["samples"] = samples
	return out, nil
}

func (Instrument) CollectStepsAfterResolution(fields master.Fields, steps *master.StepCollector, _ master.Resolver) error {
	samples := fields.List("samples")
	if len(samples) < 2 {
		return nil
	}
	for i := range samples {
		steps.Add(fmt.Sprintf("Hörbeispiel %d", i+1))
	}
	return nil
}

func instrumentURI(fields master.Fields) string {
	return refWithPrefix(instrumentPrefix, fields.String("instrumentId"))
}
