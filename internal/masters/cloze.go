package masters

import (
	"fmt"

	"baldr/internal/master"
)

// Cloze shows a gap text rendered to SVG. Each selected page is one step;
// stepSubset narrows the steps further.
type Cloze struct{}

func (Cloze) Name() string           { return "cloze" }
func (Cloze) DisplayName() string    { return "Lückentext" }
func (Cloze) ShortFormField() string { return "src" }

func (Cloze) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"src":        {Type: master.TypeString, Required: true, Description: "Media URI of the cloze SVG, optionally with a page range."},
		"stepSubset": {Type: master.TypeString, Description: "Only show these steps, e.g. `1-3,5`."},
	}
}

func (Cloze) CollectMediaURIs(fields master.Fields) ([]string, error) {
	return appendIfSet(nil, fields, "src"), nil
}

func (Cloze) CollectFieldsAfterResolution(fields master.Fields, r master.Resolver) (master.Fields, error) {
	asset, err := r.Asset(fields.String("src"))
	if err != nil {
		return nil, err
	}
	if asset.Extension != "svg" {
		return nil, fmt.Errorf("%s is not an SVG file", asset.Ref)
	}
	sel, err := r.MultipartSelection(fields.String("src"))
	if err != nil {
		return nil, err
	}
	urls, err := partURLs(sel)
	if err != nil {
		return nil, err
	}
	out := fields.Clone()
	out["partHttpUrls"] = urls
	return out, nil
}

func (Cloze) CollectStepsAfterResolution(fields master.Fields, steps *master.StepCollector, r master.Resolver) error {
	sel, err := r.MultipartSelection(fields.String("src"))
	if err != nil {
		return err
	}
	for _, no := range sel.Parts() {
		steps.Add(fmt.Sprintf("Seite %d", no))
	}
	return applySubset(steps, fields.String("stepSubset"))
}
