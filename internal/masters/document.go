package masters

import (
	"fmt"

	"baldr/internal/master"
	"baldr/internal/media"
)

// Document shows a PDF or a multipart scan, one page per step.
type Document struct{}

func (Document) Name() string           { return "document" }
func (Document) DisplayName() string    { return "Dokument" }
func (Document) ShortFormField() string { return "src" }

func (Document) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"src":  {Type: master.TypeString, Required: true, Description: "Media URI of the document, optionally with a page range."},
		"page": {Type: master.TypeNumber, Description: "Start page of a PDF document."},
	}
}

func (Document) CollectMediaURIs(fields master.Fields) ([]string, error) {
	return appendIfSet(nil, fields, "src"), nil
}

func (Document) CollectFieldsAfterResolution(fields master.Fields, r master.Resolver) (master.Fields, error) {
	asset, err := r.Asset(fields.String("src"))
	if err != nil {
		return nil, err
	}
	if asset.Category != media.CategoryDocument && asset.Category != media.CategoryImage {
		return nil, fmt.Errorf("%s is a %s asset, expected a document", asset.Ref, asset.Category)
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
	out["asset"] = assetInfo(asset)
	out["partHttpUrls"] = urls
	return out, nil
}

func (Document) CollectStepsAfterResolution(fields master.Fields, steps *master.StepCollector, r master.Resolver) error {
	return partSteps(fields.String("src"), steps, r, "Seite")
}
