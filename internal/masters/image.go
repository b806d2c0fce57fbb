package masters

import (
	"fmt"

	"baldr/internal/master"
)

// Image shows an image asset. A range fragment on a multipart asset shows the
// selected parts one step at a time: `- image: ref:Partitur#2-4`.
type Image struct{}

func (Image) Name() string           { return "image" }
func (Image) DisplayName() string    { return "Bild" }
func (Image) ShortFormField() string { return "src" }

func (Image) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"src":         {Type: master.TypeString, Required: true, Description: "Media URI of the image."},
		"title":       {Type: master.TypeString, Markup: true},
		"description": {Type: master.TypeString, Markup: true},
		"noMeta":      {Type: master.TypeBool, Default: false, Description: "Hide title and description."},
	}
}

func (Image) CollectMediaURIs(fields master.Fields) ([]string, error) {
	return appendIfSet(nil, fields, "src"), nil
}

func (Image) DeriveTitleFromFields(fields master.Fields) string {
	return fields.String("title")
}

func (Image) CollectFieldsAfterResolution(fields master.Fields, r master.Resolver) (master.Fields, error) {
	asset, err := r.Asset(fields.String("src"))
	if err != nil {
		return nil, err
	}
	if !asset.IsVisible() {
		return nil, fmt.Errorf("%s is a %s asset, expected an image", asset.Ref, asset.Category)
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
	if !out.Has("title") {
		out["title"] = asset.TitleSafe()
	}
	if !out.Has("description") && asset.Record != nil {
		if d, ok := asset.Record.Meta["description"].(string); ok {
			out["description"] = d
		}
	}
	return out, nil
}

func (Image) CollectStepsAfterResolution(fields master.Fields, steps *master.StepCollector, r master.Resolver) error {
	return partSteps(fields.String("src"), steps, r, "Bild")
}

// partSteps adds one step per selected part when more than one part is shown.
func partSteps(uri string, steps *master.StepCollector, r master.Resolver, label string) error {
	sel, err := r.MultipartSelection(uri)
	if err != nil {
		return err
	}
	if sel.Count() < 2 {
		return nil
	}
	for _, no := range sel.Parts() {
		steps.Add(fmt.Sprintf("%s %d", label, no))
	}
	return nil
}
