package masters

import (
	"baldr/internal/master"
)

const personPrefix = "PR_"

// Person shows a portrait with life dates and a short biography taken from the
// person's catalog record.
type Person struct{}

func (Person) Name() string           { return "person" }
func (Person) DisplayName() string    { return "Porträt" }
func (Person) ShortFormField() string { return "personId" }

func (Person) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"personId": {Type: master.TypeString, Required: true, Description: "The id without the `PR_` prefix, e.g. `Beethoven_Ludwig-van`."},
	}
}

func (Person) CollectMediaURIs(fields master.Fields) ([]string, error) {
	return []string{personURI(fields)}, nil
}

func (Person) DeriveTitleFromFields(fields master.Fields) string {
	return humanizeID(fields.String("personId"))
}

var personMetaKeys = []string{"birth", "death", "shortBiography", "wikipedia"}

func (Person) CollectFieldsAfterResolution(fields master.Fields, r master.Resolver) (master.Fields, error) {
	asset, err := r.Asset(personURI(fields))
	if err != nil {
		return nil, err
	}
	out := fields.Clone()
	out["asset"] = assetInfo(asset)
	out["imageHttpUrl"] = asset.HTTPURL
	out["name"] = asset.TitleSafe()
	if asset.Record != nil {
		meta := master.Fields(asset.Record.Meta)
		if name := meta.String("name"); name != "" {
			out["name"] = name
		}
		for _, key := range personMetaKeys {
			if meta.Has(key) {
				out[key] = meta[key]
			}
		}
	}
	return out, nil
}

func (Person) DerivePlainTextFromFields(fields master.Fields) string {
	return plainText(fields, "name", "shortBiography")
}

func personURI(fields master.Fields) string {
	return refWithPrefix(personPrefix, fields.String("personId"))
}
