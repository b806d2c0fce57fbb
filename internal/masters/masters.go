package masters

import (
	"fmt"
	"strings"

	"baldr/internal/master"
	"baldr/internal/mediauri"
	"baldr/internal/multipart"
	"baldr/internal/textutil"
)

// All returns one instance of every master.
func All() []master.Master {
	return []master.Master{
		Audio{},
		Camera{},
		Cloze{},
		Counter{},
		Document{},
		Editor{},
		Generic{},
		Group{},
		Image{},
		Instrument{},
		Note{},
		Person{},
		Question{},
		Quote{},
		SampleList{},
		ScoreSample{},
		Section{},
		Song{},
		Task{},
		Video{},
		Wikipedia{},
		YouTube{},
	}
}

// Default returns a registry holding All.
func Default() (*master.Registry, error) {
	return master.NewRegistry(All()...)
}

// refWithPrefix turns a bare id into `ref:<prefix><id>`. Values that already
// are media URIs are returned unchanged.
func refWithPrefix(prefix, id string) string {
	id = strings.TrimSpace(id)
	if mediauri.Check(id) {
		return id
	}
	return mediauri.SchemeRef + ":" + prefix + id
}

// appendIfSet appends the string field key when it is not empty.
func appendIfSet(uris []string, fields master.Fields, key string) []string {
	if v := strings.TrimSpace(fields.String(key)); v != "" {
		return append(uris, v)
	}
	return uris
}

// plainText strips tags from the string fields in keys and joins them.
func plainText(fields master.Fields, keys ...string) string {
	var parts []string
	for _, key := range keys {
		if s := textutil.StripTags(fields.String(key)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}

// humanizeID turns `Ludwig_van_Beethoven` into `Ludwig van Beethoven`.
func humanizeID(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}

// applySubset restricts the collected steps to the subset spec, keeping the
// selected steps in order and renumbering them.
func applySubset(steps *master.StepCollector, spec string) error {
	if strings.TrimSpace(spec) == "" {
		return nil
	}
	all := steps.Steps()
	selected, err := multipart.SelectSubset(spec, len(all))
	if err != nil {
		return err
	}
	steps.Reset()
	for _, no := range selected {
		steps.Add(all[no-1].Title)
	}
	return nil
}

func errUnsupportedInput(name string, raw any) error {
	return fmt.Errorf("unsupported %s input of type %T", name, raw)
}
