package master

import (
	"baldr/internal/media"
	"baldr/internal/multipart"
)

// Master is implemented by every slide type.
type Master interface {
	Name() string
	DisplayName() string
	FieldsDefinition() map[string]FieldDefinition
}

// ShortFormer names the field a bare scalar slide value is assigned to, so
// `- audio: ref:Song` becomes `{src: ref:Song}`.
type ShortFormer interface {
	ShortFormField() string
}

// InputNormalizer converts raw slide input into the long field form.
type InputNormalizer interface {
	NormalizeFieldsInput(raw any) (Fields, error)
}

// FieldsInstantiator adjusts fields once validation, defaults and markup
// conversion are done.
type FieldsInstantiator interface {
	CollectFieldsOnInstantiation(fields Fields) (Fields, error)
}

// MediaURICollector returns the URIs that must resolve.
type MediaURICollector interface {
	CollectMediaURIs(fields Fields) ([]string, error)
}

// OptionalMediaURICollector returns URIs that may be missing from the catalog.
type OptionalMediaURICollector interface {
	CollectOptionalMediaURIs(fields Fields) ([]string, error)
}

// TitleDeriver supplies a slide title from the fields.
type TitleDeriver interface {
	DeriveTitleFromFields(fields Fields) string
}

// PlainTextDeriver supplies a plain text summary of the fields.
type PlainTextDeriver interface {
	DerivePlainTextFromFields(fields Fields) string
}

// InstantiationStepCollector computes steps that need no resolved media.
type InstantiationStepCollector interface {
	CollectStepsOnInstantiation(fields Fields, steps *StepCollector) error
}

// ResolvedFieldsCollector rewrites fields after media resolution.
type ResolvedFieldsCollector interface {
	CollectFieldsAfterResolution(fields Fields, r Resolver) (Fields, error)
}

// ResolvedStepCollector computes steps that depend on resolved media.
type ResolvedStepCollector interface {
	CollectStepsAfterResolution(fields Fields, steps *StepCollector, r Resolver) error
}

// Resolver is the read-only view of resolved media that masters consume after
// the resolve phase. Lookups never perform I/O.
type Resolver interface {
	Asset(uri string) (*media.Asset, error)
	Sample(uri string) (*media.Sample, error)
	MultipartSelection(uri string) (*multipart.Selection, error)
}

// MarkupConverter turns markdown or HTML into sanitized HTML.
type MarkupConverter interface {
	ConvertToHTML(text string) (string, error)
}
