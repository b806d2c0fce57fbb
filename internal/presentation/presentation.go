package presentation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"baldr/internal/logging"
	"baldr/internal/master"
	"baldr/internal/mediauri"
	"baldr/internal/services"
	"baldr/internal/services/markup"
)

// refAbbreviation is replaced with `ref:<meta ref>_` before decoding.
const refAbbreviation = "ref:./"

// emptyPresentationText is shown by the placeholder slide of a document
// without slides.
const emptyPresentationText = "Die Präsentation hat noch keine Folien."

// Presentation is a parsed document. After Resolve it is read-only.
type Presentation struct {
	Meta   Meta
	Slides []*Slide

	// Expanded reports whether `ref:./` abbreviations were expanded.
	Expanded bool

	flat   []*Slide
	byRef  map[string]*Slide
	logger *slog.Logger
}

type options struct {
	conv   master.MarkupConverter
	logger *slog.Logger
}

// Option configures Parse.
type Option func(*options)

// WithMarkupConverter replaces the default goldmark based converter.
func WithMarkupConverter(conv master.MarkupConverter) Option {
	return func(o *options) {
		if conv != nil {
			o.conv = conv
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// document is the top level of a presentation file. Strict decoding rejects
// unknown keys on this level and inside meta.
type document struct {
	Meta   *Meta  `yaml:"meta"`
	Title  string `yaml:"title"`
	Ref    string `yaml:"ref"`
	Grade  int    `yaml:"grade"`
	Slides []any  `yaml:"slides"`
}

// ParseFile reads and parses the presentation at path.
func ParseFile(path string, reg *master.Registry, opts ...Option) (*Presentation, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "parse", "read presentation", path, err)
	}
	return Parse(text, reg, opts...)
}

// Parse decodes a presentation document, validates its meta block and builds
// the slide tree. Every slide is normalized by its master; the first failing
// slide aborts parsing.
func Parse(text []byte, reg *master.Registry, opts ...Option) (*Presentation, error) {
	if reg == nil {
		return nil, services.Wrap(services.ErrProgramming, "parse", "presentation", "nil master registry", nil)
	}
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.conv == nil {
		o.conv = markup.New()
	}

	doc, err := decodeDocument(text)
	if err != nil {
		return nil, err
	}
	meta, err := resolveMeta(doc)
	if err != nil {
		return nil, err
	}

	p := &Presentation{
		Meta:   meta,
		byRef:  make(map[string]*Slide),
		logger: logging.NewComponentLogger(o.logger, "presentation").With(logging.String(logging.FieldPresentation, meta.Ref)),
	}
	if bytes.Contains(text, []byte(refAbbreviation)) {
		expanded := bytes.ReplaceAll(text, []byte(refAbbreviation), []byte(mediauri.SchemeRef+":"+meta.Ref+"_"))
		if doc, err = decodeDocument(expanded); err != nil {
			return nil, err
		}
		p.Expanded = true
	}

	entries := doc.Slides
	if len(entries) == 0 {
		entries = []any{map[string]any{"generic": emptyPresentationText}}
	}
	b := &builder{reg: reg, conv: o.conv, p: p}
	slides, err := b.build(entries, 1, nil)
	if err != nil {
		return nil, err
	}
	p.Slides = slides

	p.logger.Debug("presentation parsed",
		logging.Int("slides", len(p.flat)),
		logging.Int("media_uris", len(p.MediaURIs())),
		logging.Bool("expanded", p.Expanded))
	return p, nil
}

func decodeDocument(text []byte) (document, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(text))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return doc, services.Wrap(services.ErrMalformedInput, "parse", "decode document", "", err)
	}
	return doc, nil
}

// resolveMeta accepts either a `meta` block or the legacy top level
// `title`, `ref` and `grade` keys, not both.
func resolveMeta(doc document) (Meta, error) {
	legacy := doc.Title != "" || doc.Ref != "" || doc.Grade != 0
	var meta Meta
	switch {
	case doc.Meta != nil && legacy:
		return meta, services.Wrap(services.ErrValidation, "parse", "meta",
			"specify title and ref inside or outside of meta, not both", nil)
	case doc.Meta != nil:
		meta = *doc.Meta
	default:
		meta = Meta{Title: doc.Title, Ref: doc.Ref, Grade: doc.Grade}
	}
	meta.Ref = mediauri.RemoveScheme(meta.Ref)
	return meta, meta.Validate()
}

type builder struct {
	reg  *master.Registry
	conv master.MarkupConverter
	p    *Presentation
}

// build numbers entries in pre-order: a parent gets its number before its
// children.
func (b *builder) build(entries []any, level int, parent *Slide) ([]*Slide, error) {
	slides := make([]*Slide, 0, len(entries))
	for _, raw := range entries {
		s, err := b.newSlide(raw, len(b.p.flat)+1, level)
		if err != nil {
			return nil, err
		}
		s.Parent = parent
		b.p.flat = append(b.p.flat, s)
		if s.Ref != "" {
			if other, ok := b.p.byRef[s.Ref]; ok {
				return nil, services.Wrap(services.ErrValidation, "parse", fmt.Sprintf("slide %d", s.No),
					fmt.Sprintf("duplicate slide ref %q, already used by slide %d", s.Ref, other.No), nil)
			}
			b.p.byRef[s.Ref] = s
		}
		slides = append(slides, s)

		if entry, ok := raw.(map[string]any); ok && entry["slides"] != nil {
			children, ok := entry["slides"].([]any)
			if !ok {
				return nil, services.Wrap(services.ErrMalformedInput, "parse", fmt.Sprintf("slide %d", s.No),
					"slides must be a list", nil)
			}
			if s.Children, err = b.build(children, level+1, s); err != nil {
				return nil, err
			}
		}
	}
	return slides, nil
}

func (b *builder) newSlide(raw any, no, level int) (*Slide, error) {
	m, entry, err := detectMaster(b.reg, raw, no)
	if err != nil {
		return nil, err
	}
	s := &Slide{
		No:          no,
		Level:       level,
		MasterName:  m.Name(),
		Ref:         optionalString(entry["ref"]),
		Description: optionalString(entry["description"]),
		Source:      optionalString(entry["source"]),
		master:      m,
		metaTitle:   optionalString(entry["title"]),
	}
	if s.Style, err = normalizeStyle(entry["style"]); err != nil {
		return nil, &master.InvalidFieldsError{SlideNo: no, Master: m.Name(), Field: "style", Reason: err.Error()}
	}

	fields, err := master.Normalize(m, entry[m.Name()], b.conv, no)
	if err != nil {
		return nil, err
	}
	s.Fields = fields
	s.instFields = fields

	required, err := master.CollectMediaURIs(m, fields)
	if err != nil {
		return nil, slideError(s, "collect media uris", err)
	}
	set := mediauri.NewOrderedSet(required...)
	if overlay := entry["audioOverlay"]; overlay != nil {
		if s.AudioOverlay, err = mediauri.NewWrappedURIList(overlay); err != nil {
			return nil, slideError(s, "audio overlay", err)
		}
		for _, uri := range s.AudioOverlay.URIs() {
			set.Add(mediauri.RemoveFragment(uri))
		}
	}
	s.MediaURIs = set.Values()

	optional, err := master.CollectOptionalMediaURIs(m, fields)
	if err != nil {
		return nil, slideError(s, "collect optional media uris", err)
	}
	s.OptionalMediaURIs = optional

	if err := master.CollectStepsOnInstantiation(m, fields, &s.steps); err != nil {
		return nil, slideError(s, "collect steps", err)
	}
	s.instSteps = s.steps.Len()
	return s, nil
}

func slideError(s *Slide, operation string, err error) error {
	return fmt.Errorf("slide %d (%s): %s: %w", s.No, s.MasterName, operation, err)
}

// Flat returns every slide in document order.
func (p *Presentation) Flat() []*Slide {
	out := make([]*Slide, len(p.flat))
	copy(out, p.flat)
	return out
}

// Len returns the number of slides including nested ones.
func (p *Presentation) Len() int { return len(p.flat) }

// MediaURIs returns the URIs every slide requires, without fragments and in
// document order.
func (p *Presentation) MediaURIs() []string {
	set := mediauri.NewOrderedSet()
	for _, s := range p.flat {
		for _, uri := range s.MediaURIs {
			set.Add(uri)
		}
	}
	return set.Values()
}

// OptionalMediaURIs returns the URIs that may be missing from the catalog.
// URIs that some slide requires are left out.
func (p *Presentation) OptionalMediaURIs() []string {
	required := mediauri.NewOrderedSet(p.MediaURIs()...)
	set := mediauri.NewOrderedSet()
	for _, s := range p.flat {
		for _, uri := range s.OptionalMediaURIs {
			if !required.Has(uri) {
				set.Add(uri)
			}
		}
	}
	return set.Values()
}

// SlideByNo returns the slide with the 1-based number no.
func (p *Presentation) SlideByNo(no int) (*Slide, bool) {
	if no < 1 || no > len(p.flat) {
		return nil, false
	}
	return p.flat[no-1], true
}

// SlideByRef returns the slide declared with `ref: <ref>`.
func (p *Presentation) SlideByRef(ref string) (*Slide, bool) {
	s, ok := p.byRef[ref]
	return s, ok
}

// FirstSlide returns slide number 1.
func (p *Presentation) FirstSlide() *Slide {
	return p.flat[0]
}
