package media

import (
	"fmt"

	"baldr/internal/services"
)

const (
	// CompleteSampleID names the implicit sample covering the whole asset.
	CompleteSampleID = "complete"
	completeTitle    = "komplett"

	defaultFadeIn  = 0.3
	defaultFadeOut = 1.0
)

// Sample is one playable excerpt of an audio or video asset. EndTime and
// Duration are zero when not specified; at most one of them is set.
type Sample struct {
	Asset     *Asset
	ID        string
	Ref       string
	Title     string
	StartTime float64
	EndTime   float64
	Duration  float64
	FadeIn    float64
	FadeOut   float64
	Shortcut  string
}

func newSample(asset *Asset, spec SampleSpec) (*Sample, error) {
	id := spec.Ref
	if id == "" {
		id = CompleteSampleID
	}
	s := &Sample{
		Asset:    asset,
		ID:       id,
		Ref:      asset.Ref + "#" + id,
		FadeIn:   defaultFadeIn,
		FadeOut:  defaultFadeOut,
		Shortcut: spec.Shortcut,
	}
	switch {
	case spec.Title != "":
		s.Title = spec.Title
	case id != CompleteSampleID:
		s.Title = id
	default:
		s.Title = completeTitle
	}

	if spec.Duration != nil && spec.EndTime != nil {
		return nil, sampleError(s, "specify duration or endTime, not both")
	}

	var err error
	if spec.StartTime != nil {
		if s.StartTime, err = ParseDuration(spec.StartTime); err != nil {
			return nil, sampleError(s, "startTime: "+err.Error())
		}
	}
	if spec.EndTime != nil {
		if s.EndTime, err = ParseDuration(spec.EndTime); err != nil {
			return nil, sampleError(s, "endTime: "+err.Error())
		}
		if s.EndTime <= s.StartTime {
			return nil, sampleError(s, "endTime must be after startTime")
		}
	}
	if spec.Duration != nil {
		if s.Duration, err = ParseDuration(spec.Duration); err != nil {
			return nil, sampleError(s, "duration: "+err.Error())
		}
	}
	if spec.FadeIn != nil {
		if s.FadeIn, err = ParseDuration(spec.FadeIn); err != nil {
			return nil, sampleError(s, "fadeIn: "+err.Error())
		}
	}
	if spec.FadeOut != nil {
		if s.FadeOut, err = ParseDuration(spec.FadeOut); err != nil {
			return nil, sampleError(s, "fadeOut: "+err.Error())
		}
	}
	return s, nil
}

func sampleError(s *Sample, msg string) error {
	return services.Wrap(services.ErrValidation, "resolve", "sample "+s.Ref, msg, nil)
}

// End returns the end time in seconds and whether the sample has one.
func (s *Sample) End() (float64, bool) {
	switch {
	case s.EndTime > 0:
		return s.EndTime, true
	case s.Duration > 0:
		return s.StartTime + s.Duration, true
	default:
		return 0, false
	}
}

// IsComplete reports whether this is the default sample of the asset.
func (s *Sample) IsComplete() bool { return s.ID == CompleteSampleID }

// TitleSafe combines the sample title with the asset title.
func (s *Sample) TitleSafe() string {
	if s.IsComplete() {
		return s.Asset.TitleSafe()
	}
	return fmt.Sprintf("%s (%s)", s.Title, s.Asset.TitleSafe())
}

// SampleCollection holds the samples of one asset in definition order. The
// first entry is always the complete sample.
type SampleCollection struct {
	order []*Sample
	byID  map[string]*Sample
}

// NewSampleCollection builds the samples of a playable asset from its record.
func NewSampleCollection(asset *Asset) (*SampleCollection, error) {
	c := &SampleCollection{byID: make(map[string]*Sample)}
	rec := asset.Record
	if rec == nil {
		rec = &Record{}
	}

	var completeFromSamples *SampleSpec
	rest := make([]SampleSpec, 0, len(rec.Samples))
	for i := range rec.Samples {
		spec := rec.Samples[i]
		if spec.Ref == CompleteSampleID && completeFromSamples == nil {
			completeFromSamples = &spec
			continue
		}
		rest = append(rest, spec)
	}

	completeFromRoot, hasRoot := rec.rootSample()
	var complete SampleSpec
	switch {
	case completeFromSamples != nil && hasRoot:
		return nil, services.Wrap(services.ErrValidation, "resolve", "samples "+asset.Ref,
			"duplicate definition of the default complete sample", nil)
	case completeFromSamples != nil:
		complete = *completeFromSamples
	case hasRoot:
		complete = completeFromRoot
	}
	complete.Ref = CompleteSampleID
	if err := c.add(asset, complete); err != nil {
		return nil, err
	}

	counter := 0
	for _, spec := range rest {
		if spec.Ref == "" && spec.Title == "" {
			counter++
			spec.Ref = fmt.Sprintf("sample%d", counter)
			spec.Title = fmt.Sprintf("Ausschnitt %d", counter)
		}
		if spec.Ref == "" {
			counter++
			spec.Ref = fmt.Sprintf("sample%d", counter)
		}
		if err := c.add(asset, spec); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *SampleCollection) add(asset *Asset, spec SampleSpec) error {
	sample, err := newSample(asset, spec)
	if err != nil {
		return err
	}
	if _, ok := c.byID[sample.ID]; ok {
		return nil
	}
	c.byID[sample.ID] = sample
	c.order = append(c.order, sample)
	return nil
}

// Get returns the sample with the given id (the URI fragment).
func (c *SampleCollection) Get(id string) (*Sample, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Complete returns the default sample.
func (c *SampleCollection) Complete() *Sample {
	return c.byID[CompleteSampleID]
}

// All returns the samples in definition order.
func (c *SampleCollection) All() []*Sample {
	out := make([]*Sample, len(c.order))
	copy(out, c.order)
	return out
}

func (c *SampleCollection) Len() int { return len(c.order) }
