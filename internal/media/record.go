package media

// SampleSpec is the raw definition of one sample inside a catalog record.
// Time values may be numbers of seconds or `HH:MM:SS` / `MM:SS` strings.
type SampleSpec struct {
	Ref       string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	StartTime any    `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime   any    `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	Duration  any    `json:"duration,omitempty" yaml:"duration,omitempty"`
	FadeIn    any    `json:"fadeIn,omitempty" yaml:"fadeIn,omitempty"`
	FadeOut   any    `json:"fadeOut,omitempty" yaml:"fadeOut,omitempty"`
	Shortcut  string `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
}

func (s SampleSpec) empty() bool {
	return s.StartTime == nil && s.EndTime == nil && s.Duration == nil &&
		s.FadeIn == nil && s.FadeOut == nil && s.Shortcut == ""
}

// Record is the catalog entry of one media asset as supplied by a catalog
// client. Meta keeps every additional key of the sidecar file; linked media
// URIs found there are resolved together with the asset.
type Record struct {
	Ref            string         `json:"ref" yaml:"ref" validate:"required,authority"`
	UUID           string         `json:"uuid" yaml:"uuid" validate:"required,uuid"`
	Path           string         `json:"path,omitempty" yaml:"path,omitempty"`
	Filename       string         `json:"filename,omitempty" yaml:"filename,omitempty"`
	Extension      string         `json:"extension,omitempty" yaml:"extension,omitempty"`
	Title          string         `json:"title,omitempty" yaml:"title,omitempty"`
	PreviewImage   bool           `json:"previewImage,omitempty" yaml:"previewImage,omitempty"`
	HasWaveform    bool           `json:"hasWaveform,omitempty" yaml:"hasWaveform,omitempty"`
	MultiPartCount int            `json:"multiPartCount,omitempty" yaml:"multiPartCount,omitempty" validate:"gte=0,lte=999"`
	Cover          string         `json:"cover,omitempty" yaml:"cover,omitempty"`
	Samples        []SampleSpec   `json:"samples,omitempty" yaml:"samples,omitempty"`
	StartTime      any            `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime        any            `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	Duration       any            `json:"duration,omitempty" yaml:"duration,omitempty"`
	FadeIn         any            `json:"fadeIn,omitempty" yaml:"fadeIn,omitempty"`
	FadeOut        any            `json:"fadeOut,omitempty" yaml:"fadeOut,omitempty"`
	Shortcut       string         `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
	Meta           map[string]any `json:"meta,omitempty" yaml:",inline"`
}

// rootSample gathers the asset level time settings that describe the
// `complete` sample. ok is false when none are set.
func (r *Record) rootSample() (SampleSpec, bool) {
	spec := SampleSpec{
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Duration:  r.Duration,
		FadeIn:    r.FadeIn,
		FadeOut:   r.FadeOut,
		Shortcut:  r.Shortcut,
	}
	return spec, !spec.empty()
}
