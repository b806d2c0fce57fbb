package presentation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"baldr/internal/master"
	"baldr/internal/mediauri"
	"baldr/internal/textutil"
)

// Slide is one numbered unit of a presentation.
type Slide struct {
	No          int
	Level       int
	Ref         string
	MasterName  string
	Description string
	Source      string
	Style       map[string]string

	// Fields holds the normalized fields, enriched once the presentation is
	// resolved.
	Fields            master.Fields
	MediaURIs         []string
	OptionalMediaURIs []string
	AudioOverlay      mediauri.WrappedURIList

	Children []*Slide
	Parent   *Slide

	master     master.Master
	metaTitle  string
	instFields master.Fields
	instSteps  int
	steps      master.StepCollector
}

// slideKeys are entry keys that belong to the slide rather than its master.
var slideKeys = map[string]bool{
	"ref":          true,
	"title":        true,
	"description":  true,
	"source":       true,
	"audioOverlay": true,
	"style":        true,
	"slides":       true,
}

func (s *Slide) Master() master.Master { return s.master }

// Steps returns the reveal steps. Slides without steps return nil.
func (s *Slide) Steps() []master.Step {
	if s.steps.Len() == 0 {
		return nil
	}
	return s.steps.Steps()
}

// PlainText is the text content of the slide without markup.
func (s *Slide) PlainText() string {
	return master.DerivePlainText(s.master, s.Fields)
}

// Title returns the slide title without tags: the explicit `title` key, then
// the title derived by the master, then the plain text and finally the
// display name of the master.
func (s *Slide) Title() string {
	for _, candidate := range []string{
		s.metaTitle,
		master.DeriveTitle(s.master, s.Fields),
		s.PlainText(),
	} {
		if t := textutil.StripTags(candidate); t != "" {
			return textutil.ShortenText(t, textutil.DefaultTitleLength)
		}
	}
	return s.master.DisplayName()
}

// MarshalJSON renders the slide with its title and steps.
func (s *Slide) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"no":     s.No,
		"level":  s.Level,
		"master": s.MasterName,
		"title":  s.Title(),
		"fields": s.Fields,
	}
	if s.Ref != "" {
		out["ref"] = s.Ref
	}
	if len(s.MediaURIs) > 0 {
		out["mediaUris"] = s.MediaURIs
	}
	if len(s.OptionalMediaURIs) > 0 {
		out["optionalMediaUris"] = s.OptionalMediaURIs
	}
	if steps := s.Steps(); steps != nil {
		out["steps"] = steps
	}
	if len(s.Style) > 0 {
		out["style"] = s.Style
	}
	if len(s.Children) > 0 {
		out["slides"] = s.Children
	}
	return json.Marshal(out)
}

// detectMaster finds the one master key of a slide entry. A bare string entry
// names a master that takes no input: `- camera`.
func detectMaster(reg *master.Registry, raw any, no int) (master.Master, map[string]any, error) {
	switch v := raw.(type) {
	case string:
		m, err := reg.Lookup(strings.TrimSpace(v))
		if err != nil {
			return nil, nil, &master.UnknownMasterError{SlideNo: no, Name: v}
		}
		return m, map[string]any{m.Name(): nil}, nil
	case map[string]any:
		var found, unknown []string
		for key := range v {
			switch {
			case slideKeys[key]:
			case reg.Has(key):
				found = append(found, key)
			default:
				unknown = append(unknown, key)
			}
		}
		sort.Strings(found)
		sort.Strings(unknown)
		switch {
		case len(found) > 1:
			return nil, nil, &master.UnknownMasterError{SlideNo: no,
				Reason: fmt.Sprintf("each slide must have only one master, found %s", strings.Join(found, ", "))}
		case len(unknown) > 0:
			return nil, nil, &master.UnknownMasterError{SlideNo: no, Name: unknown[0]}
		case len(found) == 0:
			return nil, nil, &master.UnknownMasterError{SlideNo: no, Reason: "no master slide found"}
		}
		m, err := reg.Lookup(found[0])
		if err != nil {
			return nil, nil, err
		}
		return m, v, nil
	default:
		return nil, nil, &master.UnknownMasterError{SlideNo: no,
			Reason: fmt.Sprintf("a slide must be a mapping or a master name, got %T", raw)}
	}
}

// normalizeStyle trims trailing semicolons and turns snake_case properties
// into camelCase: `background_color: red;` becomes `backgroundColor: red`.
func normalizeStyle(raw any) (map[string]string, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("style must be a mapping, got %T", raw)
	}
	out := make(map[string]string, len(m))
	for key, value := range m {
		out[camelCase(key)] = strings.TrimSuffix(strings.TrimSpace(fmt.Sprint(value)), ";")
	}
	return out, nil
}

func camelCase(key string) string {
	parts := strings.Split(key, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

func optionalString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
