package presentation_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"baldr/internal/master"
	"baldr/internal/masters"
	"baldr/internal/media"
	"baldr/internal/presentation"
	"baldr/internal/resolver"
	"baldr/internal/services"
	"baldr/internal/testsupport"
)

func registry(t *testing.T) *master.Registry {
	t.Helper()
	reg, err := masters.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return reg
}

func parse(t *testing.T, text string) *presentation.Presentation {
	t.Helper()
	p, err := presentation.Parse([]byte(text), registry(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return p
}

const meta = `meta:
  ref: Beethoven
  title: Ludwig van Beethoven
  grade: 7
`

func TestParseNumbersSlidesPreOrder(t *testing.T) {
	p := parse(t, meta+`slides:
- section: Leben
  slides:
  - task: Lies den Text.
- quote:
    text: Musik ist höhere Offenbarung
    author: Beethoven
`)
	var got [][2]int
	for _, s := range p.Flat() {
		got = append(got, [2]int{s.No, s.Level})
	}
	want := [][2]int{{1, 1}, {2, 2}, {3, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("numbering %v, want %v", got, want)
	}
	child, _ := p.SlideByNo(2)
	if child.Parent == nil || child.Parent.No != 1 {
		t.Fatalf("child parent not set")
	}
	if len(p.Slides) != 2 || len(p.Slides[0].Children) != 1 {
		t.Fatalf("unexpected tree shape")
	}
	if p.FirstSlide().Title() != "Leben" {
		t.Fatalf("title %q", p.FirstSlide().Title())
	}
	if s, _ := p.SlideByNo(3); s.Title() != "Zitat von Beethoven" {
		t.Fatalf("title %q", s.Title())
	}
	if _, ok := p.SlideByNo(4); ok {
		t.Fatal("slide 4 should not exist")
	}
}

func TestParseUnknownMasterNamesSlide(t *testing.T) {
	_, err := presentation.Parse([]byte(meta+`slides:
- task: eins
- task: zwei
- unknown: drei
`), registry(t))
	var unknown *master.UnknownMasterError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMasterError, got %v", err)
	}
	if unknown.SlideNo != 3 || unknown.Name != "unknown" {
		t.Fatalf("unexpected error %+v", unknown)
	}
	if !strings.Contains(err.Error(), "slide 3") {
		t.Fatalf("message lacks slide number: %v", err)
	}
}

func TestParseSlideEntryErrors(t *testing.T) {
	tests := []struct {
		name  string
		slide string
		check func(error) bool
	}{
		{
			name:  "two masters",
			slide: "- task: a\n  note: b\n",
			check: func(err error) bool { var e *master.UnknownMasterError; return errors.As(err, &e) },
		},
		{
			name:  "no master",
			slide: "- title: only meta\n",
			check: func(err error) bool { var e *master.UnknownMasterError; return errors.As(err, &e) },
		},
		{
			name:  "unknown field",
			slide: "- task:\n    markup: a\n    color: red\n",
			check: func(err error) bool { var e *master.UnknownFieldError; return errors.As(err, &e) },
		},
		{
			name:  "missing field",
			slide: "- quote:\n    author: Bach\n",
			check: func(err error) bool { var e *master.MissingFieldError; return errors.As(err, &e) },
		},
		{
			name:  "malformed uri",
			slide: "- image: Partitur\n",
			check: func(err error) bool { return errors.Is(err, services.ErrMalformedInput) },
		},
		{
			name:  "duplicate ref",
			slide: "- ref: a\n  task: eins\n- ref: a\n  task: zwei\n",
			check: func(err error) bool { return errors.Is(err, services.ErrValidation) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := presentation.Parse([]byte(meta+"slides:\n"+tt.slide), registry(t))
			if err == nil || !tt.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

func TestParseMeta(t *testing.T) {
	tests := []struct {
		name string
		text string
		ok   bool
	}{
		{name: "meta block", text: meta, ok: true},
		{name: "legacy keys", text: "ref: Bach\ntitle: Bach\ngrade: 5\n", ok: true},
		{name: "both", text: meta + "title: Doppelt\n"},
		{name: "grade missing", text: "meta:\n  ref: Bach\n  title: Bach\n"},
		{name: "grade too high", text: "meta:\n  ref: Bach\n  title: Bach\n  grade: 14\n"},
		{name: "unknown meta key", text: meta + "  color: red\n"},
		{name: "unknown top level key", text: meta + "color: red\n"},
		{name: "bad ref", text: "meta:\n  ref: 'Bach Johann'\n  title: Bach\n  grade: 5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := presentation.Parse([]byte(tt.text), registry(t))
			if tt.ok && err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestParseMetaBlockFields(t *testing.T) {
	p := parse(t, `meta:
  ref: Futurismus
  title: Der Futurismus
  subtitle: Lärm als Musik
  grade: 12
  curriculum: Musik und Technik
  curriculumUrl: https://example.org/lehrplan
slides:
- camera
`)
	want := presentation.Meta{
		Ref:           "Futurismus",
		Title:         "Der Futurismus",
		Subtitle:      "Lärm als Musik",
		Grade:         12,
		Curriculum:    "Musik und Technik",
		CurriculumURL: "https://example.org/lehrplan",
	}
	if p.Meta != want {
		t.Fatalf("meta %+v, want %+v", p.Meta, want)
	}
	if p.Len() != 1 || p.FirstSlide().MasterName != "camera" {
		t.Fatalf("unexpected slides %v", p.Flat())
	}

	_, err := presentation.Parse([]byte(meta+"  color: red\n"), registry(t))
	if !errors.Is(err, services.ErrMalformedInput) || !strings.Contains(err.Error(), "color") {
		t.Fatalf("expected unknown meta key error, got %v", err)
	}
}

func TestEmptyPresentationGetsPlaceholder(t *testing.T) {
	p := parse(t, meta)
	if p.Len() != 1 || p.FirstSlide().MasterName != "generic" {
		t.Fatalf("expected one generic placeholder slide, got %d", p.Len())
	}
}

func TestBareMasterNameAndSlideMeta(t *testing.T) {
	p := parse(t, meta+`slides:
- camera
- ref: schluss
  title: Zum <em>Schluss</em>
  style:
    background_color: $green;
  task: Fertig
`)
	if p.FirstSlide().MasterName != "camera" || p.FirstSlide().Title() != "Dokumentenkamera" {
		t.Fatalf("unexpected camera slide %+v", p.FirstSlide())
	}
	s, ok := p.SlideByRef("schluss")
	if !ok || s.No != 2 {
		t.Fatalf("SlideByRef failed")
	}
	if s.Title() != "Zum Schluss" {
		t.Fatalf("title %q", s.Title())
	}
	if s.Style["backgroundColor"] != "$green" {
		t.Fatalf("style %v", s.Style)
	}
}

func TestRefAbbreviationExpanded(t *testing.T) {
	p := parse(t, meta+`slides:
- image: ref:./Portrait
- audio: ref:./Fuer-Elise#refrain
`)
	if !p.Expanded {
		t.Fatal("expected expansion")
	}
	want := []string{"ref:Beethoven_Portrait", "ref:Beethoven_Fuer-Elise"}
	if got := p.MediaURIs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("media uris %v, want %v", got, want)
	}
}

func TestMediaURIsIncludeAudioOverlayAndOptional(t *testing.T) {
	p := parse(t, meta+`slides:
- youtube: xtKavZG1KiM
  audioOverlay:
  - ref:Song#refrain
  - uri: ref:Song
    title: Ganz
`)
	if got := p.MediaURIs(); !reflect.DeepEqual(got, []string{"ref:Song"}) {
		t.Fatalf("media uris %v", got)
	}
	if got := p.OptionalMediaURIs(); !reflect.DeepEqual(got, []string{"ref:YT_xtKavZG1KiM"}) {
		t.Fatalf("optional uris %v", got)
	}
	if len(p.FirstSlide().AudioOverlay) != 2 {
		t.Fatalf("overlay %v", p.FirstSlide().AudioOverlay)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	fake := testsupport.NewFakeCatalog(
		&media.Record{Ref: "Partitur", UUID: "9a2c6e0d-3c55-4d0a-8a7e-1b2f4c6d8e01", Path: "scores/Partitur.png", MultiPartCount: 11},
		&media.Record{
			Ref: "Song", UUID: "0b7b2c1e-6a4e-4a8f-9d39-8f3f1f6c2a10", Path: "songs/Song.mp3", Title: "Ein Lied",
			Samples: []media.SampleSpec{{Ref: "refrain", Title: "Refrain", StartTime: 10, EndTime: 20}},
		},
	)
	r := resolver.New(fake, resolver.WithHTTPBaseURL("http://media.test"))
	p := parse(t, meta+`slides:
- image: ref:Partitur#7-9,10-11
- audio: ref:Song#refrain
`)

	for range 2 {
		if err := p.Resolve(context.Background(), r); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		image := p.FirstSlide()
		if len(image.Steps()) != 5 {
			t.Fatalf("expected 5 steps, got %v", image.Steps())
		}
		urls := image.Fields.List("partHttpUrls")
		if urls[0] != "http://media.test/scores/Partitur_no007.png" || urls[4] != "http://media.test/scores/Partitur_no011.png" {
			t.Fatalf("part urls %v", urls)
		}
	}
	if fake.Total() != 2 {
		t.Fatalf("expected 2 catalog fetches, got %d", fake.Total())
	}
	audio, _ := p.SlideByNo(2)
	if audio.Title() != "Refrain" {
		t.Fatalf("audio title %q", audio.Title())
	}
}

func TestResolveMissingAssetFails(t *testing.T) {
	r := resolver.New(testsupport.NewFakeCatalog())
	p := parse(t, meta+"slides:\n- image: ref:Fehlt\n")
	err := p.Resolve(context.Background(), r)
	var notFound *resolver.AssetNotFoundError
	if !errors.As(err, &notFound) || notFound.URI != "ref:Fehlt" {
		t.Fatalf("expected AssetNotFoundError, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Praesentation.baldr.yml")
	testsupport.WriteFile(t, path, meta+"slides:\n- task: eins\n")
	p, err := presentation.ParseFile(path, registry(t))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if p.Meta.Title != "Ludwig van Beethoven" || p.Meta.Grade != 7 {
		t.Fatalf("unexpected meta %+v", p.Meta)
	}
	if _, err := presentation.ParseFile(filepath.Join(t.TempDir(), "missing.yml"), registry(t)); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
