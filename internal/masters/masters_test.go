package masters_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"baldr/internal/master"
	"baldr/internal/masters"
	"baldr/internal/media"
	"baldr/internal/mediauri"
	"baldr/internal/resolver"
	"baldr/internal/services"
	"baldr/internal/services/markup"
	"baldr/internal/testsupport"
)

func lookup(t *testing.T, name string) master.Master {
	t.Helper()
	reg, err := masters.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	m, err := reg.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup %s: %v", name, err)
	}
	return m
}

func normalize(t *testing.T, name string, raw any) (master.Master, master.Fields) {
	t.Helper()
	m := lookup(t, name)
	fields, err := master.Normalize(m, raw, markup.New(), 1)
	if err != nil {
		t.Fatalf("Normalize %s: %v", name, err)
	}
	return m, fields
}

func stepTitles(steps *master.StepCollector) []string {
	var out []string
	for _, s := range steps.Steps() {
		out = append(out, s.Title)
	}
	return out
}

func TestDefaultRegistersEveryMaster(t *testing.T) {
	reg, err := masters.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if reg.Len() != 22 {
		t.Fatalf("expected 22 masters, got %d: %v", reg.Len(), reg.Names())
	}
	for _, name := range []string{"audio", "camera", "instrument", "question", "sampleList", "wikipedia", "youtube"} {
		if !reg.Has(name) {
			t.Fatalf("missing master %s", name)
		}
	}
}

func TestInstrumentShortForm(t *testing.T) {
	m, fields := normalize(t, "instrument", "Floete")
	if !reflect.DeepEqual(map[string]any(fields), map[string]any{"instrumentId": "Floete"}) {
		t.Fatalf("unexpected fields %#v", fields)
	}
	uris, err := master.CollectMediaURIs(m, fields)
	if err != nil {
		t.Fatalf("CollectMediaURIs: %v", err)
	}
	if !reflect.DeepEqual(uris, []string{"ref:IN_Floete"}) {
		t.Fatalf("unexpected uris %v", uris)
	}
}

func TestCounterExpandsRanges(t *testing.T) {
	tests := []struct {
		raw  any
		want []any
	}{
		{raw: "1-3", want: []any{1, 2, 3}},
		{raw: "a-c", want: []any{"a", "b", "c"}},
		{raw: "II-IV", want: []any{"II", "III", "IV"}},
		{raw: 2, want: []any{1, 2}},
		{raw: []any{"x", "y"}, want: []any{"x", "y"}},
	}
	for _, tt := range tests {
		_, fields := normalize(t, "counter", tt.raw)
		if got := fields.List("counterElements"); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%v: got %v want %v", tt.raw, got, tt.want)
		}
	}

	_, err := master.Normalize(lookup(t, "counter"), "3-1", nil, 4)
	var invalid *master.InvalidFieldsError
	if !errors.As(err, &invalid) || invalid.SlideNo != 4 {
		t.Fatalf("expected InvalidFieldsError for slide 4, got %v", err)
	}
}

func TestCounterSteps(t *testing.T) {
	m, fields := normalize(t, "counter", "1-3")
	var steps master.StepCollector
	if err := master.CollectStepsOnInstantiation(m, fields, &steps); err != nil {
		t.Fatalf("steps: %v", err)
	}
	if steps.Len() != 3 || steps.Steps()[2].Title != "Zähle „3“" {
		t.Fatalf("unexpected steps %v", stepTitles(&steps))
	}
	if got := master.DerivePlainText(m, fields); got != "1, 2, 3" {
		t.Fatalf("plain text %q", got)
	}
}

func TestQuestionAliases(t *testing.T) {
	raw := []any{
		map[string]any{"q": "Wer?", "a": "Bach"},
		map[string]any{"h": "Teil 2", "s": []any{"Wann?", map[string]any{"question": "Wo?", "answer": "Leipzig"}}},
	}
	m, fields := normalize(t, "question", raw)
	var steps master.StepCollector
	if err := master.CollectStepsOnInstantiation(m, fields, &steps); err != nil {
		t.Fatalf("steps: %v", err)
	}
	want := []string{"Frage 1", "Antwort 1", "Frage 2", "Frage 3", "Antwort 3"}
	if got := stepTitles(&steps); !reflect.DeepEqual(got, want) {
		t.Fatalf("steps %v, want %v", got, want)
	}
	if got := master.DerivePlainText(m, fields); got != "Wer? | Bach | Teil 2 | Wann? | Wo? | Leipzig" {
		t.Fatalf("plain text %q", got)
	}

	if _, err := master.Normalize(m, map[string]any{"x": "?"}, markup.New(), 2); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGenericListSteps(t *testing.T) {
	m, fields := normalize(t, "generic", []any{"erstens", "zweitens"})
	var steps master.StepCollector
	if err := master.CollectStepsOnInstantiation(m, fields, &steps); err != nil {
		t.Fatalf("steps: %v", err)
	}
	if got := stepTitles(&steps); !reflect.DeepEqual(got, []string{"1. erstens", "2. zweitens"}) {
		t.Fatalf("steps %v", got)
	}
}

func TestGenericSplitsLongMarkup(t *testing.T) {
	text := strings.Repeat("a", 30) + "\n\n" + strings.Repeat("b", 30) + "\n\n" + strings.Repeat("c", 30)
	_, fields := normalize(t, "generic", map[string]any{"markup": text, "charactersOnSlide": 40})
	if got := len(fields.List("markup")); got != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", got, fields.List("markup"))
	}
}

func TestNoteWordStepsWithSubset(t *testing.T) {
	m, fields := normalize(t, "note", map[string]any{"markup": "eins zwei drei vier", "stepSubset": "2-3"})
	var steps master.StepCollector
	if err := master.CollectStepsOnInstantiation(m, fields, &steps); err != nil {
		t.Fatalf("steps: %v", err)
	}
	want := []master.Step{{No: 1, Title: "zwei"}, {No: 2, Title: "drei"}}
	if got := steps.Steps(); !reflect.DeepEqual(got, want) {
		t.Fatalf("steps %v", got)
	}
}

func TestWikipediaShortForm(t *testing.T) {
	m, fields := normalize(t, "wikipedia", "en:Ludwig_van_Beethoven")
	if fields.String("language") != "en" {
		t.Fatalf("language %q", fields.String("language"))
	}
	if got := fields.String("httpUrl"); got != "https://en.wikipedia.org/wiki/Ludwig_van_Beethoven" {
		t.Fatalf("httpUrl %q", got)
	}
	if got := master.DeriveTitle(m, fields); got != "Ludwig van Beethoven" {
		t.Fatalf("title %q", got)
	}

	_, fields = normalize(t, "wikipedia", map[string]any{"title": "Fuge", "oldid": 42})
	if fields.String("language") != "de" || fields.String("httpUrl") != "https://de.wikipedia.org/wiki/Fuge?oldid=42" {
		t.Fatalf("unexpected fields %#v", fields)
	}
}

func TestQuoteTitle(t *testing.T) {
	m, fields := normalize(t, "quote", map[string]any{"text": "Musik ist", "author": "Bach"})
	if got := master.DeriveTitle(m, fields); got != "Zitat von Bach" {
		t.Fatalf("title %q", got)
	}
	if got := master.DerivePlainText(m, fields); got != "Musik ist (Bach)" {
		t.Fatalf("plain text %q", got)
	}
}

const (
	floeteUUID   = "6f1c1a8e-2d3b-4c5d-8e9f-0a1b2c3d4e5f"
	sampleUUID   = "7a2b3c4d-5e6f-4a1b-9c2d-3e4f5a6b7c8d"
	partiturUUID = "8b3c4d5e-6f7a-4b2c-8d3e-4f5a6b7c8d9e"
	clipUUID     = "9c4d5e6f-7a8b-4c3d-9e4f-5a6b7c8d9e0f"
)

func resolved(t *testing.T, uris ...string) *resolver.Resolver {
	t.Helper()
	fake := testsupport.NewFakeCatalog(
		&media.Record{
			Ref: "IN_Floete", UUID: floeteUUID, Path: "instruments/Floete.jpg", Title: "Querflöte",
			Meta: map[string]any{"audioSamples": []any{"ref:IN_Floete_Sample", "ref:Clip#intro"}},
		},
		&media.Record{Ref: "IN_Floete_Sample", UUID: sampleUUID, Path: "instruments/Floete.mp3"},
		&media.Record{Ref: "Partitur", UUID: partiturUUID, Path: "scores/Partitur.png", MultiPartCount: 5},
		&media.Record{
			Ref: "Clip", UUID: clipUUID, Path: "clips/Clip.mp3", Title: "Clip",
			Samples: []media.SampleSpec{{Ref: "intro", Title: "Intro", StartTime: 1, EndTime: 4}},
		},
	)
	r := resolver.New(fake, resolver.WithHTTPBaseURL("http://media.test"))
	if err := r.ResolveAll(context.Background(), uris, false); err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}
	return r
}

func TestInstrumentAfterResolution(t *testing.T) {
	m, fields := normalize(t, "instrument", "Floete")
	r := resolved(t, "ref:IN_Floete")

	var steps master.StepCollector
	out, err := master.Finalize(m, fields, &steps, r)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if out.String("name") != "Querflöte" {
		t.Fatalf("name %q", out.String("name"))
	}
	samples := out.List("samples")
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %v", samples)
	}
	second := samples[1].(map[string]any)
	if second["ref"] != "ref:Clip#intro" || second["title"] != "Intro" {
		t.Fatalf("unexpected sample %v", second)
	}
	if steps.Len() != 2 {
		t.Fatalf("expected a step per sample, got %v", stepTitles(&steps))
	}
}

func TestImageMultipartSteps(t *testing.T) {
	m, fields := normalize(t, "image", "ref:Partitur#2-4")
	r := resolved(t, "ref:Partitur")

	var steps master.StepCollector
	out, err := master.Finalize(m, fields, &steps, r)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	urls := out.List("partHttpUrls")
	if len(urls) != 3 || urls[0] != "http://media.test/scores/Partitur_no002.png" {
		t.Fatalf("unexpected urls %v", urls)
	}
	if got := stepTitles(&steps); !reflect.DeepEqual(got, []string{"Bild 2", "Bild 3", "Bild 4"}) {
		t.Fatalf("steps %v", got)
	}
}

func TestClozeRejectsNonSVG(t *testing.T) {
	m, fields := normalize(t, "cloze", "ref:Partitur")
	r := resolved(t, "ref:Partitur")
	if _, err := master.Finalize(m, fields, &master.StepCollector{}, r); err == nil {
		t.Fatal("expected an error for a png cloze")
	}
}

func TestAudioRejectsImage(t *testing.T) {
	m, fields := normalize(t, "audio", "ref:Partitur")
	r := resolved(t, "ref:Partitur")
	if _, err := master.Finalize(m, fields, &master.StepCollector{}, r); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSampleListResolution(t *testing.T) {
	raw := []any{"ref:Clip#intro", map[string]any{"uri": "ref:Clip", "title": "Alles"}}
	m, fields := normalize(t, "sampleList", raw)
	uris, err := master.CollectMediaURIs(m, fields)
	if err != nil || !reflect.DeepEqual(uris, []string{"ref:Clip"}) {
		t.Fatalf("uris %v err %v", uris, err)
	}
	r := resolved(t, uris...)

	var steps master.StepCollector
	if _, err := master.Finalize(m, fields, &steps, r); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got := stepTitles(&steps); !reflect.DeepEqual(got, []string{"Intro", "Alles"}) {
		t.Fatalf("steps %v", got)
	}
}

func TestSampleListKeepsURIErrorType(t *testing.T) {
	raw := []any{"ref:Song#refrain", "ref:bad uri"}
	_, err := master.Normalize(lookup(t, "sampleList"), raw, markup.New(), 4)
	var malformed *mediauri.MalformedURIError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedURIError, got %v", err)
	}
	if services.ExitCode(err) != services.ExitMalformed {
		t.Fatalf("exit code %d for %v", services.ExitCode(err), err)
	}
}

func TestNormalizeLeavesInputMapUntouched(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{name: "sampleList", raw: map[string]any{"samples": "ref:Clip", "heading": "Hörbeispiele"}},
		{name: "generic", raw: map[string]any{"markup": "Text"}},
		{name: "group", raw: map[string]any{"heading": "Teil 1"}},
		{name: "wikipedia", raw: map[string]any{"title": "Ludwig_van_Beethoven"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(tt.raw)
			normalize(t, tt.name, tt.raw)
			if len(tt.raw) != before {
				t.Fatalf("input map was modified: %v", tt.raw)
			}
		})
	}
}

func TestSampleFieldsCarryPlainTitle(t *testing.T) {
	m, fields := normalize(t, "audio", "ref:Clip#intro")
	r := resolved(t, "ref:Clip")
	out, err := master.Finalize(m, fields, &master.StepCollector{}, r)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	sample := out["sample"].(map[string]any)
	if sample["title"] != "Intro" || sample["titleSafe"] != "Intro (Clip)" {
		t.Fatalf("unexpected sample titles %v", sample)
	}
	if out.String("title") != "Intro" {
		t.Fatalf("slide title %q", out.String("title"))
	}
}

func TestYouTubeOfflineCopyIsOptional(t *testing.T) {
	m, fields := normalize(t, "youtube", "xtKavZG1KiM")
	uris, err := master.CollectOptionalMediaURIs(m, fields)
	if err != nil || !reflect.DeepEqual(uris, []string{"ref:YT_xtKavZG1KiM"}) {
		t.Fatalf("uris %v err %v", uris, err)
	}
	r := resolved(t)
	if err := r.ResolveAll(context.Background(), uris, true); err != nil {
		t.Fatalf("lenient ResolveAll: %v", err)
	}
	out, err := master.Finalize(m, fields, &master.StepCollector{}, r)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if out.Bool("offline") {
		t.Fatal("no offline copy expected")
	}
	if out.String("embedHttpUrl") != "https://www.youtube-nocookie.com/embed/xtKavZG1KiM" {
		t.Fatalf("embed url %q", out.String("embedHttpUrl"))
	}
}
