package master

import (
	"errors"
	"strings"
	"testing"

	"baldr/internal/mediauri"
	"baldr/internal/services"
)

type stubMaster struct {
	name string
	defs map[string]FieldDefinition
}

func (m stubMaster) Name() string                                 { return m.name }
func (m stubMaster) DisplayName() string                          { return strings.ToUpper(m.name) }
func (m stubMaster) FieldsDefinition() map[string]FieldDefinition { return m.defs }

type shortMaster struct {
	stubMaster
}

func (shortMaster) ShortFormField() string { return "instrumentId" }

func (shortMaster) CollectMediaURIs(fields Fields) ([]string, error) {
	return []string{"ref:IN_" + fields.String("instrumentId"), "ref:IN_" + fields.String("instrumentId") + "#complete"}, nil
}

type upperConverter struct{}

func (upperConverter) ConvertToHTML(text string) (string, error) {
	return "<p>" + text + "</p>", nil
}

func newInstrument() shortMaster {
	return shortMaster{stubMaster{name: "instrument", defs: map[string]FieldDefinition{
		"instrumentId": {Type: TypeString, Required: true},
	}}}
}

func TestNormalizeShortForm(t *testing.T) {
	fields, err := Normalize(newInstrument(), "Floete", nil, 1)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(fields) != 1 || fields.String("instrumentId") != "Floete" {
		t.Fatalf("unexpected fields %#v", fields)
	}
}

func TestNormalizeRejectsUnknownField(t *testing.T) {
	_, err := Normalize(newInstrument(), map[string]any{"instrumentId": "Floete", "color": "red"}, nil, 4)
	var unknown *UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
	if unknown.SlideNo != 4 || unknown.Field != "color" {
		t.Fatalf("unexpected error fields %+v", unknown)
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatal("expected validation marker")
	}
}

func TestNormalizeRequiredField(t *testing.T) {
	_, err := Normalize(newInstrument(), map[string]any{}, nil, 2)
	var missing *MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "instrumentId" {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
}

func TestNormalizeDefaultsCoercionAndMarkup(t *testing.T) {
	m := stubMaster{name: "note", defs: map[string]FieldDefinition{
		"markup":  {Type: TypeString, Markup: true},
		"items":   {Type: TypeList, Markup: true},
		"count":   {Type: TypeNumber, Default: 3},
		"visible": {Type: TypeBool},
	}}
	fields, err := Normalize(m, map[string]any{
		"markup":  "hello",
		"items":   "single",
		"visible": "true",
	}, upperConverter{}, 1)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := fields.String("markup"); got != "<p>hello</p>" {
		t.Fatalf("markup = %q", got)
	}
	items := fields.List("items")
	if len(items) != 1 || items[0] != "<p>single</p>" {
		t.Fatalf("items = %#v", items)
	}
	if n, ok := fields.Int("count"); !ok || n != 3 {
		t.Fatalf("count = %v", fields["count"])
	}
	if !fields.Bool("visible") {
		t.Fatal("visible should be coerced to true")
	}
}

func TestNormalizeRejectsWrongShape(t *testing.T) {
	m := stubMaster{name: "camera", defs: map[string]FieldDefinition{}}
	_, err := Normalize(m, []any{"a"}, nil, 7)
	var invalid *InvalidFieldsError
	if !errors.As(err, &invalid) || invalid.SlideNo != 7 {
		t.Fatalf("expected InvalidFieldsError, got %v", err)
	}

	fields, err := Normalize(m, nil, nil, 8)
	if err != nil || len(fields) != 0 {
		t.Fatalf("nil input should yield empty fields, got %v %v", fields, err)
	}
}

func TestNormalizeTypeMismatch(t *testing.T) {
	m := stubMaster{name: "counter", defs: map[string]FieldDefinition{
		"to": {Type: TypeNumber},
	}}
	_, err := Normalize(m, map[string]any{"to": "many"}, nil, 3)
	var invalid *InvalidFieldsError
	if !errors.As(err, &invalid) || invalid.Field != "to" {
		t.Fatalf("expected InvalidFieldsError for field to, got %v", err)
	}
}

type instantiatingMaster struct {
	stubMaster
}

func (instantiatingMaster) CollectFieldsOnInstantiation(fields Fields) (Fields, error) {
	if _, err := mediauri.Parse(fields.String("src")); err != nil {
		return nil, err
	}
	return fields, nil
}

func TestNormalizeKeepsInstantiationCause(t *testing.T) {
	m := instantiatingMaster{stubMaster{name: "audio", defs: map[string]FieldDefinition{
		"src": {Type: TypeString, Required: true},
	}}}
	_, err := Normalize(m, map[string]any{"src": "ref:bad uri"}, nil, 2)

	var invalid *InvalidFieldsError
	if !errors.As(err, &invalid) || invalid.SlideNo != 2 {
		t.Fatalf("expected InvalidFieldsError, got %v", err)
	}
	var malformed *mediauri.MalformedURIError
	if !errors.As(err, &malformed) || malformed.Input != "ref:bad uri" {
		t.Fatalf("expected MalformedURIError cause, got %v", err)
	}
	if !errors.Is(err, services.ErrMalformedInput) || !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected both markers, got %v", err)
	}
	if services.ExitCode(err) != services.ExitMalformed {
		t.Fatalf("exit code %d", services.ExitCode(err))
	}
}

func TestCollectMediaURIsStripsFragments(t *testing.T) {
	m := newInstrument()
	uris, err := CollectMediaURIs(m, Fields{"instrumentId": "Floete"})
	if err != nil {
		t.Fatalf("CollectMediaURIs: %v", err)
	}
	if len(uris) != 1 || uris[0] != "ref:IN_Floete" {
		t.Fatalf("uris = %v", uris)
	}

	none, err := CollectMediaURIs(stubMaster{name: "camera"}, Fields{})
	if err != nil || none != nil {
		t.Fatalf("expected no uris, got %v %v", none, err)
	}
}

func TestDerivePlainTextJoinsStringsInKeyOrder(t *testing.T) {
	m := stubMaster{name: "generic"}
	got := DerivePlainText(m, Fields{"b": "second", "a": "first", "n": 3, "e": "  "})
	if got != "first | second" {
		t.Fatalf("plain text = %q", got)
	}
}

func TestRegistry(t *testing.T) {
	reg, err := NewRegistry(stubMaster{name: "b"}, stubMaster{name: "a"})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if names := reg.Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names = %v", names)
	}
	if _, err := reg.Lookup("a"); err != nil {
		t.Fatalf("Lookup a: %v", err)
	}
	_, err = reg.Lookup("zzz")
	var unknown *UnknownMasterError
	if !errors.As(err, &unknown) || unknown.Name != "zzz" {
		t.Fatalf("expected UnknownMasterError, got %v", err)
	}

	if _, err := NewRegistry(stubMaster{name: "a"}, stubMaster{name: "a"}); err == nil {
		t.Fatal("expected duplicate name error")
	}
	if _, err := NewRegistry(stubMaster{}); err == nil {
		t.Fatal("expected empty name error")
	}
}

func TestStepCollector(t *testing.T) {
	var c StepCollector
	c.Add("one")
	c.Add("two")
	c.Add("three")
	c.Truncate(2)
	steps := c.Steps()
	if len(steps) != 2 || steps[1].No != 2 || steps[1].Title != "two" {
		t.Fatalf("steps = %+v", steps)
	}
	c.Reset()
	if c.Len() != 0 {
		t.Fatal("reset should clear steps")
	}
}
