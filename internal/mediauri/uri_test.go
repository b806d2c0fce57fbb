package mediauri_test

import (
	"errors"
	"testing"

	"baldr/internal/mediauri"
	"baldr/internal/services"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		in          string
		scheme      string
		authority   string
		fragment    string
		hasFragment bool
	}{
		{"ref:Fuer-Elise", "ref", "Fuer-Elise", "", false},
		{"ref:Beethoven_Fuer-Elise#complete", "ref", "Beethoven_Fuer-Elise", "complete", true},
		{"uuid:c64047d2-983d-4009-a35f-02c95534cb53", "uuid", "c64047d2-983d-4009-a35f-02c95534cb53", "", false},
		{"ref:Partitur#7-9,10-11", "ref", "Partitur", "7-9,10-11", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			u, err := mediauri.Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.in, err)
			}
			if u.Scheme != tt.scheme || u.Authority != tt.authority || u.Fragment != tt.fragment || u.HasFragment != tt.hasFragment {
				t.Fatalf("unexpected parse result: %+v", u)
			}
			if u.String() != tt.in {
				t.Fatalf("String() = %q, want %q", u.String(), tt.in)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{
		"Fuer-Elise",
		"id:Fuer-Elise",
		"ref:",
		"ref:Fuer Elise",
		"ref:Fuer-Elise#",
		"ref:a#b#c",
		"ref:a,b",
		"ref:a#x.y",
		"",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := mediauri.Parse(in)
			if err == nil {
				t.Fatalf("expected error for %q", in)
			}
			var malformed *mediauri.MalformedURIError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedURIError, got %T", err)
			}
			if malformed.Input != in {
				t.Fatalf("expected error to name %q, got %q", in, malformed.Input)
			}
			if !errors.Is(err, services.ErrMalformedInput) {
				t.Fatal("expected malformed input marker")
			}
			if mediauri.Check(in) {
				t.Fatalf("Check(%q) = true", in)
			}
		})
	}
}

func TestFragmentReconstruction(t *testing.T) {
	for _, in := range []string{"ref:a#b", "uuid:x-y_z#1-3,7", "ref:Song#sample2"} {
		u := mediauri.MustParse(in)
		if got := u.WithoutFragment() + "#" + u.Fragment; got != in {
			t.Fatalf("reconstructed %q, want %q", got, in)
		}
	}
}

func TestHelpers(t *testing.T) {
	if got := mediauri.Compose("ref", "Song", ""); got != "ref:Song" {
		t.Fatalf("Compose without fragment = %q", got)
	}
	if got := mediauri.Compose("ref", "Song", "complete"); got != "ref:Song#complete" {
		t.Fatalf("Compose with fragment = %q", got)
	}
	if got := mediauri.RemoveFragment("ref:Song#complete"); got != "ref:Song" {
		t.Fatalf("RemoveFragment = %q", got)
	}
	if got := mediauri.RemoveScheme("uuid:1234"); got != "1234" {
		t.Fatalf("RemoveScheme = %q", got)
	}
	prefix, fragment, ok := mediauri.SplitByFragment("ref:Song#intro")
	if !ok || prefix != "ref:Song" || fragment != "intro" {
		t.Fatalf("SplitByFragment = %q %q %v", prefix, fragment, ok)
	}
	if _, _, ok := mediauri.SplitByFragment("ref:Song"); ok {
		t.Fatal("expected no fragment")
	}
}
