package mediauri_test

import (
	"reflect"
	"testing"

	"baldr/internal/mediauri"
)

func TestNewWrappedURIListShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want mediauri.WrappedURIList
	}{
		{
			name: "single string",
			raw:  "ref:Song",
			want: mediauri.WrappedURIList{{URI: "ref:Song"}},
		},
		{
			name: "wrapped map",
			raw:  map[string]any{"uri": "ref:Song#intro", "title": "Intro"},
			want: mediauri.WrappedURIList{{URI: "ref:Song#intro", Title: "Intro"}},
		},
		{
			name: "mixed list keeps order and duplicates",
			raw: []any{
				"ref:B",
				map[string]any{"uri": "ref:A", "title": "A"},
				"ref:B",
			},
			want: mediauri.WrappedURIList{{URI: "ref:B"}, {URI: "ref:A", Title: "A"}, {URI: "ref:B"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mediauri.NewWrappedURIList(tt.raw)
			if err != nil {
				t.Fatalf("NewWrappedURIList returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewWrappedURIListRejectsGarbage(t *testing.T) {
	for _, raw := range []any{
		42,
		"not-a-uri",
		map[string]any{"title": "missing uri"},
		map[string]any{"uri": "ref:A", "extra": true},
		[]any{"ref:A", 3},
	} {
		if _, err := mediauri.NewWrappedURIList(raw); err == nil {
			t.Fatalf("expected error for %#v", raw)
		}
	}
}

func TestExtractURIsFromFuzzySpecs(t *testing.T) {
	got, err := mediauri.ExtractURIsFromFuzzySpecs([]any{
		"ref:B#sample1",
		map[string]any{"uri": "ref:A"},
		"ref:B#complete",
		"uuid:1234",
	})
	if err != nil {
		t.Fatalf("ExtractURIsFromFuzzySpecs returned error: %v", err)
	}
	want := []string{"ref:B", "ref:A", "uuid:1234"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFindURIsWalksNestedData(t *testing.T) {
	record := map[string]any{
		"ref":   "Song",
		"cover": "ref:Cover#complete",
		"people": []any{
			map[string]any{"picture": "uuid:abc"},
			"plain text",
		},
		"title": "Song with ref: inside",
	}
	set := mediauri.NewOrderedSet()
	mediauri.FindURIs(record, set)
	want := []string{"ref:Cover", "uuid:abc"}
	if !reflect.DeepEqual(set.Values(), want) {
		t.Fatalf("got %v, want %v", set.Values(), want)
	}
}

func TestOrderedSet(t *testing.T) {
	s := mediauri.NewOrderedSet("b", "a", "b")
	if s.Len() != 2 {
		t.Fatalf("Len() = %d", s.Len())
	}
	if s.Add("a") {
		t.Fatal("expected duplicate add to report false")
	}
	other := mediauri.NewOrderedSet("c", "a")
	s.Merge(other)
	if !reflect.DeepEqual(s.Values(), []string{"b", "a", "c"}) {
		t.Fatalf("Values() = %v", s.Values())
	}
	if !s.Has("c") || s.Has("z") {
		t.Fatal("unexpected Has result")
	}
}
