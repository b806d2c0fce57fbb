package mediauri

import (
	"fmt"
	"sort"
	"strings"
)

// WrappedURI pairs a media URI with an optional display title.
type WrappedURI struct {
	URI   string `json:"uri" yaml:"uri"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// WrappedURIList is an ordered sequence of wrapped URIs. Duplicates are kept.
type WrappedURIList []WrappedURI

// NewWrappedURIList normalizes a fuzzy specification into a list. Accepted
// inputs are a URI string, a map with `uri` and optional `title` keys, or a
// slice of either. Every URI is validated.
func NewWrappedURIList(raw any) (WrappedURIList, error) {
	var list WrappedURIList
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		for _, item := range v {
			w, err := wrapOne(item)
			if err != nil {
				return nil, err
			}
			list = append(list, w)
		}
	case []string:
		for _, item := range v {
			w, err := wrapOne(item)
			if err != nil {
				return nil, err
			}
			list = append(list, w)
		}
	case WrappedURIList:
		return append(WrappedURIList(nil), v...), nil
	default:
		w, err := wrapOne(v)
		if err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, nil
}

func wrapOne(item any) (WrappedURI, error) {
	switch v := item.(type) {
	case string:
		uri := strings.TrimSpace(v)
		if _, err := Parse(uri); err != nil {
			return WrappedURI{}, err
		}
		return WrappedURI{URI: uri}, nil
	case WrappedURI:
		if _, err := Parse(v.URI); err != nil {
			return WrappedURI{}, err
		}
		return v, nil
	case map[string]any:
		uri, _ := v["uri"].(string)
		uri = strings.TrimSpace(uri)
		if uri == "" {
			return WrappedURI{}, &MalformedURIError{Input: fmt.Sprint(v), Reason: "wrapped uri without uri key"}
		}
		if _, err := Parse(uri); err != nil {
			return WrappedURI{}, err
		}
		for key := range v {
			if key != "uri" && key != "title" {
				return WrappedURI{}, &MalformedURIError{Input: uri, Reason: fmt.Sprintf("unexpected key %q in wrapped uri", key)}
			}
		}
		title, _ := v["title"].(string)
		return WrappedURI{URI: uri, Title: title}, nil
	default:
		return WrappedURI{}, &MalformedURIError{Input: fmt.Sprint(item), Reason: fmt.Sprintf("unsupported uri specification of type %T", item)}
	}
}

// URIs returns the URIs in list order, fragments included.
func (l WrappedURIList) URIs() []string {
	out := make([]string, 0, len(l))
	for _, w := range l {
		out = append(out, w.URI)
	}
	return out
}

// ExtractURIsFromFuzzySpecs normalizes raw like NewWrappedURIList and returns
// the de-duplicated, order-preserving URIs without fragments.
func ExtractURIsFromFuzzySpecs(raw any) ([]string, error) {
	list, err := NewWrappedURIList(raw)
	if err != nil {
		return nil, err
	}
	set := NewOrderedSet()
	for _, w := range list {
		set.Add(RemoveFragment(w.URI))
	}
	return set.Values(), nil
}

// FindURIs walks nested maps and slices and adds every string value that is a
// valid media URI (fragment removed) to into. Map keys are visited in sorted
// order so the result is deterministic.
func FindURIs(data any, into *OrderedSet) {
	switch v := data.(type) {
	case string:
		if u, err := Parse(v); err == nil {
			into.Add(u.WithoutFragment())
		}
	case []any:
		for _, item := range v {
			FindURIs(item, into)
		}
	case []string:
		for _, item := range v {
			FindURIs(item, into)
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			FindURIs(v[k], into)
		}
	}
}
