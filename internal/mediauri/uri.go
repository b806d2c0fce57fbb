package mediauri

import (
	"fmt"
	"strings"

	"baldr/internal/services"
)

// Recognized URI schemes.
const (
	SchemeRef  = "ref"
	SchemeUUID = "uuid"
)

// MalformedURIError reports a string that is not a valid media URI.
type MalformedURIError struct {
	Input  string
	Reason string
}

func (e *MalformedURIError) Error() string {
	return fmt.Sprintf("malformed media uri %q: %s", e.Input, e.Reason)
}

func (e *MalformedURIError) Unwrap() error { return services.ErrMalformedInput }

// URI is a parsed media URI. The zero value is not valid; use Parse.
type URI struct {
	Raw         string
	Scheme      string
	Authority   string
	Fragment    string
	HasFragment bool
}

// Parse validates s and splits it into scheme, authority and fragment.
func Parse(s string) (URI, error) {
	schemeEnd := strings.IndexByte(s, ':')
	if schemeEnd < 0 {
		return URI{}, &MalformedURIError{Input: s, Reason: "missing scheme separator"}
	}
	scheme := s[:schemeEnd]
	if scheme != SchemeRef && scheme != SchemeUUID {
		return URI{}, &MalformedURIError{Input: s, Reason: fmt.Sprintf("unknown scheme %q", scheme)}
	}

	rest := s[schemeEnd+1:]
	authority, fragment, hasFragment := strings.Cut(rest, "#")
	if authority == "" {
		return URI{}, &MalformedURIError{Input: s, Reason: "empty authority"}
	}
	if !validSegment(authority, false) {
		return URI{}, &MalformedURIError{Input: s, Reason: "illegal character in authority"}
	}
	if hasFragment {
		if fragment == "" {
			return URI{}, &MalformedURIError{Input: s, Reason: "empty fragment"}
		}
		if !validSegment(fragment, true) {
			return URI{}, &MalformedURIError{Input: s, Reason: "illegal character in fragment"}
		}
	}

	return URI{
		Raw:         s,
		Scheme:      scheme,
		Authority:   authority,
		Fragment:    fragment,
		HasFragment: hasFragment,
	}, nil
}

// MustParse is like Parse but panics on error. Intended for constants in tests
// and master definitions.
func MustParse(s string) URI {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func validSegment(s string, allowComma bool) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_':
		case c == ',' && allowComma:
		default:
			return false
		}
	}
	return true
}

// WithoutFragment returns `scheme:authority`, the catalog lookup key.
func (u URI) WithoutFragment() string {
	return u.Scheme + ":" + u.Authority
}

func (u URI) String() string {
	if u.HasFragment {
		return u.WithoutFragment() + "#" + u.Fragment
	}
	return u.WithoutFragment()
}

// Check reports whether s is a valid media URI.
func Check(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Compose joins the parts into a URI string. An empty fragment is omitted.
func Compose(scheme, authority, fragment string) string {
	out := scheme + ":" + authority
	if fragment != "" {
		out += "#" + fragment
	}
	return out
}

// SplitByFragment splits s at the first '#'. It performs no validation.
func SplitByFragment(s string) (prefix, fragment string, ok bool) {
	return strings.Cut(s, "#")
}

// RemoveFragment strips `#fragment` from s if present.
func RemoveFragment(s string) string {
	prefix, _, _ := strings.Cut(s, "#")
	return prefix
}

// RemoveScheme strips the `ref:` or `uuid:` prefix from s.
func RemoveScheme(s string) string {
	for _, scheme := range []string{SchemeRef, SchemeUUID} {
		if rest, ok := strings.CutPrefix(s, scheme+":"); ok {
			return rest
		}
	}
	return s
}
