package multipart

import "fmt"

// Selection binds a multipart asset's base URL to a parsed part sequence.
type Selection struct {
	baseURL   string
	partCount int
	spec      string
	parts     []int
}

// NewSelection parses fragment against an asset with partCount parts. An
// empty fragment selects every part.
func NewSelection(baseURL string, partCount int, fragment string) (*Selection, error) {
	if partCount < 1 {
		partCount = 1
	}
	parts, err := SelectSubset(fragment, partCount)
	if err != nil {
		return nil, err
	}
	return &Selection{baseURL: baseURL, partCount: partCount, spec: fragment, parts: parts}, nil
}

// Parts returns the selected part numbers in selection order.
func (s *Selection) Parts() []int {
	out := make([]int, len(s.parts))
	copy(out, s.parts)
	return out
}

// Count is the number of selected parts, not the asset's total part count.
func (s *Selection) Count() int { return len(s.parts) }

// Spec returns the fragment the selection was built from.
func (s *Selection) Spec() string { return s.spec }

// HTTPURLByNo returns the URL of the nth selected part (1-based).
func (s *Selection) HTTPURLByNo(n int) (string, error) {
	if n < 1 || n > len(s.parts) {
		return "", &InvalidRangeError{Spec: s.spec, Reason: fmt.Sprintf("selection has %d parts, not %d", len(s.parts), n)}
	}
	if s.partCount == 1 {
		return s.baseURL, nil
	}
	return FormatFileName(s.baseURL, s.parts[n-1])
}

// HTTPURLs returns the URLs of all selected parts.
func (s *Selection) HTTPURLs() ([]string, error) {
	urls := make([]string, 0, len(s.parts))
	for i := range s.parts {
		u, err := s.HTTPURLByNo(i + 1)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}
