package multipart

import (
	"fmt"
	"strconv"
	"strings"

	"baldr/internal/services"
)

// InvalidRangeError reports a malformed range specification or a part number
// outside the available parts.
type InvalidRangeError struct {
	Spec   string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range %q: %s", e.Spec, e.Reason)
}

func (e *InvalidRangeError) Unwrap() error { return services.ErrMalformedInput }

// ParseRange parses a comma separated list of terms, each either `N` or
// `A-B` (inclusive, A <= B). Term order is kept; a range term expands in
// ascending order. Whitespace is ignored. Part numbers above MaxParts are
// rejected.
func ParseRange(spec string) ([]int, error) {
	return parse(spec, 0)
}

// ParseRangeBounded is ParseRange with an upper bound: it additionally accepts
// the open forms `-N` (1 to N) and `N-` (N to total), and rejects any part
// number greater than total.
func ParseRangeBounded(spec string, total int) ([]int, error) {
	if total < 1 {
		return nil, &InvalidRangeError{Spec: spec, Reason: fmt.Sprintf("no parts available (total %d)", total)}
	}
	return parse(spec, total)
}

func parse(spec string, total int) ([]int, error) {
	compact := strings.Join(strings.Fields(spec), "")
	if compact == "" {
		return nil, &InvalidRangeError{Spec: spec, Reason: "empty specification"}
	}

	var parts []int
	for _, term := range strings.Split(compact, ",") {
		start, end, err := parseTerm(term, total)
		if err != nil {
			return nil, &InvalidRangeError{Spec: spec, Reason: err.Error()}
		}
		if total > 0 && end > total {
			return nil, &InvalidRangeError{Spec: spec, Reason: fmt.Sprintf("only %d parts available, not %d", total, end)}
		}
		if total == 0 && end > MaxParts {
			return nil, &InvalidRangeError{Spec: spec, Reason: fmt.Sprintf("part numbers end at %d, got %d", MaxParts, end)}
		}
		for no := start; no <= end; no++ {
			parts = append(parts, no)
		}
	}
	return parts, nil
}

func parseTerm(term string, total int) (int, int, error) {
	if term == "" {
		return 0, 0, fmt.Errorf("empty term")
	}
	startText, endText, isRange := strings.Cut(term, "-")
	if !isRange {
		no, err := parseNo(term)
		return no, no, err
	}

	if total > 0 {
		if startText == "" {
			startText = "1"
		}
		if endText == "" {
			endText = strconv.Itoa(total)
		}
	}

	start, err := parseNo(startText)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseNo(endText)
	if err != nil {
		return 0, 0, err
	}
	if start > end {
		return 0, 0, fmt.Errorf("term %q: start is greater than end", term)
	}
	return start, end, nil
}

func parseNo(text string) (int, error) {
	no, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("term %q is not a number", text)
	}
	if no < 1 {
		return 0, fmt.Errorf("part numbers start at 1, got %d", no)
	}
	return no, nil
}

// FormatRange renders parts back into the range grammar, joining runs of
// consecutive ascending numbers as `A-B`.
func FormatRange(parts []int) string {
	if len(parts) == 0 {
		return ""
	}
	var terms []string
	start := parts[0]
	prev := parts[0]
	flush := func() {
		if start == prev {
			terms = append(terms, strconv.Itoa(start))
		} else {
			terms = append(terms, strconv.Itoa(start)+"-"+strconv.Itoa(prev))
		}
	}
	for _, no := range parts[1:] {
		if no == prev+1 {
			prev = no
			continue
		}
		flush()
		start, prev = no, no
	}
	flush()
	return strings.Join(terms, ",")
}

// SelectSubset applies a step-subset specification to count elements numbered
// from 1. An empty specification selects every element.
func SelectSubset(spec string, count int) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		all := make([]int, count)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}
	return ParseRangeBounded(spec, count)
}
