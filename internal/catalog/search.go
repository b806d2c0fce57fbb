package catalog

import (
	"strings"

	"baldr/internal/textutil"
)

// Search ranks entries by similarity of their title and ref to query and
// drops entries that share no token with it. An empty query returns entries
// unchanged.
func Search(entries []Entry, query string) []Entry {
	if strings.TrimSpace(query) == "" {
		return entries
	}
	candidates := make([]string, len(entries))
	for i, e := range entries {
		candidates[i] = e.Title + " " + strings.NewReplacer("_", " ", "-", " ").Replace(e.Ref)
	}
	matches := textutil.Rank(query, candidates)
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}
