package api

import "baldr/internal/catalog"

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// AssetEntry describes a catalog entry in a transport-friendly format.
type AssetEntry struct {
	ID        string `json:"id"`
	Ref       string `json:"ref"`
	UUID      string `json:"uuid"`
	Title     string `json:"title,omitempty"`
	Category  string `json:"category"`
	Path      string `json:"path,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// AssetListResponse wraps the asset list endpoint payload.
type AssetListResponse struct {
	Assets []AssetEntry `json:"assets"`
	Total  int          `json:"total"`
	Query  string       `json:"query,omitempty"`
}

// HealthResponse is returned by the health endpoint in JSON mode.
type HealthResponse struct {
	Status string `json:"status"`
	Assets int    `json:"assets"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// FromEntry converts a catalog entry to its DTO.
func FromEntry(e catalog.Entry) AssetEntry {
	out := AssetEntry{
		ID:       e.ID,
		Ref:      e.Ref,
		UUID:     e.UUID,
		Title:    e.Title,
		Category: e.Category,
		Path:     e.Path,
	}
	if !e.UpdatedAt.IsZero() {
		out.UpdatedAt = e.UpdatedAt.UTC().Format(dateTimeFormat)
	}
	return out
}

// FromEntries converts entries preserving order. nil becomes an empty slice so
// the JSON payload always carries a list.
func FromEntries(entries []catalog.Entry) []AssetEntry {
	out := make([]AssetEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromEntry(e))
	}
	return out
}
