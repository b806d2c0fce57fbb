package resolver

import (
	"errors"
	"fmt"

	"baldr/internal/services"
)

// ErrNotResolved is returned by the cache accessors for URIs that were never
// passed to ResolveAsset or ResolveAll.
var ErrNotResolved = errors.New("media uri not resolved")

// AssetNotFoundError reports a URI the catalog has no record for.
type AssetNotFoundError struct {
	URI string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("asset not found: %s", e.URI)
}

func (e *AssetNotFoundError) Unwrap() error { return services.ErrNotFound }

func notResolved(uri string) error {
	return services.Wrap(services.ErrProgramming, "resolve", "lookup", uri, ErrNotResolved)
}
