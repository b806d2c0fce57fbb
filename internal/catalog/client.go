package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"baldr/internal/config"
	"baldr/internal/media"
	"baldr/internal/mediauri"
	"baldr/internal/services"
)

// Client looks up one catalog record by the scheme and authority of a media
// URI. A missing record is reported as *NotFoundError.
type Client interface {
	FetchAssetByAuthority(ctx context.Context, uri mediauri.URI) (*media.Record, error)
}

// NotFoundError reports a URI that has no catalog record.
type NotFoundError struct {
	URI string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no catalog record for %q", e.URI)
}

func (e *NotFoundError) Unwrap() error { return services.ErrNotFound }

// Open returns the Client selected by cfg.Catalog.Backend. The returned close
// function releases backend resources and is never nil.
func Open(cfg *config.Config) (Client, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Catalog.Backend {
	case config.BackendSQLite:
		store, err := OpenStore(cfg.Catalog.DBPath)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case config.BackendDir:
		return NewDirClient(cfg.Catalog.MediaDir), noop, nil
	case config.BackendHTTP:
		timeout := time.Duration(cfg.Catalog.RequestTimeout) * time.Second
		return NewHTTPClient(cfg.Catalog.BaseURL, &http.Client{Timeout: timeout}), noop, nil
	default:
		return nil, noop, services.Wrap(services.ErrConfiguration, "catalog", "open",
			fmt.Sprintf("unknown catalog backend %q", cfg.Catalog.Backend), nil)
	}
}
