package testsupport

import (
	"path/filepath"
	"testing"

	"baldr/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The catalog defaults to a SQLite database inside the temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Catalog.Backend = config.BackendSQLite
	cfgVal.Catalog.DBPath = filepath.Join(base, "cache", "catalog.db")
	cfgVal.Catalog.MediaDir = filepath.Join(base, "media")
	cfgVal.Catalog.APIBind = "127.0.0.1:0"
	cfgVal.Media.HTTPBaseURL = "http://localhost/media"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithBackend selects the catalog backend.
func WithBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Backend = backend
	}
}

// WithMediaHTTPBaseURL overrides the media URL prefix.
func WithMediaHTTPBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Media.HTTPBaseURL = url
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
