package config

import "path/filepath"

// Catalog backends.
const (
	BackendSQLite = "sqlite"
	BackendHTTP   = "http"
	BackendDir    = "dir"
)

const (
	defaultConfigPath            = "~/.config/baldr/config.toml"
	defaultLogDir                = "~/.local/share/baldr/logs"
	defaultCatalogBackend        = BackendSQLite
	defaultCatalogDBName         = "catalog.db"
	defaultCatalogRequestTimeout = 30
	defaultCatalogAPIBind        = "127.0.0.1:7488"
	defaultMediaHTTPBaseURL      = "http://localhost:8000/media"
	defaultResolverConcurrency   = 8
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	cacheDir := defaultCacheDir()
	return Config{
		Paths: Paths{
			CacheDir: cacheDir,
			LogDir:   defaultLogDir,
		},
		Catalog: Catalog{
			Backend:        defaultCatalogBackend,
			DBPath:         filepath.Join(cacheDir, defaultCatalogDBName),
			RequestTimeout: defaultCatalogRequestTimeout,
			APIBind:        defaultCatalogAPIBind,
		},
		Media: Media{
			HTTPBaseURL: defaultMediaHTTPBaseURL,
		},
		Resolver: Resolver{
			Concurrency: defaultResolverConcurrency,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
