package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	c.normalizeMedia()
	c.normalizeResolver()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalog() error {
	c.Catalog.Backend = strings.ToLower(strings.TrimSpace(c.Catalog.Backend))
	if c.Catalog.Backend == "" {
		c.Catalog.Backend = defaultCatalogBackend
	}
	if c.Catalog.BaseURL == "" {
		if value, ok := os.LookupEnv("BALDR_CATALOG_URL"); ok {
			c.Catalog.BaseURL = value
		}
	}
	c.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.BaseURL), "/")

	var err error
	if c.Catalog.DBPath, err = expandPath(c.Catalog.DBPath); err != nil {
		return fmt.Errorf("catalog.db_path: %w", err)
	}
	if c.Catalog.MediaDir, err = expandPath(c.Catalog.MediaDir); err != nil {
		return fmt.Errorf("catalog.media_dir: %w", err)
	}
	if c.Catalog.RequestTimeout <= 0 {
		c.Catalog.RequestTimeout = defaultCatalogRequestTimeout
	}
	c.Catalog.APIBind = strings.TrimSpace(c.Catalog.APIBind)
	if c.Catalog.APIBind == "" {
		c.Catalog.APIBind = defaultCatalogAPIBind
	}
	return nil
}

func (c *Config) normalizeMedia() {
	if value, ok := os.LookupEnv("BALDR_MEDIA_URL"); ok && strings.TrimSpace(value) != "" {
		c.Media.HTTPBaseURL = value
	}
	c.Media.HTTPBaseURL = strings.TrimRight(strings.TrimSpace(c.Media.HTTPBaseURL), "/")
}

func (c *Config) normalizeResolver() {
	if c.Resolver.Concurrency == 0 {
		c.Resolver.Concurrency = defaultResolverConcurrency
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
