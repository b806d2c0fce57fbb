package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validateResolver(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Backend {
	case BackendSQLite:
		if c.Catalog.DBPath == "" {
			return errors.New("catalog.db_path must be set when catalog.backend is sqlite")
		}
	case BackendHTTP:
		if c.Catalog.BaseURL == "" {
			return errors.New("catalog.base_url must be set when catalog.backend is http (or set BALDR_CATALOG_URL)")
		}
		if _, err := url.ParseRequestURI(c.Catalog.BaseURL); err != nil {
			return fmt.Errorf("catalog.base_url is not a valid URL: %w", err)
		}
	case BackendDir:
		if c.Catalog.MediaDir == "" {
			return errors.New("catalog.media_dir must be set when catalog.backend is dir")
		}
	default:
		return fmt.Errorf("catalog.backend must be one of sqlite, http, dir (got %q)", c.Catalog.Backend)
	}
	return nil
}

func (c *Config) validateMedia() error {
	if c.Media.HTTPBaseURL == "" {
		return errors.New("media.http_base_url must be set")
	}
	if _, err := url.ParseRequestURI(c.Media.HTTPBaseURL); err != nil {
		return fmt.Errorf("media.http_base_url is not a valid URL: %w", err)
	}
	return nil
}

func (c *Config) validateResolver() error {
	if c.Resolver.Concurrency < 0 {
		return errors.New("resolver.concurrency must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error (got %q)", c.Logging.Level)
	}
	return nil
}
