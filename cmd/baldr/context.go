package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"baldr/internal/catalog"
	"baldr/internal/config"
	"baldr/internal/logging"
	"baldr/internal/master"
	"baldr/internal/masters"
	"baldr/internal/presentation"
	"baldr/internal/resolver"
	"baldr/internal/services/markup"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// loggerValue falls back to a console logger when the configured one cannot
// be built.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.New(logging.Options{Level: "info", Format: "console"})
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) parsePresentation(path string) (*presentation.Presentation, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	reg, err := masters.Default()
	if err != nil {
		return nil, err
	}
	return presentation.ParseFile(path, reg,
		presentation.WithMarkupConverter(newConverter(cfg)),
		presentation.WithLogger(c.loggerValue()))
}

// withResolver opens the configured catalog backend for the lifetime of fn.
func (c *commandContext) withResolver(fn func(*resolver.Resolver) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	client, closeFn, err := catalog.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	r := resolver.New(client,
		resolver.WithHTTPBaseURL(cfg.Media.HTTPBaseURL),
		resolver.WithConcurrency(cfg.Resolver.Concurrency),
		resolver.WithLogger(c.loggerValue()))
	return fn(r)
}

// withStore opens the SQLite catalog regardless of the configured backend;
// import and maintenance always target the local database.
func (c *commandContext) withStore(fn func(*config.Config, *catalog.SQLiteStore) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.OpenStore(cfg.Catalog.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()
	return fn(cfg, store)
}

func newConverter(cfg *config.Config) master.MarkupConverter {
	return markup.New(markup.WithUnsafeHTML(cfg.Markup.AllowUnsafeHTML))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
