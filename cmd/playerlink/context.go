package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"playerlink/internal/catalog"
	"playerlink/internal/config"
	"playerlink/internal/logging"
	"playerlink/internal/mapstore"
	"playerlink/internal/resolve"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
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
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// withStores opens the catalog and the mapping store for one command and
// guarantees both are released afterwards.
func (c *commandContext) withStores(fn func(cfg *config.Config, logger *slog.Logger, cat *catalog.Store, maps *mapstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	cat, err := catalog.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer cat.Close()

	maps, err := mapstore.Open(cfg.Paths.MappingDir)
	if err != nil {
		if errors.Is(err, mapstore.ErrLocked) {
			return fmt.Errorf("mapping store at %s is locked; is another pass running?", cfg.Paths.MappingDir)
		}
		return fmt.Errorf("open mapping store: %w", err)
	}
	defer maps.Close()

	return fn(cfg, logger, cat, maps)
}

// withResolver additionally loads the reference table and builds the
// blocking index, which every resolution pass needs.
func (c *commandContext) withResolver(ctx context.Context, fn func(res *resolve.Resolver) error) error {
	return c.withStores(func(cfg *config.Config, logger *slog.Logger, cat *catalog.Store, maps *mapstore.Store) error {
		players, err := cat.ReferencePlayers(ctx)
		if err != nil {
			return fmt.Errorf("load reference players: %w", err)
		}
		if len(players) == 0 {
			return errors.New("reference table is empty; run `playerlink ingest reference` first")
		}
		index := resolve.BuildIndex(players)
		if dups := index.DuplicateNorms(); dups > 0 {
			logger.Debug("reference index built with duplicate normalized names",
				logging.Args(logging.Int("duplicates", dups))...)
		}
		return fn(resolve.New(cat, maps, index, resolve.OptionsFromConfig(cfg), logger))
	})
}
