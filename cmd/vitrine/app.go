package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnwards/vitrine/internal/cache"
	"github.com/johnwards/vitrine/internal/config"
	"github.com/johnwards/vitrine/internal/database"
	"github.com/johnwards/vitrine/internal/logging"
	"github.com/johnwards/vitrine/internal/seed"
	"github.com/johnwards/vitrine/internal/store"
)

// app is the wiring shared by every subcommand.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	db       *sql.DB
	store    *store.Store
	resolver *cache.Resolver
	closers  []func() error
}

// bootstrap opens and migrates the database, seeds the demo catalog and
// puts the slug cache in front of the store's resolver.
func bootstrap(ctx context.Context, cfg config.Config) (*app, error) {
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger}
	a.closers = append(a.closers, func() error { _ = logger.Sync(); return nil })

	if err := a.open(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) open(ctx context.Context) error {
	d, err := database.ParseDriver(a.cfg.DBDriver)
	if err != nil {
		return err
	}
	db, err := database.Open(d, a.cfg.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.db = db
	a.closers = append(a.closers, db.Close)

	if err := database.Migrate(ctx, db, d); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	a.store = store.New(db, d, a.logger)
	if err := seed.Seed(ctx, a.store.Catalog); err != nil {
		return fmt.Errorf("seed data: %w", err)
	}

	var c cache.Cache
	if a.cfg.RedisURL != "" {
		rc, err := cache.DialRedis(ctx, a.cfg.RedisURL, a.cfg.SlugCacheTTL)
		if err != nil {
			return fmt.Errorf("slug cache: %w", err)
		}
		a.closers = append(a.closers, rc.Close)
		c = rc
		a.logger.Info("slug cache on redis")
	} else {
		c = cache.NewMemory(a.cfg.SlugCacheSize, a.cfg.SlugCacheTTL)
	}
	a.resolver = cache.NewResolver(a.store.Slugs, c, a.logger)

	a.logger.Info("catalog ready",
		zap.String("driver", d.String()),
		zap.Bool("redis", a.cfg.RedisURL != ""),
	)
	return nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
