package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/core/events"
	"github.com/frahmantamala/hrconsole/internal/observability/metrics"
	"github.com/frahmantamala/hrconsole/internal/repository"
	"github.com/frahmantamala/hrconsole/internal/storage"
	"github.com/frahmantamala/hrconsole/internal/storage/memory"
	"github.com/frahmantamala/hrconsole/internal/storage/rediskv"
	"github.com/frahmantamala/hrconsole/internal/storage/sqlkv"
	"github.com/frahmantamala/hrconsole/internal/store"
	"github.com/frahmantamala/hrconsole/internal/transport/rest"
	"github.com/frahmantamala/hrconsole/pkg/logger"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Dependencies are the opened backends shared by every command.
type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Redis  *rediskv.Store
	Store  *store.Store
	Logger *slog.Logger
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	initLogger(cfg)

	deps := &Dependencies{Config: cfg, Logger: logger.LoggerWrapper()}

	if cfg.NeedsDatabase() {
		deps.DB, err = storage.OpenDB(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if cfg.Activity.Enabled {
			deps.Gorm, err = storage.OpenGorm(deps.DB.DB, cfg.Database.Driver)
			if err != nil {
				deps.Close()
				return nil, err
			}
		}
	}

	var kv storage.KeyValue
	switch cfg.Storage.Backend {
	case internal.StorageBackendSQL:
		kv = sqlkv.New(deps.DB)
	case internal.StorageBackendRedis:
		deps.Redis, err = rediskv.NewFromURL(ctx, cfg.Redis.URL)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		kv = deps.Redis
	default:
		deps.Logger.Warn("using the in-memory store; changes are lost on exit")
		kv = memory.New()
	}
	deps.Store = store.New(kv, cfg.Storage.Key, cfg.Storage.Timeout, deps.Logger)

	deps.Logger.Info("dependencies initialized",
		"storage_backend", cfg.Storage.Backend,
		"storage_key", deps.Store.Key(),
		"database", cfg.NeedsDatabase(),
		"activity", cfg.Activity.Enabled)
	return deps, nil
}

// loadRepository reads the stored document. An unusable value is logged and replaced by defaults.
func (d *Dependencies) loadRepository(ctx context.Context, publisher events.Publisher) *repository.Repository {
	loaded := d.Store.Load(ctx)
	if loaded.Warning != nil {
		metrics.ObserveStoreFallback()
		d.Logger.Warn("stored document unusable, starting from defaults", "error", loaded.Warning)
	}
	return repository.New(loaded.Document, d.Store, publisher, d.Logger)
}

// healthChecks lists the backends /health probes.
func (d *Dependencies) healthChecks() []rest.Check {
	var checks []rest.Check
	if d.DB != nil {
		checks = append(checks, rest.Check{Name: d.Config.Database.Driver, Pinger: d.DB.DB})
	}
	if d.Redis != nil {
		checks = append(checks, rest.Check{Name: "redis", Pinger: rest.PingFunc(d.Redis.Ping)})
	}
	return checks
}

func (d *Dependencies) Close() {
	var errs []error
	if d.Redis != nil {
		errs = append(errs, d.Redis.Close())
	}
	if d.DB != nil {
		errs = append(errs, d.DB.Close())
	}
	if err := errors.Join(errs...); err != nil {
		d.Logger.Error("failed to close dependencies", "error", err)
	}
}
