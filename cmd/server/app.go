package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/phrazzld/mjolnir/internal/config"
	"github.com/phrazzld/mjolnir/internal/platform/deezer"
	"github.com/phrazzld/mjolnir/internal/platform/memory"
	"github.com/phrazzld/mjolnir/internal/platform/sqlcache"
	"github.com/phrazzld/mjolnir/internal/redact"
	"github.com/phrazzld/mjolnir/internal/service"
	"github.com/phrazzld/mjolnir/internal/store"
	"github.com/phrazzld/mjolnir/internal/task"
)

// Cache driver names accepted in cache.driver.
const (
	cacheDriverMemory   = "memory"
	cacheDriverSQLite   = "sqlite"
	cacheDriverPostgres = "postgres"
	cacheDriverNone     = "none"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	cache   store.SongCache
	partner *deezer.Client

	artistService service.ArtistService

	taskRunner *task.TaskRunner

	// failedCacheWrites counts background cache writes that errored or panicked.
	failedCacheWrites atomic.Int64
}

// newApplication creates a new application instance with all dependencies initialized.
// Resources acquired before a failure are released before returning.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.cache, err = openSongCache(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open song cache: %w", err)
	}
	logger.Info("song cache ready", "driver", cfg.Cache.Driver, "ttl", cfg.Cache.TTL())

	app.partner, err = deezer.NewClient(deezer.Config{
		BaseURL:      cfg.Partner.BaseURL,
		Timeout:      cfg.Partner.Timeout(),
		MaxRetries:   cfg.Partner.MaxRetries,
		RetryDelay:   cfg.Partner.RetryDelay(),
		CatalogLimit: cfg.Partner.CatalogLimit,
	}, nil, logger)
	if err != nil {
		app.closeCache()
		return nil, fmt.Errorf("failed to create partner client: %w", err)
	}

	app.taskRunner = app.setupTaskRunner(cfg.Task)

	app.artistService, err = service.NewArtistService(
		app.partner,
		app.cache,
		app.taskRunner,
		service.ArtistServiceConfig{
			CacheTTL:     cfg.Cache.TTL(),
			WriteTimeout: cfg.Task.WriteTimeout(),
		},
		logger,
	)
	if err != nil {
		_ = app.cleanup(ctx)
		return nil, fmt.Errorf("failed to create artist service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// openSongCache builds the cache backend named by cfg.Driver.
func openSongCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (store.SongCache, error) {
	switch cfg.Driver {
	case cacheDriverMemory, "":
		return memory.NewSongCache(), nil
	case cacheDriverSQLite:
		return sqlcache.Open(ctx, sqlcache.DialectSQLite, cfg.DSN, logger)
	case cacheDriverPostgres:
		return sqlcache.Open(ctx, sqlcache.DialectPostgres, cfg.DSN, logger)
	case cacheDriverNone:
		return store.NopSongCache{}, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// setupTaskRunner creates and starts the runner that performs background
// cache writes.
func (app *application) setupTaskRunner(cfg config.TaskConfig) *task.TaskRunner {
	runner := task.NewTaskRunner(task.RunnerConfig{
		QueueSize:   cfg.QueueSize,
		WorkerCount: cfg.WorkerCount,
	}, app.logger)
	// the pool already logs the error
	runner.SetErrorHandler(func(t task.Task, _ error) {
		if t.Type() == task.TaskTypeCacheWrite {
			app.failedCacheWrites.Add(1)
		}
	})
	runner.Start()

	return runner
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns when ctx is cancelled, a shutdown signal arrives or the server
// fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup drains pending cache writes and closes the cache. It is safe to
// call more than once.
func (app *application) cleanup(ctx context.Context) error {
	var errs []error

	if app.taskRunner != nil {
		if err := app.taskRunner.Stop(ctx); err != nil {
			app.logger.Warn("pending cache writes abandoned", "error", err)
			errs = append(errs, fmt.Errorf("task runner stop: %w", err))
		}
	}

	if err := app.closeCache(); err != nil {
		errs = append(errs, fmt.Errorf("cache close: %w", err))
	}

	app.logger.Info("application shutdown completed",
		"failed_cache_writes", app.failedCacheWrites.Load())
	return errors.Join(errs...)
}

func (app *application) closeCache() error {
	if app.cache == nil {
		return nil
	}
	err := app.cache.Close()
	if err != nil {
		app.logger.Error("error closing song cache", "error", redact.Error(err))
	}
	return err
}
