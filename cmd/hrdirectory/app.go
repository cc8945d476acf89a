package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/hr-directory/internal/application"
	"github.com/example/hr-directory/internal/calendar"
	"github.com/example/hr-directory/internal/config"
	httptransport "github.com/example/hr-directory/internal/http"
	"github.com/example/hr-directory/internal/metrics"
	"github.com/example/hr-directory/internal/persistence"
	"github.com/example/hr-directory/internal/persistence/memory"
	"github.com/example/hr-directory/internal/persistence/sqlite"
	"github.com/example/hr-directory/internal/seed"
)

type backend interface {
	persistence.Repository
	Close() error
}

// app is a seeded store together with the HTTP handler serving it.
type app struct {
	store   *application.Store
	handler http.Handler
	backend backend
}

func (a *app) Close() error {
	return a.backend.Close()
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger, now func() time.Time) (*app, error) {
	repo, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	store := application.NewStoreWithLogger(repo, nil, now, logger, application.WithLocation(cfg.Location))

	dataset, err := loadDataset(cfg, store.Calendar(), store.Now())
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	if err := store.Import(ctx, dataset); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("seed store: %w", err)
	}

	registry := metrics.New()
	if err := registry.RegisterStore(store); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("register store metrics: %w", err)
	}
	if source, ok := repo.(metrics.MutationSource); ok {
		if err := registry.RegisterMutations(source); err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("register mutation metrics: %w", err)
		}
	}

	routerCfg := httptransport.ConfigForStore(store, logger)
	routerCfg.Metrics = registry.Handler()
	routerCfg.Middleware = []func(http.Handler) http.Handler{
		httptransport.RequestLogger(logger),
		registry.Middleware(),
	}

	logger.Info("store seeded",
		"backend", cfg.Backend,
		"employees", len(dataset.Employees),
		"departments", len(dataset.Departments),
		"availability", len(dataset.Availability),
	)

	return &app{store: store, handler: httptransport.NewRouter(routerCfg), backend: repo}, nil
}

func openBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		storage, err := sqlite.Open(cfg.SQLiteDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		if err := storage.Migrate(ctx); err != nil {
			_ = storage.Close()
			return nil, fmt.Errorf("migrate sqlite backend: %w", err)
		}
		return storage, nil
	default:
		return memory.New(), nil
	}
}

// loadDataset returns the seed file's records when one is configured and the
// built-in sample dated today otherwise.
func loadDataset(cfg config.Config, cal *calendar.Calendar, now time.Time) (persistence.Dataset, error) {
	if cfg.SeedFile == "" {
		return seed.Sample(cal.StartOfDay(now)), nil
	}
	dataset, err := seed.LoadFile(cfg.SeedFile, cal, now)
	if err != nil {
		return persistence.Dataset{}, fmt.Errorf("load seed file %s: %w", cfg.SeedFile, err)
	}
	return dataset, nil
}
