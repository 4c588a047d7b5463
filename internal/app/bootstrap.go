package app

import (
	"context"
	"fmt"

	"weekly-menu/internal/config"
	"weekly-menu/internal/database"
	"weekly-menu/internal/ghost"
	"weekly-menu/internal/metrics"
	"weekly-menu/internal/seed"
	"weekly-menu/internal/storage"

	"github.com/charmbracelet/log"
)

// Runtime is an App opened from configuration, with the store it holds open.
type Runtime struct {
	App     *App
	Metrics *metrics.Recorder
	close   func() error
}

// Close releases the underlying store.
func (r *Runtime) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Open builds the store selected by cfg, assembles the seed dishes and loads
// the App.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Runtime, error) {
	kv, closeStore, err := OpenStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	var ghostClient ghost.Client
	if cfg.GhostEnabled() {
		ghostClient = ghost.NewClient(cfg)
	}
	seedDishes, err := seed.Load(ctx, cfg, ghostClient, logger)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("failed to load seed dishes: %w", err)
	}

	recorder := metrics.NewRecorder()
	a, err := Load(ctx, kv, seedDishes, recorder, logger)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	return &Runtime{App: a, Metrics: recorder, close: closeStore}, nil
}

// OpenStore returns the persistence adapter named by cfg.StoreBackend and a
// func that releases it.
func OpenStore(cfg *config.Config, logger *log.Logger) (storage.KV, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendFile:
		store, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize file store: %w", err)
		}
		logger.Debug("using file store", "dir", cfg.DataDir)
		return store, func() error { return nil }, nil
	case config.BackendSQLite, "":
		db, err := database.NewDB(cfg.DatabasePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		logger.Debug("using sqlite store", "path", cfg.DatabasePath)
		return storage.NewSQLiteStore(db.SQL), db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
