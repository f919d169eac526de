// Package app wires configuration, the record store and the book together
// for the command-line tools.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pigeonworks-llc/fintrack/internal/format"
	"github.com/pigeonworks-llc/fintrack/internal/ledger"
	"github.com/pigeonworks-llc/fintrack/internal/store"
	"github.com/pigeonworks-llc/fintrack/pkg/catalog"
	"github.com/pigeonworks-llc/fintrack/pkg/config"
	"github.com/pigeonworks-llc/fintrack/pkg/db"
	"github.com/pigeonworks-llc/fintrack/pkg/pathutil"
)

// App holds an open book and everything needed to present it.
type App struct {
	Config  *config.Config
	Paths   *pathutil.PathResolver
	Book    *ledger.Book
	Catalog *catalog.Catalog
	Money   *format.Formatter
	Stats   store.StatsProvider

	logger     *slog.Logger
	closeStore func() error
}

// Open resolves paths from cfg, opens the configured record store and loads
// the book from it.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...ledger.Option) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	paths := pathutil.New(pathutil.Config{
		DataRoot:     cfg.Storage.DataRoot,
		Driver:       cfg.Storage.Driver,
		DatabasePath: cfg.Storage.DBPath,
		CatalogPath:  cfg.Storage.CatalogPath,
	})

	money, err := format.New(cfg.Display.Currency)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.LoadOrDefault(paths.GetCatalogPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	rs, stats, closeStore, err := openStore(ctx, cfg.Storage.Driver, paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("record store opened", "driver", cfg.Storage.Driver, "path", paths.GetDatabasePath())

	book, err := ledger.Open(ctx, rs, append([]ledger.Option{ledger.WithLogger(logger)}, opts...)...)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("failed to open book: %w", err)
	}

	return &App{
		Config:     cfg,
		Paths:      paths,
		Book:       book,
		Catalog:    cat,
		Money:      money,
		Stats:      stats,
		logger:     logger,
		closeStore: closeStore,
	}, nil
}

func openStore(ctx context.Context, driver string, paths *pathutil.PathResolver) (store.RecordStore, store.StatsProvider, func() error, error) {
	dbPath := paths.GetDatabasePath()
	if err := paths.EnsureParentDir(dbPath); err != nil {
		return nil, nil, nil, err
	}

	switch driver {
	case config.DriverSQLite:
		conn, err := db.Open(ctx, dbPath)
		if err != nil {
			return nil, nil, nil, err
		}
		s := db.NewSnapshotStore(conn)
		return s, s, conn.Close, nil
	case config.DriverBolt, "":
		s, err := store.OpenBolt(dbPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, s, s.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store driver: %s", driver)
	}
}

// Close writes every pending change and closes the record store.
func (a *App) Close() error {
	bookErr := a.Book.Close()
	storeErr := a.closeStore()
	if err := errors.Join(bookErr, storeErr); err != nil {
		return fmt.Errorf("failed to close: %w", err)
	}
	a.logger.Debug("record store closed")
	return nil
}
