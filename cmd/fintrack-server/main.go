// Package main serves a fintrack book over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pigeonworks-llc/fintrack/internal/api"
	"github.com/pigeonworks-llc/fintrack/internal/app"
	"github.com/pigeonworks-llc/fintrack/pkg/config"
)

func main() {
	// Setup structured JSON logging.
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to open book", "error", err, "data_root", cfg.Storage.DataRoot)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("failed to close book", "error", err)
		}
	}()

	slog.Info("book opened",
		"driver", cfg.Storage.Driver,
		"db_path", a.Paths.GetDatabasePath(),
		"accounts", a.Book.Accounts.Len())

	router := api.NewRouter(a.Book, api.Options{
		Catalog:   a.Catalog,
		Formatter: a.Money,
		Windows: api.Windows{
			DueSoonDays:  cfg.Alerts.DueSoonDays,
			UpcomingDays: cfg.Alerts.UpcomingDays,
		},
		RequestLogging: true,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("starting fintrack server", "addr", addr, "currency", a.Money.Code())

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		_ = a.Close()
		os.Exit(1)
	}
	<-done

	slog.Info("server stopped")
}
