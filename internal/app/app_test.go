package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/fintrack/internal/models"
	"github.com/pigeonworks-llc/fintrack/pkg/config"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig(root, driver string) *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{DataRoot: root, Driver: driver},
		Display: config.DisplayConfig{Currency: "BRL"},
		Alerts:  config.AlertConfig{DueSoonDays: 7, UpcomingDays: 30},
	}
}

func TestOpenReopen(t *testing.T) {
	for _, driver := range []string{config.DriverBolt, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(filepath.Join(t.TempDir(), "data"), driver)

			a, err := Open(ctx, cfg, discard)
			if err != nil {
				if strings.Contains(err.Error(), "CGO_ENABLED=0") {
					t.Skip("sqlite3 requires cgo")
				}
				t.Fatalf("Open() error = %v", err)
			}
			acc, err := a.Book.Accounts.AddAccount(models.CreateAccountRequest{Name: "Checking", Balance: decimal.NewFromInt(42)})
			if err != nil {
				t.Fatalf("AddAccount() error = %v", err)
			}
			if err := a.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			a, err = Open(ctx, cfg, discard)
			if err != nil {
				t.Fatalf("reopen error = %v", err)
			}
			defer a.Close()

			got, ok := a.Book.Accounts.Get(acc.ID)
			if !ok || !got.Balance.Equal(decimal.NewFromInt(42)) {
				t.Errorf("reloaded account = %+v, %v", got, ok)
			}

			stats, err := a.Stats.Stats(ctx)
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if len(stats) != 1 || stats[0].Saves != 1 {
				t.Errorf("Stats() = %+v, want one accounts save", stats)
			}
		})
	}
}

func TestOpenUsesCatalogFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "categories.yaml"), []byte("expense:\n  - value: rent\n    label: Rent\n"), 0644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}

	a, err := Open(context.Background(), testConfig(root, config.DriverBolt), discard)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer a.Close()

	if got := a.Catalog.ExpenseLabel("rent"); got != "Rent" {
		t.Errorf("ExpenseLabel(rent) = %q, want Rent", got)
	}
}

func TestOpenErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(root string) *config.Config
	}{
		{"unknown currency", func(root string) *config.Config {
			cfg := testConfig(root, config.DriverBolt)
			cfg.Display.Currency = "ZZZ1"
			return cfg
		}},
		{"unknown driver", func(root string) *config.Config {
			return testConfig(root, "postgres")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open(context.Background(), tt.cfg(t.TempDir()), discard); err == nil {
				t.Error("Open() error = nil, want error")
			}
		})
	}
}
