// Package cmd provides CLI commands for fintrack.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/fintrack/internal/app"
	"github.com/pigeonworks-llc/fintrack/pkg/config"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fintrack",
	Short: "Track accounts, transactions, bills and investments",
	Long: `fintrack is a personal finance tracker. It keeps account balances
in step with recorded transactions and tracks expenses, taxes and
investments in a local database.

Example:
  fintrack account add --name Checking --balance 1500 --main
  fintrack tx add --type expense --amount 42.90 --account <id> --description Groceries
  fintrack expense list --status overdue
  fintrack summary`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(taxCmd)
	rootCmd.AddCommand(investmentCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(categoriesCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}

// openApp loads the configuration and opens the book. Callers must Close
// the result so queued writes reach the database.
func openApp(ctx context.Context) *app.App {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate(
		[]string{"storage", "dataRoot"},
		[]string{"storage", "driver"},
		[]string{"display", "currency"},
	); err != nil {
		exitOnError(err, "invalid configuration")
	}

	slog.Debug("Opening book", "data_root", cfg.Storage.DataRoot, "driver", cfg.Storage.Driver)
	a, err := app.Open(ctx, cfg, slog.Default())
	exitOnError(err, "failed to open book")
	return a
}

// closeApp flushes the book and closes the store, reporting failures.
func closeApp(a *app.App) {
	exitOnError(a.Close(), "failed to save changes")
}
