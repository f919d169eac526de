package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/fintrack/internal/app"
	"github.com/pigeonworks-llc/fintrack/internal/models"
	"github.com/pigeonworks-llc/fintrack/pkg/beancount"
	"github.com/pigeonworks-llc/fintrack/pkg/converter"
	"github.com/pigeonworks-llc/fintrack/pkg/export"
)

var (
	exportFormat string
	exportStdout bool
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the book as YAML or a Beancount journal",
	Long: `Export the book.

With --format yaml (the default) every record and the summary are written
to <data root>/exports, one file per day.

With --format beancount transactions are written to monthly files under
<data root>/beancount, with open directives and opening balances in
accounts.beancount and a main.beancount that includes them all. Account
names can be mapped in <data root>/beancount-accounts.yaml.

Example:
  fintrack export
  fintrack export --stdout > book.yaml
  fintrack export --format beancount`,
	Args: cobra.NoArgs,
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "Export format: yaml or beancount")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write YAML to standard output instead of a file")
}

func runExport(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	switch exportFormat {
	case "yaml":
		exportYAML(a)
	case "beancount":
		exportBeancount(a)
	default:
		abortOnError(a, fmt.Errorf("unknown format %q", exportFormat), "invalid export format")
	}
}

func exportYAML(a *app.App) {
	doc := export.Build(a.Book, a.Catalog, a.Money.Code())

	if exportStdout {
		abortOnError(a, export.Write(os.Stdout, doc), "failed to export")
		return
	}

	path, err := export.WriteFile(a.Paths, doc)
	abortOnError(a, err, "failed to export")

	slog.Info("Export written", "path", path,
		"accounts", len(doc.Accounts), "transactions", len(doc.Transactions))
	fmt.Println(path)
}

func exportBeancount(a *app.App) {
	mapper, err := converter.LoadMapperOrDefault(a.Paths.GetMappingPath())
	abortOnError(a, err, "failed to load account mapping")

	cvtr := converter.NewConverter(mapper, a.Money.Code())
	journal := cvtr.Convert(
		a.Book.Accounts.List(),
		a.Book.Transactions.List(),
		a.Book.Now().Format(models.DateLayout),
	)

	result, err := cvtr.WriteJournal(beancount.NewFileSystemRepository(a.Paths), journal)
	abortOnError(a, err, "failed to write beancount journal")

	slog.Info("Beancount journal written",
		"months", len(result.Months), "transactions", result.Transactions, "pruned", len(result.Pruned))
	fmt.Println(a.Paths.GetMainFilePath())
}
