package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/fintrack/internal/app"
	"github.com/pigeonworks-llc/fintrack/internal/models"
)

// changedFunc reports whether a flag was set on the command line.
type changedFunc func(name string) bool

func changedOn(cmd *cobra.Command) changedFunc {
	return cmd.Flags().Changed
}

func parseAmount(flag, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &models.ValidationError{Fields: []models.FieldError{
			{Field: flag, Message: fmt.Sprintf("invalid amount %q", value)},
		}}
	}
	return d, nil
}

func optString(changed changedFunc, name, value string) *string {
	if !changed(name) {
		return nil
	}
	return &value
}

func optBool(changed changedFunc, name string, value bool) *bool {
	if !changed(name) {
		return nil
	}
	return &value
}

func optAmount(changed changedFunc, name, value string) (*decimal.Decimal, error) {
	if !changed(name) {
		return nil, nil
	}
	d, err := parseAmount(name, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// abortOnError closes the app before exiting so earlier writes are kept.
func abortOnError(a *app.App, err error, msg string) {
	if err == nil {
		return
	}
	if cerr := a.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	exitOnError(err, msg)
}

func mustFind(a *app.App, ok bool, kind, id string) {
	if !ok {
		abortOnError(a, fmt.Errorf("%s %s not found", kind, id), "lookup failed")
	}
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}
