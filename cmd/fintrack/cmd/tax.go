package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/fintrack/internal/format"
	"github.com/pigeonworks-llc/fintrack/internal/models"
)

type taxFlagValues struct {
	name    string
	amount  string
	dueDate string
	notes   string
	paid    bool
}

func (f taxFlagValues) create() (models.CreateTaxRequest, error) {
	amount, err := parseAmount("amount", f.amount)
	if err != nil {
		return models.CreateTaxRequest{}, err
	}
	return models.CreateTaxRequest{
		Name:    f.name,
		Amount:  amount,
		DueDate: f.dueDate,
		Notes:   f.notes,
		Paid:    f.paid,
	}, nil
}

func (f taxFlagValues) patch(changed changedFunc) (models.UpdateTaxRequest, error) {
	amount, err := optAmount(changed, "amount", f.amount)
	if err != nil {
		return models.UpdateTaxRequest{}, err
	}
	return models.UpdateTaxRequest{
		Name:    optString(changed, "name", f.name),
		Amount:  amount,
		DueDate: optString(changed, "due", f.dueDate),
		Notes:   optString(changed, "notes", f.notes),
		Paid:    optBool(changed, "paid", f.paid),
	}, nil
}

var (
	taxFlags  taxFlagValues
	taxFilter billFilterValues
)

var taxCmd = &cobra.Command{
	Use:     "tax",
	Aliases: []string{"taxes"},
	Short:   "Track tax obligations",
}

var taxAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a tax",
	Long: `Register a tax obligation with a due date.

Example:
  fintrack tax add --name IPTU --amount 320.50 --due 2024-03-20`,
	Args: cobra.NoArgs,
	Run:  runTaxAdd,
}

var taxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List taxes",
	Args:  cobra.NoArgs,
	Run:   runTaxList,
}

var taxUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a tax",
	Args:  cobra.ExactArgs(1),
	Run:   runTaxUpdate,
}

var taxDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tax",
	Args:  cobra.ExactArgs(1),
	Run:   runTaxDelete,
}

var taxPayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark a tax as paid today",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { runTaxPaid(args[0], true) },
}

var taxUnpayCmd = &cobra.Command{
	Use:   "unpay <id>",
	Short: "Mark a tax as unpaid",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { runTaxPaid(args[0], false) },
}

func init() {
	for _, c := range []*cobra.Command{taxAddCmd, taxUpdateCmd} {
		c.Flags().StringVar(&taxFlags.name, "name", "", "Tax name")
		c.Flags().StringVar(&taxFlags.amount, "amount", "", "Amount")
		c.Flags().StringVar(&taxFlags.dueDate, "due", "", "Due date (YYYY-MM-DD)")
		c.Flags().StringVar(&taxFlags.notes, "notes", "", "Notes")
		c.Flags().BoolVar(&taxFlags.paid, "paid", false, "Already paid")
	}
	taxAddCmd.MarkFlagRequired("name")
	taxAddCmd.MarkFlagRequired("amount")
	taxAddCmd.MarkFlagRequired("due")

	taxListCmd.Flags().StringVar(&taxFilter.status, "status", "", "pending, paid, overdue or upcoming")
	taxListCmd.Flags().IntVar(&taxFilter.days, "days", 0, "Window in days for --status upcoming (default FINTRACK_UPCOMING_DAYS)")

	taxCmd.AddCommand(taxAddCmd, taxListCmd, taxUpdateCmd, taxDeleteCmd, taxPayCmd, taxUnpayCmd)
}

func runTaxAdd(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	req, err := taxFlags.create()
	abortOnError(a, err, "invalid tax")

	t, err := a.Book.Taxes.AddTax(req)
	abortOnError(a, err, "failed to add tax")

	slog.Info("Tax added", "id", t.ID, "due", t.DueDate)
	fmt.Println(t.ID)
}

func runTaxList(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	if !cmd.Flags().Changed("days") {
		taxFilter.days = a.Config.Alerts.UpcomingDays
	}
	x := a.Book.Taxes
	taxes, err := selectBills(taxFilter, billQueries[models.Tax]{
		list: x.List, pending: x.Pending, paid: x.Paid, overdue: x.Overdue, upcoming: x.Upcoming,
	})
	abortOnError(a, err, "invalid filter")

	w := newTable()
	fmt.Fprintln(w, "ID\tDUE\tAMOUNT\tSTATUS\tNAME")
	for _, t := range taxes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ID, format.Date(t.DueDate), a.Money.Money(t.Amount),
			dueColumn(a, t.DueDate, t.Paid, t.PaidDate), t.Name)
	}
	fmt.Fprintf(w, "\tTotal\t%s\tpending %s\t\n", a.Money.Money(x.Total()), a.Money.Money(x.TotalPending()))
	w.Flush()
}

func runTaxUpdate(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	id := args[0]
	_, ok := a.Book.Taxes.Get(id)
	mustFind(a, ok, "tax", id)

	req, err := taxFlags.patch(changedOn(cmd))
	abortOnError(a, err, "invalid tax")

	err = a.Book.Taxes.UpdateTax(id, req)
	abortOnError(a, err, "failed to update tax")
	slog.Info("Tax updated", "id", id)
}

func runTaxDelete(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	id := args[0]
	_, ok := a.Book.Taxes.Get(id)
	mustFind(a, ok, "tax", id)

	a.Book.Taxes.DeleteTax(id)
	slog.Info("Tax deleted", "id", id)
}

func runTaxPaid(id string, paid bool) {
	a := openApp(context.Background())
	defer closeApp(a)

	_, ok := a.Book.Taxes.Get(id)
	mustFind(a, ok, "tax", id)

	a.Book.Taxes.TogglePaid(id, paid)
	slog.Info("Tax paid state changed", "id", id, "paid", paid)
}
