package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/fintrack/internal/app"
	"github.com/pigeonworks-llc/fintrack/internal/format"
	"github.com/pigeonworks-llc/fintrack/internal/models"
)

type expenseFlagValues struct {
	description string
	amount      string
	dueDate     string
	category    string
	paid        bool
}

func (f expenseFlagValues) create() (models.CreateExpenseRequest, error) {
	amount, err := parseAmount("amount", f.amount)
	if err != nil {
		return models.CreateExpenseRequest{}, err
	}
	return models.CreateExpenseRequest{
		Description: f.description,
		Amount:      amount,
		DueDate:     f.dueDate,
		Category:    f.category,
		Paid:        f.paid,
	}, nil
}

func (f expenseFlagValues) patch(changed changedFunc) (models.UpdateExpenseRequest, error) {
	amount, err := optAmount(changed, "amount", f.amount)
	if err != nil {
		return models.UpdateExpenseRequest{}, err
	}
	return models.UpdateExpenseRequest{
		Description: optString(changed, "description", f.description),
		Amount:      amount,
		DueDate:     optString(changed, "due", f.dueDate),
		Category:    optString(changed, "category", f.category),
		Paid:        optBool(changed, "paid", f.paid),
	}, nil
}

var (
	expenseFlags  expenseFlagValues
	expenseFilter billFilterValues
)

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"expenses"},
	Short:   "Track bills to pay",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register an expense",
	Long: `Register a bill with a due date. Expenses do not change account
balances; record a transaction when the money actually leaves.

Example:
  fintrack expense add --description Rent --amount 1200 --due 2024-04-05 --category housing`,
	Args: cobra.NoArgs,
	Run:  runExpenseAdd,
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	Args:  cobra.NoArgs,
	Run:   runExpenseList,
}

var expenseUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an expense",
	Args:  cobra.ExactArgs(1),
	Run:   runExpenseUpdate,
}

var expenseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	Run:   runExpenseDelete,
}

var expensePayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark an expense as paid today",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { runExpensePaid(args[0], true) },
}

var expenseUnpayCmd = &cobra.Command{
	Use:   "unpay <id>",
	Short: "Mark an expense as unpaid",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { runExpensePaid(args[0], false) },
}

func init() {
	for _, c := range []*cobra.Command{expenseAddCmd, expenseUpdateCmd} {
		c.Flags().StringVar(&expenseFlags.description, "description", "", "Description")
		c.Flags().StringVar(&expenseFlags.amount, "amount", "", "Amount")
		c.Flags().StringVar(&expenseFlags.dueDate, "due", "", "Due date (YYYY-MM-DD)")
		c.Flags().StringVar(&expenseFlags.category, "category", "", "Category value (see fintrack categories)")
		c.Flags().BoolVar(&expenseFlags.paid, "paid", false, "Already paid")
	}
	expenseAddCmd.MarkFlagRequired("description")
	expenseAddCmd.MarkFlagRequired("amount")
	expenseAddCmd.MarkFlagRequired("due")
	expenseAddCmd.MarkFlagRequired("category")

	expenseListCmd.Flags().StringVar(&expenseFilter.status, "status", "", "pending, paid, overdue or upcoming")
	expenseListCmd.Flags().IntVar(&expenseFilter.days, "days", 0, "Window in days for --status upcoming (default FINTRACK_DUE_SOON_DAYS)")

	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd, expenseUpdateCmd, expenseDeleteCmd, expensePayCmd, expenseUnpayCmd)
}

func warnUnknownExpenseCategory(a *app.App, category string) {
	if category != "" && !a.Catalog.HasExpense(category) {
		slog.Warn("Category is not in the catalog", "category", category)
	}
}

func runExpenseAdd(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	req, err := expenseFlags.create()
	abortOnError(a, err, "invalid expense")
	warnUnknownExpenseCategory(a, req.Category)

	e, err := a.Book.Expenses.AddExpense(req)
	abortOnError(a, err, "failed to add expense")

	slog.Info("Expense added", "id", e.ID, "due", e.DueDate)
	fmt.Println(e.ID)
}

func runExpenseList(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	if !cmd.Flags().Changed("days") {
		expenseFilter.days = a.Config.Alerts.DueSoonDays
	}
	x := a.Book.Expenses
	expenses, err := selectBills(expenseFilter, billQueries[models.Expense]{
		list: x.List, pending: x.Pending, paid: x.Paid, overdue: x.Overdue, upcoming: x.Upcoming,
	})
	abortOnError(a, err, "invalid filter")

	w := newTable()
	fmt.Fprintln(w, "ID\tDUE\tAMOUNT\tCATEGORY\tSTATUS\tDESCRIPTION")
	for _, e := range expenses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, format.Date(e.DueDate), a.Money.Money(e.Amount), a.Catalog.ExpenseLabel(e.Category),
			dueColumn(a, e.DueDate, e.Paid, e.PaidDate), e.Description)
	}
	fmt.Fprintf(w, "\tTotal\t%s\t\tpending %s\t\n", a.Money.Money(x.Total()), a.Money.Money(x.TotalPending()))
	w.Flush()
}

func runExpenseUpdate(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	id := args[0]
	_, ok := a.Book.Expenses.Get(id)
	mustFind(a, ok, "expense", id)

	req, err := expenseFlags.patch(changedOn(cmd))
	abortOnError(a, err, "invalid expense")
	if req.Category != nil {
		warnUnknownExpenseCategory(a, *req.Category)
	}

	err = a.Book.Expenses.UpdateExpense(id, req)
	abortOnError(a, err, "failed to update expense")
	slog.Info("Expense updated", "id", id)
}

func runExpenseDelete(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	id := args[0]
	_, ok := a.Book.Expenses.Get(id)
	mustFind(a, ok, "expense", id)

	a.Book.Expenses.DeleteExpense(id)
	slog.Info("Expense deleted", "id", id)
}

func runExpensePaid(id string, paid bool) {
	a := openApp(context.Background())
	defer closeApp(a)

	_, ok := a.Book.Expenses.Get(id)
	mustFind(a, ok, "expense", id)

	a.Book.Expenses.TogglePaid(id, paid)
	slog.Info("Expense paid state changed", "id", id, "paid", paid)
}
