package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/fintrack/internal/format"
	"github.com/pigeonworks-llc/fintrack/internal/models"
)

type investmentFlagValues struct {
	name     string
	amount   string
	date     string
	category string
	notes    string
}

// create builds a request; an empty date means today.
func (f investmentFlagValues) create(today string) (models.CreateInvestmentRequest, error) {
	amount, err := parseAmount("amount", f.amount)
	if err != nil {
		return models.CreateInvestmentRequest{}, err
	}
	date := f.date
	if date == "" {
		date = today
	}
	return models.CreateInvestmentRequest{
		Name:     f.name,
		Amount:   amount,
		Date:     date,
		Category: f.category,
		Notes:    f.notes,
	}, nil
}

func (f investmentFlagValues) patch(changed changedFunc) (models.UpdateInvestmentRequest, error) {
	amount, err := optAmount(changed, "amount", f.amount)
	if err != nil {
		return models.UpdateInvestmentRequest{}, err
	}
	return models.UpdateInvestmentRequest{
		Name:     optString(changed, "name", f.name),
		Amount:   amount,
		Date:     optString(changed, "date", f.date),
		Category: optString(changed, "category", f.category),
		Notes:    optString(changed, "notes", f.notes),
	}, nil
}

var (
	investmentFlags      investmentFlagValues
	investmentByCategory bool
)

var investmentCmd = &cobra.Command{
	Use:     "investment",
	Aliases: []string{"investments"},
	Short:   "Record investments",
}

var investmentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an investment",
	Long: `Record money put into an asset class.

Example:
  fintrack investment add --name "Tesouro Selic" --amount 1000 --category bonds`,
	Args: cobra.NoArgs,
	Run:  runInvestmentAdd,
}

var investmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List investments",
	Args:  cobra.NoArgs,
	Run:   runInvestmentList,
}

var investmentUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an investment",
	Args:  cobra.ExactArgs(1),
	Run:   runInvestmentUpdate,
}

var investmentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an investment",
	Args:  cobra.ExactArgs(1),
	Run:   runInvestmentDelete,
}

func init() {
	for _, c := range []*cobra.Command{investmentAddCmd, investmentUpdateCmd} {
		c.Flags().StringVar(&investmentFlags.name, "name", "", "Investment name")
		c.Flags().StringVar(&investmentFlags.amount, "amount", "", "Amount invested")
		c.Flags().StringVar(&investmentFlags.date, "date", "", "Date (YYYY-MM-DD), default today")
		c.Flags().StringVar(&investmentFlags.category, "category", "", "Category value (see fintrack categories)")
		c.Flags().StringVar(&investmentFlags.notes, "notes", "", "Notes")
	}
	investmentAddCmd.MarkFlagRequired("name")
	investmentAddCmd.MarkFlagRequired("amount")
	investmentAddCmd.MarkFlagRequired("category")

	investmentListCmd.Flags().BoolVar(&investmentByCategory, "by-category", false, "Show totals per category")

	investmentCmd.AddCommand(investmentAddCmd, investmentListCmd, investmentUpdateCmd, investmentDeleteCmd)
}

func runInvestmentAdd(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	req, err := investmentFlags.create(a.Book.Now().Format(models.DateLayout))
	abortOnError(a, err, "invalid investment")
	if !a.Catalog.HasInvestment(req.Category) {
		slog.Warn("Category is not in the catalog", "category", req.Category)
	}

	inv, err := a.Book.Investments.AddInvestment(req)
	abortOnError(a, err, "failed to add investment")

	slog.Info("Investment added", "id", inv.ID, "category", inv.Category)
	fmt.Println(inv.ID)
}

func runInvestmentList(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	x := a.Book.Investments
	total := x.Total()
	w := newTable()

	if investmentByCategory {
		byCategory := x.ByCategory()
		fmt.Fprintln(w, "CATEGORY\tAMOUNT\tSHARE")
		for _, category := range slices.Sorted(maps.Keys(byCategory)) {
			amount := byCategory[category]
			share := "-"
			if total.IsPositive() {
				share = format.Percent(amount.Div(total))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", a.Catalog.InvestmentLabel(category), a.Money.Money(amount), share)
		}
	} else {
		fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tCATEGORY\tNAME")
		for _, inv := range x.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				inv.ID, format.Date(inv.Date), a.Money.Money(inv.Amount), a.Catalog.InvestmentLabel(inv.Category), inv.Name)
		}
	}
	fmt.Fprintf(w, "Total\t%s\t\n", a.Money.Money(total))
	w.Flush()
}

func runInvestmentUpdate(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	id := args[0]
	_, ok := a.Book.Investments.Get(id)
	mustFind(a, ok, "investment", id)

	req, err := investmentFlags.patch(changedOn(cmd))
	abortOnError(a, err, "invalid investment")

	err = a.Book.Investments.UpdateInvestment(id, req)
	abortOnError(a, err, "failed to update investment")
	slog.Info("Investment updated", "id", id)
}

func runInvestmentDelete(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	id := args[0]
	_, ok := a.Book.Investments.Get(id)
	mustFind(a, ok, "investment", id)

	a.Book.Investments.DeleteInvestment(id)
	slog.Info("Investment deleted", "id", id)
}
