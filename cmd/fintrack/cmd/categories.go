package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/fintrack/pkg/catalog"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List expense and investment categories",
	Long: `List the category values accepted for expenses and investments.
Labels come from categories.yaml in the data root when present.`,
	Args: cobra.NoArgs,
	Run:  runCategories,
}

func runCategories(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	w := newTable()
	printSection := func(title string, categories []catalog.Category) {
		fmt.Fprintf(w, "%s\t\n", title)
		for _, c := range categories {
			fmt.Fprintf(w, "  %s\t%s\n", c.Value, c.Label)
		}
	}
	printSection("Expense", a.Catalog.Expense())
	printSection("Investment", a.Catalog.Investment())
	printSection("Transaction types", a.Catalog.TransactionTypes())
	w.Flush()
}
