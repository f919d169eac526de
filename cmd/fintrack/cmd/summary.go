package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var alertDays int

// summaryCmd represents the summary command.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Display balances and totals",
	Long: `Display the total balance, expense, investment and pending tax
totals, and the amount still available after expenses and investments.

Example:
  fintrack summary`,
	Args: cobra.NoArgs,
	Run:  runSummary,
}

// alertsCmd represents the alerts command.
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Display pending and overdue bills",
	Args:  cobra.NoArgs,
	Run:   runAlerts,
}

func init() {
	alertsCmd.Flags().IntVar(&alertDays, "days", 0, "Upcoming tax window in days (default FINTRACK_UPCOMING_DAYS)")
}

func runSummary(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	s := a.Book.Summary()

	fmt.Println("\n=== Summary ===")
	fmt.Printf("Total balance:      %s (%d accounts)\n", a.Money.Money(s.TotalBalance), s.Accounts)
	fmt.Printf("Total expenses:     %s (%d pending)\n", a.Money.Money(s.TotalExpenses), s.PendingExpenses)
	fmt.Printf("Total investments:  %s (%d)\n", a.Money.Money(s.TotalInvestments), s.Investments)
	fmt.Printf("Pending taxes:      %s\n", a.Money.Money(s.TotalPendingTax))
	fmt.Printf("Available:          %s\n", a.Money.Money(s.Available))

	if acc, ok := a.Book.Accounts.MainAccount(); ok {
		fmt.Printf("Main account:       %s (%s)\n", acc.Name, a.Money.Money(acc.Balance))
	}
	fmt.Println()
}

func runAlerts(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	days := alertDays
	if !cmd.Flags().Changed("days") {
		days = a.Config.Alerts.UpcomingDays
	}

	alerts := a.Book.Alerts(days)
	if len(alerts) == 0 {
		fmt.Println("No alerts")
		return
	}
	for _, alert := range alerts {
		fmt.Printf("[%s] %s: %s\n", alert.Severity, alert.Title, alert.Description)
	}
}
