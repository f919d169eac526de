package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Summary holds the headline figures of a book.
type Summary struct {
	TotalBalance     decimal.Decimal `json:"total_balance"`
	Accounts         int             `json:"accounts"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	PendingExpenses  int             `json:"pending_expenses"`
	TotalInvestments decimal.Decimal `json:"total_investments"`
	Investments      int             `json:"investments"`
	TotalPendingTax  decimal.Decimal `json:"total_pending_tax"`
	// Available is what remains of the balance after expenses and
	// investments, floored at zero.
	Available decimal.Decimal `json:"available"`
}

// Summary computes the headline figures.
func (b *Book) Summary() Summary {
	s := Summary{
		TotalBalance:     b.Accounts.TotalBalance(),
		Accounts:         b.Accounts.Len(),
		TotalExpenses:    b.Expenses.Total(),
		PendingExpenses:  len(b.Expenses.Pending()),
		TotalInvestments: b.Investments.Total(),
		Investments:      len(b.Investments.List()),
		TotalPendingTax:  b.Taxes.TotalPending(),
	}
	s.Available = decimal.Max(s.TotalBalance.Sub(s.TotalExpenses).Sub(s.TotalInvestments), decimal.Zero)
	return s
}

// AlertKind identifies an alert.
type AlertKind string

const (
	AlertPendingExpenses AlertKind = "pending_expenses"
	AlertOverdueExpenses AlertKind = "overdue_expenses"
	AlertUpcomingTaxes   AlertKind = "upcoming_taxes"
	AlertOverdueTaxes    AlertKind = "overdue_taxes"
)

// Alert is a notice about unpaid items.
type Alert struct {
	Kind        AlertKind `json:"kind"`
	Severity    string    `json:"severity"` // warning or error
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Count       int       `json:"count"`
}

// Alerts lists notices about unpaid expenses and taxes. Taxes due within
// upcomingDays days are reported as upcoming.
func (b *Book) Alerts(upcomingDays int) []Alert {
	var alerts []Alert

	if n := len(b.Expenses.Pending()); n > 0 {
		alerts = append(alerts, Alert{
			Kind:        AlertPendingExpenses,
			Severity:    "warning",
			Title:       "Pending Expenses",
			Description: fmt.Sprintf("You have %d unpaid expenses", n),
			Count:       n,
		})
	}
	if n := len(b.Expenses.Overdue()); n > 0 {
		alerts = append(alerts, Alert{
			Kind:        AlertOverdueExpenses,
			Severity:    "error",
			Title:       "Overdue Expenses",
			Description: fmt.Sprintf("You have %d expenses past their due date", n),
			Count:       n,
		})
	}
	if n := len(b.Taxes.Upcoming(upcomingDays)); n > 0 {
		alerts = append(alerts, Alert{
			Kind:        AlertUpcomingTaxes,
			Severity:    "error",
			Title:       "Upcoming Taxes",
			Description: fmt.Sprintf("You have %d taxes due soon", n),
			Count:       n,
		})
	}
	if n := len(b.Taxes.Overdue()); n > 0 {
		alerts = append(alerts, Alert{
			Kind:        AlertOverdueTaxes,
			Severity:    "error",
			Title:       "Overdue Taxes",
			Description: fmt.Sprintf("You have %d taxes past their due date", n),
			Count:       n,
		})
	}
	return alerts
}
