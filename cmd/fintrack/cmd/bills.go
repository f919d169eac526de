package cmd

import (
	"fmt"

	"github.com/pigeonworks-llc/fintrack/internal/app"
	"github.com/pigeonworks-llc/fintrack/internal/format"
	"github.com/pigeonworks-llc/fintrack/internal/ledger"
)

// billFilterValues selects bills by paid state or due date.
type billFilterValues struct {
	status string
	days   int
}

// billQueries are the list queries shared by expenses and taxes.
type billQueries[T any] struct {
	list     func() []T
	pending  func() []T
	paid     func() []T
	overdue  func() []T
	upcoming func(threshold int) []T
}

func selectBills[T any](f billFilterValues, q billQueries[T]) ([]T, error) {
	switch f.status {
	case "", "all":
		return q.list(), nil
	case "pending":
		return q.pending(), nil
	case "paid":
		return q.paid(), nil
	case "overdue":
		return q.overdue(), nil
	case "upcoming":
		return q.upcoming(f.days), nil
	default:
		return nil, fmt.Errorf("unknown status %q: use pending, paid, overdue or upcoming", f.status)
	}
}

// dueColumn describes a bill's due state for listings.
func dueColumn(a *app.App, dueDate string, paid bool, paidDate string) string {
	if paid {
		return "paid " + format.Date(paidDate)
	}
	days, err := ledger.DaysUntil(dueDate, a.Book.Now())
	if err != nil {
		return ""
	}
	label := format.Due(days)
	if ledger.Classify(days, a.Config.Alerts.DueSoonDays) != ledger.DueScheduled {
		label = "! " + label
	}
	return label
}
