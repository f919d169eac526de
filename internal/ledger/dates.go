package ledger

import (
	"fmt"
	"time"

	"github.com/pigeonworks-llc/fintrack/internal/models"
)

// Default thresholds, in days.
const (
	DefaultDueSoonDays  = 7
	DefaultUpcomingDays = 30
)

// DueStatus classifies an unpaid item by its due date.
type DueStatus string

const (
	DueOverdue   DueStatus = "overdue"
	DueSoon      DueStatus = "due_soon"
	DueScheduled DueStatus = "scheduled"
)

// DaysUntil returns the number of whole calendar days from the day of now to
// dueDate. It is negative when the due date has passed and 0 on the due date.
func DaysUntil(dueDate string, now time.Time) (int, error) {
	due, err := time.Parse(models.DateLayout, dueDate)
	if err != nil {
		return 0, fmt.Errorf("invalid due date %q: %w", dueDate, err)
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24), nil
}

// Classify maps a DaysUntil result to a status. Items due within dueSoon
// days, today included, are due soon.
func Classify(days, dueSoon int) DueStatus {
	switch {
	case days < 0:
		return DueOverdue
	case days <= dueSoon:
		return DueSoon
	default:
		return DueScheduled
	}
}

// dueFilter selects unpaid items whose days-until value satisfies keep.
// Items with an unparsable due date are skipped.
func dueFilter[T any](items []T, due func(T) (string, bool), now time.Time, keep func(days int) bool) []T {
	out := make([]T, 0)
	for _, item := range items {
		date, paid := due(item)
		if paid {
			continue
		}
		days, err := DaysUntil(date, now)
		if err != nil {
			continue
		}
		if keep(days) {
			out = append(out, item)
		}
	}
	return out
}

func upcoming[T any](items []T, due func(T) (string, bool), now time.Time, threshold int) []T {
	return dueFilter(items, due, now, func(days int) bool { return days >= 0 && days <= threshold })
}

func overdue[T any](items []T, due func(T) (string, bool), now time.Time) []T {
	return dueFilter(items, due, now, func(days int) bool { return days < 0 })
}
