package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/fintrack/internal/models"
	"github.com/pigeonworks-llc/fintrack/internal/store"
)

// Expenses holds bills to pay. It never touches account balances.
type Expenses struct {
	mu       sync.Mutex
	expenses collection[models.Expense]
	now      Clock
	logger   *slog.Logger
}

// NewExpenses creates an empty expense collection.
func NewExpenses(p Persister, now Clock, logger *slog.Logger) *Expenses {
	if logger == nil {
		logger = slog.Default()
	}
	return &Expenses{
		expenses: newCollection[models.Expense](store.CollectionExpenses, p, logger),
		now:      now,
		logger:   logger,
	}
}

// Load replaces the expenses with the stored snapshot.
func (x *Expenses) Load(ctx context.Context, rs store.RecordStore) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.expenses.load(ctx, rs)
}

// AddExpense registers an expense. An expense created as paid is stamped
// with today's date.
func (x *Expenses) AddExpense(req models.CreateExpenseRequest) (models.Expense, error) {
	e := models.Expense{
		ID:          newID(),
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		Category:    req.Category,
		Paid:        req.Paid,
	}
	if err := e.Validate(); err != nil {
		return models.Expense{}, err
	}
	if e.Paid {
		e.PaidDate = x.now.Today()
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.expenses.items = append(x.expenses.items, e)
	x.expenses.save()

	x.logger.Debug("expense added", "id", e.ID)
	return e, nil
}

// UpdateExpense merges the patch into the expense. The paid date is stamped
// or cleared only when the paid flag actually changes. Unknown ids are
// ignored.
func (x *Expenses) UpdateExpense(id string, req models.UpdateExpenseRequest) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	i := x.find(id)
	if i < 0 {
		return nil
	}
	merged := req.Apply(x.expenses.items[i])
	if err := merged.Validate(); err != nil {
		return err
	}
	if req.Paid != nil && *req.Paid != merged.Paid {
		merged.Paid, merged.PaidDate = x.paidState(*req.Paid)
	}
	x.expenses.items[i] = merged
	x.expenses.save()

	x.logger.Debug("expense updated", "id", id)
	return nil
}

// DeleteExpense removes the expense. Unknown ids are ignored.
func (x *Expenses) DeleteExpense(id string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	i := x.find(id)
	if i < 0 {
		return
	}
	x.expenses.remove(i)
	x.expenses.save()

	x.logger.Debug("expense deleted", "id", id)
}

// TogglePaid sets the paid flag and stamps or clears the paid date, even when
// the flag does not change. Unknown ids are ignored.
func (x *Expenses) TogglePaid(id string, paid bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	i := x.find(id)
	if i < 0 {
		return
	}
	x.expenses.items[i].Paid, x.expenses.items[i].PaidDate = x.paidState(paid)
	x.expenses.save()
}

// Get returns the expense with id.
func (x *Expenses) Get(id string) (models.Expense, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	i := x.find(id)
	if i < 0 {
		return models.Expense{}, false
	}
	return x.expenses.items[i], true
}

// List returns the expenses in insertion order.
func (x *Expenses) List() []models.Expense {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.expenses.list()
}

// Pending returns the unpaid expenses.
func (x *Expenses) Pending() []models.Expense {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.expenses.filter(func(e models.Expense) bool { return !e.Paid })
}

// Paid returns the paid expenses.
func (x *Expenses) Paid() []models.Expense {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.expenses.filter(func(e models.Expense) bool { return e.Paid })
}

// Total sums every expense.
func (x *Expenses) Total() decimal.Decimal {
	x.mu.Lock()
	defer x.mu.Unlock()
	return sumExpenses(x.expenses.items)
}

// TotalPending sums the unpaid expenses.
func (x *Expenses) TotalPending() decimal.Decimal {
	return sumExpenses(x.Pending())
}

// Upcoming returns unpaid expenses due within threshold days.
func (x *Expenses) Upcoming(threshold int) []models.Expense {
	x.mu.Lock()
	defer x.mu.Unlock()
	return upcoming(x.expenses.items, expenseDue, x.now(), threshold)
}

// Overdue returns unpaid expenses whose due date has passed.
func (x *Expenses) Overdue() []models.Expense {
	x.mu.Lock()
	defer x.mu.Unlock()
	return overdue(x.expenses.items, expenseDue, x.now())
}

func (x *Expenses) paidState(paid bool) (bool, string) {
	if paid {
		return true, x.now.Today()
	}
	return false, ""
}

func (x *Expenses) find(id string) int {
	return x.expenses.index(func(e models.Expense) bool { return e.ID == id })
}

func expenseDue(e models.Expense) (string, bool) { return e.DueDate, e.Paid }

func sumExpenses(items []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range items {
		total = total.Add(e.Amount)
	}
	return total
}
