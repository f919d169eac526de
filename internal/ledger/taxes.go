package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/fintrack/internal/models"
	"github.com/pigeonworks-llc/fintrack/internal/store"
)

// Taxes holds tax obligations. It never touches account balances.
type Taxes struct {
	mu     sync.Mutex
	taxes  collection[models.Tax]
	now    Clock
	logger *slog.Logger
}

// NewTaxes creates an empty tax collection.
func NewTaxes(p Persister, now Clock, logger *slog.Logger) *Taxes {
	if logger == nil {
		logger = slog.Default()
	}
	return &Taxes{
		taxes:  newCollection[models.Tax](store.CollectionTaxes, p, logger),
		now:    now,
		logger: logger,
	}
}

// Load replaces the taxes with the stored snapshot.
func (x *Taxes) Load(ctx context.Context, rs store.RecordStore) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.taxes.load(ctx, rs)
}

// AddTax registers a tax. A tax created as paid is stamped with today's date.
func (x *Taxes) AddTax(req models.CreateTaxRequest) (models.Tax, error) {
	t := models.Tax{
		ID:      newID(),
		Name:    req.Name,
		Amount:  req.Amount,
		DueDate: req.DueDate,
		Notes:   req.Notes,
		Paid:    req.Paid,
	}
	if err := t.Validate(); err != nil {
		return models.Tax{}, err
	}
	if t.Paid {
		t.PaidDate = x.now.Today()
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.taxes.items = append(x.taxes.items, t)
	x.taxes.save()

	x.logger.Debug("tax added", "id", t.ID)
	return t, nil
}

// UpdateTax merges the patch into the tax, stamping or clearing the paid date
// when the paid flag changes. Unknown ids are ignored.
func (x *Taxes) UpdateTax(id string, req models.UpdateTaxRequest) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	i := x.find(id)
	if i < 0 {
		return nil
	}
	merged := req.Apply(x.taxes.items[i])
	if err := merged.Validate(); err != nil {
		return err
	}
	if req.Paid != nil && *req.Paid != merged.Paid {
		merged.Paid, merged.PaidDate = x.paidState(*req.Paid)
	}
	x.taxes.items[i] = merged
	x.taxes.save()

	x.logger.Debug("tax updated", "id", id)
	return nil
}

// DeleteTax removes the tax. Unknown ids are ignored.
func (x *Taxes) DeleteTax(id string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	i := x.find(id)
	if i < 0 {
		return
	}
	x.taxes.remove(i)
	x.taxes.save()

	x.logger.Debug("tax deleted", "id", id)
}

// TogglePaid sets the paid flag and stamps or clears the paid date
// unconditionally. Unknown ids are ignored.
func (x *Taxes) TogglePaid(id string, paid bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	i := x.find(id)
	if i < 0 {
		return
	}
	x.taxes.items[i].Paid, x.taxes.items[i].PaidDate = x.paidState(paid)
	x.taxes.save()
}

// Get returns the tax with id.
func (x *Taxes) Get(id string) (models.Tax, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	i := x.find(id)
	if i < 0 {
		return models.Tax{}, false
	}
	return x.taxes.items[i], true
}

// List returns the taxes in insertion order.
func (x *Taxes) List() []models.Tax {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.taxes.list()
}

// Pending returns the unpaid taxes.
func (x *Taxes) Pending() []models.Tax {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.taxes.filter(func(t models.Tax) bool { return !t.Paid })
}

// Paid returns the paid taxes.
func (x *Taxes) Paid() []models.Tax {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.taxes.filter(func(t models.Tax) bool { return t.Paid })
}

// Total sums every tax.
func (x *Taxes) Total() decimal.Decimal {
	x.mu.Lock()
	defer x.mu.Unlock()
	return sumTaxes(x.taxes.items)
}

// TotalPending sums the unpaid taxes.
func (x *Taxes) TotalPending() decimal.Decimal {
	return sumTaxes(x.Pending())
}

// Upcoming returns unpaid taxes due within threshold days.
func (x *Taxes) Upcoming(threshold int) []models.Tax {
	x.mu.Lock()
	defer x.mu.Unlock()
	return upcoming(x.taxes.items, taxDue, x.now(), threshold)
}

// Overdue returns unpaid taxes whose due date has passed.
func (x *Taxes) Overdue() []models.Tax {
	x.mu.Lock()
	defer x.mu.Unlock()
	return overdue(x.taxes.items, taxDue, x.now())
}

func (x *Taxes) paidState(paid bool) (bool, string) {
	if paid {
		return true, x.now.Today()
	}
	return false, ""
}

func (x *Taxes) find(id string) int {
	return x.taxes.index(func(t models.Tax) bool { return t.ID == id })
}

func taxDue(t models.Tax) (string, bool) { return t.DueDate, t.Paid }

func sumTaxes(items []models.Tax) decimal.Decimal {
	total := decimal.Zero
	for _, t := range items {
		total = total.Add(t.Amount)
	}
	return total
}
