package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/fintrack/internal/models"
	"github.com/pigeonworks-llc/fintrack/internal/store"
)

// Investments holds recorded investments.
type Investments struct {
	mu          sync.Mutex
	investments collection[models.Investment]
	logger      *slog.Logger
}

// NewInvestments creates an empty investment collection.
func NewInvestments(p Persister, logger *slog.Logger) *Investments {
	if logger == nil {
		logger = slog.Default()
	}
	return &Investments{
		investments: newCollection[models.Investment](store.CollectionInvestments, p, logger),
		logger:      logger,
	}
}

// Load replaces the investments with the stored snapshot.
func (x *Investments) Load(ctx context.Context, rs store.RecordStore) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.investments.load(ctx, rs)
}

// AddInvestment records an investment.
func (x *Investments) AddInvestment(req models.CreateInvestmentRequest) (models.Investment, error) {
	inv := models.Investment{
		ID:       newID(),
		Name:     req.Name,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
		Notes:    req.Notes,
	}
	if err := inv.Validate(); err != nil {
		return models.Investment{}, err
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.investments.items = append(x.investments.items, inv)
	x.investments.save()

	x.logger.Debug("investment added", "id", inv.ID)
	return inv, nil
}

// UpdateInvestment merges the patch into the investment. Unknown ids are
// ignored.
func (x *Investments) UpdateInvestment(id string, req models.UpdateInvestmentRequest) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	i := x.find(id)
	if i < 0 {
		return nil
	}
	merged := req.Apply(x.investments.items[i])
	if err := merged.Validate(); err != nil {
		return err
	}
	x.investments.items[i] = merged
	x.investments.save()

	x.logger.Debug("investment updated", "id", id)
	return nil
}

// DeleteInvestment removes the investment. Unknown ids are ignored.
func (x *Investments) DeleteInvestment(id string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	i := x.find(id)
	if i < 0 {
		return
	}
	x.investments.remove(i)
	x.investments.save()

	x.logger.Debug("investment deleted", "id", id)
}

// Get returns the investment with id.
func (x *Investments) Get(id string) (models.Investment, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	i := x.find(id)
	if i < 0 {
		return models.Investment{}, false
	}
	return x.investments.items[i], true
}

// List returns the investments in insertion order.
func (x *Investments) List() []models.Investment {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.investments.list()
}

// Total sums every investment.
func (x *Investments) Total() decimal.Decimal {
	x.mu.Lock()
	defer x.mu.Unlock()
	total := decimal.Zero
	for _, inv := range x.investments.items {
		total = total.Add(inv.Amount)
	}
	return total
}

// ByCategory sums the investments of each category.
func (x *Investments) ByCategory() map[string]decimal.Decimal {
	x.mu.Lock()
	defer x.mu.Unlock()
	out := make(map[string]decimal.Decimal)
	for _, inv := range x.investments.items {
		out[inv.Category] = out[inv.Category].Add(inv.Amount)
	}
	return out
}

func (x *Investments) find(id string) int {
	return x.investments.index(func(inv models.Investment) bool { return inv.ID == id })
}
