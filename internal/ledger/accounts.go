package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/fintrack/internal/models"
	"github.com/pigeonworks-llc/fintrack/internal/store"
)

// Delta is a signed amount applied to an account balance.
type Delta struct {
	AccountID string
	Amount    decimal.Decimal
}

// Neg returns the delta that cancels d.
func (d Delta) Neg() Delta {
	return Delta{AccountID: d.AccountID, Amount: d.Amount.Neg()}
}

// AccountLedger owns the accounts and is the only place balances change.
type AccountLedger struct {
	mu       sync.Mutex
	accounts collection[models.Account]
	logger   *slog.Logger
}

// NewAccountLedger creates an empty ledger persisting through p.
func NewAccountLedger(p Persister, logger *slog.Logger) *AccountLedger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountLedger{
		accounts: newCollection[models.Account](store.CollectionAccounts, p, logger),
		logger:   logger,
	}
}

// Load replaces the accounts with the stored snapshot. A snapshot without a
// single main account is repaired in memory: the first main account wins, or
// the first account when none is flagged.
func (l *AccountLedger) Load(ctx context.Context, rs store.RecordStore) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.accounts.load(ctx, rs); err != nil {
		return err
	}
	if len(l.accounts.items) == 0 {
		return nil
	}
	primary := l.accounts.index(func(a models.Account) bool { return a.IsMain })
	if primary < 0 {
		primary = 0
	}
	for i := range l.accounts.items {
		l.accounts.items[i].IsMain = i == primary
	}
	return nil
}

// AddAccount opens an account. The first account, or one requested as main,
// becomes the main account and every other account loses the flag.
func (l *AccountLedger) AddAccount(req models.CreateAccountRequest) (models.Account, error) {
	if err := req.Validate(); err != nil {
		return models.Account{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	acc := models.Account{
		ID:      newID(),
		Name:    req.Name,
		Balance: req.Balance,
		IsMain:  req.IsMain,
	}
	if acc.IsMain || len(l.accounts.items) == 0 {
		l.clearMain()
		acc.IsMain = true
	}
	l.accounts.items = append(l.accounts.items, acc)
	l.accounts.save()

	l.logger.Debug("account added", "id", acc.ID, "main", acc.IsMain)
	return acc, nil
}

// UpdateAccount merges the patch into the account. Unknown ids are ignored.
// Promoting an account demotes the previous main account; demoting the main
// account directly is ignored since another account must take its place.
func (l *AccountLedger) UpdateAccount(id string, req models.UpdateAccountRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.find(id)
	if i < 0 {
		return nil
	}
	if req.IsMain != nil && *req.IsMain && !l.accounts.items[i].IsMain {
		l.clearMain()
		l.accounts.items[i].IsMain = true
	}
	if req.Name != nil {
		l.accounts.items[i].Name = *req.Name
	}
	l.accounts.save()

	l.logger.Debug("account updated", "id", id)
	return nil
}

// DeleteAccount removes the account. When the main account goes, the first
// remaining account is promoted. Transactions referencing it are kept.
func (l *AccountLedger) DeleteAccount(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.find(id)
	if i < 0 {
		return
	}
	wasMain := l.accounts.items[i].IsMain
	l.accounts.remove(i)
	if wasMain && len(l.accounts.items) > 0 {
		l.accounts.items[0].IsMain = true
	}
	l.accounts.save()

	l.logger.Debug("account deleted", "id", id, "was_main", wasMain)
}

// ApplyBalanceDelta adds amount to the balance of the account. Unknown ids
// are ignored.
func (l *AccountLedger) ApplyBalanceDelta(id string, amount decimal.Decimal) {
	l.ApplyBalanceDeltas(Delta{AccountID: id, Amount: amount})
}

// ApplyBalanceDeltas applies every delta as one change: no reader observes a
// partially applied batch and the snapshot is saved once.
func (l *AccountLedger) ApplyBalanceDeltas(deltas ...Delta) {
	l.mu.Lock()
	defer l.mu.Unlock()

	changed := false
	for _, d := range deltas {
		i := l.find(d.AccountID)
		if i < 0 {
			l.logger.Debug("balance delta for unknown account ignored", "id", d.AccountID)
			continue
		}
		l.accounts.items[i].Balance = l.accounts.items[i].Balance.Add(d.Amount)
		changed = true
	}
	if changed {
		l.accounts.save()
	}
}

// Get returns the account with id.
func (l *AccountLedger) Get(id string) (models.Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.find(id)
	if i < 0 {
		return models.Account{}, false
	}
	return l.accounts.items[i], true
}

// List returns the accounts in insertion order.
func (l *AccountLedger) List() []models.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts.list()
}

// MainAccount returns the main account, if any account exists.
func (l *AccountLedger) MainAccount() (models.Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.accounts.index(func(a models.Account) bool { return a.IsMain })
	if i < 0 {
		return models.Account{}, false
	}
	return l.accounts.items[i], true
}

// TotalBalance sums the balances of every account.
func (l *AccountLedger) TotalBalance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := decimal.Zero
	for _, a := range l.accounts.items {
		total = total.Add(a.Balance)
	}
	return total
}

// Len returns the number of accounts.
func (l *AccountLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.accounts.items)
}

func (l *AccountLedger) find(id string) int {
	return l.accounts.index(func(a models.Account) bool { return a.ID == id })
}

func (l *AccountLedger) clearMain() {
	for i := range l.accounts.items {
		l.accounts.items[i].IsMain = false
	}
}
