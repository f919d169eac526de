package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pigeonworks-llc/fintrack/internal/models"
	"github.com/pigeonworks-llc/fintrack/internal/store"
)

// EffectOf returns the balance deltas a transaction causes. A transfer
// without a destination has no effect.
func EffectOf(tx models.Transaction) []Delta {
	switch tx.Type {
	case models.TransactionIncome:
		return []Delta{{AccountID: tx.AccountID, Amount: tx.Amount}}
	case models.TransactionExpense:
		return []Delta{{AccountID: tx.AccountID, Amount: tx.Amount.Neg()}}
	case models.TransactionTransfer:
		if tx.ToAccountID == "" {
			return nil
		}
		return []Delta{
			{AccountID: tx.AccountID, Amount: tx.Amount.Neg()},
			{AccountID: tx.ToAccountID, Amount: tx.Amount},
		}
	}
	return nil
}

// reversal returns the deltas that undo the effect of tx.
func reversal(tx models.Transaction) []Delta {
	effect := EffectOf(tx)
	out := make([]Delta, len(effect))
	for i, d := range effect {
		out[i] = d.Neg()
	}
	return out
}

// TransactionEngine owns the transactions and keeps account balances in line
// with them. Edits and deletes undo the stored effect before applying the new
// one.
type TransactionEngine struct {
	mu       sync.Mutex
	txs      collection[models.Transaction]
	accounts *AccountLedger
	logger   *slog.Logger
}

// NewTransactionEngine creates an empty engine that moves balances in
// accounts.
func NewTransactionEngine(accounts *AccountLedger, p Persister, logger *slog.Logger) *TransactionEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionEngine{
		txs:      newCollection[models.Transaction](store.CollectionTransactions, p, logger),
		accounts: accounts,
		logger:   logger,
	}
}

// Load replaces the transactions with the stored snapshot. Balances are not
// recomputed; the account snapshot already contains their effect.
func (e *TransactionEngine) Load(ctx context.Context, rs store.RecordStore) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.txs.load(ctx, rs)
}

// AddTransaction records a transaction and applies its effect.
func (e *TransactionEngine) AddTransaction(req models.CreateTransactionRequest) (models.Transaction, error) {
	tx := req.Transaction(newID())
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.accounts.ApplyBalanceDeltas(EffectOf(tx)...)
	e.txs.items = append(e.txs.items, tx)
	e.txs.save()

	e.logger.Debug("transaction added", "id", tx.ID, "type", tx.Type, "amount", tx.Amount.String())
	return tx, nil
}

// UpdateTransaction merges the patch into the transaction. The old effect is
// reversed and the merged one applied in a single balance batch. Unknown ids
// are ignored; an invalid merged record changes nothing.
func (e *TransactionEngine) UpdateTransaction(id string, req models.UpdateTransactionRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.find(id)
	if i < 0 {
		return nil
	}
	old := e.txs.items[i]
	merged := req.Apply(old)
	if err := merged.Validate(); err != nil {
		return err
	}

	deltas := append(reversal(old), EffectOf(merged)...)
	e.accounts.ApplyBalanceDeltas(deltas...)
	e.txs.items[i] = merged
	e.txs.save()

	e.logger.Debug("transaction updated", "id", id)
	return nil
}

// DeleteTransaction removes the transaction and reverses its effect. Unknown
// ids are ignored.
func (e *TransactionEngine) DeleteTransaction(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.find(id)
	if i < 0 {
		return
	}
	e.accounts.ApplyBalanceDeltas(reversal(e.txs.items[i])...)
	e.txs.remove(i)
	e.txs.save()

	e.logger.Debug("transaction deleted", "id", id)
}

// Get returns the transaction with id.
func (e *TransactionEngine) Get(id string) (models.Transaction, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.find(id)
	if i < 0 {
		return models.Transaction{}, false
	}
	return e.txs.items[i], true
}

// List returns the transactions in insertion order.
func (e *TransactionEngine) List() []models.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.txs.list()
}

// ByAccount returns the transactions touching the account, as source or as
// transfer destination.
func (e *TransactionEngine) ByAccount(accountID string) []models.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.txs.filter(func(tx models.Transaction) bool {
		return tx.AccountID == accountID || (tx.IsTransfer() && tx.ToAccountID == accountID)
	})
}

// ByType returns the transactions of one type.
func (e *TransactionEngine) ByType(t models.TransactionType) []models.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.txs.filter(func(tx models.Transaction) bool { return tx.Type == t })
}

// ByDateRange returns the transactions dated within [start, end]. Both bounds
// are YYYY-MM-DD dates; an empty bound is open.
func (e *TransactionEngine) ByDateRange(start, end string) ([]models.Transaction, error) {
	for _, bound := range []string{start, end} {
		if bound == "" {
			continue
		}
		if _, err := time.Parse(models.DateLayout, bound); err != nil {
			return nil, &models.ValidationError{Fields: []models.FieldError{
				{Field: "date", Message: "range bounds must be dates in YYYY-MM-DD format"},
			}}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.txs.filter(func(tx models.Transaction) bool {
		// ISO dates order lexically.
		return (start == "" || tx.Date >= start) && (end == "" || tx.Date <= end)
	}), nil
}

func (e *TransactionEngine) find(id string) int {
	return e.txs.index(func(tx models.Transaction) bool { return tx.ID == id })
}
