// Package ledger keeps accounts, transactions, expenses, taxes and
// investments in memory and persists every change as a collection snapshot.
//
// Account balances only move through AccountLedger.ApplyBalanceDeltas. The
// TransactionEngine records income, expenses and transfers and, when one is
// edited or deleted, reverses the stored effect before applying the new one.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pigeonworks-llc/fintrack/internal/models"
	"github.com/pigeonworks-llc/fintrack/internal/store"
)

// Clock returns the current time.
type Clock func() time.Time

// Today returns the current date as YYYY-MM-DD.
func (c Clock) Today() string {
	return c().Format(models.DateLayout)
}

// Book owns every collection of one user's finances.
type Book struct {
	Accounts     *AccountLedger
	Transactions *TransactionEngine
	Expenses     *Expenses
	Taxes        *Taxes
	Investments  *Investments

	writer *store.Writer
	now    Clock
	logger *slog.Logger
}

type options struct {
	now    Clock
	logger *slog.Logger
}

// Option configures Open.
type Option func(*options)

// WithClock sets the clock used for paid dates and due-date queries.
func WithClock(now Clock) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger used by every collection.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Open builds a Book on rs and loads every collection from it. Writes are
// queued to rs in the background; Close drains them.
func Open(ctx context.Context, rs store.RecordStore, opts ...Option) (*Book, error) {
	o := options{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	w := store.NewWriter(rs, o.logger)
	accounts := NewAccountLedger(w, o.logger)
	b := &Book{
		Accounts:     accounts,
		Transactions: NewTransactionEngine(accounts, w, o.logger),
		Expenses:     NewExpenses(w, o.now, o.logger),
		Taxes:        NewTaxes(w, o.now, o.logger),
		Investments:  NewInvestments(w, o.logger),
		writer:       w,
		now:          o.now,
		logger:       o.logger,
	}

	loaders := []interface {
		Load(context.Context, store.RecordStore) error
	}{b.Accounts, b.Transactions, b.Expenses, b.Taxes, b.Investments}
	for _, l := range loaders {
		if err := l.Load(ctx, rs); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	o.logger.Debug("book opened",
		"accounts", b.Accounts.Len(),
		"transactions", len(b.Transactions.List()),
	)
	return b, nil
}

// Flush waits for queued snapshot writes.
func (b *Book) Flush(ctx context.Context) error {
	if err := b.writer.Flush(ctx); err != nil {
		return fmt.Errorf("failed to flush book: %w", err)
	}
	return nil
}

// Close drains queued writes. The record store itself stays open.
func (b *Book) Close() error {
	return b.writer.Close()
}

// Now returns the book's current time.
func (b *Book) Now() time.Time {
	return b.now()
}
