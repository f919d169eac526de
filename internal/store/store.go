// Package store persists collection snapshots. A snapshot is the serialized
// list of every record in one collection, written as a whole after each
// mutation.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a collection has never been saved.
	ErrNotFound = errors.New("collection not found")

	// ErrInvalidName is returned when an empty collection name is provided.
	ErrInvalidName = errors.New("invalid collection name")
)

// Collection names.
const (
	CollectionAccounts     = "accounts"
	CollectionTransactions = "transactions"
	CollectionExpenses     = "expenses"
	CollectionTaxes        = "taxes"
	CollectionInvestments  = "investments"
)

// Collections lists every collection the ledger keeps.
var Collections = []string{
	CollectionAccounts,
	CollectionTransactions,
	CollectionExpenses,
	CollectionTaxes,
	CollectionInvestments,
}

// RecordStore loads and saves collection snapshots.
type RecordStore interface {
	// Load returns the last saved snapshot, or ErrNotFound.
	Load(ctx context.Context, collection string) ([]byte, error)
	// Save replaces the snapshot of a collection.
	Save(ctx context.Context, collection string, snapshot []byte) error
}

// CollectionStats summarizes the writes made to one collection.
type CollectionStats struct {
	Collection string    `json:"collection"`
	Saves      int64     `json:"saves"`
	Bytes      int64     `json:"bytes"`
	LastSaved  time.Time `json:"last_saved"`
}

// StatsProvider is implemented by stores that keep save statistics.
type StatsProvider interface {
	Stats(ctx context.Context) ([]CollectionStats, error)
}
