package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/pigeonworks-llc/fintrack/internal/store"
)

// Persister receives the snapshot of a collection after every mutation.
// Implementations must not block on durable storage; store.Writer queues.
type Persister interface {
	Save(collection string, snapshot []byte)
}

// newID generates record identifiers.
var newID = uuid.NewString

// collection holds the records of one persisted collection in insertion
// order. It is not safe for concurrent use; owners guard it with their lock.
type collection[T any] struct {
	name    string
	items   []T
	persist Persister
	logger  *slog.Logger
}

func newCollection[T any](name string, p Persister, logger *slog.Logger) collection[T] {
	return collection[T]{
		name:    name,
		items:   make([]T, 0),
		persist: p,
		logger:  logger,
	}
}

// load replaces the records with the stored snapshot. A collection that was
// never saved loads empty.
func (c *collection[T]) load(ctx context.Context, rs store.RecordStore) error {
	data, err := rs.Load(ctx, c.name)
	if errors.Is(err, store.ErrNotFound) {
		c.items = make([]T, 0)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", c.name, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to load %s: %w", c.name, err)
	}
	if items == nil {
		items = make([]T, 0)
	}
	c.items = items
	c.logger.Debug("collection loaded", "collection", c.name, "records", len(items))
	return nil
}

// save hands the full snapshot to the persister.
func (c *collection[T]) save() {
	data, err := json.Marshal(c.items)
	if err != nil {
		c.logger.Error("failed to marshal collection", "collection", c.name, "error", err)
		return
	}
	c.persist.Save(c.name, data)
}

func (c *collection[T]) list() []T {
	return slices.Clone(c.items)
}

func (c *collection[T]) index(match func(T) bool) int {
	return slices.IndexFunc(c.items, match)
}

func (c *collection[T]) filter(match func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range c.items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *collection[T]) remove(i int) {
	c.items = slices.Delete(c.items, i, i+1)
}
