package ledger

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/fintrack/internal/store"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// recorder is a synchronous Persister that remembers the last snapshot.
type recorder struct {
	mu    sync.Mutex
	saves map[string]int
	last  map[string][]byte
}

func newRecorder() *recorder {
	return &recorder{saves: map[string]int{}, last: map[string][]byte{}}
}

func (r *recorder) Save(collection string, snapshot []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves[collection]++
	r.last[collection] = snapshot
}

func (r *recorder) count(collection string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves[collection]
}

// fixedClock returns a clock stopped at the given local date and time.
func fixedClock(year int, month time.Month, day, hour int) Clock {
	t := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func newTestBook(t *testing.T, rs store.RecordStore) *Book {
	t.Helper()

	b, err := Open(context.Background(), rs, WithClock(fixedClock(2024, time.March, 15, 10)), WithLogger(discard))
	if err != nil {
		t.Fatalf("Failed to open book: %v", err)
	}
	t.Cleanup(func() {
		_ = b.Close()
	})
	return b
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func ptr[T any](v T) *T { return &v }

func assertBalance(t *testing.T, l *AccountLedger, id, want string) {
	t.Helper()
	acc, ok := l.Get(id)
	if !ok {
		t.Fatalf("account %s not found", id)
	}
	if !acc.Balance.Equal(dec(want)) {
		t.Errorf("balance of %s = %s, want %s", acc.Name, acc.Balance, want)
	}
}
