package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
)

func newTestBolt(t *testing.T) *Bolt {
	t.Helper()

	st, err := OpenBolt(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestBoltLoadSave(t *testing.T) {
	ctx := context.Background()
	st := newTestBolt(t)

	if _, err := st.Load(ctx, CollectionAccounts); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() on empty store error = %v, want ErrNotFound", err)
	}

	if err := st.Save(ctx, CollectionAccounts, []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := st.Save(ctx, CollectionAccounts, []byte(`[{"id":"a"},{"id":"b"}]`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := st.Load(ctx, CollectionAccounts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != `[{"id":"a"},{"id":"b"}]` {
		t.Errorf("Load() = %s, want the last snapshot", got)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if len(stats) != 1 || stats[0].Saves != 2 || stats[0].Collection != CollectionAccounts {
		t.Errorf("Stats() = %+v, want one entry with 2 saves", stats)
	}
}

func TestBoltRejectsEmptyName(t *testing.T) {
	st := newTestBolt(t)
	if err := st.Save(context.Background(), "", []byte("[]")); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Save(\"\") error = %v, want ErrInvalidName", err)
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fintrack.db")

	st, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt() error = %v", err)
	}
	if err := st.Save(ctx, CollectionTaxes, []byte(`[]`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	st, err = OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt() reopen error = %v", err)
	}
	defer st.Close()
	got, err := st.Load(ctx, CollectionTaxes)
	if err != nil || string(got) != "[]" {
		t.Errorf("Load() after reopen = %q, %v", got, err)
	}
}

func TestWriterSavesInOrder(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	w := NewWriter(mem, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer w.Close()

	for _, snap := range []string{"[1]", "[1,2]", "[1,2,3]"} {
		w.Save(CollectionExpenses, []byte(snap))
	}
	if err := w.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	got, err := mem.Load(ctx, CollectionExpenses)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != "[1,2,3]" {
		t.Errorf("Load() = %s, want the last queued snapshot", got)
	}
	stats, _ := mem.Stats(ctx)
	if len(stats) != 1 || stats[0].Saves != 3 {
		t.Errorf("Stats() = %+v, want 3 saves", stats)
	}
}

func TestWriterToleratesSaveFailure(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	mem.FailWith = errors.New("disk full")
	w := NewWriter(mem, slog.New(slog.NewTextHandler(io.Discard, nil)))

	w.Save(CollectionAccounts, []byte("[]"))
	if err := w.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if _, err := mem.Load(ctx, CollectionAccounts); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound after failed save", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Saves after close are dropped rather than panicking.
	w.Save(CollectionAccounts, []byte("[]"))
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
