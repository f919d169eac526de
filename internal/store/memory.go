package store

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process RecordStore. It is used by tests and by callers
// that do not need durability.
type Memory struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
	stats     map[string]CollectionStats

	// FailWith, when set, is returned by every Save.
	FailWith error
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		snapshots: make(map[string][]byte),
		stats:     make(map[string]CollectionStats),
	}
}

// Load returns a copy of the saved snapshot.
func (m *Memory) Load(ctx context.Context, collection string) ([]byte, error) {
	if collection == "" {
		return nil, ErrInvalidName
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.snapshots[collection]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of the snapshot.
func (m *Memory) Save(ctx context.Context, collection string, snapshot []byte) error {
	if collection == "" {
		return ErrInvalidName
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.snapshots[collection] = append([]byte(nil), snapshot...)
	st := m.stats[collection]
	st.Collection = collection
	st.Saves++
	st.Bytes = int64(len(snapshot))
	st.LastSaved = time.Now().UTC()
	m.stats[collection] = st
	return nil
}

// Stats returns the save statistics kept in memory.
func (m *Memory) Stats(ctx context.Context) ([]CollectionStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]CollectionStats, 0, len(m.stats))
	for _, name := range Collections {
		if st, ok := m.stats[name]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}
