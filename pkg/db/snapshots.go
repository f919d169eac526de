package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/pigeonworks-llc/fintrack/internal/store"
)

// SnapshotStore keeps collection snapshots in SQLite. It implements
// store.RecordStore and store.StatsProvider.
type SnapshotStore struct {
	conn *Connection
	now  func() time.Time
}

// NewSnapshotStore creates a SnapshotStore on an open connection.
func NewSnapshotStore(conn *Connection) *SnapshotStore {
	return &SnapshotStore{
		conn: conn,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Load returns the stored snapshot of a collection.
func (s *SnapshotStore) Load(ctx context.Context, collection string) ([]byte, error) {
	if collection == "" {
		return nil, store.ErrInvalidName
	}

	var data []byte
	err := s.conn.QueryRow(ctx, `SELECT data FROM snapshots WHERE collection = ?`, collection).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return data, nil
}

// Save replaces the snapshot of a collection and logs the write.
func (s *SnapshotStore) Save(ctx context.Context, collection string, snapshot []byte) error {
	if collection == "" {
		return store.ErrInvalidName
	}

	savedAt := s.now()
	err := s.conn.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snapshots (collection, data, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(collection) DO UPDATE SET
				data = excluded.data,
				updated_at = excluded.updated_at
		`, collection, snapshot, savedAt); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO save_log (collection, bytes, saved_at)
			VALUES (?, ?, ?)
		`, collection, len(snapshot), savedAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Stats retrieves save statistics per collection.
func (s *SnapshotStore) Stats(ctx context.Context) ([]store.CollectionStats, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT s.collection, COUNT(l.id), LENGTH(s.data), s.updated_at
		FROM snapshots s
		LEFT JOIN save_log l ON l.collection = s.collection
		GROUP BY s.collection
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	defer rows.Close()

	var stats []store.CollectionStats
	for rows.Next() {
		var st store.CollectionStats
		if err := rows.Scan(&st.Collection, &st.Saves, &st.Bytes, &st.LastSaved); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	slices.SortFunc(stats, func(a, b store.CollectionStats) int {
		return slices.Index(store.Collections, a.Collection) - slices.Index(store.Collections, b.Collection)
	})
	return stats, nil
}
