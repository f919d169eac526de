package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names.
const (
	bucketSnapshots = "snapshots"
	bucketStats     = "stats"
)

// Bolt is a RecordStore backed by a bbolt database file. Each collection is a
// key in the snapshots bucket.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database at dbPath and initializes buckets.
func OpenBolt(dbPath string) (*Bolt, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{bucketSnapshots, bucketStats} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

// Close closes the database.
func (s *Bolt) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Bolt) Path() string {
	return s.db.Path()
}

// Load retrieves the snapshot of a collection.
func (s *Bolt) Load(ctx context.Context, collection string) ([]byte, error) {
	if collection == "" {
		return nil, ErrInvalidName
	}
	var snapshot []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSnapshots))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketSnapshots)
		}

		data := b.Get([]byte(collection))
		if data == nil {
			return ErrNotFound
		}

		// Copy the value since it's only valid during the transaction.
		snapshot = make([]byte, len(data))
		copy(snapshot, data)
		return nil
	})
	return snapshot, err
}

// Save stores the snapshot of a collection and updates its statistics in the
// same transaction.
func (s *Bolt) Save(ctx context.Context, collection string, snapshot []byte) error {
	if collection == "" {
		return ErrInvalidName
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSnapshots))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketSnapshots)
		}
		if err := b.Put([]byte(collection), snapshot); err != nil {
			return err
		}

		sb := tx.Bucket([]byte(bucketStats))
		if sb == nil {
			return fmt.Errorf("bucket %s not found", bucketStats)
		}
		stats := CollectionStats{Collection: collection}
		if data := sb.Get([]byte(collection)); data != nil {
			if err := json.Unmarshal(data, &stats); err != nil {
				return fmt.Errorf("failed to unmarshal stats: %w", err)
			}
		}
		stats.Saves++
		stats.Bytes = int64(len(snapshot))
		stats.LastSaved = time.Now().UTC()

		data, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		return sb.Put([]byte(collection), data)
	})
}

// Stats returns the save statistics of every collection written so far.
func (s *Bolt) Stats(ctx context.Context) ([]CollectionStats, error) {
	var out []CollectionStats
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketStats))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketStats)
		}
		return b.ForEach(func(k, v []byte) error {
			var st CollectionStats
			if err := json.Unmarshal(v, &st); err != nil {
				return fmt.Errorf("failed to unmarshal stats for %s: %w", k, err)
			}
			out = append(out, st)
			return nil
		})
	})
	return out, err
}
