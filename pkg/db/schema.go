// Package db provides a SQLite record store for collection snapshots and
// their save history.
package db

import "context"

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Snapshots table
-- Holds the latest JSON snapshot of each collection
CREATE TABLE IF NOT EXISTS snapshots (
    collection TEXT PRIMARY KEY,       -- 'accounts', 'transactions', ...
    data BLOB NOT NULL,                -- JSON array of records
    updated_at TIMESTAMP NOT NULL
);

-- Save log table
-- One row per snapshot write
CREATE TABLE IF NOT EXISTS save_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    collection TEXT NOT NULL,
    bytes INTEGER NOT NULL,
    saved_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_save_log_collection
    ON save_log(collection, saved_at);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(ctx context.Context, conn *Connection) error {
	if _, err := conn.Exec(ctx, Schema); err != nil {
		return err
	}
	return nil
}
