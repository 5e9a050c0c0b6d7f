package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the KVStore interface
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite-backed KV store at the given path.
// Use ":memory:" for an ephemeral store.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	query := `
	CREATE TABLE IF NOT EXISTS kv_entries (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (namespace, key)
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Get retrieves the value stored under a namespace and key
func (s *SQLiteStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	query := `SELECT value FROM kv_entries WHERE namespace = ? AND key = ?`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query KV entry: %w", err)
	}

	return value, nil
}

// Set stores a value under a namespace and key
func (s *SQLiteStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	query := `
	INSERT OR REPLACE INTO kv_entries (namespace, key, value, updated_at)
	VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, namespace, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to store KV entry: %w", err)
	}

	return nil
}

// Delete removes a stored value
func (s *SQLiteStore) Delete(ctx context.Context, namespace, key string) error {
	query := `DELETE FROM kv_entries WHERE namespace = ? AND key = ?`

	_, err := s.db.ExecContext(ctx, query, namespace, key)
	if err != nil {
		return fmt.Errorf("failed to delete KV entry: %w", err)
	}

	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
