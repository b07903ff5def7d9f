// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/splitease/splitease/internal/storage"
	"github.com/splitease/splitease/internal/watch"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	hub *watch.Hub
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
// Committed writes are announced on hub; a nil hub gets a private one.
func New(dbPath string, hub *watch.Hub) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)

	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Writers serialize in SQLite anyway; one connection avoids SQLITE_BUSY between them.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if hub == nil {
		hub = watch.NewHub()
	}
	return &SQLiteStore{db: db, hub: hub}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Subscribe delivers a signal after each committed write to ownerID's records.
func (s *SQLiteStore) Subscribe(ownerID string) (<-chan struct{}, func()) {
	return s.hub.Subscribe(ownerID)
}

// Subscribers reports how many watchers are attached to ownerID.
func (s *SQLiteStore) Subscribers(ownerID string) int {
	return s.hub.Subscribers(ownerID)
}

// withTx runs fn in a transaction and announces the write to ownerID's subscribers
// once it commits.
func (s *SQLiteStore) withTx(ctx context.Context, ownerID string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.hub.Publish(ownerID)
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// LoadRecords reads every expense, friend and group owned by ownerID in one read
// transaction, so the balance engine never sees a half-applied write.
func (s *SQLiteStore) LoadRecords(ctx context.Context, ownerID string) (*storage.Records, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expenses, err := listExpenses(ctx, tx, ownerID)
	if err != nil {
		return nil, err
	}
	friends, err := listFriends(ctx, tx, ownerID)
	if err != nil {
		return nil, err
	}
	groups, err := listGroups(ctx, tx, ownerID)
	if err != nil {
		return nil, err
	}

	return &storage.Records{Expenses: expenses, Friends: friends, Groups: groups}, nil
}

// placeholders returns "?, ?, ..." with n placeholders, for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, '?')
	}
	return string(b)
}
