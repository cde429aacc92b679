// Package sqlstore persists league records in Postgres or SQLite through
// database/sql. Both drivers share one set of queries.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lib/pq"
	"github.com/mcdev12/rosterbot/go/internal/sqlutil"
	"github.com/mcdev12/rosterbot/go/internal/store"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

// Store is a database/sql backed store.Store
type Store struct {
	db      *sql.DB
	dialect Dialect
}

var _ store.Store = (*Store)(nil)

// New wraps an open database handle and applies the schema
func New(ctx context.Context, db *sql.DB, d Dialect) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("sql db is required")
	}
	if err := Migrate(ctx, db, d); err != nil {
		return nil, err
	}
	return &Store{db: db, dialect: d}, nil
}

// OpenPostgres connects to Postgres with the given DSN
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	database, err := sql.Open(Postgres.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	if err := database.PingContext(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	s, err := New(ctx, database, Postgres)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	return s, nil
}

// OpenSQLite opens (creating if needed) a SQLite database file
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	database, err := sql.Open(SQLite.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// one writer at a time; SQLite would otherwise surface SQLITE_BUSY on lock upgrades
	database.SetMaxOpenConns(1)
	if err := database.PingContext(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	s, err := New(ctx, database, SQLite)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	return s, nil
}

// DB exposes the underlying handle, used to load the player universe
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect reports which database this store talks to
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// View runs fn in a transaction whose write methods fail with store.ErrReadOnly
func (s *Store) View(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.run(ctx, false, fn)
}

// Update runs fn in a transaction that commits when fn returns nil
func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.run(ctx, true, fn)
}

func (s *Store) run(ctx context.Context, writable bool, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	newQueries := func(tx *sql.Tx) *queries {
		return &queries{tx: tx, dialect: s.dialect, writable: writable}
	}
	body := func(q *queries) error { return fn(q) }
	if !writable {
		return sqlutil.View(ctx, s.db, newQueries, body)
	}
	return sqlutil.Run(ctx, s.db, newQueries, body)
}

// Close closes the database handle
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
