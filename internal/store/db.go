package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrDuplicateName signals a unique-name collision on artists or tags.
var ErrDuplicateName = errors.New("name already exists")

// ErrAlreadyAttached signals a duplicate track/tag association.
var ErrAlreadyAttached = errors.New("tag already attached to track")

// dbOps is the subset of sqlx operations shared by *sqlx.DB and *sqlx.Tx,
// so every store method works both inside and outside a transaction.
type dbOps interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// DB is the unit-of-work handle for all persistence. A DB returned by
// RunInTx is bound to that transaction; the zero-cost root handle autocommits.
type DB struct {
	dbOps
	root *sqlx.DB
}

func NewSQLiteDB(dsn string) (*DB, error) {
	// foreign_keys and busy_timeout are per-connection state, so they go in
	// the DSN where the driver applies them to every pooled connection. An
	// Exec would only configure whichever connection happened to run it.
	db, err := sqlx.Open("sqlite", dsn+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(30000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// Journal mode persists in the database file; one Exec is enough.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	// Apply schema
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{dbOps: db, root: db}, nil
}

func (db *DB) Close() error {
	return db.root.Close()
}

// RunInTx runs fn against a transaction-bound DB and commits if fn returns
// nil. Any other exit path, including a panic, rolls the transaction back.
func (db *DB) RunInTx(ctx context.Context, fn func(tx *DB) error) error {
	tx, err := db.root.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	txDB := &DB{dbOps: tx, root: db.root}
	if err := fn(txDB); err != nil {
		return err
	}
	return tx.Commit()
}

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
// The modernc driver exposes no typed error for this, so match the message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
