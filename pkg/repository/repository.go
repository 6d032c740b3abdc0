// Package repository runs typed queries over database/sql and reports
// driver failures as the calling store's domain errors.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation  = "23505"
	pgCheckViolation   = "23514"
	pgNotNullViolation = "23502"
)

// Querier is implemented by *sql.DB, *sql.Tx, and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Scanner abstracts row scanning for use with query helpers.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanFunc converts a Scanner into a typed value.
type ScanFunc[T any] func(Scanner) (T, error)

// Errors names the sentinels a store reports driver failures as.
type Errors struct {
	NotFound error
	Conflict error
	WriteErr error
}

// Read maps a failed read. No rows becomes NotFound and constraint
// violations become Conflict.
func (e Errors) Read(err error) error {
	return MapError(err, e.NotFound, e.Conflict)
}

// Write maps a failed write. The result always matches e.WriteErr and keeps
// the driver error in the chain for logging.
func (e Errors) Write(err error) error {
	if err == nil {
		return nil
	}
	mapped := MapError(err, e.WriteErr, e.Conflict)
	if errors.Is(mapped, e.WriteErr) {
		return mapped
	}
	return fmt.Errorf("%w: %w", e.WriteErr, mapped)
}

// MapError translates sql.ErrNoRows to notFoundErr and PostgreSQL
// unique, check, and not-null violations to conflictErr. Other errors are
// returned unchanged.
func MapError(err error, notFoundErr, conflictErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgCheckViolation, pgNotNullViolation:
			return fmt.Errorf("%w: %s", conflictErr, pgErr.ConstraintName)
		}
	}

	return err
}

// WithTx runs fn in a transaction, committing on success and rolling back
// on any error.
func WithTx[T any](ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) (T, error)) (T, error) {
	var zero T

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(); err != nil {
		return zero, err
	}

	return result, nil
}

// InsertOne runs a single-row INSERT ... RETURNING in its own transaction
// and scans the returned row. Failures are mapped through errs.Write.
func InsertOne[T any](ctx context.Context, db *sql.DB, query string, args []any, scan ScanFunc[T], errs Errors) (T, error) {
	row, err := WithTx(ctx, db, func(tx *sql.Tx) (T, error) {
		return QueryOne(ctx, tx, query, args, scan)
	})
	if err != nil {
		var zero T
		return zero, errs.Write(err)
	}
	return row, nil
}

// QueryOne executes a query expected to return a single row.
func QueryOne[T any](ctx context.Context, q Querier, query string, args []any, scan ScanFunc[T]) (T, error) {
	return scan(q.QueryRowContext(ctx, query, args...))
}

// QueryMany executes a query and scans every row. An empty result is an
// empty, non-nil slice.
func QueryMany[T any](ctx context.Context, q Querier, query string, args []any, scan ScanFunc[T]) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	return results, rows.Err()
}
