// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/resilience/circuitbreaker"
	"guidepedia/internal/resilience/retry"
)

const pgUniqueViolation = "23505"

type txKey struct{}

// queryer is the subset shared by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sql.DB) queryer {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// lockClause makes single-row reads inside a transaction take a row lock,
// so concurrent read-check-write sequences on the same row serialize.
func lockClause(ctx context.Context) string {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return "\nFOR UPDATE"
	}
	return ""
}

// Transactor runs units of work in a database transaction guarded by a
// circuit breaker. Business rejections pass through the breaker without
// counting as failures. A transaction aborted by a serialization failure or
// deadlock is run again from the start.
type Transactor struct {
	db    *sql.DB
	cb    *circuitbreaker.Breaker
	retry retry.Policy
}

func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{
		db:    db,
		retry: retry.DBPolicy(),
		cb: circuitbreaker.New(circuitbreaker.ForStore("postgres",
			entity.ErrNotFound,
			entity.ErrInvalidInput,
			entity.ErrInvalidTransition,
			entity.ErrSelfReference,
			entity.ErrConcurrentModification,
			context.Canceled,
		)),
	}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}
	return retry.Do(ctx, t.retry, "tx", func() error {
		return t.cb.Run(func() error {
			tx, err := t.db.BeginTx(ctx, nil)
			if err != nil {
				return fmt.Errorf("WithinTx: begin: %w", err)
			}
			if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
				_ = tx.Rollback()
				return err
			}
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("WithinTx: commit: %w", err)
			}
			return nil
		})
	})
}

// WithRetry replaces the retry policy for aborted transactions.
func (t *Transactor) WithRetry(p retry.Policy) *Transactor {
	t.retry = p
	return t
}

// Breaker exposes the circuit breaker for health reporting.
func (t *Transactor) Breaker() *circuitbreaker.Breaker {
	return t.cb
}

// placeholders renders "$1, $2, ..., $n".
func placeholders(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "$%d", i)
	}
	return b.String()
}

func idArgs(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// checkVersioned maps a zero-row optimistic update to ErrConcurrentModification.
func checkVersioned(res sql.Result, kind entity.Kind, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, entity.ErrConcurrentModification)
	}
	return nil
}
