package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tabsplit/tabsplit-backend/logger"
)

// DB is the subset of pgxpool.Pool the stores use. pgxmock's pool satisfies
// it as well, which is what the store tests inject.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// TxFn is a function signature for operations to be executed within a transaction.
type TxFn func(tx pgx.Tx) error

// WithTx executes a function within a database transaction.
// It handles begin, commit, and rollback automatically.
func WithTx(ctx context.Context, db DB, fn TxFn) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		// Rollback is a no-op after a successful commit.
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			logger.GetLogger().Errorw("Failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
