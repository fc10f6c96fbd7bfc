// package service implements the business logic of the donation matching
// engine: the publication registry, search and ranking, the pickup fulfillment
// state machine, the rating aggregator and the user registry.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/comida-compartida/donation-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

// Transactor starts database transactions. Satisfied by *sqlx.DB; mocked in
// tests together with go-sqlmock.
type Transactor interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// runInTx wraps fn in a transaction. Rollback after a successful commit is a
// no-op (sql.ErrTxDone), so the deferred rollback only fires on failure paths.
func runInTx(ctx context.Context, db Transactor, log *slog.Logger, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Error("failed to rollback transaction", sl.Err(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}
