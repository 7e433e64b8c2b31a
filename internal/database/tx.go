package database

import (
	"context"
	"fmt"
)

// WithTx runs fn inside a database transaction. If db cannot begin a
// transaction it runs fn directly against db. pgx transactions support
// nesting via savepoints, so this also composes with the rolled-back
// transactions used by tests.
func WithTx(ctx context.Context, db PGXDB, fn func(PGXDB) error) error {
	beginner, ok := db.(TxBeginner)
	if !ok {
		return fn(db)
	}

	tx, err := beginner.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
