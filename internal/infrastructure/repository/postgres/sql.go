package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// inTx runs fn inside one transaction: rollback on error, commit
// otherwise.
func inTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
