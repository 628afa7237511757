package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// requireAffected maps a zero-row write to sql.ErrNoRows.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// inTx runs fn inside a transaction, rolling back on any error.
func inTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// cascadeDelete removes dependents first and then the owning row.
func cascadeDelete(ctx context.Context, db *sqlx.DB, label, id string, dependents []string, owner string) error {
	return inTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, stmt := range dependents {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("delete %s dependents: %w", label, err)
			}
		}
		res, err := tx.ExecContext(ctx, owner, id)
		if err != nil {
			return fmt.Errorf("delete %s: %w", label, err)
		}
		return requireAffected(res)
	})
}
