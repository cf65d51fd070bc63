// Package dbx holds the thin database plumbing the repositories share. Repos
// accept the DBTX interface instead of a concrete handle, so the services can
// point them at either a plain connection pool or an open transaction — the
// recipe-plus-backlink write relies on this to run both repos in one commit.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the slice of database/sql the repositories use.
// Satisfied by *sql.DB and *sql.Tx alike.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction: commit when fn returns nil, rollback
// when it errors or panics. Panics are rethrown after the rollback.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    if _, err := rm.Recipes(tx).Create(ctx, recipe); err != nil {
//	        return err
//	    }
//	    return rm.Users(tx).AppendRecipe(ctx, userID, recipe.ID)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
