// Package repomanager constructs repositories over a shared database handle,
// so services can run several repositories inside one transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/mkurent/recipebook/internal/dbx"
	"github.com/mkurent/recipebook/internal/server/repositories/recipes"
	"github.com/mkurent/recipebook/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Recipes(db dbx.DBTX) recipes.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
