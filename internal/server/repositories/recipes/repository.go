// Package recipes persists published recipes.
package recipes

import (
	"context"

	"github.com/mkurent/recipebook/internal/server/models"
)

type Repository interface {
	// Create inserts a new recipe and returns it with its generated id.
	Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)

	// FindByID resolves the creator relation (id + name). Returns
	// common.ErrorNotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*models.Recipe, error)

	// CountAll returns the total number of recipes, independent of paging.
	CountAll(ctx context.Context) (int, error)

	// FindPage returns up to limit recipes ordered by creation time,
	// newest first, skipping offset rows.
	FindPage(ctx context.Context, offset, limit int) ([]*models.Recipe, error)
}
