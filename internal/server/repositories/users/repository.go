// Package users persists user accounts.
package users

import (
	"context"

	"github.com/mkurent/recipebook/internal/server/models"
)

type Repository interface {
	// Create inserts a new user and returns it with its generated id.
	// A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindByEmail returns common.ErrorNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns common.ErrorNotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// AppendRecipe adds recipeID to the end of the user's recipe list.
	AppendRecipe(ctx context.Context, userID, recipeID string) error
}
