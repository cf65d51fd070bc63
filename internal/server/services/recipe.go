package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mkurent/recipebook/internal/common"
	"github.com/mkurent/recipebook/internal/dbx"
	"github.com/mkurent/recipebook/internal/server/auth"
	"github.com/mkurent/recipebook/internal/server/models"
	"github.com/mkurent/recipebook/internal/server/repositories/repomanager"
)

// recipesPerPage is the fixed page size for recipe listings.
const recipesPerPage = 6

// CreateRecipeInput carries the fields of a recipe submission.
type CreateRecipeInput struct {
	Title       string
	ImageURL    string
	Description string
	Body        string
	Minutes     int
	Ingredients []string
}

// RecipePage is one page of the recipe listing together with the total count.
type RecipePage struct {
	Recipes    []*models.Recipe `json:"recipes"`
	TotalItems int              `json:"totalItems"`
}

// RecipeService implements recipe creation and retrieval.
type RecipeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewRecipeService creates a RecipeService.
func NewRecipeService(db *sql.DB, rm repomanager.RepositoryManager) *RecipeService {
	return &RecipeService{db: db, repomanager: rm}
}

// Create stores a new recipe owned by the authenticated user and records the
// recipe id on the user. Both writes happen in one transaction so a failed
// backlink never leaves an orphaned recipe behind.
func (s *RecipeService) Create(ctx context.Context, identity auth.Identity, input *CreateRecipeInput) (*models.Recipe, error) {

	if !identity.Verified {
		return nil, common.NewUnauthenticated("Not authenticated")
	}

	recipe := &models.Recipe{
		Title:       input.Title,
		ImageURL:    input.ImageURL,
		Description: input.Description,
		Body:        input.Body,
		Minutes:     input.Minutes,
		Ingredients: input.Ingredients,
		CreatorID:   identity.UserID,
	}

	var created *models.Recipe

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Recipes(tx).Create(ctx, recipe)
		if err != nil {
			return err
		}
		return s.repomanager.Users(tx).AppendRecipe(ctx, identity.UserID, created.ID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewUnauthenticated("Not authenticated")
		}
		return nil, err
	}

	return created, nil
}

// Get returns a single recipe by id, with the creator resolved.
func (s *RecipeService) Get(ctx context.Context, id string) (*models.Recipe, error) {

	recipe, err := s.repomanager.Recipes(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewNotFound("Recipe does not exist!")
		}
		return nil, err
	}

	return recipe, nil
}

// List returns the requested page of recipes, newest first, plus the total
// number of recipes. Pages are numbered from 1.
func (s *RecipeService) List(ctx context.Context, page int) (*RecipePage, error) {

	if page < 1 {
		return nil, common.NewInvalidInput([]string{"Page number must be 1 or greater!"})
	}

	repo := s.repomanager.Recipes(s.db)

	total, err := repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	recipes, err := repo.FindPage(ctx, (page-1)*recipesPerPage, recipesPerPage)
	if err != nil {
		return nil, err
	}

	return &RecipePage{Recipes: recipes, TotalItems: total}, nil
}
