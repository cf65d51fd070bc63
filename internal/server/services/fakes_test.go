package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkurent/recipebook/internal/common"
	"github.com/mkurent/recipebook/internal/dbx"
	"github.com/mkurent/recipebook/internal/server/models"
	"github.com/mkurent/recipebook/internal/server/repositories/recipes"
	"github.com/mkurent/recipebook/internal/server/repositories/users"
)

// in-memory repositories used by the service tests

type fakeUserRepo struct {
	users       map[string]*models.User // keyed by id
	findByEmail map[string]*models.User
	createErr   error
	nextID      int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:       map[string]*models.User{},
		findByEmail: map[string]*models.User{},
	}
}

func (r *fakeUserRepo) add(u *models.User) {
	r.users[u.ID] = u
	r.findByEmail[u.Email] = u
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.findByEmail[user.Email]; exists {
		return nil, common.ErrorAlreadyExists
	}
	r.nextID++
	u := *user
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	r.add(&u)
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := r.findByEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUserRepo) AppendRecipe(ctx context.Context, userID, recipeID string) error {
	if _, ok := r.users[userID]; !ok {
		return common.ErrorNotFound
	}
	r.users[userID].RecipeIDs = append(r.users[userID].RecipeIDs, recipeID)
	return nil
}

type fakeRecipeRepo struct {
	recipes   []*models.Recipe // newest first
	createErr error
	nextID    int
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{}
}

func (r *fakeRecipeRepo) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	rec := *recipe
	rec.ID = fmt.Sprintf("recipe-%d", r.nextID)
	r.recipes = append([]*models.Recipe{&rec}, r.recipes...)
	return &rec, nil
}

func (r *fakeRecipeRepo) FindByID(ctx context.Context, id string) (*models.Recipe, error) {
	for _, rec := range r.recipes {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeRecipeRepo) CountAll(ctx context.Context) (int, error) {
	return len(r.recipes), nil
}

func (r *fakeRecipeRepo) FindPage(ctx context.Context, offset, limit int) ([]*models.Recipe, error) {
	result := []*models.Recipe{}
	if offset >= len(r.recipes) {
		return result, nil
	}
	end := offset + limit
	if end > len(r.recipes) {
		end = len(r.recipes)
	}
	return append(result, r.recipes[offset:end]...), nil
}

type fakeRepoManager struct {
	userRepo   *fakeUserRepo
	recipeRepo *fakeRecipeRepo
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return m.userRepo }

func (m *fakeRepoManager) Recipes(db dbx.DBTX) recipes.Repository { return m.recipeRepo }

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}
