package recipes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkurent/recipebook/internal/common"
	"github.com/mkurent/recipebook/internal/dbx"
	"github.com/mkurent/recipebook/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {

	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now().UTC()
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}

	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("marshal ingredients: %w", err)
	}

	query :=
		`INSERT INTO recipes (id, title, image_url, description, body, minutes, ingredients, creator_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	_, err = r.db.ExecContext(ctx, query,
		recipe.ID, recipe.Title, recipe.ImageURL, recipe.Description, recipe.Body,
		recipe.Minutes, ingredients, recipe.CreatorID, recipe.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}

	return recipe, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Recipe, error) {
	query :=
		`SELECT r.id, r.title, r.image_url, r.description, r.body, r.minutes, r.ingredients, r.creator_id, r.created_at, u.name
		 FROM recipes r
		 JOIN users u ON u.id = r.creator_id
		 WHERE r.id = $1
		 `

	recipe := &models.Recipe{}
	var ingredients []byte
	var creatorName string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&recipe.ID, &recipe.Title, &recipe.ImageURL, &recipe.Description, &recipe.Body,
		&recipe.Minutes, &ingredients, &recipe.CreatorID, &recipe.CreatedAt, &creatorName)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}

	if err := json.Unmarshal(ingredients, &recipe.Ingredients); err != nil {
		return nil, fmt.Errorf("unmarshal ingredients: %v", err)
	}

	recipe.Creator = &models.User{ID: recipe.CreatorID, Name: creatorName}

	return recipe, nil
}

func (r *PostgresRepository) CountAll(ctx context.Context) (int, error) {
	var total int

	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM recipes`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("db error: %v", err)
	}

	return total, nil
}

func (r *PostgresRepository) FindPage(ctx context.Context, offset, limit int) ([]*models.Recipe, error) {
	query :=
		`SELECT id, title, image_url, description, body, minutes, ingredients, creator_id, created_at
		 FROM recipes
		 ORDER BY created_at DESC
		 OFFSET $1 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	defer rows.Close()

	result := []*models.Recipe{}
	for rows.Next() {
		recipe := &models.Recipe{}
		var ingredients []byte

		err := rows.Scan(&recipe.ID, &recipe.Title, &recipe.ImageURL, &recipe.Description,
			&recipe.Body, &recipe.Minutes, &ingredients, &recipe.CreatorID, &recipe.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %v", err)
		}

		if err := json.Unmarshal(ingredients, &recipe.Ingredients); err != nil {
			return nil, fmt.Errorf("unmarshal ingredients: %v", err)
		}

		result = append(result, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}

	return result, nil
}
