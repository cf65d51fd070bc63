package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkurent/recipebook/internal/common"
	"github.com/mkurent/recipebook/internal/dbx"
	"github.com/mkurent/recipebook/internal/server/models"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.RecipeIDs == nil {
		user.RecipeIDs = []string{}
	}

	recipeIDs, err := json.Marshal(user.RecipeIDs)
	if err != nil {
		return nil, fmt.Errorf("marshal recipe ids: %w", err)
	}

	query :=
		`INSERT INTO users (id, name, email, password_hash, recipe_ids, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err = r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, recipeIDs, user.CreatedAt)

	if err != nil {
		// the unique index on email backstops the service-level duplicate check
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %v", err)
	}

	return user, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, recipe_ids, created_at FROM users
		 WHERE email = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, recipe_ids, created_at FROM users
		 WHERE id = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) AppendRecipe(ctx context.Context, userID, recipeID string) error {
	query :=
		`UPDATE users SET recipe_ids = recipe_ids || to_jsonb($2::text)
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userID, recipeID)
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var recipeIDs []byte

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &recipeIDs, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}

	if err := json.Unmarshal(recipeIDs, &user.RecipeIDs); err != nil {
		return nil, fmt.Errorf("unmarshal recipe ids: %v", err)
	}

	return user, nil
}
