package recipes

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mkurent/recipebook/internal/common"
	"github.com/mkurent/recipebook/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+recipes\s*\(id,\s*title,\s*image_url,`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	in := &models.Recipe{Title: "Pancakes", CreatorID: "u-1", Ingredients: []string{"flour", "milk"}}
	got, err := repo.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" || got.CreatedAt.IsZero() {
		t.Fatalf("expected generated id and timestamp, got %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+recipes`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Recipe{Title: "x", CreatorID: "u-1"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByID_ResolvesCreator(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+r\.id,.*FROM\s+recipes\s+r\s+JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*r\.creator_id\s+WHERE\s+r\.id\s*=\s*\$1`

	rows := sqlmock.NewRows([]string{"id", "title", "image_url", "description", "body", "minutes", "ingredients", "creator_id", "created_at", "name"}).
		AddRow("r-1", "Pancakes", "/images/k", "desc", "mix and fry", 20, []byte(`["flour"]`), "u-1", time.Now(), "alice")
	mock.ExpectQuery(q).
		WithArgs("r-1").
		WillReturnRows(rows)

	got, err := repo.FindByID(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.Creator == nil || got.Creator.Name != "alice" || got.Creator.ID != "u-1" {
		t.Fatalf("creator not resolved: %+v", got.Creator)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0] != "flour" {
		t.Fatalf("unexpected ingredients: %+v", got.Ingredients)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+r\.id,`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "nope")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCountAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+count\(\*\)\s+FROM\s+recipes`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))

	got, err := repo.CountAll(context.Background())
	if err != nil {
		t.Fatalf("CountAll error: %v", err)
	}
	if got != 8 {
		t.Fatalf("unexpected count: %d", got)
	}
}

func TestFindPage_OrderAndWindow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+recipes\s+ORDER\s+BY\s+created_at\s+DESC\s+OFFSET\s+\$1\s+LIMIT\s+\$2`

	rows := sqlmock.NewRows([]string{"id", "title", "image_url", "description", "body", "minutes", "ingredients", "creator_id", "created_at"}).
		AddRow("r-2", "Newer", "", "", "", 5, []byte(`[]`), "u-1", time.Now()).
		AddRow("r-1", "Older", "", "", "", 5, []byte(`[]`), "u-1", time.Now().Add(-time.Hour))
	mock.ExpectQuery(q).
		WithArgs(6, 6).
		WillReturnRows(rows)

	got, err := repo.FindPage(context.Background(), 6, 6)
	if err != nil {
		t.Fatalf("FindPage error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r-2" {
		t.Fatalf("unexpected page: %+v", got)
	}
}

func TestFindPage_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,`).
		WithArgs(12, 6).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "image_url", "description", "body", "minutes", "ingredients", "creator_id", "created_at"}))

	got, err := repo.FindPage(context.Background(), 12, 6)
	if err != nil {
		t.Fatalf("FindPage error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}
