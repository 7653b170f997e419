package diary

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func entryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "date", "title", "content", "created_at", "updated_at"})
}

func TestListByUser_AppliesWindowWhenGiven(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	from := models.NewDate(2024, time.December, 1)
	to := models.NewDate(2024, time.December, 31)

	q := `(?s)^SELECT .* FROM diary_entries WHERE user_id = \$1 AND date >= \$2 AND date <= \$3 ORDER BY created_at DESC$`
	rows := entryRows().
		AddRow("d-1", "u-1", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "nye", nil,
			time.Unix(1700000000, 0), time.Unix(1700000000, 0))
	mock.ExpectQuery(q).WithArgs("u-1", from, to).WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1", from, to)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 1 || got[0].Date.Key() != "2024-12-31" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByUser_NoWindowWhenZero(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT .* FROM diary_entries WHERE user_id = \$1 ORDER BY created_at DESC$`
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(entryRows())

	got, err := repo.ListByUser(context.Background(), "u-1", models.DateOnly{}, models.DateOnly{})
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM diary_entries WHERE user_id = \$1 AND id = \$2$`).
		WithArgs("u-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "u-1", "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
