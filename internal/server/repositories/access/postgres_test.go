package access

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/patch"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestDeleteFolder_UnfilesChildrenFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^UPDATE access_entries SET folder_id = NULL, updated_at = now\(\) WHERE user_id = \$1 AND folder_id = \$2$`).
		WithArgs("u-1", "f-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`^UPDATE access_documents SET folder_id = NULL, updated_at = now\(\) WHERE user_id = \$1 AND folder_id = \$2$`).
		WithArgs("u-1", "f-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^DELETE FROM access_folders WHERE user_id = \$1 AND id = \$2$`).
		WithArgs("u-1", "f-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteFolder(context.Background(), "u-1", "f-1"); err != nil {
		t.Fatalf("DeleteFolder error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteFolder_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^UPDATE access_entries SET`).
		WithArgs("u-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`^UPDATE access_documents SET`).
		WithArgs("u-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`^DELETE FROM access_folders`).
		WithArgs("u-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteFolder(context.Background(), "u-1", "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestUpdateFolder_SendsOnlySetFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Unix(1700000000, 0).UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "color", "created_at", "updated_at"}).
		AddRow("f-1", "u-1", "Banking", nil, now, now)
	mock.ExpectQuery(`^UPDATE access_folders SET updated_at = now\(\), name = \$1 WHERE user_id = \$2 AND id = \$3 RETURNING`).
		WithArgs("Banking", "u-1", "f-1").
		WillReturnRows(rows)

	fp := models.AccessFolderPatch{Name: patch.Set("Banking")}
	got, err := repo.UpdateFolder(context.Background(), "u-1", "f-1", fp)
	if err != nil {
		t.Fatalf("UpdateFolder error: %v", err)
	}
	if got.Name != "Banking" {
		t.Fatalf("unexpected folder: %+v", got)
	}
}
