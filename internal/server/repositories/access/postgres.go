// Package access provides the PostgreSQL-backed repository for the
// credentials vault: folders, credential entries and documents.
package access

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/dbx"
	"github.com/gestorapp/gestor/internal/models"
)

const folderColumns = `id, user_id, name, color, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func wrapScan(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) ListFolders(ctx context.Context, userID string) ([]*models.AccessFolder, error) {
	query := `SELECT ` + folderColumns + ` FROM access_folders WHERE user_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AccessFolder
	for rows.Next() {
		f := &models.AccessFolder{}
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.Color, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, wrapScan(err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CreateFolder(ctx context.Context, f *models.AccessFolder) (*models.AccessFolder, error) {
	query := `INSERT INTO access_folders (user_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING ` + folderColumns

	out := &models.AccessFolder{}
	err := r.db.QueryRowContext(ctx, query, f.UserID, f.Name, f.Color).Scan(
		&out.ID, &out.UserID, &out.Name, &out.Color, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, wrapScan(err)
	}
	return out, nil
}

func (r *PostgresRepository) UpdateFolder(ctx context.Context, userID, id string, p models.AccessFolderPatch) (*models.AccessFolder, error) {
	sets, args := []string{"updated_at = now()"}, []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Name.IsSet() {
		add("name", p.Name.Arg())
	}
	if p.Color.IsSet() {
		add("color", p.Color.Arg())
	}

	args = append(args, userID, id)
	query := fmt.Sprintf("UPDATE access_folders SET %s WHERE user_id = $%d AND id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)-1, len(args), folderColumns)

	out := &models.AccessFolder{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&out.ID, &out.UserID, &out.Name, &out.Color, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, wrapScan(err)
	}
	return out, nil
}

// DeleteFolder removes a folder after resetting the folder reference of all
// entries and documents filed under it. Children are kept, never deleted.
func (r *PostgresRepository) DeleteFolder(ctx context.Context, userID, id string) error {
	unfile := []string{
		`UPDATE access_entries SET folder_id = NULL, updated_at = now() WHERE user_id = $1 AND folder_id = $2`,
		`UPDATE access_documents SET folder_id = NULL, updated_at = now() WHERE user_id = $1 AND folder_id = $2`,
	}
	for _, q := range unfile {
		if _, err := r.db.ExecContext(ctx, q, userID, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM access_folders WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
