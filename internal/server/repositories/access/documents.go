package access

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/models"
)

const documentColumns = `id, user_id, folder_id, title, content, created_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (*models.AccessDocument, error) {
	d := &models.AccessDocument{}
	err := row.Scan(&d.ID, &d.UserID, &d.FolderID, &d.Title, &d.Content, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, wrapScan(err)
	}
	return d, nil
}

func (r *PostgresRepository) ListDocuments(ctx context.Context, userID string) ([]*models.AccessDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM access_documents WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AccessDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CreateDocument(ctx context.Context, d *models.AccessDocument) (*models.AccessDocument, error) {
	query := `INSERT INTO access_documents (user_id, folder_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + documentColumns

	return scanDocument(r.db.QueryRowContext(ctx, query, d.UserID, d.FolderID, d.Title, d.Content))
}

func (r *PostgresRepository) UpdateDocument(ctx context.Context, userID, id string, p models.AccessDocumentPatch) (*models.AccessDocument, error) {
	sets, args := []string{"updated_at = now()"}, []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.FolderID.IsSet() {
		add("folder_id", p.FolderID.Arg())
	}
	if p.Title.IsSet() {
		add("title", p.Title.Arg())
	}
	if p.Content.IsSet() {
		add("content", p.Content.Arg())
	}

	args = append(args, userID, id)
	query := fmt.Sprintf("UPDATE access_documents SET %s WHERE user_id = $%d AND id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)-1, len(args), documentColumns)

	return scanDocument(r.db.QueryRowContext(ctx, query, args...))
}

func (r *PostgresRepository) DeleteDocument(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM access_documents WHERE user_id = $1 AND id = $2`, userID, id)
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
