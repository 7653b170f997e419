package access

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/models"
)

const entryColumns = `id, user_id, folder_id, title, url, username, password, notes, created_at, updated_at`

func scanAccessEntry(row interface{ Scan(...any) error }) (*models.AccessEntry, error) {
	e := &models.AccessEntry{}
	err := row.Scan(&e.ID, &e.UserID, &e.FolderID, &e.Title, &e.URL,
		&e.Username, &e.Password, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, wrapScan(err)
	}
	return e, nil
}

func (r *PostgresRepository) ListEntries(ctx context.Context, userID string) ([]*models.AccessEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM access_entries WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AccessEntry
	for rows.Next() {
		e, err := scanAccessEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CreateEntry(ctx context.Context, e *models.AccessEntry) (*models.AccessEntry, error) {
	query := `INSERT INTO access_entries (user_id, folder_id, title, url, username, password, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + entryColumns

	return scanAccessEntry(r.db.QueryRowContext(ctx, query,
		e.UserID, e.FolderID, e.Title, e.URL, e.Username, e.Password, e.Notes))
}

func (r *PostgresRepository) UpdateEntry(ctx context.Context, userID, id string, p models.AccessEntryPatch) (*models.AccessEntry, error) {
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
	if p.URL.IsSet() {
		add("url", p.URL.Arg())
	}
	if p.Username.IsSet() {
		add("username", p.Username.Arg())
	}
	if p.Password.IsSet() {
		add("password", p.Password.Arg())
	}
	if p.Notes.IsSet() {
		add("notes", p.Notes.Arg())
	}

	args = append(args, userID, id)
	query := fmt.Sprintf("UPDATE access_entries SET %s WHERE user_id = $%d AND id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)-1, len(args), entryColumns)

	return scanAccessEntry(r.db.QueryRowContext(ctx, query, args...))
}

func (r *PostgresRepository) DeleteEntry(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM access_entries WHERE user_id = $1 AND id = $2`, userID, id)
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
