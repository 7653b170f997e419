// Package rataria provides the PostgreSQL-backed repository for the
// freeform notes area.
package rataria

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

const ratariaColumns = `id, user_id, title, content, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanEntry(row interface{ Scan(...any) error }) (*models.RatariaEntry, error) {
	e := &models.RatariaEntry{}
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.RatariaEntry, error) {
	query := `SELECT ` + ratariaColumns + ` FROM rataria_entries WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.RatariaEntry
	for rows.Next() {
		e, err := scanEntry(rows)
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

func (r *PostgresRepository) Create(ctx context.Context, e *models.RatariaEntry) (*models.RatariaEntry, error) {
	query := `INSERT INTO rataria_entries (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING ` + ratariaColumns

	return scanEntry(r.db.QueryRowContext(ctx, query, e.UserID, e.Title, e.Content))
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, p models.RatariaPatch) (*models.RatariaEntry, error) {
	sets, args := []string{"updated_at = now()"}, []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Title.IsSet() {
		add("title", p.Title.Arg())
	}
	if p.Content.IsSet() {
		add("content", p.Content.Arg())
	}

	args = append(args, userID, id)
	query := fmt.Sprintf("UPDATE rataria_entries SET %s WHERE user_id = $%d AND id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)-1, len(args), ratariaColumns)

	return scanEntry(r.db.QueryRowContext(ctx, query, args...))
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rataria_entries WHERE user_id = $1 AND id = $2`, userID, id)
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
