// Package tasks provides the PostgreSQL-backed repository for TMI tasks.
package tasks

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

const taskColumns = `id, user_id, title, description, due_date, status, priority, is_urgent, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	t := &models.Task{}
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate,
		&t.Status, &t.Priority, &t.IsUrgent, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY due_date, created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	query := `INSERT INTO tasks (user_id, title, description, due_date, status, priority, is_urgent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + taskColumns

	return scanTask(r.db.QueryRowContext(ctx, query,
		t.UserID, t.Title, t.Description, t.DueDate, t.Status, t.Priority, t.IsUrgent))
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, p models.TaskPatch) (*models.Task, error) {
	sets, args := []string{"updated_at = now()"}, []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Title.IsSet() {
		add("title", p.Title.Arg())
	}
	if p.Description.IsSet() {
		add("description", p.Description.Arg())
	}
	if p.DueDate.IsSet() {
		add("due_date", p.DueDate.Arg())
	}
	if p.Status.IsSet() {
		add("status", p.Status.Arg())
	}
	if p.Priority.IsSet() {
		add("priority", p.Priority.Arg())
	}
	if p.IsUrgent.IsSet() {
		add("is_urgent", p.IsUrgent.Arg())
	}

	args = append(args, userID, id)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE user_id = $%d AND id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)-1, len(args), taskColumns)

	return scanTask(r.db.QueryRowContext(ctx, query, args...))
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1 AND id = $2`, userID, id)
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
