// Package chat provides the PostgreSQL-backed repository for assistant
// sessions and their ordered messages.
package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/dbx"
	"github.com/gestorapp/gestor/internal/models"
)

const sessionColumns = `id, user_id, title, model_id, created_at, updated_at`
const messageColumns = `id, session_id, role, content, image_url, model_id, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanSession(row interface{ Scan(...any) error }) (*models.ChatSession, error) {
	s := &models.ChatSession{}
	err := row.Scan(&s.ID, &s.UserID, &s.Title, &s.ModelID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) ListSessions(ctx context.Context, userID string) ([]*models.ChatSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM chat_sessions WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ChatSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetSession(ctx context.Context, userID, id string) (*models.ChatSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM chat_sessions WHERE user_id = $1 AND id = $2`
	return scanSession(r.db.QueryRowContext(ctx, query, userID, id))
}

func (r *PostgresRepository) CreateSession(ctx context.Context, s *models.ChatSession) (*models.ChatSession, error) {
	query := `INSERT INTO chat_sessions (user_id, title, model_id)
		VALUES ($1, $2, $3)
		RETURNING ` + sessionColumns

	return scanSession(r.db.QueryRowContext(ctx, query, s.UserID, s.Title, s.ModelID))
}

func (r *PostgresRepository) TouchSession(ctx context.Context, userID, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE chat_sessions SET updated_at = now() WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteSession removes a session; messages go with it via the FK cascade.
func (r *PostgresRepository) DeleteSession(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM chat_sessions WHERE user_id = $1 AND id = $2`, userID, id)
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

func (r *PostgresRepository) ListMessages(ctx context.Context, sessionID string) ([]*models.ChatMessage, error) {
	query := `SELECT ` + messageColumns + ` FROM chat_messages WHERE session_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ChatMessage
	for rows.Next() {
		m := &models.ChatMessage{}
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.ImageURL, &m.ModelID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CreateMessage(ctx context.Context, m *models.ChatMessage) (*models.ChatMessage, error) {
	query := `INSERT INTO chat_messages (session_id, role, content, image_url, model_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + messageColumns

	out := &models.ChatMessage{}
	err := r.db.QueryRowContext(ctx, query, m.SessionID, m.Role, m.Content, m.ImageURL, m.ModelID).Scan(
		&out.ID, &out.SessionID, &out.Role, &out.Content, &out.ImageURL, &out.ModelID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
