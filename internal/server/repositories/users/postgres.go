// Package users provides the PostgreSQL-backed repository for accounts and
// their profile rows.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/dbx"
	"github.com/gestorapp/gestor/internal/models"
)

const userColumns = `id, email, full_name, avatar_url, role, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, email, passwordHash, fullName string) (*models.User, error) {
	query := `INSERT INTO users (email, password_hash, full_name)
		 VALUES ($1, $2, $3)
		 RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email, passwordHash, fullName))
	if err != nil {
		var pgErr *pgconn.PgError
		// unique_violation on the email column
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorEmailAlreadyExists
		}
		return nil, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	query := `SELECT ` + userColumns + `, password_hash FROM users WHERE email = $1`

	u := &models.User{}
	var hash string
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.FullName, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", fmt.Errorf("db error: %w", err)
	}
	return u, hash, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, p models.ProfilePatch) (*models.User, error) {
	sets, args := []string{"updated_at = now()"}, []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.FullName.IsSet() {
		add("full_name", p.FullName.Arg())
	}
	if p.AvatarURL.IsSet() {
		add("avatar_url", p.AvatarURL.Arg())
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), userColumns)

	return scanUser(r.db.QueryRowContext(ctx, query, args...))
}
