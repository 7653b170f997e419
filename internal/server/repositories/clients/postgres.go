// Package clients provides the PostgreSQL-backed repository for managed
// advertising accounts, including manual sort-order persistence.
package clients

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

const clientColumns = `id, user_id, name, specialty, registry, location, payment_method,
	monthly_budget, campaign_link, whatsapp_group, whatsapp_contact, notes, status,
	has_secretary, secretary_name, secretary_phone, social_link, sort_position,
	created_at, updated_at`

// undefinedColumn is SQLSTATE 42703, reported while the deployed schema
// lags behind the code during incremental migrations.
const undefinedColumn = "42703"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	c := &models.Client{}
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Specialty, &c.Registry, &c.Location, &c.PaymentMethod,
		&c.MonthlyBudget, &c.CampaignLink, &c.WhatsappGroup, &c.WhatsappContact, &c.Notes, &c.Status,
		&c.HasSecretary, &c.SecretaryName, &c.SecretaryPhone, &c.SocialLink, &c.SortPosition,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE user_id = $1
		ORDER BY sort_position, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1 AND id = $2`
	return scanClient(r.db.QueryRowContext(ctx, query, userID, id))
}

// Create inserts a client. If the deployed schema does not yet know the
// extended columns (specialty, registry, secretary, social link), the
// insert is retried once with the base column set.
func (r *PostgresRepository) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	full := `INSERT INTO clients (user_id, name, specialty, registry, location, payment_method,
			monthly_budget, campaign_link, whatsapp_group, whatsapp_contact, notes, status,
			has_secretary, secretary_name, secretary_phone, social_link, sort_position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + clientColumns

	created, err := scanClient(r.db.QueryRowContext(ctx, full,
		c.UserID, c.Name, c.Specialty, c.Registry, c.Location, c.PaymentMethod,
		c.MonthlyBudget, c.CampaignLink, c.WhatsappGroup, c.WhatsappContact, c.Notes, c.Status,
		c.HasSecretary, c.SecretaryName, c.SecretaryPhone, c.SocialLink, c.SortPosition))
	if err == nil {
		return created, nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != undefinedColumn {
		return nil, err
	}

	base := `INSERT INTO clients (user_id, name, location, payment_method, monthly_budget,
			campaign_link, whatsapp_group, whatsapp_contact, notes, status, sort_position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, user_id, name, location, payment_method, monthly_budget, campaign_link,
			whatsapp_group, whatsapp_contact, notes, status, sort_position, created_at, updated_at`

	out := &models.Client{}
	err = r.db.QueryRowContext(ctx, base,
		c.UserID, c.Name, c.Location, c.PaymentMethod, c.MonthlyBudget,
		c.CampaignLink, c.WhatsappGroup, c.WhatsappContact, c.Notes, c.Status, c.SortPosition).Scan(
		&out.ID, &out.UserID, &out.Name, &out.Location, &out.PaymentMethod, &out.MonthlyBudget,
		&out.CampaignLink, &out.WhatsappGroup, &out.WhatsappContact, &out.Notes, &out.Status,
		&out.SortPosition, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, p models.ClientPatch) (*models.Client, error) {
	sets, args := []string{"updated_at = now()"}, []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Name.IsSet() {
		add("name", p.Name.Arg())
	}
	if p.Specialty.IsSet() {
		add("specialty", p.Specialty.Arg())
	}
	if p.Registry.IsSet() {
		add("registry", p.Registry.Arg())
	}
	if p.Location.IsSet() {
		add("location", p.Location.Arg())
	}
	if p.PaymentMethod.IsSet() {
		add("payment_method", p.PaymentMethod.Arg())
	}
	if p.MonthlyBudget.IsSet() {
		add("monthly_budget", p.MonthlyBudget.Arg())
	}
	if p.CampaignLink.IsSet() {
		add("campaign_link", p.CampaignLink.Arg())
	}
	if p.WhatsappGroup.IsSet() {
		add("whatsapp_group", p.WhatsappGroup.Arg())
	}
	if p.WhatsappContact.IsSet() {
		add("whatsapp_contact", p.WhatsappContact.Arg())
	}
	if p.Notes.IsSet() {
		add("notes", p.Notes.Arg())
	}
	if p.Status.IsSet() {
		add("status", p.Status.Arg())
	}
	if p.HasSecretary.IsSet() {
		add("has_secretary", p.HasSecretary.Arg())
	}
	if p.SecretaryName.IsSet() {
		add("secretary_name", p.SecretaryName.Arg())
	}
	if p.SecretaryPhone.IsSet() {
		add("secretary_phone", p.SecretaryPhone.Arg())
	}
	if p.SocialLink.IsSet() {
		add("social_link", p.SocialLink.Arg())
	}

	args = append(args, userID, id)
	query := fmt.Sprintf("UPDATE clients SET %s WHERE user_id = $%d AND id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)-1, len(args), clientColumns)

	return scanClient(r.db.QueryRowContext(ctx, query, args...))
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE user_id = $1 AND id = $2`, userID, id)
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

func (r *PostgresRepository) UpdatePositions(ctx context.Context, userID string, ids []string) error {
	query := `
		UPDATE clients c
		SET sort_position = u.ord - 1, updated_at = now()
		FROM unnest($2::uuid[]) WITH ORDINALITY AS u(id, ord)
		WHERE c.id = u.id AND c.user_id = $1`

	res, err := r.db.ExecContext(ctx, query, userID, ids)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if int(n) != len(ids) {
		return fmt.Errorf("reorder touched %d of %d rows: %w", n, len(ids), common.ErrorValidation)
	}
	return nil
}
