package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/dbx"
	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/server/repositories/clients"
)

type ClientService struct {
	repo clients.Repository
	db   *sql.DB
}

func NewClientService(repo clients.Repository, db *sql.DB) *ClientService {
	return &ClientService{repo: repo, db: db}
}

func (s *ClientService) List(ctx context.Context, userID string) ([]*models.Client, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ClientService) Get(ctx context.Context, userID, id string) (*models.Client, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *ClientService) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if c.PaymentMethod == "" {
		c.PaymentMethod = models.PaymentPix
	}
	if !c.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", common.ErrorValidation, c.PaymentMethod)
	}
	if c.Status == "" {
		c.Status = models.StatusActive
	}
	if !c.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrorValidation, c.Status)
	}
	if c.MonthlyBudget < 0 {
		return nil, fmt.Errorf("%w: monthly budget cannot be negative", common.ErrorValidation)
	}
	return s.repo.Create(ctx, c)
}

func (s *ClientService) Update(ctx context.Context, userID, id string, p models.ClientPatch) (*models.Client, error) {
	if p.Name.IsSet() {
		name, ok := p.Name.Get()
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
		}
	}
	if p.PaymentMethod.IsSet() {
		method, ok := p.PaymentMethod.Get()
		if !ok || !method.Valid() {
			return nil, fmt.Errorf("%w: unknown payment method", common.ErrorValidation)
		}
	}
	if p.Status.IsSet() {
		status, ok := p.Status.Get()
		if !ok || !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status", common.ErrorValidation)
		}
	}
	if budget, ok := p.MonthlyBudget.Get(); ok && budget < 0 {
		return nil, fmt.Errorf("%w: monthly budget cannot be negative", common.ErrorValidation)
	}
	return s.repo.Update(ctx, userID, id, p)
}

func (s *ClientService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// Reorder replaces the manual ordering with the given id sequence. The
// sequence must cover every client the owner has, exactly once; anything
// else leaves the stored order untouched.
func (s *ClientService) Reorder(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: empty order", common.ErrorValidation)
	}

	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(ids) != len(existing) {
		return fmt.Errorf("%w: order must list all %d clients", common.ErrorValidation, len(existing))
	}

	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.ID] = true
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !known[id] || seen[id] {
			return fmt.Errorf("%w: unknown or duplicate client id %s", common.ErrorValidation, id)
		}
		seen[id] = true
	}

	// The positions update counts the rows it touched; running it in a
	// transaction means a partial match rolls back instead of committing.
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return clients.NewPostgresRepository(tx).UpdatePositions(ctx, userID, ids)
	})
}
