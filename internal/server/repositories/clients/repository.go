package clients

import (
	"context"

	"github.com/gestorapp/gestor/internal/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Client, error)
	GetByID(ctx context.Context, userID, id string) (*models.Client, error)
	Create(ctx context.Context, c *models.Client) (*models.Client, error)
	Update(ctx context.Context, userID, id string, p models.ClientPatch) (*models.Client, error)
	Delete(ctx context.Context, userID, id string) error

	// UpdatePositions persists a full manual ordering: ids[i] receives
	// sort position i. A single statement, so it applies completely or
	// not at all.
	UpdatePositions(ctx context.Context, userID string, ids []string) error
}
