package rataria

import (
	"context"

	"github.com/gestorapp/gestor/internal/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.RatariaEntry, error)
	Create(ctx context.Context, e *models.RatariaEntry) (*models.RatariaEntry, error)
	Update(ctx context.Context, userID, id string, p models.RatariaPatch) (*models.RatariaEntry, error)
	Delete(ctx context.Context, userID, id string) error
}
