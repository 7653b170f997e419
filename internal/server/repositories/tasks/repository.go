package tasks

import (
	"context"

	"github.com/gestorapp/gestor/internal/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	Create(ctx context.Context, t *models.Task) (*models.Task, error)
	Update(ctx context.Context, userID, id string, p models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, userID, id string) error
}
