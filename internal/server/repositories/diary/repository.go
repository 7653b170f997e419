package diary

import (
	"context"

	"github.com/gestorapp/gestor/internal/models"
)

type Repository interface {
	// ListByUser returns entries for the owner, newest created first.
	// When from/to are non-zero the result is limited to entries whose
	// date falls inside the inclusive [from, to] window.
	ListByUser(ctx context.Context, userID string, from, to models.DateOnly) ([]*models.DiaryEntry, error)
	Create(ctx context.Context, e *models.DiaryEntry) (*models.DiaryEntry, error)
	Update(ctx context.Context, userID, id string, p models.DiaryPatch) (*models.DiaryEntry, error)
	Delete(ctx context.Context, userID, id string) error
}
