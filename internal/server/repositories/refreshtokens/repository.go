package refreshtokens

import (
	"context"
	"time"

	"github.com/gestorapp/gestor/internal/models"
)

type Repository interface {
	Create(ctx context.Context, userID, token string, validity time.Duration) error
	Get(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID string) error
}
