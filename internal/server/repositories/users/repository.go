package users

import (
	"context"

	"github.com/gestorapp/gestor/internal/models"
)

type Repository interface {
	Create(ctx context.Context, email, passwordHash, fullName string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, p models.ProfilePatch) (*models.User, error)
}
