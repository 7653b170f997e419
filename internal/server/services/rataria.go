package services

import (
	"context"

	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/server/repositories/rataria"
)

type RatariaService struct {
	repo rataria.Repository
}

func NewRatariaService(repo rataria.Repository) *RatariaService {
	return &RatariaService{repo: repo}
}

func (s *RatariaService) List(ctx context.Context, userID string) ([]*models.RatariaEntry, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *RatariaService) Create(ctx context.Context, e *models.RatariaEntry) (*models.RatariaEntry, error) {
	return s.repo.Create(ctx, e)
}

func (s *RatariaService) Update(ctx context.Context, userID, id string, p models.RatariaPatch) (*models.RatariaEntry, error) {
	return s.repo.Update(ctx, userID, id, p)
}

func (s *RatariaService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
