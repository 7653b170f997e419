package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/server/repositories/diary"
)

type DiaryService struct {
	repo diary.Repository
}

func NewDiaryService(repo diary.Repository) *DiaryService {
	return &DiaryService{repo: repo}
}

// MonthWindow returns the first and last day of a month. The month argument
// is zero-based and may run past either end of the year; time.Date
// normalizes the overflow, so month -1 of 2025 is December 2024.
func MonthWindow(month, year int) (from, to models.DateOnly) {
	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return models.DateOnly{Time: start}, models.DateOnly{Time: end}
}

func (s *DiaryService) List(ctx context.Context, userID string) ([]*models.DiaryEntry, error) {
	return s.repo.ListByUser(ctx, userID, models.DateOnly{}, models.DateOnly{})
}

func (s *DiaryService) ListMonth(ctx context.Context, userID string, month, year int) ([]*models.DiaryEntry, error) {
	from, to := MonthWindow(month, year)
	return s.repo.ListByUser(ctx, userID, from, to)
}

func (s *DiaryService) Create(ctx context.Context, e *models.DiaryEntry) (*models.DiaryEntry, error) {
	if e.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", common.ErrorValidation)
	}
	return s.repo.Create(ctx, e)
}

func (s *DiaryService) Update(ctx context.Context, userID, id string, p models.DiaryPatch) (*models.DiaryEntry, error) {
	if p.Date.IsSet() {
		d, ok := p.Date.Get()
		if !ok || d.IsZero() {
			return nil, fmt.Errorf("%w: date is required", common.ErrorValidation)
		}
	}
	return s.repo.Update(ctx, userID, id, p)
}

func (s *DiaryService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
