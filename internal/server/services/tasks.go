package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/server/repositories/tasks"
)

type TaskService struct {
	repo tasks.Repository
}

func NewTaskService(repo tasks.Repository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]*models.Task, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *TaskService) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if t.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", common.ErrorValidation)
	}
	if t.Status == "" {
		t.Status = models.TaskPending
	}
	if !t.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrorValidation, t.Status)
	}
	if t.Priority == "" {
		t.Priority = models.PriorityNormal
	}
	if !t.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", common.ErrorValidation, t.Priority)
	}
	return s.repo.Create(ctx, t)
}

func (s *TaskService) Update(ctx context.Context, userID, id string, p models.TaskPatch) (*models.Task, error) {
	if p.Title.IsSet() {
		title, ok := p.Title.Get()
		if !ok || strings.TrimSpace(title) == "" {
			return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
		}
	}
	if p.DueDate.IsSet() {
		d, ok := p.DueDate.Get()
		if !ok || d.IsZero() {
			return nil, fmt.Errorf("%w: due date is required", common.ErrorValidation)
		}
	}
	if p.Status.IsSet() {
		status, ok := p.Status.Get()
		if !ok || !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status", common.ErrorValidation)
		}
	}
	if p.Priority.IsSet() {
		priority, ok := p.Priority.Get()
		if !ok || !priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority", common.ErrorValidation)
		}
	}
	return s.repo.Update(ctx, userID, id, p)
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
