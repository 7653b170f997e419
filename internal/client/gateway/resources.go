package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gestorapp/gestor/internal/models"
)

func (g *Gateway) ListClients(ctx context.Context) ([]*models.Client, error) {
	var list []*models.Client
	if err := g.do(ctx, http.MethodGet, "/clients", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *Gateway) CreateClient(ctx context.Context, c *models.Client) (*models.Client, error) {
	var created models.Client
	if err := g.do(ctx, http.MethodPost, "/clients", nil, c, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *Gateway) UpdateClient(ctx context.Context, id string, p models.ClientPatch) (*models.Client, error) {
	var updated models.Client
	if err := g.do(ctx, http.MethodPatch, "/clients/"+id, nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *Gateway) DeleteClient(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/clients/"+id, nil, nil, nil)
}

func (g *Gateway) ReorderClients(ctx context.Context, ids []string) error {
	return g.do(ctx, http.MethodPut, "/clients/order", nil, map[string][]string{"ids": ids}, nil)
}

func (g *Gateway) ListTasks(ctx context.Context) ([]*models.Task, error) {
	var list []*models.Task
	if err := g.do(ctx, http.MethodGet, "/tasks", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *Gateway) CreateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	var created models.Task
	if err := g.do(ctx, http.MethodPost, "/tasks", nil, t, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *Gateway) UpdateTask(ctx context.Context, id string, p models.TaskPatch) (*models.Task, error) {
	var updated models.Task
	if err := g.do(ctx, http.MethodPatch, "/tasks/"+id, nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *Gateway) DeleteTask(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil, nil)
}

// ListDiaryMonth fetches entries for one calendar month. The month argument
// is zero-based, matching the diary store.
func (g *Gateway) ListDiaryMonth(ctx context.Context, month, year int) ([]*models.DiaryEntry, error) {
	q := url.Values{}
	q.Set("month", strconv.Itoa(month))
	q.Set("year", strconv.Itoa(year))

	var list []*models.DiaryEntry
	if err := g.do(ctx, http.MethodGet, "/diary", q, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *Gateway) CreateDiaryEntry(ctx context.Context, e *models.DiaryEntry) (*models.DiaryEntry, error) {
	var created models.DiaryEntry
	if err := g.do(ctx, http.MethodPost, "/diary", nil, e, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *Gateway) UpdateDiaryEntry(ctx context.Context, id string, p models.DiaryPatch) (*models.DiaryEntry, error) {
	var updated models.DiaryEntry
	if err := g.do(ctx, http.MethodPatch, "/diary/"+id, nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *Gateway) DeleteDiaryEntry(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/diary/"+id, nil, nil, nil)
}

func (g *Gateway) ListRataria(ctx context.Context) ([]*models.RatariaEntry, error) {
	var list []*models.RatariaEntry
	if err := g.do(ctx, http.MethodGet, "/rataria", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *Gateway) CreateRatariaEntry(ctx context.Context, e *models.RatariaEntry) (*models.RatariaEntry, error) {
	var created models.RatariaEntry
	if err := g.do(ctx, http.MethodPost, "/rataria", nil, e, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *Gateway) UpdateRatariaEntry(ctx context.Context, id string, p models.RatariaPatch) (*models.RatariaEntry, error) {
	var updated models.RatariaEntry
	if err := g.do(ctx, http.MethodPatch, "/rataria/"+id, nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *Gateway) DeleteRatariaEntry(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/rataria/"+id, nil, nil, nil)
}
