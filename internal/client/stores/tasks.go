package stores

import (
	"context"
	"sync"

	"github.com/gestorapp/gestor/internal/client/gateway"
	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/patch"
)

// TasksStore caches the TMI task list.
type TasksStore struct {
	mu         sync.Mutex
	gw         *gateway.Gateway
	tasks      []*models.Task
	loading    bool
	err        string
	fetchToken int
}

func NewTasksStore(gw *gateway.Gateway) *TasksStore {
	return &TasksStore{gw: gw}
}

func (s *TasksStore) Tasks() []*models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TasksStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *TasksStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *TasksStore) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.fetchToken++
	token := s.fetchToken
	s.mu.Unlock()

	list, err := s.gw.ListTasks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.fetchToken {
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.err = ""
	s.tasks = list
	return nil
}

func (s *TasksStore) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	created, err := s.gw.CreateTask(ctx, t)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	s.tasks = append([]*models.Task{created}, s.tasks...)
	return created, nil
}

func (s *TasksStore) Update(ctx context.Context, id string, p models.TaskPatch) (*models.Task, error) {
	updated, err := s.gw.UpdateTask(ctx, id, p)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	for i, t := range s.tasks {
		if t.ID == id {
			if !updated.UpdatedAt.Before(t.UpdatedAt) {
				s.tasks[i] = updated
			}
			break
		}
	}
	return updated, nil
}

// SetStatus moves a task to any of the three statuses; no transition is
// forbidden.
func (s *TasksStore) SetStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	return s.Update(ctx, id, models.TaskPatch{Status: patch.Set(status)})
}

func (s *TasksStore) Delete(ctx context.Context, id string) error {
	if err := s.gw.DeleteTask(ctx, id); err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	return nil
}

// Pending returns tasks still waiting for an outcome.
func (s *TasksStore) Pending() []*models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Task
	for _, t := range s.tasks {
		if t.Status == models.TaskPending {
			out = append(out, t)
		}
	}
	return out
}
