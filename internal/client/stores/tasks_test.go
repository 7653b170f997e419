package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gestorapp/gestor/internal/models"
)

func TestTasksStore_SetStatus(t *testing.T) {
	server := map[string]*models.Task{
		"t-1": {ID: "t-1", Title: "relatório", Status: models.TaskPending},
		"t-2": {ID: "t-2", Title: "reunião", Status: models.TaskPending},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]*models.Task{server["t-1"], server["t-2"]})
	})
	mux.HandleFunc("PATCH /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		var p models.TaskPatch
		json.NewDecoder(r.Body).Decode(&p)
		task := *server[r.PathValue("id")]
		if status, ok := p.Status.Get(); ok {
			task.Status = status
		}
		task.UpdatedAt = time.Now()
		server[task.ID] = &task
		json.NewEncoder(w).Encode(&task)
	})

	s := NewTasksStore(newGateway(t, mux))
	ctx := context.Background()
	if err := s.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll error: %v", err)
	}

	// any transition is allowed, in any direction
	steps := []models.TaskStatus{models.TaskDone, models.TaskNotDone, models.TaskPending, models.TaskDone}
	for _, status := range steps {
		updated, err := s.SetStatus(ctx, "t-1", status)
		if err != nil {
			t.Fatalf("SetStatus(%s) error: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("status = %s, want %s", updated.Status, status)
		}
	}
	if got := s.Tasks()[0].Status; got != models.TaskDone {
		t.Errorf("cache not patched: %s", got)
	}

	pending := s.Pending()
	if len(pending) != 1 || pending[0].ID != "t-2" {
		t.Errorf("Pending = %+v", pending)
	}
}
