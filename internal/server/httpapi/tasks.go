package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestorapp/gestor/internal/models"
)

func handleListTasks(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Tasks.List(r.Context(), UserID(r.Context()))
		if err != nil {
			serviceError(w, err)
			return
		}
		if list == nil {
			list = []*models.Task{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleCreateTask(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var t models.Task
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		t.UserID = UserID(r.Context())

		created, err := deps.Tasks.Create(r.Context(), &t)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleUpdateTask(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var p models.TaskPatch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		updated, err := deps.Tasks.Update(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), p)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleDeleteTask(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Tasks.Delete(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
