package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestorapp/gestor/internal/models"
)

func handleListClients(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Clients.List(r.Context(), UserID(r.Context()))
		if err != nil {
			serviceError(w, err)
			return
		}
		if list == nil {
			list = []*models.Client{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleGetClient(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := deps.Clients.Get(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func handleCreateClient(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var c models.Client
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		c.UserID = UserID(r.Context())

		created, err := deps.Clients.Create(r.Context(), &c)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleUpdateClient(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var p models.ClientPatch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		updated, err := deps.Clients.Update(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), p)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleDeleteClient(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Clients.Delete(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func handleReorderClients(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req struct {
			IDs []string `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		if err := deps.Clients.Reorder(r.Context(), UserID(r.Context()), req.IDs); err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
	}
}
