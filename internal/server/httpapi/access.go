package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestorapp/gestor/internal/models"
)

func handleListFolders(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Access.ListFolders(r.Context(), UserID(r.Context()))
		if err != nil {
			serviceError(w, err)
			return
		}
		if list == nil {
			list = []*models.AccessFolder{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleCreateFolder(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var f models.AccessFolder
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		f.UserID = UserID(r.Context())

		created, err := deps.Access.CreateFolder(r.Context(), &f)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleUpdateFolder(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var p models.AccessFolderPatch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		updated, err := deps.Access.UpdateFolder(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), p)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleDeleteFolder(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Access.DeleteFolder(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func handleListEntries(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Access.ListEntries(r.Context(), UserID(r.Context()))
		if err != nil {
			serviceError(w, err)
			return
		}
		if list == nil {
			list = []*models.AccessEntry{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleCreateEntry(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var e models.AccessEntry
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		e.UserID = UserID(r.Context())

		created, err := deps.Access.CreateEntry(r.Context(), &e)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleUpdateEntry(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var p models.AccessEntryPatch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		updated, err := deps.Access.UpdateEntry(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), p)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleDeleteEntry(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Access.DeleteEntry(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func handleListDocuments(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Access.ListDocuments(r.Context(), UserID(r.Context()))
		if err != nil {
			serviceError(w, err)
			return
		}
		if list == nil {
			list = []*models.AccessDocument{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleCreateDocument(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var d models.AccessDocument
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		d.UserID = UserID(r.Context())

		created, err := deps.Access.CreateDocument(r.Context(), &d)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleUpdateDocument(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var p models.AccessDocumentPatch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		updated, err := deps.Access.UpdateDocument(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), p)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleDeleteDocument(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Access.DeleteDocument(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
