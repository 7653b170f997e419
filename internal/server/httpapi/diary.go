package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gestorapp/gestor/internal/models"
)

func handleListDiary(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			list []*models.DiaryEntry
			err  error
		)

		monthStr, yearStr := r.URL.Query().Get("month"), r.URL.Query().Get("year")
		if monthStr != "" || yearStr != "" {
			month, merr := strconv.Atoi(monthStr)
			year, yerr := strconv.Atoi(yearStr)
			if merr != nil || yerr != nil {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "month and year must be integers")
				return
			}
			list, err = deps.Diary.ListMonth(r.Context(), UserID(r.Context()), month, year)
		} else {
			list, err = deps.Diary.List(r.Context(), UserID(r.Context()))
		}
		if err != nil {
			serviceError(w, err)
			return
		}
		if list == nil {
			list = []*models.DiaryEntry{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleCreateDiary(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var e models.DiaryEntry
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		e.UserID = UserID(r.Context())

		created, err := deps.Diary.Create(r.Context(), &e)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleUpdateDiary(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var p models.DiaryPatch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		updated, err := deps.Diary.Update(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), p)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleDeleteDiary(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Diary.Delete(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func handleListRataria(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Rataria.List(r.Context(), UserID(r.Context()))
		if err != nil {
			serviceError(w, err)
			return
		}
		if list == nil {
			list = []*models.RatariaEntry{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleCreateRataria(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var e models.RatariaEntry
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		e.UserID = UserID(r.Context())

		created, err := deps.Rataria.Create(r.Context(), &e)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleUpdateRataria(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var p models.RatariaPatch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		updated, err := deps.Rataria.Update(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), p)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleDeleteRataria(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Rataria.Delete(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
