package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestorapp/gestor/internal/genai"
	"github.com/gestorapp/gestor/internal/models"
)

type modelInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	IsImageModel bool   `json:"isImageModel"`
}

func handleListModels(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := make([]modelInfo, 0, len(genai.Models))
		for _, m := range genai.Models {
			list = append(list, modelInfo{ID: m.ID, Name: m.Name, Description: m.Description, IsImageModel: m.IsImageModel})
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleListSessions(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Chat.ListSessions(r.Context(), UserID(r.Context()))
		if err != nil {
			serviceError(w, err)
			return
		}
		if list == nil {
			list = []*models.ChatSession{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleCreateSession(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req struct {
			Title   string `json:"title"`
			ModelID string `json:"modelId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		session, err := deps.Chat.CreateSession(r.Context(), UserID(r.Context()), req.Title, req.ModelID)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, session)
	}
}

func handleDeleteSession(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Chat.DeleteSession(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func handleListMessages(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Chat.Messages(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			serviceError(w, err)
			return
		}
		if list == nil {
			list = []*models.ChatMessage{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleSendMessage(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		userTurn, modelTurn, err := deps.Chat.SendMessage(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), req.Message)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]*models.ChatMessage{
			"userMessage":  userTurn,
			"modelMessage": modelTurn,
		})
	}
}
