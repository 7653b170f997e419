package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gestorapp/gestor/internal/models"
)

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type sessionResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func handleSignUp(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req signUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		user, err := deps.Users.Register(r.Context(), req.Email, req.Password, req.FullName)
		if err != nil {
			serviceError(w, err)
			return
		}

		deps.Logger.Info(r.Context(), "user registered", "email", user.Email)
		writeJSON(w, http.StatusCreated, user)
	}
}

func handleSignIn(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req signInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		user, pair, err := deps.Users.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			serviceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{
			User:         user,
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		})
	}
}

func handleRefresh(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		pair, err := deps.Users.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			serviceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, pair)
	}
}

func handleSignOut(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		if err := deps.Users.SignOut(r.Context(), req.RefreshToken); err != nil {
			serviceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
	}
}

func handleGetProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := deps.Users.Profile(r.Context(), UserID(r.Context()))
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func handlePatchProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var p models.ProfilePatch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		user, err := deps.Users.UpdateProfile(r.Context(), UserID(r.Context()), p)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
