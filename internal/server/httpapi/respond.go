// Package httpapi exposes the application over HTTP/JSON. Routing is chi;
// handlers decode, call a service and encode, keeping all business rules in
// the services package.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gestorapp/gestor/internal/common"
)

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// serviceError maps service sentinels onto HTTP statuses.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
	case errors.Is(err, common.ErrorNotFound):
		httpError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		httpError(w, http.StatusUnauthorized, "authentication_error", "%v", err)
	case errors.Is(err, common.ErrorForbidden):
		httpError(w, http.StatusForbidden, "permission_error", "access denied")
	case errors.Is(err, common.ErrorEmailAlreadyExists):
		httpError(w, http.StatusConflict, "conflict", "email already registered")
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "internal error")
	}
}
