package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gestorapp/gestor/internal/common"
)

func TestServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"validation", fmt.Errorf("%w: name is required", common.ErrorValidation), http.StatusBadRequest, "invalid_request_error"},
		{"not found", common.ErrorNotFound, http.StatusNotFound, "not_found"},
		{"unauthorized", common.ErrorUnauthorized, http.StatusUnauthorized, "authentication_error"},
		{"expired refresh token", common.ErrRefreshTokenExpired, http.StatusUnauthorized, "authentication_error"},
		{"forbidden", common.ErrorForbidden, http.StatusForbidden, "permission_error"},
		{"duplicate email", common.ErrorEmailAlreadyExists, http.StatusConflict, "conflict"},
		{"anything else", errors.New("pq: connection refused"), http.StatusInternalServerError, "api_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			serviceError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body struct {
				Error struct {
					Message string `json:"message"`
					Type    string `json:"type"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body.Error.Type != tt.wantType {
				t.Errorf("type = %q, want %q", body.Error.Type, tt.wantType)
			}
			if body.Error.Message == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestServiceError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	serviceError(rec, errors.New("pq: password authentication failed for user postgres"))

	if rec.Body.String() == "" {
		t.Fatal("empty body")
	}
	var body map[string]map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["error"]["message"] != "internal error" {
		t.Errorf("internal detail leaked: %q", body["error"]["message"])
	}
}
