package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gestorapp/gestor/internal/common"
)

type stubVerifier struct {
	userID string
	err    error
}

func (s stubVerifier) VerifyAccessToken(token string) (string, error) {
	return s.userID, s.err
}

type stubAdminChecker struct {
	admins map[string]bool
}

func (s stubAdminChecker) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.admins[userID], nil
}

func echoUserID(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"userId": UserID(r.Context())})
}

func TestBearerAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   stubVerifier
		wantStatus int
	}{
		{"missing header", "", stubVerifier{}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", stubVerifier{}, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", stubVerifier{err: common.ErrInvalidToken}, http.StatusUnauthorized},
		{"expired token", "Bearer old", stubVerifier{err: common.ErrTokenExpired}, http.StatusUnauthorized},
		{"valid token", "Bearer good", stubVerifier{userID: "u-1"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := BearerAuth(tt.verifier)(http.HandlerFunc(echoUserID))

			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				var body map[string]string
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("decoding body: %v", err)
				}
				if body["userId"] != "u-1" {
					t.Errorf("user id not propagated: %v", body)
				}
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	checker := stubAdminChecker{admins: map[string]bool{"admin-1": true}}
	h := BearerAuth(stubVerifier{userID: "u-1"})(
		RequireAdmin(checker)(http.HandlerFunc(echoUserID)))

	req := httptest.NewRequest(http.MethodGet, "/access/folders", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
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
	if body.Error.Type != "permission_error" {
		t.Errorf("unexpected error type: %q", body.Error.Type)
	}

	h = BearerAuth(stubVerifier{userID: "admin-1"})(
		RequireAdmin(checker)(http.HandlerFunc(echoUserID)))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want %d", rec.Code, http.StatusOK)
	}
}
