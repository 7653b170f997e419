package httpapi

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the authenticated owner id stored by BearerAuth.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// TokenVerifier resolves an access token to a user id.
type TokenVerifier interface {
	VerifyAccessToken(token string) (string, error)
}

// AdminChecker reports whether a user holds the admin role.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// BearerAuth authenticates requests with a JWT access token and stores the
// owner id on the request context.
func BearerAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				httpError(w, http.StatusUnauthorized, "authentication_error", "invalid or missing bearer token")
				return
			}
			userID, err := verifier.VerifyAccessToken(auth[len(prefix):])
			if err != nil {
				serviceError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}

// RequireAdmin guards routes reserved for the admin role. It runs after
// BearerAuth.
func RequireAdmin(checker AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := checker.IsAdmin(r.Context(), UserID(r.Context()))
			if err != nil {
				serviceError(w, err)
				return
			}
			if !ok {
				httpError(w, http.StatusForbidden, "permission_error", "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
