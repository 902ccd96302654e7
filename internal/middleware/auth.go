package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/parla-app/parla-backend/internal/services"
)

type contextKey string

// userIDKey carries the authenticated user's id through the request context.
const userIDKey contextKey = "user_id"

// UserID returns the authenticated user id from the request context.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// SessionToken extracts the session token from the Authorization header
// (Bearer) or the session cookie.
func SessionToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if c, err := r.Cookie("session"); err == nil {
		return c.Value
	}
	return ""
}

// RequireAuth resolves the session token to a user id and stores it in
// the request context. Requests without a valid session get 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := SessionToken(r)
		if token == "" {
			http.Error(w, "Missing session token", http.StatusUnauthorized)
			return
		}

		userID, ok, err := services.ValidateSession(token)
		if err != nil || !ok {
			http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}
