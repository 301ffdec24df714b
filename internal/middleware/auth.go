package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mmynk/billpay/internal/api"
	"github.com/mmynk/billpay/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// UsernameKey is the context key for storing the authenticated username.
	UsernameKey contextKey = "username"
)

// UserIDPathValue is the route wildcard that names the user a request acts on.
const UserIDPathValue = "userId"

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetUsername extracts the username from the context.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

// RequireAuth validates the bearer token and adds the user to the request context.
// Missing or invalid tokens get 401. If the route has a {userId} wildcard that names a
// different user than the token, the request gets 403.
//
// It must wrap individual routes so the wildcard is already matched.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "message", auth.ErrMissingToken.Error())
				return
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				writeError(w, http.StatusUnauthorized, "message", auth.ErrInvalidToken.Error())
				return
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "message", auth.ErrInvalidToken.Error())
				return
			}

			if pathUser := r.PathValue(UserIDPathValue); pathUser != "" && pathUser != claims.UserID {
				writeError(w, http.StatusForbidden, "message", "Access to another user's data is not allowed")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin checks the X-USERNAME and X-PASSWORD headers against creds and answers
// 401 {"error": ...} when they do not match.
func RequireAdmin(creds api.AdminCredentials) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-USERNAME") != creds.Username || r.Header.Get("X-PASSWORD") != creds.Password {
				writeError(w, http.StatusUnauthorized, "error", "Invalid Credentials")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
