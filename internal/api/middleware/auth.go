package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/utils"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// UserKey is the context key for the authenticated user
	UserKey ContextKey = "user"
)

// bearerToken reads the access token from the Authorization header or the accessToken cookie
func bearerToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := r.Cookie("accessToken"); err == nil {
		return cookie.Value
	}
	return ""
}

// AuthMiddleware resolves the session through provider and rejects requests without one.
// The token and user are stored on the request context.
func AuthMiddleware(provider gateway.AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				utils.WriteError(w, errors.Unauthenticated("Missing authentication token"))
				return
			}

			ctx := gateway.WithAccessToken(r.Context(), token)
			user, err := provider.CurrentUser(ctx)
			if err != nil {
				utils.WriteAnyError(w, err)
				return
			}
			if user == nil {
				utils.WriteError(w, errors.Unauthenticated("Invalid or expired token"))
				return
			}

			ctx = context.WithValue(ctx, UserKey, user)

			AddLogField(ctx, "user_id", user.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the authenticated user from the request context
func GetUser(r *http.Request) (*gateway.User, bool) {
	user, ok := r.Context().Value(UserKey).(*gateway.User)
	return user, ok && user != nil
}

// GetUserID extracts the user ID from the request context
func GetUserID(r *http.Request) (string, bool) {
	user, ok := GetUser(r)
	if !ok {
		return "", false
	}
	return user.ID, true
}
