package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/vidstream/api/internal/core/domain"
	"github.com/vidstream/api/internal/core/ports"
)

type contextKey string

const userContextKey contextKey = "user"

// RequireAuth is the request-authorization gate: it verifies the access token
// from the accessToken cookie or the Authorization header, resolves the
// sanitized user and attaches it to the request context.
func RequireAuth(tokens ports.TokenService, users ports.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := accessTokenFromRequest(r)
			if token == "" {
				writeJSON(w, http.StatusUnauthorized, "unauthorized request", nil)
				return
			}

			userID, err := tokens.VerifyAccessToken(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, domain.ErrInvalidToken.Error(), nil)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				writeError(w, err)
				return
			}
			if user == nil {
				writeJSON(w, http.StatusUnauthorized, domain.ErrInvalidToken.Error(), nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

func accessTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

func withUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func userFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}
