package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"notes-api/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFrom returns the authenticated user id stored by RequireAuth.
func UserIDFrom(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// RequireAuth rejects requests without a valid "Bearer <jwt>" header.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				JSON(w, http.StatusUnauthorized, map[string]string{"message": "Authorization header missing"})
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenStr == authHeader {
				hlog.FromRequest(r).Debug().Msg("bearer prefix missing")
				JSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token format"})
				return
			}

			userID, err := auth.ParseToken(secret, tokenStr)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("token rejected")
				JSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
