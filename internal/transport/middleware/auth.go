package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

// Auth resolves the bearer token into a user identity on the context.
// Requests without a token pass through anonymous; an invalid token is
// rejected outright rather than downgraded.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			userID, role, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), userID)
			ctx = ctxutil.WithUserRole(ctx, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
