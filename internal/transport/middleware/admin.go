package middleware

import (
	"context"
	"net/http"

	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

// RequireAdmin returns domain.ErrForbidden if the context user is not admin.
// Use inside handlers when only part of a route tree is admin-gated.
func RequireAdmin(ctx context.Context) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}

// AdminOnly rejects non-admin callers before the handler runs:
// anonymous gets 401, an authenticated non-admin gets 403.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !ctxutil.IsAdminCtx(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
