package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey    ctxKey = "user_id"
	userRoleKey  ctxKey = "user_role"
	requestIDKey ctxKey = "request_id"
)

// WithUserID stores the user ID in the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the user ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithUserRole stores the authenticated user's role in the context.
func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, userRoleKey, role)
}

// UserRoleFromCtx extracts the user's role from the context.
// Returns an empty string for anonymous callers.
func UserRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}

// IsAdminCtx reports whether the context user carries the ADMIN role.
func IsAdminCtx(ctx context.Context) bool {
	return UserRoleFromCtx(ctx) == "ADMIN"
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
