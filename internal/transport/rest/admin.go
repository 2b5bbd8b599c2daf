package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dealboard/dealboard-backend/internal/domain"
)

// adminUserService defines the minimal interface needed by AdminHandler.
type adminUserService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// AdminHandler serves admin REST endpoints. The routes are mounted
// behind the AdminOnly middleware; content deletion reuses the content
// handlers, whose services allow admins through.
type AdminHandler struct {
	users adminUserService
	log   *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(users adminUserService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{users: users, log: logger.With("handler", "admin")}
}

// ListUsers handles GET /admin/users?limit=&offset=.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context(), queryInt(r, "limit", 50), queryInt(r, "offset", 0))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, out)
}
