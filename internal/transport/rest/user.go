package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
)

// userService defines the minimal interface needed by UserHandler.
type userService interface {
	Me(ctx context.Context) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, avatarURL *string) (*domain.User, error)
	SaveDeal(ctx context.Context, dealID uuid.UUID) error
	UnsaveDeal(ctx context.Context, dealID uuid.UUID) error
	SavedDeals(ctx context.Context) ([]domain.Deal, error)
	SaveCoupon(ctx context.Context, couponID uuid.UUID) error
	UnsaveCoupon(ctx context.Context, couponID uuid.UUID) error
	SavedCoupons(ctx context.Context) ([]domain.Coupon, error)
}

// UserHandler serves profile and saved-item REST endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

// Me handles GET /auth/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Me(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// Profile handles GET /users/{username}.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(u))
}

type updateMeRequest struct {
	AvatarURL *string `json:"avatarUrl"`
}

// UpdateMe handles PATCH /users/me. Only the avatar is editable;
// username and email are fixed at registration.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, h.log, domain.NewValidationError("body", "invalid json"))
		return
	}

	u, err := h.svc.UpdateAvatar(r.Context(), req.AvatarURL)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// SaveDeal handles PUT /saved/deals/{id}.
func (h *UserHandler) SaveDeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.SaveDeal(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// UnsaveDeal handles DELETE /saved/deals/{id}.
func (h *UserHandler) UnsaveDeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.UnsaveDeal(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SavedDeals handles GET /saved/deals.
func (h *UserHandler) SavedDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := h.svc.SavedDeals(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]dealResponse, len(deals))
	for i := range deals {
		out[i] = toBareDealResponse(&deals[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// SaveCoupon handles PUT /saved/coupons/{id}.
func (h *UserHandler) SaveCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.SaveCoupon(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// UnsaveCoupon handles DELETE /saved/coupons/{id}.
func (h *UserHandler) UnsaveCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.UnsaveCoupon(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SavedCoupons handles GET /saved/coupons.
func (h *UserHandler) SavedCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.svc.SavedCoupons(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]couponResponse, len(coupons))
	for i := range coupons {
		out[i] = toBareCouponResponse(&coupons[i])
	}
	writeJSON(w, http.StatusOK, out)
}
