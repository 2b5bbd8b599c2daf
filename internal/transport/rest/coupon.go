package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/internal/service/content"
)

// couponService defines the minimal interface needed by CouponHandler.
type couponService interface {
	CreateCoupon(ctx context.Context, input content.CreateCouponInput) (*domain.Coupon, error)
	GetCouponBySlug(ctx context.Context, slug string) (*domain.CouponView, error)
	ListCoupons(ctx context.Context, input content.ListInput) ([]domain.CouponView, error)
	UpdateCoupon(ctx context.Context, input content.UpdateCouponInput) (*domain.Coupon, error)
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
}

// CouponHandler serves coupon REST endpoints.
type CouponHandler struct {
	svc couponService
	log *slog.Logger
}

// NewCouponHandler creates a CouponHandler.
func NewCouponHandler(svc couponService, logger *slog.Logger) *CouponHandler {
	return &CouponHandler{svc: svc, log: logger.With("handler", "coupon")}
}

type createCouponRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Code        string     `json:"code"`
	Discount    string     `json:"discount"`
	Merchant    string     `json:"merchant"`
	Category    string     `json:"category"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

type updateCouponRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Code        *string    `json:"code"`
	Discount    *string    `json:"discount"`
	Merchant    *string    `json:"merchant"`
	Category    *string    `json:"category"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Expired     *bool      `json:"expired"`
}

// List handles GET /coupons?category=&page=.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListCoupons(r.Context(), content.ListInput{
		Category: queryCategory(r),
		Page:     queryInt(r, "page", 0),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCouponResponses(views))
}

// Create handles POST /coupons.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateCoupon(r.Context(), content.CreateCouponInput{
		Title:       req.Title,
		Description: req.Description,
		Code:        req.Code,
		Discount:    req.Discount,
		Merchant:    req.Merchant,
		Category:    domain.Category(req.Category),
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBareCouponResponse(created))
}

// Get handles GET /coupons/{slug}.
func (h *CouponHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.GetCouponBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCouponResponse(*view))
}

// Update handles PATCH /coupons/{id}.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req updateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateCoupon(r.Context(), content.UpdateCouponInput{
		ID: id,
		Params: domain.CouponUpdateParams{
			Title:       req.Title,
			Description: req.Description,
			Code:        req.Code,
			Discount:    req.Discount,
			Merchant:    req.Merchant,
			Category:    categoryPtr(req.Category),
			ExpiresAt:   req.ExpiresAt,
			Expired:     req.Expired,
		},
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toBareCouponResponse(updated))
}

// Delete handles DELETE /coupons/{id}.
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteCoupon(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
