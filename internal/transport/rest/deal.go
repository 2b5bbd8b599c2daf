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

// dealService defines the minimal interface needed by DealHandler.
type dealService interface {
	CreateDeal(ctx context.Context, input content.CreateDealInput) (*domain.Deal, error)
	GetDealBySlug(ctx context.Context, slug string) (*domain.DealView, error)
	UpdateDeal(ctx context.Context, input content.UpdateDealInput) (*domain.Deal, error)
	DeleteDeal(ctx context.Context, id uuid.UUID) error
}

// dealFeedService defines the feed interface needed by DealHandler.
type dealFeedService interface {
	Newest(ctx context.Context, category *domain.Category, page int) ([]domain.DealView, error)
	Hottest(ctx context.Context, limit int) ([]domain.DealView, error)
	MostDiscussed(ctx context.Context, limit int) ([]domain.DealView, error)
}

// DealHandler serves deal REST endpoints.
type DealHandler struct {
	svc  dealService
	feed dealFeedService
	log  *slog.Logger
}

// NewDealHandler creates a DealHandler.
func NewDealHandler(svc dealService, feed dealFeedService, logger *slog.Logger) *DealHandler {
	return &DealHandler{svc: svc, feed: feed, log: logger.With("handler", "deal")}
}

type createDealRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	OriginalPrice *float64   `json:"originalPrice"`
	Merchant      string     `json:"merchant"`
	Category      string     `json:"category"`
	ExpiresAt     *time.Time `json:"expiresAt"`
}

type updateDealRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Price         *float64   `json:"price"`
	OriginalPrice *float64   `json:"originalPrice"`
	Merchant      *string    `json:"merchant"`
	Category      *string    `json:"category"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	Expired       *bool      `json:"expired"`
}

// List handles GET /deals?category=&page=. Listing is the newest feed.
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.feed.Newest(r.Context(), queryCategory(r), queryInt(r, "page", 0))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDealResponses(views))
}

// Create handles POST /deals.
func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateDeal(r.Context(), content.CreateDealInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Merchant:      req.Merchant,
		Category:      domain.Category(req.Category),
		ExpiresAt:     req.ExpiresAt,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBareDealResponse(created))
}

// Get handles GET /deals/{slug}.
func (h *DealHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.GetDealBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDealResponse(*view))
}

// Update handles PATCH /deals/{id}.
func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req updateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateDeal(r.Context(), content.UpdateDealInput{
		ID: id,
		Params: domain.DealUpdateParams{
			Title:         req.Title,
			Description:   req.Description,
			Price:         req.Price,
			OriginalPrice: req.OriginalPrice,
			Merchant:      req.Merchant,
			Category:      categoryPtr(req.Category),
			ExpiresAt:     req.ExpiresAt,
			Expired:       req.Expired,
		},
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toBareDealResponse(updated))
}

// Delete handles DELETE /deals/{id}.
func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteDeal(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Hottest handles GET /deals/hottest?limit=.
func (h *DealHandler) Hottest(w http.ResponseWriter, r *http.Request) {
	views, err := h.feed.Hottest(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDealResponses(views))
}

// MostDiscussed handles GET /deals/most-discussed?limit=.
func (h *DealHandler) MostDiscussed(w http.ResponseWriter, r *http.Request) {
	views, err := h.feed.MostDiscussed(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDealResponses(views))
}

func categoryPtr(s *string) *domain.Category {
	if s == nil {
		return nil
	}
	c := domain.Category(*s)
	return &c
}
