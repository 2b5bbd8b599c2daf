package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/internal/service/content"
)

// discussionService defines the minimal interface needed by DiscussionHandler.
type discussionService interface {
	CreateDiscussion(ctx context.Context, input content.CreateDiscussionInput) (*domain.Discussion, error)
	GetDiscussion(ctx context.Context, id uuid.UUID) (*domain.DiscussionView, error)
	ListDiscussions(ctx context.Context, input content.ListInput) ([]domain.DiscussionView, error)
	UpdateDiscussion(ctx context.Context, input content.UpdateDiscussionInput) (*domain.Discussion, error)
	DeleteDiscussion(ctx context.Context, id uuid.UUID) error
}

// DiscussionHandler serves discussion REST endpoints.
type DiscussionHandler struct {
	svc discussionService
	log *slog.Logger
}

// NewDiscussionHandler creates a DiscussionHandler.
func NewDiscussionHandler(svc discussionService, logger *slog.Logger) *DiscussionHandler {
	return &DiscussionHandler{svc: svc, log: logger.With("handler", "discussion")}
}

type createDiscussionRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	DealCategory *string `json:"dealCategory"`
}

type updateDiscussionRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	DealCategory *string `json:"dealCategory"`
}

// List handles GET /discussions?category=&page=.
func (h *DiscussionHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListDiscussions(r.Context(), content.ListInput{
		Category: queryCategory(r),
		Page:     queryInt(r, "page", 0),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDiscussionResponses(views))
}

// Create handles POST /discussions.
func (h *DiscussionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDiscussionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateDiscussion(r.Context(), content.CreateDiscussionInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     domain.Category(req.Category),
		DealCategory: categoryPtr(req.DealCategory),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBareDiscussionResponse(created))
}

// Get handles GET /discussions/{id}.
func (h *DiscussionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	view, err := h.svc.GetDiscussion(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDiscussionResponse(*view))
}

// Update handles PATCH /discussions/{id}.
func (h *DiscussionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req updateDiscussionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateDiscussion(r.Context(), content.UpdateDiscussionInput{
		ID: id,
		Params: domain.DiscussionUpdateParams{
			Title:        req.Title,
			Description:  req.Description,
			Category:     categoryPtr(req.Category),
			DealCategory: categoryPtr(req.DealCategory),
		},
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toBareDiscussionResponse(updated))
}

// Delete handles DELETE /discussions/{id}.
func (h *DiscussionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteDiscussion(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
