package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/internal/service/comments"
)

// commentService defines the minimal interface needed by CommentHandler.
type commentService interface {
	PostComment(ctx context.Context, input comments.PostCommentInput) (*domain.CommentNode, error)
	DeleteComment(ctx context.Context, input comments.DeleteCommentInput) error
	TreeFor(ctx context.Context, target domain.TargetRef) ([]domain.CommentNode, error)
}

// CommentHandler serves comment REST endpoints.
type CommentHandler struct {
	svc commentService
	log *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(svc commentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: logger.With("handler", "comment")}
}

type postCommentRequest struct {
	Content      string     `json:"content"`
	DealID       *uuid.UUID `json:"dealId"`
	CouponID     *uuid.UUID `json:"couponId"`
	DiscussionID *uuid.UUID `json:"discussionId"`
	ParentID     *uuid.UUID `json:"parentId"`
}

// Post handles POST /comments.
func (h *CommentHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req postCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.PostComment(r.Context(), comments.PostCommentInput{
		Content: req.Content,
		Target: domain.TargetRef{
			DealID:       req.DealID,
			CouponID:     req.CouponID,
			DiscussionID: req.DiscussionID,
		},
		ParentID: req.ParentID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(created))
}

// Delete handles DELETE /comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteComment(r.Context(), comments.DeleteCommentInput{CommentID: id}); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DealTree handles GET /deals/{id}/comments.
func (h *CommentHandler) DealTree(w http.ResponseWriter, r *http.Request) {
	h.tree(w, r, func(id uuid.UUID) domain.TargetRef {
		return domain.TargetRef{DealID: &id}
	})
}

// CouponTree handles GET /coupons/{id}/comments.
func (h *CommentHandler) CouponTree(w http.ResponseWriter, r *http.Request) {
	h.tree(w, r, func(id uuid.UUID) domain.TargetRef {
		return domain.TargetRef{CouponID: &id}
	})
}

// DiscussionTree handles GET /discussions/{id}/comments.
func (h *CommentHandler) DiscussionTree(w http.ResponseWriter, r *http.Request) {
	h.tree(w, r, func(id uuid.UUID) domain.TargetRef {
		return domain.TargetRef{DiscussionID: &id}
	})
}

func (h *CommentHandler) tree(w http.ResponseWriter, r *http.Request, target func(uuid.UUID) domain.TargetRef) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	nodes, err := h.svc.TreeFor(r.Context(), target(id))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentTreeResponse(nodes))
}
