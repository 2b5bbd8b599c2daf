package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/internal/service/voting"
)

// votingService defines the minimal interface needed by VoteHandler.
type votingService interface {
	RecordVote(ctx context.Context, input voting.RecordVoteInput) (*domain.VoteResult, error)
}

// VoteHandler serves the vote REST endpoint.
type VoteHandler struct {
	svc votingService
	log *slog.Logger
}

// NewVoteHandler creates a VoteHandler.
func NewVoteHandler(svc votingService, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{svc: svc, log: logger.With("handler", "vote")}
}

type voteRequest struct {
	DealID       *uuid.UUID `json:"dealId"`
	CouponID     *uuid.UUID `json:"couponId"`
	DiscussionID *uuid.UUID `json:"discussionId"`
	CommentID    *uuid.UUID `json:"commentId"`
	VoteType     string     `json:"voteType"`
}

// Record handles POST /votes with toggle semantics.
func (h *VoteHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.RecordVote(r.Context(), voting.RecordVoteInput{
		Target: domain.TargetRef{
			DealID:       req.DealID,
			CouponID:     req.CouponID,
			DiscussionID: req.DiscussionID,
			CommentID:    req.CommentID,
		},
		Type: domain.VoteType(req.VoteType),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toVoteResultResponse(result))
}
