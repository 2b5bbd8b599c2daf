// Package voting implements vote recording with toggle semantics and
// the pure score projections shared by the content and feed services.
package voting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

// voteRepo defines the vote repository interface needed by voting service.
type voteRepo interface {
	Toggle(ctx context.Context, userID uuid.UUID, target domain.TargetRef, voteType domain.VoteType) (*domain.VoteResult, error)
	ListByTarget(ctx context.Context, target domain.TargetRef) ([]domain.Vote, error)
}

// Service implements voting operations.
type Service struct {
	log   *slog.Logger
	votes voteRepo
}

// NewService creates a new voting service instance.
func NewService(logger *slog.Logger, votes voteRepo) *Service {
	return &Service{
		log:   logger.With("service", "voting"),
		votes: votes,
	}
}

// RecordVote applies toggle semantics for the authenticated user:
// no prior vote creates one, the opposite type switches in place, the
// same type retracts. A missing target surfaces as domain.ErrNotFound
// through the store's foreign keys.
func (s *Service) RecordVote(ctx context.Context, input RecordVoteInput) (*domain.VoteResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	result, err := s.votes.Toggle(ctx, userID, input.Target, input.Type)
	if err != nil {
		return nil, fmt.Errorf("voting.RecordVote: %w", err)
	}

	s.log.InfoContext(ctx, "vote recorded",
		slog.String("user_id", userID.String()),
		slog.String("target", string(input.Target.Kind())),
		slog.String("action", string(result.Action)),
	)

	return result, nil
}

// VotesFor returns the raw votes on one target, for building
// projections.
func (s *Service) VotesFor(ctx context.Context, target domain.TargetRef) ([]domain.Vote, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	return s.votes.ListByTarget(ctx, target)
}
