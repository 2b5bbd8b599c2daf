// Package comments implements posting and the two-tier comment tree.
// Comments attach to a deal, coupon or discussion; one reply level is
// allowed and replies always land on the same target as their parent.
package comments

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	commentrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/comment"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// commentRepo defines the comment repository interface needed by comments service.
type commentRepo interface {
	Create(ctx context.Context, c *domain.Comment) (*commentrepo.WithAuthor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListTopLevel(ctx context.Context, target domain.TargetRef) ([]commentrepo.WithAuthor, error)
	ListReplies(ctx context.Context, parentIDs []uuid.UUID) ([]commentrepo.WithAuthor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// voteRepo defines the vote repository interface needed by comments service.
type voteRepo interface {
	ListByTargets(ctx context.Context, kind domain.TargetKind, ids []uuid.UUID) ([]domain.Vote, error)
}

// Service implements comment operations.
type Service struct {
	log      *slog.Logger
	comments commentRepo
	votes    voteRepo
}

// NewService creates a new comments service instance.
func NewService(logger *slog.Logger, comments commentRepo, votes voteRepo) *Service {
	return &Service{
		log:      logger.With("service", "comments"),
		comments: comments,
		votes:    votes,
	}
}
