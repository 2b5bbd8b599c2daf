// Package content implements CRUD for deals, coupons and discussions,
// including slug assignment and the read-side views that merge scores,
// caller votes and comment counts into the stored rows.
package content

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	couponrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/coupon"
	dealrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/deal"
	discussionrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/discussion"
	"github.com/dealboard/dealboard-backend/internal/config"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// dealRepo defines the deal repository interface needed by content service.
type dealRepo interface {
	Create(ctx context.Context, d *domain.Deal) (*domain.Deal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dealrepo.WithAuthor, error)
	GetBySlug(ctx context.Context, slug string) (*dealrepo.WithAuthor, error)
	Update(ctx context.Context, id uuid.UUID, p domain.DealUpdateParams) (*domain.Deal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// couponRepo defines the coupon repository interface needed by content service.
type couponRepo interface {
	Create(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error)
	GetByID(ctx context.Context, id uuid.UUID) (*couponrepo.WithAuthor, error)
	GetBySlug(ctx context.Context, slug string) (*couponrepo.WithAuthor, error)
	List(ctx context.Context, f couponrepo.Filter) ([]couponrepo.WithAuthor, error)
	Update(ctx context.Context, id uuid.UUID, p domain.CouponUpdateParams) (*domain.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// discussionRepo defines the discussion repository interface needed by content service.
type discussionRepo interface {
	Create(ctx context.Context, d *domain.Discussion) (*domain.Discussion, error)
	GetByID(ctx context.Context, id uuid.UUID) (*discussionrepo.WithAuthor, error)
	List(ctx context.Context, category *domain.Category, limit, offset int) ([]discussionrepo.WithAuthor, error)
	Update(ctx context.Context, id uuid.UUID, p domain.DiscussionUpdateParams) (*domain.Discussion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// voteRepo defines the vote repository interface needed by content service.
type voteRepo interface {
	ListByTargets(ctx context.Context, kind domain.TargetKind, ids []uuid.UUID) ([]domain.Vote, error)
}

// commentRepo defines the comment repository interface needed by content service.
type commentRepo interface {
	CountByTargets(ctx context.Context, kind domain.TargetKind, ids []uuid.UUID) (map[uuid.UUID]int, error)
}

// Service implements content operations.
type Service struct {
	log         *slog.Logger
	deals       dealRepo
	coupons     couponRepo
	discussions discussionRepo
	votes       voteRepo
	comments    commentRepo
	pageSize    int
}

// NewService creates a new content service instance.
func NewService(
	logger *slog.Logger,
	deals dealRepo,
	coupons couponRepo,
	discussions discussionRepo,
	votes voteRepo,
	comments commentRepo,
	cfg config.FeedConfig,
) *Service {
	return &Service{
		log:         logger.With("service", "content"),
		deals:       deals,
		coupons:     coupons,
		discussions: discussions,
		votes:       votes,
		comments:    comments,
		pageSize:    cfg.PageSize,
	}
}
