package content

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	couponrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/coupon"
	dealrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/deal"
	discussionrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/discussion"
	"github.com/dealboard/dealboard-backend/internal/config"
	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func adminCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserRole(authedCtx(userID), "ADMIN")
}

// stubDealRepo dispatches to optional func fields. Unset readers report
// not found, unset writers echo their input.
type stubDealRepo struct {
	createFn     func(ctx context.Context, d *domain.Deal) (*domain.Deal, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*dealrepo.WithAuthor, error)
	getBySlugFn  func(ctx context.Context, slug string) (*dealrepo.WithAuthor, error)
	updateFn     func(ctx context.Context, id uuid.UUID, p domain.DealUpdateParams) (*domain.Deal, error)
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	slugExistsFn func(ctx context.Context, slug string) (bool, error)

	deleted []uuid.UUID
}

func (s *stubDealRepo) Create(ctx context.Context, d *domain.Deal) (*domain.Deal, error) {
	if s.createFn != nil {
		return s.createFn(ctx, d)
	}
	out := *d
	out.ID = uuid.New()
	return &out, nil
}

func (s *stubDealRepo) GetByID(ctx context.Context, id uuid.UUID) (*dealrepo.WithAuthor, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubDealRepo) GetBySlug(ctx context.Context, slug string) (*dealrepo.WithAuthor, error) {
	if s.getBySlugFn != nil {
		return s.getBySlugFn(ctx, slug)
	}
	return nil, domain.ErrNotFound
}

func (s *stubDealRepo) Update(ctx context.Context, id uuid.UUID, p domain.DealUpdateParams) (*domain.Deal, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, p)
	}
	return &domain.Deal{ID: id}, nil
}

func (s *stubDealRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubDealRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if s.slugExistsFn != nil {
		return s.slugExistsFn(ctx, slug)
	}
	return false, nil
}

type stubCouponRepo struct{}

func (stubCouponRepo) Create(_ context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	out := *c
	out.ID = uuid.New()
	return &out, nil
}

func (stubCouponRepo) GetByID(context.Context, uuid.UUID) (*couponrepo.WithAuthor, error) {
	return nil, domain.ErrNotFound
}

func (stubCouponRepo) GetBySlug(context.Context, string) (*couponrepo.WithAuthor, error) {
	return nil, domain.ErrNotFound
}

func (stubCouponRepo) List(context.Context, couponrepo.Filter) ([]couponrepo.WithAuthor, error) {
	return nil, nil
}

func (stubCouponRepo) Update(_ context.Context, id uuid.UUID, _ domain.CouponUpdateParams) (*domain.Coupon, error) {
	return &domain.Coupon{ID: id}, nil
}

func (stubCouponRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (stubCouponRepo) SlugExists(context.Context, string) (bool, error) { return false, nil }

type stubDiscussionRepo struct{}

func (stubDiscussionRepo) Create(_ context.Context, d *domain.Discussion) (*domain.Discussion, error) {
	out := *d
	out.ID = uuid.New()
	return &out, nil
}

func (stubDiscussionRepo) GetByID(context.Context, uuid.UUID) (*discussionrepo.WithAuthor, error) {
	return nil, domain.ErrNotFound
}

func (stubDiscussionRepo) List(context.Context, *domain.Category, int, int) ([]discussionrepo.WithAuthor, error) {
	return nil, nil
}

func (stubDiscussionRepo) Update(_ context.Context, id uuid.UUID, _ domain.DiscussionUpdateParams) (*domain.Discussion, error) {
	return &domain.Discussion{ID: id}, nil
}

func (stubDiscussionRepo) Delete(context.Context, uuid.UUID) error { return nil }

type stubVoteRepo struct {
	votes []domain.Vote
}

func (s stubVoteRepo) ListByTargets(_ context.Context, _ domain.TargetKind, ids []uuid.UUID) ([]domain.Vote, error) {
	var out []domain.Vote
	for _, v := range s.votes {
		for _, id := range ids {
			if v.Target.ID() == id {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

type stubCommentRepo struct {
	counts map[uuid.UUID]int
}

func (s stubCommentRepo) CountByTargets(_ context.Context, _ domain.TargetKind, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int)
	for _, id := range ids {
		if n, ok := s.counts[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func newTestService(t *testing.T, deals *stubDealRepo, votes stubVoteRepo, comments stubCommentRepo) *Service {
	t.Helper()
	return NewService(
		testLogger(),
		deals,
		stubCouponRepo{},
		stubDiscussionRepo{},
		votes,
		comments,
		config.FeedConfig{HottestWindow: 50, HottestLimit: 3, PageSize: 20},
	)
}
