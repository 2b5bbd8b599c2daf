package content

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	couponrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/coupon"
	dealrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/deal"
	discussionrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/discussion"
	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/internal/service/voting"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

// annotations carries the derived per-target data merged into views:
// score, the caller's vote and the comment count.
type annotations struct {
	scores    map[uuid.UUID]int
	userVotes map[uuid.UUID]domain.VoteType
	counts    map[uuid.UUID]int
}

func (a annotations) userVote(id uuid.UUID) *domain.VoteType {
	if vt, ok := a.userVotes[id]; ok {
		return &vt
	}
	return nil
}

// annotate loads votes and comment counts for the given targets in two
// batch queries. The anonymous caller gets an empty userVotes map.
func (s *Service) annotate(ctx context.Context, kind domain.TargetKind, ids []uuid.UUID) (annotations, error) {
	votes, err := s.votes.ListByTargets(ctx, kind, ids)
	if err != nil {
		return annotations{}, fmt.Errorf("load votes: %w", err)
	}

	counts, err := s.comments.CountByTargets(ctx, kind, ids)
	if err != nil {
		return annotations{}, fmt.Errorf("load comment counts: %w", err)
	}

	callerID, _ := ctxutil.UserIDFromCtx(ctx)
	return annotations{
		scores:    voting.ScoresByTarget(votes),
		userVotes: voting.UserVotesByTarget(votes, callerID),
		counts:    counts,
	}, nil
}

// DealViews merges annotations into joined deal rows. Exported for the
// feed service, which lists rows through its own queries.
func (s *Service) DealViews(ctx context.Context, items []dealrepo.WithAuthor) ([]domain.DealView, error) {
	ids := make([]uuid.UUID, len(items))
	for i, d := range items {
		ids[i] = d.ID
	}

	ann, err := s.annotate(ctx, domain.TargetDeal, ids)
	if err != nil {
		return nil, err
	}

	views := make([]domain.DealView, len(items))
	for i, d := range items {
		views[i] = domain.DealView{
			Deal:         d.Deal,
			PostedBy:     d.Author,
			Score:        ann.scores[d.ID],
			UserVote:     ann.userVote(d.ID),
			CommentCount: ann.counts[d.ID],
		}
	}
	return views, nil
}

func (s *Service) couponViews(ctx context.Context, items []couponrepo.WithAuthor) ([]domain.CouponView, error) {
	ids := make([]uuid.UUID, len(items))
	for i, c := range items {
		ids[i] = c.ID
	}

	ann, err := s.annotate(ctx, domain.TargetCoupon, ids)
	if err != nil {
		return nil, err
	}

	views := make([]domain.CouponView, len(items))
	for i, c := range items {
		views[i] = domain.CouponView{
			Coupon:       c.Coupon,
			PostedBy:     c.Author,
			Score:        ann.scores[c.ID],
			UserVote:     ann.userVote(c.ID),
			CommentCount: ann.counts[c.ID],
		}
	}
	return views, nil
}

func (s *Service) discussionViews(ctx context.Context, items []discussionrepo.WithAuthor) ([]domain.DiscussionView, error) {
	ids := make([]uuid.UUID, len(items))
	for i, d := range items {
		ids[i] = d.ID
	}

	ann, err := s.annotate(ctx, domain.TargetDiscussion, ids)
	if err != nil {
		return nil, err
	}

	views := make([]domain.DiscussionView, len(items))
	for i, d := range items {
		views[i] = domain.DiscussionView{
			Discussion:   d.Discussion,
			PostedBy:     d.Author,
			Score:        ann.scores[d.ID],
			UserVote:     ann.userVote(d.ID),
			CommentCount: ann.counts[d.ID],
		}
	}
	return views, nil
}
