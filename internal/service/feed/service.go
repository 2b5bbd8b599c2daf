// Package feed composes the read-only ranked listings: hottest deals,
// newest deals, most discussed deals. It never mutates anything.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	dealrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/deal"
	"github.com/dealboard/dealboard-backend/internal/config"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// dealRepo defines the deal repository interface needed by feed service.
type dealRepo interface {
	List(ctx context.Context, f dealrepo.Filter) ([]dealrepo.WithAuthor, error)
	MostDiscussed(ctx context.Context, limit int) ([]dealrepo.WithCount, error)
}

// viewBuilder merges scores, caller votes and comment counts into deal
// rows. Satisfied by the content service.
type viewBuilder interface {
	DealViews(ctx context.Context, items []dealrepo.WithAuthor) ([]domain.DealView, error)
}

// Service implements feed operations.
type Service struct {
	log   *slog.Logger
	deals dealRepo
	views viewBuilder
	cfg   config.FeedConfig
}

// NewService creates a new feed service instance.
func NewService(logger *slog.Logger, deals dealRepo, views viewBuilder, cfg config.FeedConfig) *Service {
	return &Service{
		log:   logger.With("service", "feed"),
		deals: deals,
		views: views,
		cfg:   cfg,
	}
}

// Hottest returns the highest-scored deals among the most recent
// non-expired ones. The sort is stable, so equal scores keep their
// newest-first order from the window.
func (s *Service) Hottest(ctx context.Context, limit int) ([]domain.DealView, error) {
	if limit <= 0 || limit > s.cfg.HottestLimit {
		limit = s.cfg.HottestLimit
	}

	window, err := s.deals.List(ctx, dealrepo.Filter{Limit: s.cfg.HottestWindow})
	if err != nil {
		return nil, fmt.Errorf("feed.Hottest list: %w", err)
	}

	views, err := s.views.DealViews(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("feed.Hottest views: %w", err)
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Score > views[j].Score
	})

	if len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}

// Newest returns a page of non-expired deals, newest first, optionally
// filtered by category.
func (s *Service) Newest(ctx context.Context, category *domain.Category, page int) ([]domain.DealView, error) {
	if category != nil && !category.IsValid() {
		return nil, domain.NewValidationError("category", "unknown category")
	}
	if page < 0 {
		return nil, domain.NewValidationError("page", "must not be negative")
	}

	items, err := s.deals.List(ctx, dealrepo.Filter{
		Category: category,
		Limit:    s.cfg.PageSize,
		Offset:   page * s.cfg.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("feed.Newest list: %w", err)
	}

	return s.views.DealViews(ctx, items)
}

// MostDiscussed returns non-expired deals ordered by comment count
// descending. The count comes from the store's aggregate.
func (s *Service) MostDiscussed(ctx context.Context, limit int) ([]domain.DealView, error) {
	if limit <= 0 || limit > s.cfg.PageSize {
		limit = s.cfg.PageSize
	}

	items, err := s.deals.MostDiscussed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("feed.MostDiscussed: %w", err)
	}

	rows := make([]dealrepo.WithAuthor, len(items))
	for i, it := range items {
		rows[i] = it.WithAuthor
	}

	views, err := s.views.DealViews(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("feed.MostDiscussed views: %w", err)
	}

	// The aggregate already counted comments; keep its numbers in case
	// a comment lands between the two queries.
	for i := range views {
		views[i].CommentCount = items[i].CommentCount
	}
	return views, nil
}
