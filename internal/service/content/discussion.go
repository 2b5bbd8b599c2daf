package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	discussionrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/discussion"
	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

// CreateDiscussion starts a new discussion for the authenticated user.
func (s *Service) CreateDiscussion(ctx context.Context, input CreateDiscussionInput) (*domain.Discussion, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.discussions.Create(ctx, &domain.Discussion{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Category:     input.Category,
		DealCategory: input.DealCategory,
		UserID:       userID,
	})
	if err != nil {
		return nil, fmt.Errorf("content.CreateDiscussion: %w", err)
	}

	s.log.InfoContext(ctx, "discussion created", slog.String("discussion_id", created.ID.String()))

	return created, nil
}

// GetDiscussion returns the discussion view with score, caller vote
// and comment count merged in.
func (s *Service) GetDiscussion(ctx context.Context, id uuid.UUID) (*domain.DiscussionView, error) {
	d, err := s.discussions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("content.GetDiscussion: %w", err)
	}

	views, err := s.discussionViews(ctx, []discussionrepo.WithAuthor{*d})
	if err != nil {
		return nil, fmt.Errorf("content.GetDiscussion: %w", err)
	}
	return &views[0], nil
}

// ListDiscussions returns a page of discussion views, newest first,
// optionally filtered by category.
func (s *Service) ListDiscussions(ctx context.Context, input ListInput) ([]domain.DiscussionView, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	items, err := s.discussions.List(ctx, input.Category, s.pageSize, input.Page*s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("content.ListDiscussions: %w", err)
	}

	return s.discussionViews(ctx, items)
}

// UpdateDiscussion applies a partial update. Only the owner may edit.
func (s *Service) UpdateDiscussion(ctx context.Context, input UpdateDiscussionInput) (*domain.Discussion, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.discussions.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("content.UpdateDiscussion get: %w", err)
	}
	if existing.UserID != userID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.discussions.Update(ctx, input.ID, input.Params)
	if err != nil {
		return nil, fmt.Errorf("content.UpdateDiscussion: %w", err)
	}

	s.log.InfoContext(ctx, "discussion updated", slog.String("discussion_id", input.ID.String()))

	return updated, nil
}

// DeleteDiscussion removes a discussion. Allowed for the owner and for
// admins.
func (s *Service) DeleteDiscussion(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	existing, err := s.discussions.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("content.DeleteDiscussion get: %w", err)
	}
	if existing.UserID != userID && !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}

	if err := s.discussions.Delete(ctx, id); err != nil {
		return fmt.Errorf("content.DeleteDiscussion: %w", err)
	}

	s.log.InfoContext(ctx, "discussion deleted", slog.String("discussion_id", id.String()))

	return nil
}
