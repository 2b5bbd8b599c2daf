package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	dealrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/deal"
	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

// CreateDeal posts a new deal for the authenticated user. The slug is
// derived from the title and suffixed on collision.
func (s *Service) CreateDeal(ctx context.Context, input CreateDealInput) (*domain.Deal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(ctx, input.Title, s.deals.SlugExists)
	if err != nil {
		return nil, fmt.Errorf("content.CreateDeal: %w", err)
	}

	created, err := s.deals.Create(ctx, &domain.Deal{
		Slug:          slug,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Merchant:      strings.TrimSpace(input.Merchant),
		Category:      input.Category,
		ExpiresAt:     input.ExpiresAt,
		UserID:        userID,
	})
	if err != nil {
		return nil, fmt.Errorf("content.CreateDeal: %w", err)
	}

	s.log.InfoContext(ctx, "deal created",
		slog.String("deal_id", created.ID.String()),
		slog.String("slug", created.Slug),
	)

	return created, nil
}

// GetDealBySlug returns the deal view with score, caller vote and
// comment count merged in.
func (s *Service) GetDealBySlug(ctx context.Context, slug string) (*domain.DealView, error) {
	d, err := s.deals.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("content.GetDealBySlug: %w", err)
	}

	views, err := s.DealViews(ctx, []dealrepo.WithAuthor{*d})
	if err != nil {
		return nil, fmt.Errorf("content.GetDealBySlug: %w", err)
	}
	return &views[0], nil
}

// UpdateDeal applies a partial update. Only the owner may edit.
func (s *Service) UpdateDeal(ctx context.Context, input UpdateDealInput) (*domain.Deal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.deals.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("content.UpdateDeal get: %w", err)
	}
	if existing.UserID != userID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.deals.Update(ctx, input.ID, input.Params)
	if err != nil {
		return nil, fmt.Errorf("content.UpdateDeal: %w", err)
	}

	s.log.InfoContext(ctx, "deal updated", slog.String("deal_id", input.ID.String()))

	return updated, nil
}

// DeleteDeal removes a deal. Allowed for the owner and for admins.
func (s *Service) DeleteDeal(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	existing, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("content.DeleteDeal get: %w", err)
	}
	if existing.UserID != userID && !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}

	if err := s.deals.Delete(ctx, id); err != nil {
		return fmt.Errorf("content.DeleteDeal: %w", err)
	}

	s.log.InfoContext(ctx, "deal deleted", slog.String("deal_id", id.String()))

	return nil
}
