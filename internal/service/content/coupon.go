package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	couponrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/coupon"
	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

// CreateCoupon posts a new coupon for the authenticated user.
func (s *Service) CreateCoupon(ctx context.Context, input CreateCouponInput) (*domain.Coupon, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(ctx, input.Title, s.coupons.SlugExists)
	if err != nil {
		return nil, fmt.Errorf("content.CreateCoupon: %w", err)
	}

	created, err := s.coupons.Create(ctx, &domain.Coupon{
		Slug:        slug,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Code:        strings.TrimSpace(input.Code),
		Discount:    strings.TrimSpace(input.Discount),
		Merchant:    strings.TrimSpace(input.Merchant),
		Category:    input.Category,
		ExpiresAt:   input.ExpiresAt,
		UserID:      userID,
	})
	if err != nil {
		return nil, fmt.Errorf("content.CreateCoupon: %w", err)
	}

	s.log.InfoContext(ctx, "coupon created",
		slog.String("coupon_id", created.ID.String()),
		slog.String("slug", created.Slug),
	)

	return created, nil
}

// GetCouponBySlug returns the coupon view with score, caller vote and
// comment count merged in.
func (s *Service) GetCouponBySlug(ctx context.Context, slug string) (*domain.CouponView, error) {
	c, err := s.coupons.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("content.GetCouponBySlug: %w", err)
	}

	views, err := s.couponViews(ctx, []couponrepo.WithAuthor{*c})
	if err != nil {
		return nil, fmt.Errorf("content.GetCouponBySlug: %w", err)
	}
	return &views[0], nil
}

// ListCoupons returns a page of non-expired coupon views, newest first,
// optionally filtered by category.
func (s *Service) ListCoupons(ctx context.Context, input ListInput) ([]domain.CouponView, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	items, err := s.coupons.List(ctx, couponrepo.Filter{
		Category: input.Category,
		Limit:    s.pageSize,
		Offset:   input.Page * s.pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("content.ListCoupons: %w", err)
	}

	return s.couponViews(ctx, items)
}

// UpdateCoupon applies a partial update. Only the owner may edit.
func (s *Service) UpdateCoupon(ctx context.Context, input UpdateCouponInput) (*domain.Coupon, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.coupons.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("content.UpdateCoupon get: %w", err)
	}
	if existing.UserID != userID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.coupons.Update(ctx, input.ID, input.Params)
	if err != nil {
		return nil, fmt.Errorf("content.UpdateCoupon: %w", err)
	}

	s.log.InfoContext(ctx, "coupon updated", slog.String("coupon_id", input.ID.String()))

	return updated, nil
}

// DeleteCoupon removes a coupon. Allowed for the owner and for admins.
func (s *Service) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	existing, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("content.DeleteCoupon get: %w", err)
	}
	if existing.UserID != userID && !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}

	if err := s.coupons.Delete(ctx, id); err != nil {
		return fmt.Errorf("content.DeleteCoupon: %w", err)
	}

	s.log.InfoContext(ctx, "coupon deleted", slog.String("coupon_id", id.String()))

	return nil
}
