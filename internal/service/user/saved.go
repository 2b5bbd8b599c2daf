package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

// SaveDeal bookmarks a deal for the authenticated user. Saving an
// already-saved deal is a no-op; a missing deal is NotFound.
func (s *Service) SaveDeal(ctx context.Context, dealID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.saved.SaveDeal(ctx, userID, dealID); err != nil {
		return fmt.Errorf("user.SaveDeal: %w", err)
	}

	s.log.InfoContext(ctx, "deal saved",
		slog.String("user_id", userID.String()),
		slog.String("deal_id", dealID.String()),
	)
	return nil
}

// UnsaveDeal removes a bookmark. Removing a non-saved deal is a no-op.
func (s *Service) UnsaveDeal(ctx context.Context, dealID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.saved.UnsaveDeal(ctx, userID, dealID); err != nil {
		return fmt.Errorf("user.UnsaveDeal: %w", err)
	}
	return nil
}

// SavedDeals lists the authenticated user's bookmarked deals, most
// recently saved first.
func (s *Service) SavedDeals(ctx context.Context) ([]domain.Deal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	deals, err := s.saved.ListDeals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.SavedDeals: %w", err)
	}
	return deals, nil
}

// SaveCoupon bookmarks a coupon for the authenticated user.
func (s *Service) SaveCoupon(ctx context.Context, couponID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.saved.SaveCoupon(ctx, userID, couponID); err != nil {
		return fmt.Errorf("user.SaveCoupon: %w", err)
	}

	s.log.InfoContext(ctx, "coupon saved",
		slog.String("user_id", userID.String()),
		slog.String("coupon_id", couponID.String()),
	)
	return nil
}

// UnsaveCoupon removes a bookmark.
func (s *Service) UnsaveCoupon(ctx context.Context, couponID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.saved.UnsaveCoupon(ctx, userID, couponID); err != nil {
		return fmt.Errorf("user.UnsaveCoupon: %w", err)
	}
	return nil
}

// SavedCoupons lists the authenticated user's bookmarked coupons.
func (s *Service) SavedCoupons(ctx context.Context) ([]domain.Coupon, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	coupons, err := s.saved.ListCoupons(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.SavedCoupons: %w", err)
	}
	return coupons, nil
}
