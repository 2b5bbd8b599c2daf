// Package user implements profile access, saved-item bookkeeping and
// the admin user listing. Role changes never happen in-band; promotion
// goes through cmd/promote.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, avatarURL *string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// savedRepo defines the saved-items repository interface needed by user service.
type savedRepo interface {
	SaveDeal(ctx context.Context, userID, dealID uuid.UUID) error
	UnsaveDeal(ctx context.Context, userID, dealID uuid.UUID) error
	ListDeals(ctx context.Context, userID uuid.UUID) ([]domain.Deal, error)
	SaveCoupon(ctx context.Context, userID, couponID uuid.UUID) error
	UnsaveCoupon(ctx context.Context, userID, couponID uuid.UUID) error
	ListCoupons(ctx context.Context, userID uuid.UUID) ([]domain.Coupon, error)
}

// Service implements user operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	saved savedRepo
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo, saved savedRepo) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
		saved: saved,
	}
}

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.Me: %w", err)
	}
	return u, nil
}

// GetByUsername returns a public profile.
func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user.GetByUsername: %w", err)
	}
	return u, nil
}

// UpdateAvatar sets or clears the authenticated user's avatar URL.
func (s *Service) UpdateAvatar(ctx context.Context, avatarURL *string) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	u, err := s.users.UpdateProfile(ctx, userID, avatarURL)
	if err != nil {
		return nil, fmt.Errorf("user.UpdateAvatar: %w", err)
	}

	s.log.InfoContext(ctx, "avatar updated", slog.String("user_id", userID.String()))

	return u, nil
}

// ListUsers returns a page of users. Admin only; the transport gate
// enforces the role, the service double-checks.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("user.ListUsers: %w", err)
	}
	return users, nil
}
