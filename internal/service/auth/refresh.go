package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	internalauth "github.com/dealboard/dealboard-backend/internal/auth"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// Refresh exchanges a valid refresh token for a new token pair. The old
// token is revoked in the same operation (rotation); a revoked or
// expired token yields domain.ErrUnauthorized.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.tokens.GetByHash(ctx, internalauth.HashToken(input.RefreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh get token: %w", err)
	}

	if stored.IsRevoked() || stored.IsExpired(time.Now()) {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh get user: %w", err)
	}

	// Revoking the old token and storing the new one must land
	// together: a failure between the two would strand the user with no
	// valid refresh token.
	var result *AuthResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.tokens.RevokeByID(txCtx, stored.ID); err != nil {
			return fmt.Errorf("auth.Refresh revoke token: %w", err)
		}
		issued, err := s.issueTokens(txCtx, user)
		if err != nil {
			return fmt.Errorf("auth.Refresh issue tokens: %w", err)
		}
		result = issued
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "tokens refreshed", slog.String("user_id", user.ID.String()))

	return result, nil
}
