package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dealboard/dealboard-backend/internal/domain"
)

// LoginWithPassword authenticates with email + password. Unknown email,
// missing password method, and wrong password are indistinguishable to
// the caller: all return domain.ErrUnauthorized.
func (s *Service) LoginWithPassword(ctx context.Context, input LoginPasswordInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, hash, err := s.users.GetPasswordHashByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.LoginWithPassword get user: %w", err)
	}

	if hash == nil {
		// External-identity account without a password method.
		return nil, domain.ErrUnauthorized
	}

	if bcrypt.CompareHashAndPassword([]byte(*hash), []byte(input.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithPassword issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in with password", slog.String("user_id", user.ID.String()))

	return result, nil
}
