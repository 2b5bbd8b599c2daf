package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dealboard/dealboard-backend/internal/auth"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// Login performs external-identity authentication and returns
// access/refresh tokens. On the first successful sign-in the local
// user record is created with role USER. If a password-registered user
// with the same verified email exists, the external identity is linked
// to that account instead.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity, err := s.oauth.VerifyCode(ctx, input.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: oauth verification: %v", domain.ErrUnauthorized, err)
	}
	identity.Email = strings.ToLower(strings.TrimSpace(identity.Email))

	// Known external identity → existing user.
	user, err := s.users.GetByGoogleID(ctx, identity.ProviderID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.Login get by google id: %w", err)
	}
	if user != nil {
		result, err := s.issueTokens(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("auth.Login issue tokens: %w", err)
		}
		s.log.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()))
		return result, nil
	}

	// Same email already registered (password method) → link.
	user, err = s.users.GetByEmail(ctx, identity.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.Login get by email: %w", err)
	}
	if user != nil {
		user, err = s.users.LinkGoogle(ctx, user.ID, identity.ProviderID, identity.AvatarURL)
		if err != nil {
			return nil, fmt.Errorf("auth.Login link identity: %w", err)
		}

		result, err := s.issueTokens(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("auth.Login issue tokens: %w", err)
		}
		s.log.InfoContext(ctx, "external identity linked", slog.String("user_id", user.ID.String()))
		return result, nil
	}

	// First sign-in → create the local user.
	user, err = s.registerExternalUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user registered via external identity",
		slog.String("user_id", user.ID.String()))

	return result, nil
}

// registerExternalUser creates a user from the provider identity. The
// username starts as the email prefix and gets a numeric suffix when
// taken.
func (s *Service) registerExternalUser(ctx context.Context, identity *auth.OAuthIdentity) (*domain.User, error) {
	base := domain.Slugify(emailPrefix(identity.Email))
	if base == "" {
		base = "user"
	}

	username := base
	for attempt := 0; ; attempt++ {
		user, err := s.users.Create(ctx, domain.NewUserParams{
			Email:     identity.Email,
			Username:  username,
			AvatarURL: identity.AvatarURL,
			GoogleID:  &identity.ProviderID,
		})
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) || attempt >= 5 {
			return nil, fmt.Errorf("auth.Login create user: %w", err)
		}
		username = fmt.Sprintf("%s-%d", base, attempt+2)
	}
}

// emailPrefix extracts the part before @ from an email address.
func emailPrefix(email string) string {
	if idx := strings.IndexByte(email, '@'); idx > 0 {
		return email[:idx]
	}
	return email
}
