package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dealboard/dealboard-backend/internal/domain"
)

// Register creates a password-method account. Email and username
// uniqueness surface as domain.ErrAlreadyExists from the store.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashStr := string(hash)

	user, err := s.users.Create(ctx, domain.NewUserParams{
		Email:        email,
		Username:     username,
		PasswordHash: &hashStr,
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Register create user: %w", err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", username),
	)

	return result, nil
}
