// Package auth implements authentication: external-identity login with
// create-on-first-sign-in, password register/login, token refresh and
// logout. Session tokens are local JWTs; identity verification is
// delegated to the external provider.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/auth"
	"github.com/dealboard/dealboard-backend/internal/config"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	GetPasswordHashByEmail(ctx context.Context, email string) (*domain.User, *string, error)
	Create(ctx context.Context, p domain.NewUserParams) (*domain.User, error)
	LinkGoogle(ctx context.Context, id uuid.UUID, googleID string, avatarURL *string) (*domain.User, error)
}

// tokenRepo defines the refresh token repository interface needed by auth service.
type tokenRepo interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByID(ctx context.Context, id uuid.UUID) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// txManager runs a function inside a database transaction. Repositories
// called from fn pick the transaction up from the context.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// oauthVerifier defines the external identity verification interface.
type oauthVerifier interface {
	VerifyCode(ctx context.Context, code string) (*auth.OAuthIdentity, error)
}

// jwtManager defines the JWT token management interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID, role string) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, string, error)
	GenerateRefreshToken() (raw string, hash string, err error)
}

// Service implements auth operations.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tokens tokenRepo
	tx     txManager
	oauth  oauthVerifier
	jwt    jwtManager
	cfg    config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tokens tokenRepo,
	tx txManager,
	oauth oauthVerifier,
	jwt jwtManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "auth"),
		users:  users,
		tokens: tokens,
		tx:     tx,
		oauth:  oauth,
		jwt:    jwt,
		cfg:    cfg,
	}
}

// ValidateToken checks an access token and returns the subject user ID
// and role. Used by the auth middleware on every request.
func (s *Service) ValidateToken(_ context.Context, token string) (uuid.UUID, string, error) {
	userID, role, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return userID, role, nil
}

// issueTokens generates access and refresh tokens for the given user,
// stores the refresh token hash, and returns an AuthResult.
func (s *Service) issueTokens(ctx context.Context, user *domain.User) (*AuthResult, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.ID, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	rawRefresh, hashRefresh, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	refreshToken := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashRefresh,
		ExpiresAt: time.Now().Add(s.cfg.RefreshTokenTTL),
	}
	if err := s.tokens.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		User:         user,
	}, nil
}
