package auth

import "github.com/dealboard/dealboard-backend/internal/domain"

// AuthResult is returned by every operation that establishes a session.
// RefreshToken is the raw token; only its hash is stored.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}
