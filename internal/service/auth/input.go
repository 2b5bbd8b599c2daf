package auth

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/dealboard/dealboard-backend/internal/domain"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,30}$`)

// LoginInput holds the parameters for external-identity login.
type LoginInput struct {
	Code string
}

// Validate checks all fields and collects all errors.
func (i LoginInput) Validate() error {
	if strings.TrimSpace(i.Code) == "" {
		return domain.NewValidationError("code", "required")
	}
	return nil
}

// RegisterInput holds the parameters for password registration.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// Validate checks all fields and collects all errors.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	email := strings.TrimSpace(i.Email)
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid address"})
	}

	if !usernameRe.MatchString(strings.TrimSpace(i.Username)) {
		errs = append(errs, domain.FieldError{Field: "username", Message: "3-30 characters: letters, digits, _ . -"})
	}

	if len(i.Password) < 8 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "min 8 characters"})
	}
	if len(i.Password) > 72 {
		// bcrypt truncates beyond 72 bytes
		errs = append(errs, domain.FieldError{Field: "password", Message: "max 72 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginPasswordInput holds the parameters for password login.
type LoginPasswordInput struct {
	Email    string
	Password string
}

// Validate checks all fields and collects all errors.
func (i LoginPasswordInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds the parameters for token refresh.
type RefreshInput struct {
	RefreshToken string
}

// Validate checks all fields and collects all errors.
func (i RefreshInput) Validate() error {
	if i.RefreshToken == "" {
		return domain.NewValidationError("refreshToken", "required")
	}
	return nil
}
