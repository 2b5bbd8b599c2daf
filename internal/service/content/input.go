package content

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 10000
)

// CreateDealInput holds the parameters for creating a deal.
type CreateDealInput struct {
	Title         string
	Description   string
	Price         float64
	OriginalPrice *float64
	Merchant      string
	Category      domain.Category
	ExpiresAt     *time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateDealInput) Validate() error {
	errs := validateContentFields(i.Title, i.Description, i.Merchant, i.Category)

	if i.Price < 0 {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must not be negative"})
	}
	if i.OriginalPrice != nil && *i.OriginalPrice < i.Price {
		errs = append(errs, domain.FieldError{Field: "originalPrice", Message: "must not be below price"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateDealInput holds the parameters for a partial deal update.
// nil fields stay unchanged.
type UpdateDealInput struct {
	ID     uuid.UUID
	Params domain.DealUpdateParams
}

// Validate checks all fields and collects all errors.
func (i UpdateDealInput) Validate() error {
	var errs []domain.FieldError

	p := i.Params
	if p.Title != nil && !validTitle(*p.Title) {
		errs = append(errs, domain.FieldError{Field: "title", Message: "1-200 characters"})
	}
	if p.Description != nil && len(*p.Description) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 10000 characters"})
	}
	if p.Price != nil && *p.Price < 0 {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must not be negative"})
	}
	if p.Merchant != nil && strings.TrimSpace(*p.Merchant) == "" {
		errs = append(errs, domain.FieldError{Field: "merchant", Message: "required"})
	}
	if p.Category != nil && !p.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateCouponInput holds the parameters for creating a coupon.
type CreateCouponInput struct {
	Title       string
	Description string
	Code        string
	Discount    string
	Merchant    string
	Category    domain.Category
	ExpiresAt   *time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateCouponInput) Validate() error {
	errs := validateContentFields(i.Title, i.Description, i.Merchant, i.Category)

	if strings.TrimSpace(i.Code) == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	}
	if strings.TrimSpace(i.Discount) == "" {
		errs = append(errs, domain.FieldError{Field: "discount", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateCouponInput holds the parameters for a partial coupon update.
type UpdateCouponInput struct {
	ID     uuid.UUID
	Params domain.CouponUpdateParams
}

// Validate checks all fields and collects all errors.
func (i UpdateCouponInput) Validate() error {
	var errs []domain.FieldError

	p := i.Params
	if p.Title != nil && !validTitle(*p.Title) {
		errs = append(errs, domain.FieldError{Field: "title", Message: "1-200 characters"})
	}
	if p.Code != nil && strings.TrimSpace(*p.Code) == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	}
	if p.Category != nil && !p.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateDiscussionInput holds the parameters for creating a discussion.
type CreateDiscussionInput struct {
	Title        string
	Description  string
	Category     domain.Category
	DealCategory *domain.Category
}

// Validate checks all fields and collects all errors.
func (i CreateDiscussionInput) Validate() error {
	var errs []domain.FieldError

	if !validTitle(i.Title) {
		errs = append(errs, domain.FieldError{Field: "title", Message: "1-200 characters"})
	}
	if strings.TrimSpace(i.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	if i.DealCategory != nil && !i.DealCategory.IsValid() {
		errs = append(errs, domain.FieldError{Field: "dealCategory", Message: "unknown category"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateDiscussionInput holds the parameters for a partial discussion update.
type UpdateDiscussionInput struct {
	ID     uuid.UUID
	Params domain.DiscussionUpdateParams
}

// Validate checks all fields and collects all errors.
func (i UpdateDiscussionInput) Validate() error {
	var errs []domain.FieldError

	p := i.Params
	if p.Title != nil && !validTitle(*p.Title) {
		errs = append(errs, domain.FieldError{Field: "title", Message: "1-200 characters"})
	}
	if p.Category != nil && !p.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	if p.DealCategory != nil && !p.DealCategory.IsValid() {
		errs = append(errs, domain.FieldError{Field: "dealCategory", Message: "unknown category"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput bounds a category browse.
type ListInput struct {
	Category *domain.Category
	Page     int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Category != nil && !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	if i.Page < 0 {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validTitle(title string) bool {
	t := strings.TrimSpace(title)
	return t != "" && len(t) <= maxTitleLength
}

func validateContentFields(title, description, merchant string, category domain.Category) []domain.FieldError {
	var errs []domain.FieldError

	if !validTitle(title) {
		errs = append(errs, domain.FieldError{Field: "title", Message: "1-200 characters"})
	}
	if strings.TrimSpace(description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	} else if len(description) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 10000 characters"})
	}
	if strings.TrimSpace(merchant) == "" {
		errs = append(errs, domain.FieldError{Field: "merchant", Message: "required"})
	}
	if !category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}

	return errs
}
