package domain

import (
	"time"

	"github.com/google/uuid"
)

// Coupon represents a community-posted coupon code.
type Coupon struct {
	ID          uuid.UUID
	Slug        string
	Title       string
	Description string
	Code        string
	Discount    string
	Merchant    string
	Category    Category
	ExpiresAt   *time.Time
	Expired     bool
	UserID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsExpired reports whether the coupon is expired at the given instant.
func (c *Coupon) IsExpired(now time.Time) bool {
	if c.Expired {
		return true
	}
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// CouponUpdateParams holds partial-update fields for a coupon.
// nil means "don't change".
type CouponUpdateParams struct {
	Title       *string
	Description *string
	Code        *string
	Discount    *string
	Merchant    *string
	Category    *Category
	ExpiresAt   *time.Time
	Expired     *bool
}
