package domain

import (
	"time"

	"github.com/google/uuid"
)

// Deal represents a community-posted deal. Identity (ID, slug, owner)
// is immutable after creation; content fields may be edited by the
// owner, and the row is deleted only by the owner or an admin.
type Deal struct {
	ID            uuid.UUID
	Slug          string
	Title         string
	Description   string
	Price         float64
	OriginalPrice *float64
	Merchant      string
	Category      Category
	ExpiresAt     *time.Time
	Expired       bool
	UserID        uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsExpired reports whether the deal should be treated as expired at
// the given instant, from either the explicit flag or the timestamp.
func (d *Deal) IsExpired(now time.Time) bool {
	if d.Expired {
		return true
	}
	return d.ExpiresAt != nil && d.ExpiresAt.Before(now)
}

// DealUpdateParams holds partial-update fields for a deal.
// nil means "don't change".
type DealUpdateParams struct {
	Title         *string
	Description   *string
	Price         *float64
	OriginalPrice *float64
	Merchant      *string
	Category      *Category
	ExpiresAt     *time.Time
	Expired       *bool
}
