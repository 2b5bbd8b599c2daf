package domain

import (
	"time"

	"github.com/google/uuid"
)

// Discussion is a freestanding forum post. It is voted and commented
// on exactly like a deal or coupon but carries no price fields.
type Discussion struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Category     Category
	DealCategory *Category
	UserID       uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DiscussionUpdateParams holds partial-update fields for a discussion.
// nil means "don't change".
type DiscussionUpdateParams struct {
	Title        *string
	Description  *string
	Category     *Category
	DealCategory *Category
}
