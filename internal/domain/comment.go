package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxThreadDepth is the rendered depth of a comment thread: top-level
// comments plus one level of replies. The schema stores a parent
// pointer that could chain deeper; the threading engine never fetches
// past this depth.
const MaxThreadDepth = 2

// Comment is a user comment attached to exactly one deal, coupon or
// discussion. ParentID is nil for a top-level comment; replies carry
// the ID of a top-level comment on the same target.
type Comment struct {
	ID        uuid.UUID
	Content   string
	UserID    uuid.UUID
	Target    TargetRef
	ParentID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsReply reports whether the comment has a parent.
func (c *Comment) IsReply() bool { return c.ParentID != nil }

// SavedDeal is a user's bookmark of a deal.
type SavedDeal struct {
	UserID    uuid.UUID
	DealID    uuid.UUID
	CreatedAt time.Time
}

// SavedCoupon is a user's bookmark of a coupon.
type SavedCoupon struct {
	UserID    uuid.UUID
	CouponID  uuid.UUID
	CreatedAt time.Time
}
