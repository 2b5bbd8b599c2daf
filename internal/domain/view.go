package domain

import (
	"time"

	"github.com/google/uuid"
)

// Read-side projections. These are computed per request from stored
// rows (score, caller's vote, comment tree) and are never persisted.

// PostedBy is the author summary embedded in views.
type PostedBy struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"name"`
	AvatarURL *string   `json:"avatar,omitempty"`
}

// DealView is a deal with its derived score and the calling user's
// vote. UserVote is nil for anonymous callers or when no vote exists.
type DealView struct {
	Deal
	PostedBy     PostedBy
	Score        int
	UserVote     *VoteType
	CommentCount int
}

// CouponView is a coupon with its derived score and caller vote.
type CouponView struct {
	Coupon
	PostedBy     PostedBy
	Score        int
	UserVote     *VoteType
	CommentCount int
}

// DiscussionView is a discussion with its derived score and caller vote.
type DiscussionView struct {
	Discussion
	PostedBy     PostedBy
	Score        int
	UserVote     *VoteType
	CommentCount int
}

// CommentNode is one node of the two-tier comment tree, also returned
// for a freshly posted comment (score 0, no replies). Replies is
// always empty beyond the first nesting level.
type CommentNode struct {
	ID        uuid.UUID
	Content   string
	ParentID  *uuid.UUID
	CreatedAt time.Time
	PostedBy  PostedBy
	Score     int
	UserVote  *VoteType
	Replies   []CommentNode
}
