package domain

import (
	"time"

	"github.com/google/uuid"
)

// TargetRef points at the single entity a vote or comment is attached
// to. Exactly one of the ID fields must be set.
type TargetRef struct {
	DealID       *uuid.UUID
	CouponID     *uuid.UUID
	DiscussionID *uuid.UUID
	CommentID    *uuid.UUID
}

// Kind returns the kind of the referenced entity, or "" if the ref is
// empty or ambiguous.
func (t TargetRef) Kind() TargetKind {
	var kind TargetKind
	n := 0
	if t.DealID != nil {
		kind, n = TargetDeal, n+1
	}
	if t.CouponID != nil {
		kind, n = TargetCoupon, n+1
	}
	if t.DiscussionID != nil {
		kind, n = TargetDiscussion, n+1
	}
	if t.CommentID != nil {
		kind, n = TargetComment, n+1
	}
	if n != 1 {
		return ""
	}
	return kind
}

// ID returns the single referenced entity ID, or uuid.Nil for an
// invalid ref.
func (t TargetRef) ID() uuid.UUID {
	switch t.Kind() {
	case TargetDeal:
		return *t.DealID
	case TargetCoupon:
		return *t.CouponID
	case TargetDiscussion:
		return *t.DiscussionID
	case TargetComment:
		return *t.CommentID
	}
	return uuid.Nil
}

// Validate checks that exactly one target is referenced.
func (t TargetRef) Validate() error {
	if t.Kind() == "" {
		return NewValidationError("target", "exactly one of dealId, couponId, discussionId, commentId is required")
	}
	return nil
}

// Vote is a single user's vote on one target. At most one row exists
// per (user, target); the schema enforces this with partial unique
// indexes.
type Vote struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Target    TargetRef
	Type      VoteType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VoteAction tags the outcome of recording a vote.
type VoteAction string

const (
	// VoteCreated: no previous vote existed, a new row was created.
	VoteCreated VoteAction = "created"
	// VoteUpdated: a vote of the opposite type was switched in place.
	VoteUpdated VoteAction = "updated"
	// VoteRemoved: the same vote was cast twice and retracted (toggle-off).
	VoteRemoved VoteAction = "removed"
)

// VoteResult is the outcome of RecordVote. Vote is nil when the
// action is VoteRemoved.
type VoteResult struct {
	Action VoteAction
	Vote   *Vote
}
