package domain

// Role represents a user's authorization level.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// VoteType represents the direction of a vote.
type VoteType string

const (
	VoteUp   VoteType = "UP"
	VoteDown VoteType = "DOWN"
)

func (v VoteType) String() string { return string(v) }

func (v VoteType) IsValid() bool {
	switch v {
	case VoteUp, VoteDown:
		return true
	}
	return false
}

// TargetKind identifies the kind of entity a vote or comment is attached to.
type TargetKind string

const (
	TargetDeal       TargetKind = "DEAL"
	TargetCoupon     TargetKind = "COUPON"
	TargetDiscussion TargetKind = "DISCUSSION"
	TargetComment    TargetKind = "COMMENT"
)

func (k TargetKind) String() string { return string(k) }

func (k TargetKind) IsValid() bool {
	switch k {
	case TargetDeal, TargetCoupon, TargetDiscussion, TargetComment:
		return true
	}
	return false
}

// Category represents the browsable category of a deal, coupon or discussion.
type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryFashion     Category = "FASHION"
	CategoryGrocery     Category = "GROCERY"
	CategoryTravel      Category = "TRAVEL"
	CategoryGaming      Category = "GAMING"
	CategoryHome        Category = "HOME"
	CategoryBeauty      Category = "BEAUTY"
	CategoryFinance     Category = "FINANCE"
	CategoryOther       Category = "OTHER"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryElectronics, CategoryFashion, CategoryGrocery, CategoryTravel,
		CategoryGaming, CategoryHome, CategoryBeauty, CategoryFinance, CategoryOther:
		return true
	}
	return false
}
