package rest

import (
	"time"

	"github.com/dealboard/dealboard-backend/internal/domain"
)

// Response DTOs. Views come annotated from the services; bare entities
// (fresh creates and updates) are wrapped with zero score and no vote.

type userResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Role      string  `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		Role:      u.Role.String(),
	}
}

// profileResponse is the public view of a user. It carries no email.
type profileResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Role      string  `json:"role"`
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		Role:      u.Role.String(),
	}
}

type dealResponse struct {
	ID            string          `json:"id"`
	Slug          string          `json:"slug"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         float64         `json:"price"`
	OriginalPrice *float64        `json:"originalPrice,omitempty"`
	Merchant      string          `json:"merchant"`
	Category      string          `json:"category"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"`
	Expired       bool            `json:"expired"`
	CreatedAt     time.Time       `json:"createdAt"`
	PostedBy      domain.PostedBy `json:"postedBy"`
	Score         int             `json:"score"`
	UserVote      *string         `json:"userVote"`
	CommentCount  int             `json:"commentCount"`
}

func toDealResponse(v domain.DealView) dealResponse {
	return dealResponse{
		ID:            v.ID.String(),
		Slug:          v.Slug,
		Title:         v.Title,
		Description:   v.Description,
		Price:         v.Price,
		OriginalPrice: v.OriginalPrice,
		Merchant:      v.Merchant,
		Category:      v.Category.String(),
		ExpiresAt:     v.ExpiresAt,
		Expired:       v.Expired,
		CreatedAt:     v.CreatedAt,
		PostedBy:      v.PostedBy,
		Score:         v.Score,
		UserVote:      voteTypePtr(v.UserVote),
		CommentCount:  v.CommentCount,
	}
}

func toDealResponses(views []domain.DealView) []dealResponse {
	out := make([]dealResponse, len(views))
	for i, v := range views {
		out[i] = toDealResponse(v)
	}
	return out
}

func toBareDealResponse(d *domain.Deal) dealResponse {
	return toDealResponse(domain.DealView{Deal: *d})
}

type couponResponse struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Code         string          `json:"code"`
	Discount     string          `json:"discount"`
	Merchant     string          `json:"merchant"`
	Category     string          `json:"category"`
	ExpiresAt    *time.Time      `json:"expiresAt,omitempty"`
	Expired      bool            `json:"expired"`
	CreatedAt    time.Time       `json:"createdAt"`
	PostedBy     domain.PostedBy `json:"postedBy"`
	Score        int             `json:"score"`
	UserVote     *string         `json:"userVote"`
	CommentCount int             `json:"commentCount"`
}

func toCouponResponse(v domain.CouponView) couponResponse {
	return couponResponse{
		ID:           v.ID.String(),
		Slug:         v.Slug,
		Title:        v.Title,
		Description:  v.Description,
		Code:         v.Code,
		Discount:     v.Discount,
		Merchant:     v.Merchant,
		Category:     v.Category.String(),
		ExpiresAt:    v.ExpiresAt,
		Expired:      v.Expired,
		CreatedAt:    v.CreatedAt,
		PostedBy:     v.PostedBy,
		Score:        v.Score,
		UserVote:     voteTypePtr(v.UserVote),
		CommentCount: v.CommentCount,
	}
}

func toCouponResponses(views []domain.CouponView) []couponResponse {
	out := make([]couponResponse, len(views))
	for i, v := range views {
		out[i] = toCouponResponse(v)
	}
	return out
}

func toBareCouponResponse(c *domain.Coupon) couponResponse {
	return toCouponResponse(domain.CouponView{Coupon: *c})
}

type discussionResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	DealCategory *string         `json:"dealCategory,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	PostedBy     domain.PostedBy `json:"postedBy"`
	Score        int             `json:"score"`
	UserVote     *string         `json:"userVote"`
	CommentCount int             `json:"commentCount"`
}

func toDiscussionResponse(v domain.DiscussionView) discussionResponse {
	var dealCategory *string
	if v.DealCategory != nil {
		s := v.DealCategory.String()
		dealCategory = &s
	}
	return discussionResponse{
		ID:           v.ID.String(),
		Title:        v.Title,
		Description:  v.Description,
		Category:     v.Category.String(),
		DealCategory: dealCategory,
		CreatedAt:    v.CreatedAt,
		PostedBy:     v.PostedBy,
		Score:        v.Score,
		UserVote:     voteTypePtr(v.UserVote),
		CommentCount: v.CommentCount,
	}
}

func toDiscussionResponses(views []domain.DiscussionView) []discussionResponse {
	out := make([]discussionResponse, len(views))
	for i, v := range views {
		out[i] = toDiscussionResponse(v)
	}
	return out
}

func toBareDiscussionResponse(d *domain.Discussion) discussionResponse {
	return toDiscussionResponse(domain.DiscussionView{Discussion: *d})
}

type commentNodeResponse struct {
	ID        string                `json:"id"`
	Content   string                `json:"content"`
	CreatedAt time.Time             `json:"createdAt"`
	PostedBy  domain.PostedBy       `json:"postedBy"`
	Score     int                   `json:"score"`
	UserVote  *string               `json:"userVote"`
	Replies   []commentNodeResponse `json:"replies"`
}

func toCommentTreeResponse(nodes []domain.CommentNode) []commentNodeResponse {
	out := make([]commentNodeResponse, len(nodes))
	for i, n := range nodes {
		out[i] = commentNodeResponse{
			ID:        n.ID.String(),
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
			PostedBy:  n.PostedBy,
			Score:     n.Score,
			UserVote:  voteTypePtr(n.UserVote),
			Replies:   toCommentTreeResponse(n.Replies),
		}
	}
	return out
}

type voteResponse struct {
	ID        string    `json:"id"`
	VoteType  string    `json:"voteType"`
	CreatedAt time.Time `json:"createdAt"`
}

type voteResultResponse struct {
	Action string        `json:"action"`
	Vote   *voteResponse `json:"vote,omitempty"`
}

func toVoteResultResponse(result *domain.VoteResult) voteResultResponse {
	out := voteResultResponse{Action: string(result.Action)}
	if result.Vote != nil {
		out.Vote = &voteResponse{
			ID:        result.Vote.ID.String(),
			VoteType:  result.Vote.Type.String(),
			CreatedAt: result.Vote.CreatedAt,
		}
	}
	return out
}

type commentResponse struct {
	ID        string          `json:"id"`
	Content   string          `json:"content"`
	ParentID  *string         `json:"parentId,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	PostedBy  domain.PostedBy `json:"postedBy"`
	Score     int             `json:"score"`
	UserVote  *string         `json:"userVote"`
}

func toCommentResponse(n *domain.CommentNode) commentResponse {
	out := commentResponse{
		ID:        n.ID.String(),
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		PostedBy:  n.PostedBy,
		Score:     n.Score,
		UserVote:  voteTypePtr(n.UserVote),
	}
	if n.ParentID != nil {
		s := n.ParentID.String()
		out.ParentID = &s
	}
	return out
}

func voteTypePtr(vt *domain.VoteType) *string {
	if vt == nil {
		return nil
	}
	s := vt.String()
	return &s
}
