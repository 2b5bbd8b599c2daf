package rest

import (
	"net/http"

	"github.com/dealboard/dealboard-backend/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Deal       *DealHandler
	Coupon     *CouponHandler
	Discussion *DiscussionHandler
	Comment    *CommentHandler
	Vote       *VoteHandler
	User       *UserHandler
	Admin      *AdminHandler
	Health     *HealthHandler
}

// NewRouter builds the route table. Literal segments win over
// wildcards, so /deals/hottest is matched before /deals/{slug}.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /auth/login", h.Auth.Login)
	mux.HandleFunc("POST /auth/login/password", h.Auth.LoginWithPassword)
	mux.HandleFunc("POST /auth/register", h.Auth.Register)
	mux.HandleFunc("POST /auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /auth/logout", h.Auth.Logout)
	mux.HandleFunc("GET /auth/me", h.User.Me)

	// Deals
	mux.HandleFunc("GET /deals", h.Deal.List)
	mux.HandleFunc("POST /deals", h.Deal.Create)
	mux.HandleFunc("GET /deals/hottest", h.Deal.Hottest)
	mux.HandleFunc("GET /deals/most-discussed", h.Deal.MostDiscussed)
	mux.HandleFunc("GET /deals/{slug}", h.Deal.Get)
	mux.HandleFunc("PATCH /deals/{id}", h.Deal.Update)
	mux.HandleFunc("DELETE /deals/{id}", h.Deal.Delete)
	mux.HandleFunc("GET /deals/{id}/comments", h.Comment.DealTree)

	// Coupons
	mux.HandleFunc("GET /coupons", h.Coupon.List)
	mux.HandleFunc("POST /coupons", h.Coupon.Create)
	mux.HandleFunc("GET /coupons/{slug}", h.Coupon.Get)
	mux.HandleFunc("PATCH /coupons/{id}", h.Coupon.Update)
	mux.HandleFunc("DELETE /coupons/{id}", h.Coupon.Delete)
	mux.HandleFunc("GET /coupons/{id}/comments", h.Comment.CouponTree)

	// Discussions
	mux.HandleFunc("GET /discussions", h.Discussion.List)
	mux.HandleFunc("POST /discussions", h.Discussion.Create)
	mux.HandleFunc("GET /discussions/{id}", h.Discussion.Get)
	mux.HandleFunc("PATCH /discussions/{id}", h.Discussion.Update)
	mux.HandleFunc("DELETE /discussions/{id}", h.Discussion.Delete)
	mux.HandleFunc("GET /discussions/{id}/comments", h.Comment.DiscussionTree)

	// Votes and comments
	mux.HandleFunc("POST /votes", h.Vote.Record)
	mux.HandleFunc("POST /comments", h.Comment.Post)
	mux.HandleFunc("DELETE /comments/{id}", h.Comment.Delete)

	// Saved items
	mux.HandleFunc("GET /saved/deals", h.User.SavedDeals)
	mux.HandleFunc("PUT /saved/deals/{id}", h.User.SaveDeal)
	mux.HandleFunc("DELETE /saved/deals/{id}", h.User.UnsaveDeal)
	mux.HandleFunc("GET /saved/coupons", h.User.SavedCoupons)
	mux.HandleFunc("PUT /saved/coupons/{id}", h.User.SaveCoupon)
	mux.HandleFunc("DELETE /saved/coupons/{id}", h.User.UnsaveCoupon)

	// Profiles
	mux.HandleFunc("PATCH /users/me", h.User.UpdateMe)
	mux.HandleFunc("GET /users/{username}", h.User.Profile)

	// Admin (role enforced before the handler runs; the content
	// services let admins through their ownership checks)
	mux.Handle("GET /admin/users", middleware.AdminOnly(http.HandlerFunc(h.Admin.ListUsers)))
	mux.Handle("DELETE /admin/deals/{id}", middleware.AdminOnly(http.HandlerFunc(h.Deal.Delete)))
	mux.Handle("DELETE /admin/coupons/{id}", middleware.AdminOnly(http.HandlerFunc(h.Coupon.Delete)))
	mux.Handle("DELETE /admin/discussions/{id}", middleware.AdminOnly(http.HandlerFunc(h.Discussion.Delete)))
	mux.Handle("DELETE /admin/comments/{id}", middleware.AdminOnly(http.HandlerFunc(h.Comment.Delete)))

	// Health
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	return mux
}
