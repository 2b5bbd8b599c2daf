// Package saved implements the bookmark (saved deal/coupon) repository
// using PostgreSQL.
package saved

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dealboard/dealboard-backend/internal/adapter/postgres"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// Repo provides bookmark persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new saved-items repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// SaveDeal bookmarks a deal. Idempotent: saving twice is not an error.
func (r *Repo) SaveDeal(ctx context.Context, userID, dealID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		INSERT INTO saved_deals (user_id, deal_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, userID, dealID)
	if err != nil {
		return postgres.MapError(err, "saved_deal", dealID)
	}
	return nil
}

// UnsaveDeal removes a bookmark. Not an error if it did not exist.
func (r *Repo) UnsaveDeal(ctx context.Context, userID, dealID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx,
		`DELETE FROM saved_deals WHERE user_id = $1 AND deal_id = $2`, userID, dealID); err != nil {
		return postgres.MapError(err, "saved_deal", dealID)
	}
	return nil
}

// ListDeals returns the user's saved deals, most recently saved first.
func (r *Repo) ListDeals(ctx context.Context, userID uuid.UUID) ([]domain.Deal, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT d.id, d.slug, d.title, d.description, d.price, d.original_price,
		       d.merchant, d.category, d.expires_at, d.expired, d.user_id,
		       d.created_at, d.updated_at
		FROM saved_deals s
		JOIN deals d ON d.id = s.deal_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved deals: %w", err)
	}
	defer rows.Close()

	result := []domain.Deal{}
	for rows.Next() {
		var (
			d             domain.Deal
			originalPrice pgtype.Float8
			expiresAt     pgtype.Timestamptz
		)
		err := rows.Scan(&d.ID, &d.Slug, &d.Title, &d.Description, &d.Price, &originalPrice,
			&d.Merchant, &d.Category, &expiresAt, &d.Expired, &d.UserID,
			&d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("list saved deals: %w", err)
		}
		d.OriginalPrice = postgres.PtrFromFloat8(originalPrice)
		d.ExpiresAt = postgres.PtrFromTimestamptz(expiresAt)
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saved deals: %w", err)
	}
	return result, nil
}

// SaveCoupon bookmarks a coupon. Idempotent.
func (r *Repo) SaveCoupon(ctx context.Context, userID, couponID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		INSERT INTO saved_coupons (user_id, coupon_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, userID, couponID)
	if err != nil {
		return postgres.MapError(err, "saved_coupon", couponID)
	}
	return nil
}

// UnsaveCoupon removes a bookmark. Not an error if it did not exist.
func (r *Repo) UnsaveCoupon(ctx context.Context, userID, couponID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx,
		`DELETE FROM saved_coupons WHERE user_id = $1 AND coupon_id = $2`, userID, couponID); err != nil {
		return postgres.MapError(err, "saved_coupon", couponID)
	}
	return nil
}

// ListCoupons returns the user's saved coupons, most recently saved first.
func (r *Repo) ListCoupons(ctx context.Context, userID uuid.UUID) ([]domain.Coupon, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT c.id, c.slug, c.title, c.description, c.code, c.discount,
		       c.merchant, c.category, c.expires_at, c.expired, c.user_id,
		       c.created_at, c.updated_at
		FROM saved_coupons s
		JOIN coupons c ON c.id = s.coupon_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved coupons: %w", err)
	}
	defer rows.Close()

	result := []domain.Coupon{}
	for rows.Next() {
		var (
			c         domain.Coupon
			expiresAt pgtype.Timestamptz
		)
		err := rows.Scan(&c.ID, &c.Slug, &c.Title, &c.Description, &c.Code, &c.Discount,
			&c.Merchant, &c.Category, &expiresAt, &c.Expired, &c.UserID,
			&c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("list saved coupons: %w", err)
		}
		c.ExpiresAt = postgres.PtrFromTimestamptz(expiresAt)
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saved coupons: %w", err)
	}
	return result, nil
}
