// Package coupon implements the Coupon repository using PostgreSQL.
package coupon

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dealboard/dealboard-backend/internal/adapter/postgres"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// WithAuthor is a coupon joined with its author summary.
type WithAuthor struct {
	domain.Coupon
	Author domain.PostedBy
}

// Filter bounds a List query.
type Filter struct {
	Category       *domain.Category
	IncludeExpired bool
	Limit          int
	Offset         int
}

// Repo provides coupon persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new coupon repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const couponJoinedColumns = `
	c.id, c.slug, c.title, c.description, c.code, c.discount,
	c.merchant, c.category, c.expires_at, c.expired, c.user_id,
	c.created_at, c.updated_at,
	u.id, u.username, u.avatar_url`

// Create inserts a new coupon. Returns domain.ErrAlreadyExists on
// slug collision.
func (r *Repo) Create(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out := *c
	err := q.QueryRow(ctx, `
		INSERT INTO coupons (slug, title, description, code, discount, merchant, category, expires_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, expired, created_at, updated_at`,
		c.Slug, c.Title, c.Description, c.Code, c.Discount,
		c.Merchant, c.Category, postgres.TimestamptzFromPtr(c.ExpiresAt), c.UserID,
	).Scan(&out.ID, &out.Expired, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "coupon", uuid.Nil)
	}
	return &out, nil
}

// GetByID returns a coupon with its author.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*WithAuthor, error) {
	return r.getOne(ctx, "c.id = $1", id)
}

// GetBySlug returns a coupon with its author.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*WithAuthor, error) {
	return r.getOne(ctx, "c.slug = $1", slug)
}

func (r *Repo) getOne(ctx context.Context, where string, arg any) (*WithAuthor, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+couponJoinedColumns+` FROM coupons c JOIN users u ON u.id = c.user_id WHERE `+where, arg)
	c, err := scanCouponWithAuthor(row)
	if err != nil {
		return nil, postgres.MapError(err, "coupon", uuid.Nil)
	}
	return c, nil
}

// List returns coupons with authors, newest first, per the filter.
func (r *Repo) List(ctx context.Context, f Filter) ([]WithAuthor, error) {
	b := psql.Select(
		"c.id", "c.slug", "c.title", "c.description", "c.code", "c.discount",
		"c.merchant", "c.category", "c.expires_at", "c.expired", "c.user_id",
		"c.created_at", "c.updated_at",
		"u.id", "u.username", "u.avatar_url",
	).
		From("coupons c").
		Join("users u ON u.id = c.user_id").
		OrderBy("c.created_at DESC")

	if f.Category != nil {
		b = b.Where(sq.Eq{"c.category": *f.Category})
	}
	if !f.IncludeExpired {
		b = b.Where(sq.Eq{"c.expired": false}).
			Where(sq.Or{sq.Eq{"c.expires_at": nil}, sq.Expr("c.expires_at > now()")})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list coupons query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	result := []WithAuthor{}
	for rows.Next() {
		c, err := scanCouponWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("list coupons: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	return result, nil
}

// Update applies a partial update and returns the updated row.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, p domain.CouponUpdateParams) (*domain.Coupon, error) {
	b := psql.Update("coupons").Set("updated_at", sq.Expr("now()")).Where(sq.Eq{"id": id})

	if p.Title != nil {
		b = b.Set("title", *p.Title)
	}
	if p.Description != nil {
		b = b.Set("description", *p.Description)
	}
	if p.Code != nil {
		b = b.Set("code", *p.Code)
	}
	if p.Discount != nil {
		b = b.Set("discount", *p.Discount)
	}
	if p.Merchant != nil {
		b = b.Set("merchant", *p.Merchant)
	}
	if p.Category != nil {
		b = b.Set("category", *p.Category)
	}
	if p.ExpiresAt != nil {
		b = b.Set("expires_at", *p.ExpiresAt)
	}
	if p.Expired != nil {
		b = b.Set("expired", *p.Expired)
	}

	b = b.Suffix(`RETURNING id, slug, title, description, code, discount,
		merchant, category, expires_at, expired, user_id, created_at, updated_at`)

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update coupon query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		c             domain.Coupon
		originalExpiry pgtype.Timestamptz
	)
	err = q.QueryRow(ctx, sqlStr, args...).Scan(
		&c.ID, &c.Slug, &c.Title, &c.Description, &c.Code, &c.Discount,
		&c.Merchant, &c.Category, &originalExpiry, &c.Expired, &c.UserID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "coupon", id)
	}
	c.ExpiresAt = postgres.PtrFromTimestamptz(originalExpiry)
	return &c, nil
}

// Delete removes a coupon. Votes, comments and saves cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "coupon", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("coupon %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SlugExists reports whether a coupon with the slug already exists.
func (r *Repo) SlugExists(ctx context.Context, slug string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM coupons WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("coupon slug exists: %w", err)
	}
	return exists, nil
}

func scanCouponWithAuthor(row pgx.Row) (*WithAuthor, error) {
	var (
		wa        WithAuthor
		expiresAt pgtype.Timestamptz
		avatar    pgtype.Text
	)
	err := row.Scan(
		&wa.ID, &wa.Slug, &wa.Title, &wa.Description, &wa.Code, &wa.Discount,
		&wa.Merchant, &wa.Category, &expiresAt, &wa.Expired, &wa.UserID,
		&wa.CreatedAt, &wa.UpdatedAt,
		&wa.Author.ID, &wa.Author.Username, &avatar,
	)
	if err != nil {
		return nil, err
	}
	wa.ExpiresAt = postgres.PtrFromTimestamptz(expiresAt)
	wa.Author.AvatarURL = postgres.PtrFromText(avatar)
	return &wa, nil
}
