// Package deal implements the Deal repository using PostgreSQL.
// List queries are built with squirrel because the filter surface
// (category, expiry, pagination) is dynamic.
package deal

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dealboard/dealboard-backend/internal/adapter/postgres"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// WithAuthor is a deal joined with its author summary.
type WithAuthor struct {
	domain.Deal
	Author domain.PostedBy
}

// WithCount is a deal joined with its author and comment count.
type WithCount struct {
	WithAuthor
	CommentCount int
}

// Filter bounds a List query.
type Filter struct {
	Category       *domain.Category
	IncludeExpired bool
	Limit          int
	Offset         int
}

// Repo provides deal persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new deal repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const dealJoinedColumns = `
	d.id, d.slug, d.title, d.description, d.price, d.original_price,
	d.merchant, d.category, d.expires_at, d.expired, d.user_id,
	d.created_at, d.updated_at,
	u.id, u.username, u.avatar_url`

// Create inserts a new deal and returns the persisted row.
// Returns domain.ErrAlreadyExists on slug collision.
func (r *Repo) Create(ctx context.Context, d *domain.Deal) (*domain.Deal, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out := *d
	err := q.QueryRow(ctx, `
		INSERT INTO deals (slug, title, description, price, original_price, merchant, category, expires_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, expired, created_at, updated_at`,
		d.Slug, d.Title, d.Description, d.Price, postgres.Float8FromPtr(d.OriginalPrice),
		d.Merchant, d.Category, postgres.TimestamptzFromPtr(d.ExpiresAt), d.UserID,
	).Scan(&out.ID, &out.Expired, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "deal", uuid.Nil)
	}
	return &out, nil
}

// GetByID returns a deal with its author.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*WithAuthor, error) {
	return r.getOne(ctx, "d.id = $1", id)
}

// GetBySlug returns a deal with its author.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*WithAuthor, error) {
	return r.getOne(ctx, "d.slug = $1", slug)
}

func (r *Repo) getOne(ctx context.Context, where string, arg any) (*WithAuthor, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+dealJoinedColumns+` FROM deals d JOIN users u ON u.id = d.user_id WHERE `+where, arg)
	d, err := scanDealWithAuthor(row)
	if err != nil {
		return nil, postgres.MapError(err, "deal", uuid.Nil)
	}
	return d, nil
}

// List returns deals with authors, newest first, per the filter.
func (r *Repo) List(ctx context.Context, f Filter) ([]WithAuthor, error) {
	b := psql.Select(
		"d.id", "d.slug", "d.title", "d.description", "d.price", "d.original_price",
		"d.merchant", "d.category", "d.expires_at", "d.expired", "d.user_id",
		"d.created_at", "d.updated_at",
		"u.id", "u.username", "u.avatar_url",
	).
		From("deals d").
		Join("users u ON u.id = d.user_id").
		OrderBy("d.created_at DESC")

	if f.Category != nil {
		b = b.Where(sq.Eq{"d.category": *f.Category})
	}
	if !f.IncludeExpired {
		b = b.Where(sq.Eq{"d.expired": false}).
			Where(sq.Or{sq.Eq{"d.expires_at": nil}, sq.Expr("d.expires_at > now()")})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list deals query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	result := []WithAuthor{}
	for rows.Next() {
		d, err := scanDealWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("list deals: %w", err)
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	return result, nil
}

// MostDiscussed returns non-expired deals ordered by comment count
// descending. The count comes from an aggregate, comments are never
// materialized.
func (r *Repo) MostDiscussed(ctx context.Context, limit int) ([]WithCount, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT `+dealJoinedColumns+`, count(c.id) AS comment_count
		FROM deals d
		JOIN users u ON u.id = d.user_id
		LEFT JOIN comments c ON c.deal_id = d.id
		WHERE d.expired = false AND (d.expires_at IS NULL OR d.expires_at > now())
		GROUP BY d.id, u.id
		ORDER BY comment_count DESC, d.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("most discussed deals: %w", err)
	}
	defer rows.Close()

	result := []WithCount{}
	for rows.Next() {
		var (
			wc            WithCount
			originalPrice pgtype.Float8
			expiresAt     pgtype.Timestamptz
			avatar        pgtype.Text
		)
		err := rows.Scan(
			&wc.ID, &wc.Slug, &wc.Title, &wc.Description, &wc.Price, &originalPrice,
			&wc.Merchant, &wc.Category, &expiresAt, &wc.Expired, &wc.UserID,
			&wc.CreatedAt, &wc.UpdatedAt,
			&wc.Author.ID, &wc.Author.Username, &avatar,
			&wc.CommentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("most discussed deals: %w", err)
		}
		wc.OriginalPrice = postgres.PtrFromFloat8(originalPrice)
		wc.ExpiresAt = postgres.PtrFromTimestamptz(expiresAt)
		wc.Author.AvatarURL = postgres.PtrFromText(avatar)
		result = append(result, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("most discussed deals: %w", err)
	}
	return result, nil
}

// Update applies a partial update and returns the updated row.
// Built with squirrel: only non-nil params become SET clauses.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, p domain.DealUpdateParams) (*domain.Deal, error) {
	b := psql.Update("deals").Set("updated_at", sq.Expr("now()")).Where(sq.Eq{"id": id})

	if p.Title != nil {
		b = b.Set("title", *p.Title)
	}
	if p.Description != nil {
		b = b.Set("description", *p.Description)
	}
	if p.Price != nil {
		b = b.Set("price", *p.Price)
	}
	if p.OriginalPrice != nil {
		b = b.Set("original_price", *p.OriginalPrice)
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

	b = b.Suffix(`RETURNING id, slug, title, description, price, original_price,
		merchant, category, expires_at, expired, user_id, created_at, updated_at`)

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update deal query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	d, err := scanDeal(q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, postgres.MapError(err, "deal", id)
	}
	return d, nil
}

// Delete removes a deal. Votes, comments and saves cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "deal", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deal %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SlugExists reports whether a deal with the slug already exists.
func (r *Repo) SlugExists(ctx context.Context, slug string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM deals WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("deal slug exists: %w", err)
	}
	return exists, nil
}

// scanDeal scans a bare deal row (no author join).
func scanDeal(row pgx.Row) (*domain.Deal, error) {
	var (
		d             domain.Deal
		originalPrice pgtype.Float8
		expiresAt     pgtype.Timestamptz
		createdAt     time.Time
		updatedAt     time.Time
	)
	err := row.Scan(
		&d.ID, &d.Slug, &d.Title, &d.Description, &d.Price, &originalPrice,
		&d.Merchant, &d.Category, &expiresAt, &d.Expired, &d.UserID,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.OriginalPrice = postgres.PtrFromFloat8(originalPrice)
	d.ExpiresAt = postgres.PtrFromTimestamptz(expiresAt)
	d.CreatedAt = createdAt
	d.UpdatedAt = updatedAt
	return &d, nil
}

// scanDealWithAuthor scans a deal row joined with its author columns.
func scanDealWithAuthor(row pgx.Row) (*WithAuthor, error) {
	var (
		wa            WithAuthor
		originalPrice pgtype.Float8
		expiresAt     pgtype.Timestamptz
		avatar        pgtype.Text
	)
	err := row.Scan(
		&wa.ID, &wa.Slug, &wa.Title, &wa.Description, &wa.Price, &originalPrice,
		&wa.Merchant, &wa.Category, &expiresAt, &wa.Expired, &wa.UserID,
		&wa.CreatedAt, &wa.UpdatedAt,
		&wa.Author.ID, &wa.Author.Username, &avatar,
	)
	if err != nil {
		return nil, err
	}
	wa.OriginalPrice = postgres.PtrFromFloat8(originalPrice)
	wa.ExpiresAt = postgres.PtrFromTimestamptz(expiresAt)
	wa.Author.AvatarURL = postgres.PtrFromText(avatar)
	return &wa, nil
}
