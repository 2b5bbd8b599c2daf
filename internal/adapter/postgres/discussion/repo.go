// Package discussion implements the Discussion repository using PostgreSQL.
package discussion

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

// WithAuthor is a discussion joined with its author summary.
type WithAuthor struct {
	domain.Discussion
	Author domain.PostedBy
}

// Repo provides discussion persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new discussion repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const discussionJoinedColumns = `
	d.id, d.title, d.description, d.category, d.deal_category, d.user_id,
	d.created_at, d.updated_at,
	u.id, u.username, u.avatar_url`

// Create inserts a new discussion.
func (r *Repo) Create(ctx context.Context, d *domain.Discussion) (*domain.Discussion, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var dealCategory *string
	if d.DealCategory != nil {
		s := d.DealCategory.String()
		dealCategory = &s
	}

	out := *d
	err := q.QueryRow(ctx, `
		INSERT INTO discussions (title, description, category, deal_category, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		d.Title, d.Description, d.Category, postgres.TextFromPtr(dealCategory), d.UserID,
	).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "discussion", uuid.Nil)
	}
	return &out, nil
}

// GetByID returns a discussion with its author.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*WithAuthor, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+discussionJoinedColumns+` FROM discussions d JOIN users u ON u.id = d.user_id WHERE d.id = $1`, id)
	d, err := scanWithAuthor(row)
	if err != nil {
		return nil, postgres.MapError(err, "discussion", id)
	}
	return d, nil
}

// List returns discussions with authors, newest first, optionally
// filtered by category.
func (r *Repo) List(ctx context.Context, category *domain.Category, limit, offset int) ([]WithAuthor, error) {
	b := psql.Select(
		"d.id", "d.title", "d.description", "d.category", "d.deal_category", "d.user_id",
		"d.created_at", "d.updated_at",
		"u.id", "u.username", "u.avatar_url",
	).
		From("discussions d").
		Join("users u ON u.id = d.user_id").
		OrderBy("d.created_at DESC")

	if category != nil {
		b = b.Where(sq.Eq{"d.category": *category})
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list discussions query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list discussions: %w", err)
	}
	defer rows.Close()

	result := []WithAuthor{}
	for rows.Next() {
		d, err := scanWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("list discussions: %w", err)
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list discussions: %w", err)
	}
	return result, nil
}

// Update applies a partial update and returns the updated row.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, p domain.DiscussionUpdateParams) (*domain.Discussion, error) {
	b := psql.Update("discussions").Set("updated_at", sq.Expr("now()")).Where(sq.Eq{"id": id})

	if p.Title != nil {
		b = b.Set("title", *p.Title)
	}
	if p.Description != nil {
		b = b.Set("description", *p.Description)
	}
	if p.Category != nil {
		b = b.Set("category", *p.Category)
	}
	if p.DealCategory != nil {
		b = b.Set("deal_category", *p.DealCategory)
	}

	b = b.Suffix(`RETURNING id, title, description, category, deal_category, user_id, created_at, updated_at`)

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update discussion query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		d            domain.Discussion
		dealCategory pgtype.Text
	)
	err = q.QueryRow(ctx, sqlStr, args...).Scan(
		&d.ID, &d.Title, &d.Description, &d.Category, &dealCategory, &d.UserID,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "discussion", id)
	}
	if dealCategory.Valid {
		c := domain.Category(dealCategory.String)
		d.DealCategory = &c
	}
	return &d, nil
}

// Delete removes a discussion. Votes and comments cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM discussions WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "discussion", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanWithAuthor(row pgx.Row) (*WithAuthor, error) {
	var (
		wa           WithAuthor
		dealCategory pgtype.Text
		avatar       pgtype.Text
	)
	err := row.Scan(
		&wa.ID, &wa.Title, &wa.Description, &wa.Category, &dealCategory, &wa.UserID,
		&wa.CreatedAt, &wa.UpdatedAt,
		&wa.Author.ID, &wa.Author.Username, &avatar,
	)
	if err != nil {
		return nil, err
	}
	if dealCategory.Valid {
		c := domain.Category(dealCategory.String)
		wa.DealCategory = &c
	}
	wa.Author.AvatarURL = postgres.PtrFromText(avatar)
	return &wa, nil
}
