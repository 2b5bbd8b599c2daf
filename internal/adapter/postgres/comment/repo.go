// Package comment implements the Comment repository using PostgreSQL.
package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dealboard/dealboard-backend/internal/adapter/postgres"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// WithAuthor is a comment joined with its author summary.
type WithAuthor struct {
	domain.Comment
	Author domain.PostedBy
}

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const commentJoinedColumns = `
	c.id, c.content, c.user_id, c.deal_id, c.coupon_id, c.discussion_id, c.parent_id,
	c.created_at, c.updated_at,
	u.id, u.username, u.avatar_url`

// Create inserts a comment and returns the persisted row joined with
// its author summary, so callers can render it without a second query.
func (r *Repo) Create(ctx context.Context, c *domain.Comment) (*WithAuthor, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out := WithAuthor{Comment: *c}
	var avatar pgtype.Text
	err := q.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO comments (content, user_id, deal_id, coupon_id, discussion_id, parent_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, user_id, created_at, updated_at
		)
		SELECT i.id, i.created_at, i.updated_at, u.id, u.username, u.avatar_url
		FROM inserted i
		JOIN users u ON u.id = i.user_id`,
		c.Content, c.UserID,
		postgres.UUIDFromPtr(c.Target.DealID),
		postgres.UUIDFromPtr(c.Target.CouponID),
		postgres.UUIDFromPtr(c.Target.DiscussionID),
		postgres.UUIDFromPtr(c.ParentID),
	).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt, &out.Author.ID, &out.Author.Username, &avatar)
	if err != nil {
		return nil, postgres.MapError(err, "comment", uuid.Nil)
	}
	out.Author.AvatarURL = postgres.PtrFromText(avatar)
	return &out, nil
}

// GetByID returns a bare comment (no author join).
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		c            domain.Comment
		dealID       pgtype.UUID
		couponID     pgtype.UUID
		discussionID pgtype.UUID
		parentID     pgtype.UUID
	)
	err := q.QueryRow(ctx, `
		SELECT id, content, user_id, deal_id, coupon_id, discussion_id, parent_id, created_at, updated_at
		FROM comments WHERE id = $1`, id).
		Scan(&c.ID, &c.Content, &c.UserID, &dealID, &couponID, &discussionID, &parentID,
			&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	c.Target = domain.TargetRef{
		DealID:       postgres.PtrFromUUID(dealID),
		CouponID:     postgres.PtrFromUUID(couponID),
		DiscussionID: postgres.PtrFromUUID(discussionID),
	}
	c.ParentID = postgres.PtrFromUUID(parentID)
	return &c, nil
}

// ListTopLevel returns the target's top-level comments with authors,
// newest first.
func (r *Repo) ListTopLevel(ctx context.Context, target domain.TargetRef) ([]WithAuthor, error) {
	col, ok := postgres.TargetColumn(target.Kind())
	if !ok {
		return nil, fmt.Errorf("list comments: %w", domain.ErrValidation)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT `+commentJoinedColumns+`
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.`+col+` = $1 AND c.parent_id IS NULL
		ORDER BY c.created_at DESC`, target.ID())
	if err != nil {
		return nil, fmt.Errorf("list top-level comments: %w", err)
	}
	defer rows.Close()

	return scanAll(rows)
}

// ListReplies returns the direct replies of the given parents with
// authors, oldest first. Only one reply level exists in the rendered
// tree, so deeper descendants are never requested.
func (r *Repo) ListReplies(ctx context.Context, parentIDs []uuid.UUID) ([]WithAuthor, error) {
	if len(parentIDs) == 0 {
		return []WithAuthor{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT `+commentJoinedColumns+`
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.parent_id = ANY($1::uuid[])
		ORDER BY c.created_at ASC`, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	return scanAll(rows)
}

// CountByTargets returns comment counts per target id in one aggregate
// query. Targets with no comments are absent from the map.
func (r *Repo) CountByTargets(ctx context.Context, kind domain.TargetKind, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	col, ok := postgres.TargetColumn(kind)
	if !ok || kind == domain.TargetComment {
		return nil, fmt.Errorf("count comments: %w", domain.ErrValidation)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT `+col+`, count(*)
		FROM comments
		WHERE `+col+` = ANY($1::uuid[])
		GROUP BY `+col, ids)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id uuid.UUID
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("count comments: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	return counts, nil
}

// Delete removes a comment. Replies and votes cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "comment", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanAll(rows pgx.Rows) ([]WithAuthor, error) {
	result := []WithAuthor{}
	for rows.Next() {
		var (
			wa           WithAuthor
			dealID       pgtype.UUID
			couponID     pgtype.UUID
			discussionID pgtype.UUID
			parentID     pgtype.UUID
			avatar       pgtype.Text
		)
		err := rows.Scan(
			&wa.ID, &wa.Content, &wa.UserID, &dealID, &couponID, &discussionID, &parentID,
			&wa.CreatedAt, &wa.UpdatedAt,
			&wa.Author.ID, &wa.Author.Username, &avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		wa.Target = domain.TargetRef{
			DealID:       postgres.PtrFromUUID(dealID),
			CouponID:     postgres.PtrFromUUID(couponID),
			DiscussionID: postgres.PtrFromUUID(discussionID),
		}
		wa.ParentID = postgres.PtrFromUUID(parentID)
		wa.Author.AvatarURL = postgres.PtrFromText(avatar)
		result = append(result, wa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan comments: %w", err)
	}
	return result, nil
}
