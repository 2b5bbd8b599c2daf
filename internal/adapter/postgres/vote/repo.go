// Package vote implements the Vote repository using PostgreSQL.
//
// The toggle (create / switch / retract) runs as one SQL statement so
// the ≤1-vote-per-(user,target) invariant never depends on a
// read-then-write sequence; the partial unique indexes on votes make
// concurrent duplicates impossible either way.
package vote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dealboard/dealboard-backend/internal/adapter/postgres"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// Repo provides vote persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vote repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// toggleSQL decides among delete/update/insert in a single statement.
// Exactly one CTE produces a row; the outer SELECT tags it with the
// action. The %s placeholders receive a column name validated through
// postgres.TargetColumn, never caller input.
const toggleSQL = `
WITH existing AS (
    SELECT id, vote_type FROM votes WHERE user_id = $1 AND %[1]s = $2
), removed AS (
    DELETE FROM votes
    WHERE id IN (SELECT id FROM existing WHERE vote_type = $3)
    RETURNING id, created_at, updated_at
), switched AS (
    UPDATE votes SET vote_type = $3, updated_at = now()
    WHERE id IN (SELECT id FROM existing WHERE vote_type <> $3)
    RETURNING id, created_at, updated_at
), inserted AS (
    INSERT INTO votes (user_id, %[1]s, vote_type)
    SELECT $1, $2, $3
    WHERE NOT EXISTS (SELECT 1 FROM existing)
    ON CONFLICT DO NOTHING
    RETURNING id, created_at, updated_at
)
SELECT 'removed' AS action, id, created_at, updated_at FROM removed
UNION ALL
SELECT 'updated', id, created_at, updated_at FROM switched
UNION ALL
SELECT 'created', id, created_at, updated_at FROM inserted`

// Toggle records a vote with toggle semantics and reports the action
// taken. Result.Vote is nil when the vote was retracted.
func (r *Repo) Toggle(ctx context.Context, userID uuid.UUID, target domain.TargetRef, voteType domain.VoteType) (*domain.VoteResult, error) {
	col, ok := postgres.TargetColumn(target.Kind())
	if !ok {
		return nil, fmt.Errorf("toggle vote: %w", domain.ErrValidation)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	sqlStr := fmt.Sprintf(toggleSQL, col)

	// A concurrent insert can swallow our insert via ON CONFLICT DO
	// NOTHING, leaving zero rows. The second attempt then observes the
	// winner's row and toggles against it.
	for attempt := 0; attempt < 2; attempt++ {
		var (
			action    string
			id        uuid.UUID
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)
		err := q.QueryRow(ctx, sqlStr, userID, target.ID(), voteType).
			Scan(&action, &id, &createdAt, &updatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, postgres.MapError(err, "vote", uuid.Nil)
		}

		result := &domain.VoteResult{Action: domain.VoteAction(action)}
		if result.Action != domain.VoteRemoved {
			result.Vote = &domain.Vote{
				ID:        id,
				UserID:    userID,
				Target:    target,
				Type:      voteType,
				CreatedAt: createdAt.Time,
				UpdatedAt: updatedAt.Time,
			}
		}
		return result, nil
	}

	return nil, fmt.Errorf("toggle vote: lost conflict race twice for user %s", userID)
}

// ListByTarget returns every vote attached to one target.
func (r *Repo) ListByTarget(ctx context.Context, target domain.TargetRef) ([]domain.Vote, error) {
	col, ok := postgres.TargetColumn(target.Kind())
	if !ok {
		return nil, fmt.Errorf("list votes: %w", domain.ErrValidation)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT id, user_id, deal_id, coupon_id, discussion_id, comment_id, vote_type, created_at, updated_at
		FROM votes WHERE `+col+` = $1`, target.ID())
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

// ListByTargets returns every vote attached to any of the given
// targets of one kind, for batch score computation.
func (r *Repo) ListByTargets(ctx context.Context, kind domain.TargetKind, ids []uuid.UUID) ([]domain.Vote, error) {
	if len(ids) == 0 {
		return []domain.Vote{}, nil
	}

	col, ok := postgres.TargetColumn(kind)
	if !ok {
		return nil, fmt.Errorf("list votes: %w", domain.ErrValidation)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT id, user_id, deal_id, coupon_id, discussion_id, comment_id, vote_type, created_at, updated_at
		FROM votes WHERE `+col+` = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

func scanVotes(rows pgx.Rows) ([]domain.Vote, error) {
	result := []domain.Vote{}
	for rows.Next() {
		var (
			v            domain.Vote
			dealID       pgtype.UUID
			couponID     pgtype.UUID
			discussionID pgtype.UUID
			commentID    pgtype.UUID
		)
		err := rows.Scan(&v.ID, &v.UserID, &dealID, &couponID, &discussionID, &commentID,
			&v.Type, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		v.Target = domain.TargetRef{
			DealID:       postgres.PtrFromUUID(dealID),
			CouponID:     postgres.PtrFromUUID(couponID),
			DiscussionID: postgres.PtrFromUUID(discussionID),
			CommentID:    postgres.PtrFromUUID(commentID),
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan votes: %w", err)
	}
	return result, nil
}
