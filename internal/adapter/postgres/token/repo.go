// Package token implements the refresh-token repository using PostgreSQL.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dealboard/dealboard-backend/internal/adapter/postgres"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// Repo provides refresh-token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new refresh-token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a refresh token row.
func (r *Repo) Create(ctx context.Context, t *domain.RefreshToken) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		t.UserID, t.TokenHash, t.ExpiresAt,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "refresh_token", uuid.Nil)
	}
	return nil
}

// GetByHash returns the token row for the given hash.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		t       domain.RefreshToken
		revoked pgtype.Timestamptz
	)
	err := q.QueryRow(ctx, `
		SELECT id, user_id, token_hash, expires_at, created_at, revoked_at
		FROM refresh_tokens WHERE token_hash = $1`,
		tokenHash,
	).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &revoked)
	if err != nil {
		return nil, postgres.MapError(err, "refresh_token", uuid.Nil)
	}
	t.RevokedAt = postgres.PtrFromTimestamptz(revoked)
	return &t, nil
}

// RevokeByID marks a single token as revoked.
func (r *Repo) RevokeByID(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL`, id)
	if err != nil {
		return postgres.MapError(err, "refresh_token", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("refresh_token %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// RevokeAllByUser revokes every live token of a user (logout).
func (r *Repo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now() WHERE user_id = $1 AND revoked_at IS NULL`,
		userID); err != nil {
		return postgres.MapError(err, "refresh_token", userID)
	}
	return nil
}

// DeleteExpired removes tokens expired before the given cutoff along
// with revoked ones, and returns the number of rows deleted.
func (r *Repo) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < $1 OR revoked_at IS NOT NULL`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
