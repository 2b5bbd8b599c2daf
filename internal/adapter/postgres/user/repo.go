// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dealboard/dealboard-backend/internal/adapter/postgres"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, username, avatar_url, role, created_at, updated_at`

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// GetByUsername returns a user by username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// GetByGoogleID returns the user linked to the given external identity
// subject id.
func (r *Repo) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID)
	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// GetPasswordHashByEmail returns the user and their stored password
// hash (nil if the account has no password method).
func (r *Repo) GetPasswordHashByEmail(ctx context.Context, email string) (*domain.User, *string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		u    domain.User
		hash pgtype.Text
	)
	err := q.QueryRow(ctx,
		`SELECT `+userColumns+`, password_hash FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.Username, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt, &hash)
	if err != nil {
		return nil, nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return &u, postgres.PtrFromText(hash), nil
}

// Create inserts a new user and returns the persisted domain.User.
// Returns domain.ErrAlreadyExists on email/username collision.
func (r *Repo) Create(ctx context.Context, p domain.NewUserParams) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `
		INSERT INTO users (email, username, avatar_url, google_id, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		p.Email, p.Username, postgres.TextFromPtr(p.AvatarURL),
		postgres.TextFromPtr(p.GoogleID), postgres.TextFromPtr(p.PasswordHash),
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// UpdateProfile modifies avatar_url for the given user. nil leaves the
// avatar unchanged.
func (r *Repo) UpdateProfile(ctx context.Context, id uuid.UUID, avatarURL *string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `
		UPDATE users
		SET avatar_url = COALESCE($2, avatar_url), updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, postgres.TextFromPtr(avatarURL),
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// LinkGoogle attaches an external identity subject id to an existing
// account (same verified email, previously password-registered) and
// refreshes the avatar if the provider supplied one.
func (r *Repo) LinkGoogle(ctx context.Context, id uuid.UUID, googleID string, avatarURL *string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `
		UPDATE users
		SET google_id = $2, avatar_url = COALESCE($3, avatar_url), updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, googleID, postgres.TextFromPtr(avatarURL),
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// UpdateRole sets the user's role. Used only by out-of-band tooling
// (cmd/promote); no in-band endpoint mutates roles.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns users ordered by creation time descending (admin use).
func (r *Repo) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// scanUser scans one user row from either pgx.Row or pgx.Rows.
func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u         domain.User
		avatar    pgtype.Text
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &avatar, &u.Role, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	u.AvatarURL = postgres.PtrFromText(avatar)
	u.CreatedAt = createdAt
	u.UpdatedAt = updatedAt
	return &u, nil
}
