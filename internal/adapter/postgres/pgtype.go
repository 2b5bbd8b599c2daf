package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Conversion helpers between Go optionals and pgtype nullables,
// shared by the entity repositories.

// TextFromPtr converts a *string to pgtype.Text (nil → NULL).
func TextFromPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// PtrFromText converts a pgtype.Text to *string (NULL → nil).
func PtrFromText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// TimestamptzFromPtr converts a *time.Time to pgtype.Timestamptz (nil → NULL).
func TimestamptzFromPtr(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

// PtrFromTimestamptz converts a pgtype.Timestamptz to *time.Time (NULL → nil).
func PtrFromTimestamptz(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// Float8FromPtr converts a *float64 to pgtype.Float8 (nil → NULL).
func Float8FromPtr(f *float64) pgtype.Float8 {
	if f == nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: *f, Valid: true}
}

// PtrFromFloat8 converts a pgtype.Float8 to *float64 (NULL → nil).
func PtrFromFloat8(f pgtype.Float8) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

// UUIDFromPtr converts a *uuid.UUID to pgtype.UUID (nil → NULL).
func UUIDFromPtr(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

// PtrFromUUID converts a pgtype.UUID to *uuid.UUID (NULL → nil).
func PtrFromUUID(u pgtype.UUID) *uuid.UUID {
	if !u.Valid {
		return nil
	}
	id := uuid.UUID(u.Bytes)
	return &id
}
