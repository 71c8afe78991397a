// Package userdata implements the UserBibleData repository: one row per
// authenticated user holding last-read position, bookmarks, highlights,
// and reading plans as JSONB arrays.
package userdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/openscripture/lectern/internal/adapter/postgres"
	"github.com/openscripture/lectern/internal/domain"
)

const table = "user_bible_data"

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides UserBibleData persistence backed by PostgreSQL.
// All operations are single-document get/update; array fields are written
// whole (last write wins), with serialization handled one layer up.
type Repo struct {
	q postgres.Querier
}

// New creates a new user data repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// Get returns the record for the given user, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserBibleData, error) {
	query, args, err := builder.
		Select("user_id", "last_read", "bookmarks", "highlights", "reading_plans", "updated_at").
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var (
		row          rowData
		lastRead     []byte
		bookmarks    []byte
		highlights   []byte
		readingPlans []byte
	)
	err = r.q.QueryRow(ctx, query, args...).Scan(
		&row.UserID, &lastRead, &bookmarks, &highlights, &readingPlans, &row.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, table, userID)
	}

	data := &domain.UserBibleData{
		UserID:    row.UserID,
		UpdatedAt: row.UpdatedAt,
	}
	if err := unmarshalInto(lastRead, &data.LastRead); err != nil {
		return nil, postgres.MapError(err, table, userID)
	}
	if err := unmarshalInto(bookmarks, &data.Bookmarks); err != nil {
		return nil, postgres.MapError(err, table, userID)
	}
	if err := unmarshalInto(highlights, &data.Highlights); err != nil {
		return nil, postgres.MapError(err, table, userID)
	}
	if err := unmarshalInto(readingPlans, &data.ReadingPlans); err != nil {
		return nil, postgres.MapError(err, table, userID)
	}

	return data, nil
}

// Ensure creates an empty record for the user if none exists yet.
func (r *Repo) Ensure(ctx context.Context, userID uuid.UUID) error {
	query, args, err := builder.
		Insert(table).
		Columns("user_id", "bookmarks", "highlights", "reading_plans").
		Values(userID, []byte("[]"), []byte("[]"), []byte("[]")).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, table, userID)
	}
	return nil
}

// SetLastRead unconditionally overwrites the last_read field.
func (r *Repo) SetLastRead(ctx context.Context, userID uuid.UUID, ref domain.Reference) error {
	payload, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("marshal last_read: %w", err)
	}
	return r.setColumn(ctx, userID, "last_read", payload)
}

// SetBookmarks writes the whole bookmark array back.
func (r *Repo) SetBookmarks(ctx context.Context, userID uuid.UUID, bookmarks []domain.Reference) error {
	payload, err := marshalArray(bookmarks)
	if err != nil {
		return fmt.Errorf("marshal bookmarks: %w", err)
	}
	return r.setColumn(ctx, userID, "bookmarks", payload)
}

// SetHighlights writes the whole highlight array back.
func (r *Repo) SetHighlights(ctx context.Context, userID uuid.UUID, highlights []domain.Highlight) error {
	payload, err := marshalArray(highlights)
	if err != nil {
		return fmt.Errorf("marshal highlights: %w", err)
	}
	return r.setColumn(ctx, userID, "highlights", payload)
}

// SetReadingPlans writes the whole reading plan array back.
func (r *Repo) SetReadingPlans(ctx context.Context, userID uuid.UUID, plans []domain.ReadingPlan) error {
	payload, err := marshalArray(plans)
	if err != nil {
		return fmt.Errorf("marshal reading_plans: %w", err)
	}
	return r.setColumn(ctx, userID, "reading_plans", payload)
}

func (r *Repo) setColumn(ctx context.Context, userID uuid.UUID, column string, payload []byte) error {
	query, args, err := builder.
		Update(table).
		Set(column, payload).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, table, userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", table, userID, domain.ErrNotFound)
	}
	return nil
}

type rowData struct {
	UserID    uuid.UUID
	UpdatedAt time.Time
}

// unmarshalInto decodes a JSONB column into target, treating NULL ("" / nil)
// as absent.
func unmarshalInto(raw []byte, target any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}

// marshalArray encodes a slice, normalizing nil to the empty JSON array so
// the column never goes NULL after a write.
func marshalArray[T any](items []T) ([]byte, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(items)
}
