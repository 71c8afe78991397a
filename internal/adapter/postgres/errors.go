package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/openscripture/lectern/internal/domain"
)

// MapError converts pgx errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass
// through. A missing row maps to domain.ErrNotFound; every other failure
// maps to domain.ErrPersistence so callers can surface annotation failures
// distinctly from content errors.
func MapError(err error, entity string, userID uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, userID, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, userID, domain.ErrNotFound)
	}

	return fmt.Errorf("%s %s: %v: %w", entity, userID, err, domain.ErrPersistence)
}
