package annotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/openscripture/lectern/internal/domain"
)

type userDataRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserBibleData, error)
	Ensure(ctx context.Context, userID uuid.UUID) error
	SetLastRead(ctx context.Context, userID uuid.UUID, ref domain.Reference) error
	SetBookmarks(ctx context.Context, userID uuid.UUID, bookmarks []domain.Reference) error
	SetHighlights(ctx context.Context, userID uuid.UUID, highlights []domain.Highlight) error
	SetReadingPlans(ctx context.Context, userID uuid.UUID, plans []domain.ReadingPlan) error
}

// Service manages per-user annotation state: last-read position,
// bookmarks, highlights, and reading plan progress. The arrays are
// stored whole, so every mutation is a read-modify-write; those
// sequences are serialized per user by a keyed mutex. Writes for
// different users do not contend.
type Service struct {
	log  *slog.Logger
	repo userDataRepo

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewService creates an annotation service over the given repository.
func NewService(logger *slog.Logger, repo userDataRepo) *Service {
	return &Service{
		log:   logger.With("service", "annotation"),
		repo:  repo,
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Service) userLock(userID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Load returns the user's annotation record, creating an empty one on
// first access.
func (s *Service) Load(ctx context.Context, userID uuid.UUID) (*domain.UserBibleData, error) {
	return s.fetchOrCreate(ctx, userID)
}

// SetLastRead overwrites the user's last-read position. The write is
// unconditional; no read is needed.
func (s *Service) SetLastRead(ctx context.Context, userID uuid.UUID, ref domain.Reference) error {
	if err := ref.Validate(); err != nil {
		return err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.repo.Ensure(ctx, userID); err != nil {
		return fmt.Errorf("ensure user record: %w", err)
	}
	if err := s.repo.SetLastRead(ctx, userID, ref); err != nil {
		return fmt.Errorf("set last read: %w", err)
	}
	return nil
}

// AddBookmark appends a bookmark unless the same verse is already
// bookmarked.
func (s *Service) AddBookmark(ctx context.Context, userID uuid.UUID, ref domain.Reference) error {
	if err := ref.Validate(); err != nil {
		return err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	data, err := s.fetchOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	if data.HasBookmark(ref) {
		return nil
	}
	bookmarks := append(data.Bookmarks, ref)
	if err := s.repo.SetBookmarks(ctx, userID, bookmarks); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	s.log.InfoContext(ctx, "bookmark added",
		slog.String("user_id", userID.String()),
		slog.String("book", ref.Book),
		slog.Int("chapter", ref.Chapter),
	)
	return nil
}

// RemoveBookmark deletes every bookmark pointing at the same verse as
// ref. Removing an absent bookmark is not an error.
func (s *Service) RemoveBookmark(ctx context.Context, userID uuid.UUID, ref domain.Reference) error {
	if err := ref.Validate(); err != nil {
		return err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	data, err := s.fetchOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	kept := data.Bookmarks[:0]
	for _, b := range data.Bookmarks {
		if !domain.SameVerse(b, ref) {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(data.Bookmarks) {
		return nil
	}
	if err := s.repo.SetBookmarks(ctx, userID, kept); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

// AddHighlight appends a highlight. Overlapping highlights on the same
// verse are allowed.
func (s *Service) AddHighlight(ctx context.Context, userID uuid.UUID, ref domain.Reference, color string, note *string) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	if color == "" {
		return domain.NewInvalidReference("color", "required")
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	data, err := s.fetchOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	highlights := append(data.Highlights, domain.Highlight{Reference: ref, Color: color, Note: note})
	if err := s.repo.SetHighlights(ctx, userID, highlights); err != nil {
		return fmt.Errorf("add highlight: %w", err)
	}
	return nil
}

// SetReadingPlanProgress updates one plan's progress fraction in place.
func (s *Service) SetReadingPlanProgress(ctx context.Context, userID uuid.UUID, planID string, progress float64) error {
	if planID == "" {
		return domain.NewInvalidReference("planId", "required")
	}
	if progress < 0 || progress > 1 {
		return domain.NewInvalidReference("progress", "must be between 0 and 1")
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	data, err := s.fetchOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	found := false
	for i := range data.ReadingPlans {
		if data.ReadingPlans[i].ID == planID {
			data.ReadingPlans[i].Progress = progress
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("reading plan %s: %w", planID, domain.ErrNotFound)
	}
	if err := s.repo.SetReadingPlans(ctx, userID, data.ReadingPlans); err != nil {
		return fmt.Errorf("set reading plan progress: %w", err)
	}
	return nil
}

// fetchOrCreate fetches the record, creating an empty one on first
// touch. Mutating callers must hold the user's lock.
func (s *Service) fetchOrCreate(ctx context.Context, userID uuid.UUID) (*domain.UserBibleData, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	data, err := s.repo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		if err := s.repo.Ensure(ctx, userID); err != nil {
			return nil, fmt.Errorf("create user record: %w", err)
		}
		return s.repo.Get(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("load user data: %w", err)
	}
	return data, nil
}
