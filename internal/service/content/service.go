package content

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/openscripture/lectern/internal/domain"
	"github.com/openscripture/lectern/internal/service/navigation"
)

const (
	defaultSearchLimit       = 20
	maxSearchLimit           = 100
	defaultSizingConcurrency = 4
)

type scriptureProvider interface {
	ListTranslations(ctx context.Context) ([]domain.Translation, error)
	ListBooks(ctx context.Context, translationID string) ([]domain.BibleBook, error)
	CountChapters(ctx context.Context, translationID, bookID string) (int, error)
	GetChapter(ctx context.Context, translationID, bookID string, chapter int) (*domain.Chapter, error)
	GetVerse(ctx context.Context, translationID, bookID string, chapter, verse int) (*domain.Verse, error)
	Search(ctx context.Context, translationID, query string, limit int) (*domain.SearchResult, error)
}

// Config carries the content service knobs.
type Config struct {
	DefaultTranslation string
	SearchLimit        int
	SizingConcurrency  int
}

// Service fetches scripture content from the upstream provider and
// caches the immutable parts (book lists, chapter payloads) in memory.
type Service struct {
	log      *slog.Logger
	provider scriptureProvider
	cfg      Config

	mu       sync.RWMutex
	books    map[string][]domain.BibleBook
	chapters map[chapterKey]*domain.Chapter
	flight   singleflight.Group
}

type chapterKey struct {
	translation string
	book        string
	chapter     int
}

// NewService creates a content service around the given provider.
func NewService(logger *slog.Logger, provider scriptureProvider, cfg Config) *Service {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = defaultSearchLimit
	}
	if cfg.SizingConcurrency <= 0 {
		cfg.SizingConcurrency = defaultSizingConcurrency
	}
	return &Service{
		log:      logger.With("service", "content"),
		provider: provider,
		cfg:      cfg,
		books:    make(map[string][]domain.BibleBook),
		chapters: make(map[chapterKey]*domain.Chapter),
	}
}

// DefaultTranslation returns the translation used when a request names none.
func (s *Service) DefaultTranslation() string { return s.cfg.DefaultTranslation }

// ListTranslations returns the upstream translation catalog.
func (s *Service) ListTranslations(ctx context.Context) ([]domain.Translation, error) {
	return s.provider.ListTranslations(ctx)
}

// ListBooks returns the sized book list for a translation. The upstream
// list endpoint does not report chapter counts, so each book is sized by
// a separate chapter-list call, bounded-parallel. A failed sizing call
// leaves that book's ChapterCount at zero; the listing still succeeds.
// Results are cached per translation.
func (s *Service) ListBooks(ctx context.Context, translationID string) ([]domain.BibleBook, error) {
	translationID = s.translation(translationID)

	s.mu.RLock()
	cached, ok := s.books[translationID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := s.flight.Do("books:"+translationID, func() (any, error) {
		return s.listBooksUncached(ctx, translationID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.BibleBook), nil
}

func (s *Service) listBooksUncached(ctx context.Context, translationID string) ([]domain.BibleBook, error) {
	books, err := s.provider.ListBooks(ctx, translationID)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.SizingConcurrency)
	for i := range books {
		g.Go(func() error {
			count, err := s.provider.CountChapters(gctx, translationID, books[i].ID)
			if err != nil {
				s.log.WarnContext(gctx, "chapter sizing failed, leaving book unsized",
					slog.String("translation", translationID),
					slog.String("book", books[i].ID),
					slog.String("error", err.Error()),
				)
				return nil
			}
			books[i].ChapterCount = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.books[translationID] = books
	s.mu.Unlock()

	s.log.InfoContext(ctx, "book list cached",
		slog.String("translation", translationID),
		slog.Int("books", len(books)),
	)
	return books, nil
}

// GetChapter returns one chapter with its verses normalized across
// provider dialects. Chapters are immutable upstream, so the cache is
// never invalidated; concurrent misses for the same chapter coalesce
// into a single upstream call.
func (s *Service) GetChapter(ctx context.Context, bookID string, chapter int, translationID string) (*domain.Chapter, error) {
	translationID = s.translation(translationID)
	ref, err := navigation.Resolve(bookID, chapter, nil)
	if err != nil {
		return nil, err
	}
	key := chapterKey{translation: translationID, book: ref.Book, chapter: ref.Chapter}

	s.mu.RLock()
	cached, ok := s.chapters[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := s.flight.Do(fmt.Sprintf("chapter:%s:%s:%d", key.translation, key.book, key.chapter), func() (any, error) {
		ch, err := s.provider.GetChapter(ctx, translationID, ref.Book, ref.Chapter)
		if err != nil {
			return nil, fmt.Errorf("get chapter %s %d: %w", ref.Book, ref.Chapter, err)
		}
		s.mu.Lock()
		s.chapters[key] = ch
		s.mu.Unlock()
		return ch, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Chapter), nil
}

// GetVerse returns a single verse. Not cached; verse lookups are rare
// next to chapter reads.
func (s *Service) GetVerse(ctx context.Context, bookID string, chapter, verse int, translationID string) (*domain.Verse, error) {
	translationID = s.translation(translationID)
	ref, err := navigation.Resolve(bookID, chapter, nil)
	if err != nil {
		return nil, err
	}
	if verse < 1 {
		return nil, domain.NewInvalidReference("verse", "must be at least 1")
	}
	return s.provider.GetVerse(ctx, translationID, ref.Book, ref.Chapter, verse)
}

// Search runs an upstream full-text search, preserving upstream result
// ordering. A non-positive limit falls back to the configured default.
func (s *Service) Search(ctx context.Context, query string, limit int, translationID string) (*domain.SearchResult, error) {
	translationID = s.translation(translationID)
	if query == "" {
		return &domain.SearchResult{Query: query}, nil
	}
	if limit <= 0 {
		limit = s.cfg.SearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return s.provider.Search(ctx, translationID, query, limit)
}

// FindBook returns the sized book record for a canonical book id, or
// ErrInvalidReference when the translation has no such book.
func (s *Service) FindBook(ctx context.Context, translationID, bookID string) (*domain.BibleBook, error) {
	books, err := s.ListBooks(ctx, translationID)
	if err != nil {
		return nil, err
	}
	want := domain.CanonicalBookID(bookID)
	for i := range books {
		if domain.CanonicalBookID(books[i].ID) == want {
			return &books[i], nil
		}
	}
	return nil, domain.NewInvalidReference("book", "unknown book")
}

func (s *Service) translation(id string) string {
	if id == "" {
		return s.cfg.DefaultTranslation
	}
	return id
}
