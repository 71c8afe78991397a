package navigation

import (
	"github.com/openscripture/lectern/internal/domain"
)

// Resolve builds a canonical chapter reference from raw user input.
// The book token is canonicalized (trimmed, lower-cased); no name-to-id
// mapping is attempted, callers pass the provider's book id. When known
// is supplied, the token must match its id and the chapter must not
// exceed its chapter count.
func Resolve(rawBook string, rawChapter int, known *domain.BibleBook) (domain.Reference, error) {
	book := domain.CanonicalBookID(rawBook)
	if book == "" {
		return domain.Reference{}, domain.NewInvalidReference("book", "required")
	}
	if rawChapter < 1 {
		return domain.Reference{}, domain.NewInvalidReference("chapter", "must be at least 1")
	}
	if known != nil {
		if domain.CanonicalBookID(known.ID) != book {
			return domain.Reference{}, domain.NewInvalidReference("book", "does not match the requested book")
		}
		if known.ChapterCount > 0 && rawChapter > known.ChapterCount {
			return domain.Reference{}, domain.NewInvalidReference("chapter", "exceeds the book's chapter count")
		}
	}
	return domain.Reference{Book: book, Chapter: rawChapter}, nil
}
