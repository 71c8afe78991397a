package navigation

import (
	"github.com/openscripture/lectern/internal/domain"
)

// Next returns the reference one chapter forward of ref within the
// canonical book ordering given by books. Past the last chapter of a
// book it rolls over to chapter 1 of the next sized book; past the last
// chapter of the last book it returns ErrAtEnd. Books with an unknown
// chapter count are skipped during rollover.
func Next(ref domain.Reference, books []domain.BibleBook) (domain.Reference, error) {
	idx, book, err := locate(ref, books)
	if err != nil {
		return domain.Reference{}, err
	}
	if ref.Chapter < book.ChapterCount {
		return domain.Reference{Book: domain.CanonicalBookID(book.ID), Chapter: ref.Chapter + 1}, nil
	}
	for i := idx + 1; i < len(books); i++ {
		if books[i].ChapterCount > 0 {
			return domain.Reference{Book: domain.CanonicalBookID(books[i].ID), Chapter: 1}, nil
		}
	}
	return domain.Reference{}, domain.ErrAtEnd
}

// Previous returns the reference one chapter back of ref. Before chapter 1
// it rolls back to the last chapter of the prior sized book; before the
// first chapter of the first book it returns ErrAtStart.
func Previous(ref domain.Reference, books []domain.BibleBook) (domain.Reference, error) {
	idx, book, err := locate(ref, books)
	if err != nil {
		return domain.Reference{}, err
	}
	if ref.Chapter > 1 {
		return domain.Reference{Book: domain.CanonicalBookID(book.ID), Chapter: ref.Chapter - 1}, nil
	}
	for i := idx - 1; i >= 0; i-- {
		if books[i].ChapterCount > 0 {
			return domain.Reference{Book: domain.CanonicalBookID(books[i].ID), Chapter: books[i].ChapterCount}, nil
		}
	}
	return domain.Reference{}, domain.ErrAtStart
}

// locate finds ref's book in the ordering and validates the chapter
// against its count.
func locate(ref domain.Reference, books []domain.BibleBook) (int, domain.BibleBook, error) {
	want := domain.CanonicalBookID(ref.Book)
	for i, b := range books {
		if domain.CanonicalBookID(b.ID) != want {
			continue
		}
		if ref.Chapter < 1 {
			return 0, domain.BibleBook{}, domain.NewInvalidReference("chapter", "must be at least 1")
		}
		if b.ChapterCount > 0 && ref.Chapter > b.ChapterCount {
			return 0, domain.BibleBook{}, domain.NewInvalidReference("chapter", "exceeds the book's chapter count")
		}
		return i, b, nil
	}
	return 0, domain.BibleBook{}, domain.NewInvalidReference("book", "unknown book")
}
