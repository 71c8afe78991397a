// Package domain holds the core entities of the scripture engine and the
// sentinel errors shared across all layers.
package domain

import "strings"

// BibleBook is one book of a translation as reported by the upstream
// provider. Identity is the provider-assigned ID, stable per translation.
type BibleBook struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	ChapterCount int    `json:"chapterCount"`
}

// Translation is a named edition of the scripture text (ESV, NIV, ...)
// exposed under a provider-specific ID.
type Translation struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Language     string `json:"language"`
}

// Verse is a single numbered verse within a chapter.
type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Chapter is the normalized chapter shape, independent of which upstream
// dialect produced it. Verses are ordered ascending by number with no
// duplicates.
type Chapter struct {
	Number int     `json:"number"`
	Verses []Verse `json:"verses"`
}

// Reference addresses a (book, chapter, optional verse range) position in
// the text. It serves both as a navigation cursor and as an annotation key.
type Reference struct {
	Book     string `json:"book"`
	Chapter  int    `json:"chapter"`
	Verse    *int   `json:"verse,omitempty"`
	EndVerse *int   `json:"endVerse,omitempty"`
}

// CanonicalBookID normalizes a book identifier to the canonical lower-case
// token form used throughout the engine. It does not bridge human-readable
// names to provider IDs; callers must supply the provider's ID.
func CanonicalBookID(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// SameVerse reports whether two references address the same
// (book, chapter, verse) triple. EndVerse is ignored: bookmarks are keyed
// by their starting position.
func SameVerse(a, b Reference) bool {
	if CanonicalBookID(a.Book) != CanonicalBookID(b.Book) || a.Chapter != b.Chapter {
		return false
	}
	if a.Verse == nil || b.Verse == nil {
		return a.Verse == nil && b.Verse == nil
	}
	return *a.Verse == *b.Verse
}

// Validate checks the structural invariants of a reference: a non-empty
// book token, chapter >= 1, verse >= 1 when set, and EndVerse >= Verse
// when both are set.
func (r Reference) Validate() error {
	if CanonicalBookID(r.Book) == "" {
		return NewInvalidReference("book", "required")
	}
	if r.Chapter < 1 {
		return NewInvalidReference("chapter", "must be >= 1")
	}
	if r.Verse != nil && *r.Verse < 1 {
		return NewInvalidReference("verse", "must be >= 1")
	}
	if r.EndVerse != nil {
		if r.Verse == nil {
			return NewInvalidReference("endVerse", "requires verse")
		}
		if *r.EndVerse < *r.Verse {
			return NewInvalidReference("endVerse", "must be >= verse")
		}
	}
	return nil
}
