package domain

import (
	"time"

	"github.com/google/uuid"
)

// Highlight is a colored marker over a reference, with an optional note.
// Multiple highlights may overlap the same verse; no dedup is applied.
type Highlight struct {
	Reference Reference `json:"reference"`
	Color     string    `json:"color"`
	Note      *string   `json:"note,omitempty"`
}

// ReadingPlan tracks a user's progress through a named plan.
// Progress is a fraction in [0, 1].
type ReadingPlan struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
}

// UserBibleData is the per-user annotation record: one row per
// authenticated user, lifecycle tied to the account. Array-valued fields
// are mutated only through read-then-merge-then-write cycles, serialized
// per user at the annotation service boundary.
type UserBibleData struct {
	UserID       uuid.UUID     `json:"userId"`
	LastRead     *Reference    `json:"lastRead,omitempty"`
	Bookmarks    []Reference   `json:"bookmarks"`
	Highlights   []Highlight   `json:"highlights"`
	ReadingPlans []ReadingPlan `json:"readingPlans"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// HasBookmark reports whether the record already holds a bookmark for the
// same (book, chapter, verse) triple.
func (d *UserBibleData) HasBookmark(ref Reference) bool {
	for _, b := range d.Bookmarks {
		if SameVerse(b, ref) {
			return true
		}
	}
	return false
}
