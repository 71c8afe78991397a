package domain

import (
	"errors"
	"testing"
)

func intPtr(n int) *int { return &n }

func TestCanonicalBookID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"GEN", "gen"},
		{"gen", "gen"},
		{"  Gen ", "gen"},
		{"1CO", "1co"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := CanonicalBookID(tt.in); got != tt.want {
			t.Errorf("CanonicalBookID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReference_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ref     Reference
		wantErr bool
	}{
		{"minimal valid", Reference{Book: "GEN", Chapter: 1}, false},
		{"with verse", Reference{Book: "GEN", Chapter: 1, Verse: intPtr(3)}, false},
		{"with range", Reference{Book: "GEN", Chapter: 1, Verse: intPtr(3), EndVerse: intPtr(5)}, false},
		{"single-verse range", Reference{Book: "GEN", Chapter: 1, Verse: intPtr(3), EndVerse: intPtr(3)}, false},
		{"empty book", Reference{Book: "", Chapter: 1}, true},
		{"blank book", Reference{Book: "  ", Chapter: 1}, true},
		{"zero chapter", Reference{Book: "GEN", Chapter: 0}, true},
		{"negative chapter", Reference{Book: "GEN", Chapter: -2}, true},
		{"zero verse", Reference{Book: "GEN", Chapter: 1, Verse: intPtr(0)}, true},
		{"end before start", Reference{Book: "GEN", Chapter: 1, Verse: intPtr(5), EndVerse: intPtr(3)}, true},
		{"end without start", Reference{Book: "GEN", Chapter: 1, EndVerse: intPtr(3)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidReference) {
				t.Errorf("Validate() error %v does not unwrap to ErrInvalidReference", err)
			}
		})
	}
}

func TestSameVerse(t *testing.T) {
	t.Parallel()

	base := Reference{Book: "GEN", Chapter: 1, Verse: intPtr(1)}

	tests := []struct {
		name string
		a, b Reference
		want bool
	}{
		{"identical", base, Reference{Book: "GEN", Chapter: 1, Verse: intPtr(1)}, true},
		{"case-insensitive book", base, Reference{Book: "gen", Chapter: 1, Verse: intPtr(1)}, true},
		{"endVerse ignored", base, Reference{Book: "GEN", Chapter: 1, Verse: intPtr(1), EndVerse: intPtr(5)}, true},
		{"different verse", base, Reference{Book: "GEN", Chapter: 1, Verse: intPtr(2)}, false},
		{"different chapter", base, Reference{Book: "GEN", Chapter: 2, Verse: intPtr(1)}, false},
		{"different book", base, Reference{Book: "EXO", Chapter: 1, Verse: intPtr(1)}, false},
		{"verse vs chapter-only", base, Reference{Book: "GEN", Chapter: 1}, false},
		{"both chapter-only", Reference{Book: "GEN", Chapter: 1}, Reference{Book: "GEN", Chapter: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameVerse(tt.a, tt.b); got != tt.want {
				t.Errorf("SameVerse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserBibleData_HasBookmark(t *testing.T) {
	t.Parallel()

	data := &UserBibleData{
		Bookmarks: []Reference{
			{Book: "GEN", Chapter: 1, Verse: intPtr(1)},
			{Book: "PSA", Chapter: 23},
		},
	}

	if !data.HasBookmark(Reference{Book: "gen", Chapter: 1, Verse: intPtr(1)}) {
		t.Error("expected bookmark for gen 1:1")
	}
	if !data.HasBookmark(Reference{Book: "PSA", Chapter: 23}) {
		t.Error("expected bookmark for PSA 23")
	}
	if data.HasBookmark(Reference{Book: "GEN", Chapter: 1, Verse: intPtr(2)}) {
		t.Error("did not expect bookmark for gen 1:2")
	}
}
