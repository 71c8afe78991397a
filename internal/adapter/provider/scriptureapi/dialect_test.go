package scriptureapi

import (
	"errors"
	"testing"

	"github.com/openscripture/lectern/internal/domain"
)

func TestParseDialect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"embedded", DialectEmbedded, false},
		{"structured", DialectStructured, false},
		{"Embedded", DialectEmbedded, false},
		{" STRUCTURED ", DialectStructured, false},
		{"auto", DialectEmbedded, true},
		{"", DialectEmbedded, true},
	}

	for _, tt := range tests {
		got, err := ParseDialect(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDialect(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseDialect(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExtractEmbeddedVerses(t *testing.T) {
	t.Parallel()

	content := `<p class="p"><span data-number="1" data-sid="GEN 1:1" class="v">1</span>In the beginning God created the heavens and the earth. <span data-number="2" data-sid="GEN 1:2" class="v">2</span>And the earth was without form, and void.</p>`

	verses, err := extractEmbeddedVerses(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Verse{
		{Number: 1, Text: "In the beginning God created the heavens and the earth."},
		{Number: 2, Text: "And the earth was without form, and void."},
	}
	assertVersesEqual(t, verses, want)
}

func TestExtractEmbeddedVerses_EmptyContent(t *testing.T) {
	t.Parallel()

	verses, err := extractEmbeddedVerses("")
	if err != nil {
		t.Fatalf("empty content should be a legitimately empty chapter, got error: %v", err)
	}
	if len(verses) != 0 {
		t.Fatalf("expected no verses, got %d", len(verses))
	}

	verses, err = extractEmbeddedVerses("   \n ")
	if err != nil || len(verses) != 0 {
		t.Fatalf("whitespace content: verses=%v err=%v", verses, err)
	}
}

func TestExtractEmbeddedVerses_NoMarkers(t *testing.T) {
	t.Parallel()

	_, err := extractEmbeddedVerses(`<p class="p">Some prose without verse tags.</p>`)
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse for markerless content, got %v", err)
	}
}

func TestExtractEmbeddedVerses_DuplicatesKeepFirst(t *testing.T) {
	t.Parallel()

	content := `<span data-number="1" class="v">1</span>first copy <span data-number="1" class="v">1</span>second copy <span data-number="2" class="v">2</span>verse two`

	verses, err := extractEmbeddedVerses(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Verse{
		{Number: 1, Text: "first copy"},
		{Number: 2, Text: "verse two"},
	}
	assertVersesEqual(t, verses, want)
}

func TestVersesFromStructured(t *testing.T) {
	t.Parallel()

	objects := []apiVerse{
		{ID: "GEN.1.2", Text: "And the earth was without form, and void."},
		{ID: "GEN.1.1", Text: "In the beginning God created the heavens and the earth."},
	}

	verses, err := versesFromStructured(objects)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Verse{
		{Number: 1, Text: "In the beginning God created the heavens and the earth."},
		{Number: 2, Text: "And the earth was without form, and void."},
	}
	assertVersesEqual(t, verses, want)
}

func TestVersesFromStructured_ContentFallback(t *testing.T) {
	t.Parallel()

	objects := []apiVerse{
		{ID: "PSA.23.1", Content: `<p class="q1">The LORD is my shepherd; I shall not want.</p>`},
	}

	verses, err := versesFromStructured(objects)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(verses) != 1 || verses[0].Text != "The LORD is my shepherd; I shall not want." {
		t.Fatalf("unexpected verses: %+v", verses)
	}
}

func TestVersesFromStructured_Empty(t *testing.T) {
	t.Parallel()

	verses, err := versesFromStructured(nil)
	if err != nil || len(verses) != 0 {
		t.Fatalf("zero objects should be an empty chapter: verses=%v err=%v", verses, err)
	}
}

func TestVersesFromStructured_MalformedIDs(t *testing.T) {
	t.Parallel()

	objects := []apiVerse{
		{ID: "GEN.1", Text: "too few segments"},
		{ID: "GEN.1.intro", Text: "non-numeric segment"},
	}

	_, err := versesFromStructured(objects)
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse when no ids parse, got %v", err)
	}
}

// Dialect-independence: the same logical content through both extraction
// paths yields identical verse sequences.
func TestDialects_ProduceIdenticalVerses(t *testing.T) {
	t.Parallel()

	embedded := `<span data-number="1" class="v">1</span>In the beginning. <span data-number="2" class="v">2</span>And the earth.`
	structured := []apiVerse{
		{ID: "GEN.1.1", Text: "In the beginning."},
		{ID: "GEN.1.2", Text: "And the earth."},
	}

	fromEmbedded, err := extractEmbeddedVerses(embedded)
	if err != nil {
		t.Fatalf("embedded: %v", err)
	}
	fromStructured, err := versesFromStructured(structured)
	if err != nil {
		t.Fatalf("structured: %v", err)
	}

	assertVersesEqual(t, fromEmbedded, fromStructured)
}

func assertVersesEqual(t *testing.T, got, want []domain.Verse) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d verses, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("verse[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Number <= got[i-1].Number {
			t.Errorf("verse numbers not strictly ascending at %d: %d <= %d", i, got[i].Number, got[i-1].Number)
		}
	}
}
