package scriptureapi

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/openscripture/lectern/internal/domain"
)

// Dialect selects which of the provider's two chapter-content response
// shapes the client requests and parses. It is fixed by configuration.
type Dialect int

const (
	// DialectEmbedded: chapter content arrives as one markup blob with
	// per-verse number tags embedded in it.
	DialectEmbedded Dialect = iota
	// DialectStructured: a secondary call returns one object per verse,
	// the verse number encoded in the third segment of its composite ID.
	DialectStructured
)

func (d Dialect) String() string {
	if d == DialectStructured {
		return "structured"
	}
	return "embedded"
}

// ParseDialect maps a configuration string to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "embedded":
		return DialectEmbedded, nil
	case "structured":
		return DialectStructured, nil
	default:
		return DialectEmbedded, fmt.Errorf("unknown provider dialect %q", s)
	}
}

// verseMarker matches one verse-number tag in the embedded-markup dialect
// and captures the verse number and the trailing text up to the next tag.
var verseMarker = regexp.MustCompile(`<span data-number="(\d+)"[^>]*class="v"[^>]*>\d+</span>([^<]*)`)

// tag matches any markup tag, for stripping mixed content.
var tag = regexp.MustCompile(`<[^>]*>`)

// extractEmbeddedVerses scans a chapter content blob for verse-number
// markers and collects the trailing text of each. Empty content is a
// legitimately empty chapter; non-empty content with zero extracted verses
// is a parse regression and returns domain.ErrParse.
func extractEmbeddedVerses(content string) ([]domain.Verse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	matches := verseMarker.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no verse markers in %d bytes of content: %w", len(content), domain.ErrParse)
	}

	verses := make([]domain.Verse, 0, len(matches))
	for _, m := range matches {
		number, err := strconv.Atoi(m[1])
		if err != nil || number < 1 {
			continue
		}
		verses = append(verses, domain.Verse{
			Number: number,
			Text:   strings.TrimSpace(m[2]),
		})
	}
	if len(verses) == 0 {
		return nil, fmt.Errorf("no usable verse numbers in content: %w", domain.ErrParse)
	}

	return normalizeVerses(verses), nil
}

// versesFromStructured converts per-verse objects to domain verses, parsing
// each number from the third dot-separated segment of the composite ID.
// Zero objects is a legitimately empty chapter; objects that all fail to
// parse indicate a format change and return domain.ErrParse.
func versesFromStructured(objects []apiVerse) ([]domain.Verse, error) {
	if len(objects) == 0 {
		return nil, nil
	}

	verses := make([]domain.Verse, 0, len(objects))
	for _, v := range objects {
		number, ok := verseNumberFromID(v.ID)
		if !ok {
			continue
		}
		text := strings.TrimSpace(v.Text)
		if text == "" {
			text = strings.TrimSpace(stripTags(v.Content))
		}
		verses = append(verses, domain.Verse{Number: number, Text: text})
	}
	if len(verses) == 0 {
		return nil, fmt.Errorf("no parseable verse ids in %d objects: %w", len(objects), domain.ErrParse)
	}

	return normalizeVerses(verses), nil
}

// verseNumberFromID parses the verse number from a composite ID of the form
// {book}.{chapter}.{verseNumber}.
func verseNumberFromID(id string) (int, bool) {
	parts := strings.Split(id, ".")
	if len(parts) < 3 {
		return 0, false
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// normalizeVerses enforces the chapter invariant: ascending verse numbers
// with no duplicates. Duplicates are a data-integrity violation upstream;
// the first occurrence wins.
func normalizeVerses(verses []domain.Verse) []domain.Verse {
	seen := make(map[int]bool, len(verses))
	out := verses[:0]
	for _, v := range verses {
		if seen[v.Number] {
			continue
		}
		seen[v.Number] = true
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// stripTags removes markup tags, leaving plain text.
func stripTags(s string) string {
	return tag.ReplaceAllString(s, "")
}

// isNumeric reports whether s is a plain chapter number. Pseudo-chapters
// such as "intro" fail this check and are excluded from counts.
func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
