package scriptureapi

// envelope is the provider's standard response wrapper.
type envelope[T any] struct {
	Data T `json:"data"`
}

// apiBible is one translation from GET /bibles.
type apiBible struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Language     struct {
		Name string `json:"name"`
	} `json:"language"`
}

// apiBook is one book from GET /bibles/{id}/books.
type apiBook struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// apiChapterSummary is one entry from GET /bibles/{id}/books/{bookId}/chapters.
// Number is a string: real chapters carry "1", "2", ...; the intro
// pseudo-chapter carries "intro".
type apiChapterSummary struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

// apiChapterContent is the embedded-markup chapter payload from
// GET /bibles/{id}/chapters/{chapterId}.
type apiChapterContent struct {
	ID      string `json:"id"`
	Number  string `json:"number"`
	Content string `json:"content"`
}

// apiVerse is one verse object, used both by the structured chapter dialect
// (GET /bibles/{id}/chapters/{chapterId}/verses) and by the single-verse
// endpoint. The composite ID encodes {book}.{chapter}.{verseNumber}.
type apiVerse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Text      string `json:"text"`
	Content   string `json:"content"`
}

// apiSearch is the payload of GET /bibles/{id}/search.
type apiSearch struct {
	Query  string           `json:"query"`
	Total  int              `json:"total"`
	Verses []apiSearchVerse `json:"verses"`
}

type apiSearchVerse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Text      string `json:"text"`
}
