package domain

// SearchVerse is one hit returned by the provider's full-text search.
// Upstream ordering is preserved; no local re-ranking.
type SearchVerse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

// SearchResult is the outcome of a search call against one translation.
type SearchResult struct {
	Query  string        `json:"query"`
	Total  int           `json:"total"`
	Verses []SearchVerse `json:"verses"`
}
