// Package scriptureapi fetches translations, books, chapters, and verses
// from the upstream scripture provider and normalizes both of its chapter
// content dialects into the domain Chapter shape.
package scriptureapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openscripture/lectern/internal/config"
	"github.com/openscripture/lectern/internal/domain"
)

// Client talks to the upstream scripture provider over HTTP.
// The chapter-content dialect is fixed at construction from configuration;
// responses are never sniffed.
type Client struct {
	baseURL    string
	apiKey     string
	dialect    Dialect
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from provider configuration.
func NewClient(cfg config.ProviderConfig, logger *slog.Logger) (*Client, error) {
	dialect, err := ParseDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		dialect:    dialect,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "scriptureapi"),
	}, nil
}

// Dialect returns the configured chapter-content dialect.
func (c *Client) Dialect() Dialect { return c.dialect }

// ListTranslations returns all translations the provider exposes.
func (c *Client) ListTranslations(ctx context.Context) ([]domain.Translation, error) {
	var res envelope[[]apiBible]
	if err := c.get(ctx, "/bibles", nil, &res); err != nil {
		return nil, err
	}

	translations := make([]domain.Translation, 0, len(res.Data))
	for _, b := range res.Data {
		translations = append(translations, domain.Translation{
			ID:           b.ID,
			Name:         b.Name,
			Abbreviation: b.Abbreviation,
			Language:     b.Language.Name,
		})
	}
	return translations, nil
}

// ListBooks returns the books of a translation, unsized: ChapterCount is 0
// until the caller sizes each book via CountChapters. The upstream list
// endpoint does not report chapter counts.
func (c *Client) ListBooks(ctx context.Context, translationID string) ([]domain.BibleBook, error) {
	path := fmt.Sprintf("/bibles/%s/books", url.PathEscape(translationID))

	var res envelope[[]apiBook]
	if err := c.get(ctx, path, nil, &res); err != nil {
		return nil, err
	}

	books := make([]domain.BibleBook, 0, len(res.Data))
	for _, b := range res.Data {
		books = append(books, domain.BibleBook{
			ID:           b.ID,
			Name:         b.Name,
			Abbreviation: b.Abbreviation,
		})
	}
	return books, nil
}

// CountChapters returns the number of real chapters in a book. The upstream
// chapter list includes an "intro" pseudo-chapter with a non-numeric number;
// such entries are excluded from the count.
func (c *Client) CountChapters(ctx context.Context, translationID, bookID string) (int, error) {
	path := fmt.Sprintf("/bibles/%s/books/%s/chapters",
		url.PathEscape(translationID), url.PathEscape(upstreamBookID(bookID)))

	var res envelope[[]apiChapterSummary]
	if err := c.get(ctx, path, nil, &res); err != nil {
		return 0, err
	}

	count := 0
	for _, ch := range res.Data {
		if isNumeric(ch.Number) {
			count++
		}
	}
	return count, nil
}

// GetChapter retrieves one chapter and normalizes it to the domain shape
// according to the configured dialect.
func (c *Client) GetChapter(ctx context.Context, translationID, bookID string, chapter int) (*domain.Chapter, error) {
	switch c.dialect {
	case DialectStructured:
		return c.getChapterStructured(ctx, translationID, bookID, chapter)
	default:
		return c.getChapterEmbedded(ctx, translationID, bookID, chapter)
	}
}

func (c *Client) getChapterEmbedded(ctx context.Context, translationID, bookID string, chapter int) (*domain.Chapter, error) {
	chapterID := fmt.Sprintf("%s.%d", upstreamBookID(bookID), chapter)
	path := fmt.Sprintf("/bibles/%s/chapters/%s",
		url.PathEscape(translationID), url.PathEscape(chapterID))

	var res envelope[apiChapterContent]
	if err := c.get(ctx, path, nil, &res); err != nil {
		return nil, err
	}

	verses, err := extractEmbeddedVerses(res.Data.Content)
	if err != nil {
		c.log.ErrorContext(ctx, "chapter content yielded no verses",
			slog.String("chapter_id", chapterID),
			slog.String("dialect", c.dialect.String()),
			slog.Int("content_len", len(res.Data.Content)),
		)
		return nil, fmt.Errorf("chapter %s: %w", chapterID, err)
	}

	return &domain.Chapter{Number: chapter, Verses: verses}, nil
}

func (c *Client) getChapterStructured(ctx context.Context, translationID, bookID string, chapter int) (*domain.Chapter, error) {
	chapterID := fmt.Sprintf("%s.%d", upstreamBookID(bookID), chapter)
	path := fmt.Sprintf("/bibles/%s/chapters/%s/verses",
		url.PathEscape(translationID), url.PathEscape(chapterID))

	var res envelope[[]apiVerse]
	if err := c.get(ctx, path, nil, &res); err != nil {
		return nil, err
	}

	verses, err := versesFromStructured(res.Data)
	if err != nil {
		c.log.ErrorContext(ctx, "structured verses yielded no parseable numbers",
			slog.String("chapter_id", chapterID),
			slog.Int("objects", len(res.Data)),
		)
		return nil, fmt.Errorf("chapter %s: %w", chapterID, err)
	}

	return &domain.Chapter{Number: chapter, Verses: verses}, nil
}

// GetVerse retrieves a single verse.
func (c *Client) GetVerse(ctx context.Context, translationID, bookID string, chapter, verse int) (*domain.Verse, error) {
	verseID := fmt.Sprintf("%s.%d.%d", upstreamBookID(bookID), chapter, verse)
	path := fmt.Sprintf("/bibles/%s/verses/%s",
		url.PathEscape(translationID), url.PathEscape(verseID))

	var res envelope[apiVerse]
	if err := c.get(ctx, path, nil, &res); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(res.Data.Text)
	if text == "" {
		text = strings.TrimSpace(stripTags(res.Data.Content))
	}

	return &domain.Verse{Number: verse, Text: text}, nil
}

// Search runs the provider's full-text search, preserving upstream ordering.
func (c *Client) Search(ctx context.Context, translationID, query string, limit int) (*domain.SearchResult, error) {
	path := fmt.Sprintf("/bibles/%s/search", url.PathEscape(translationID))
	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", fmt.Sprintf("%d", limit))

	var res envelope[apiSearch]
	if err := c.get(ctx, path, q, &res); err != nil {
		return nil, err
	}

	hits := make([]domain.SearchVerse, 0, len(res.Data.Verses))
	for _, v := range res.Data.Verses {
		hits = append(hits, domain.SearchVerse{
			ID:        v.ID,
			Reference: v.Reference,
			Text:      v.Text,
		})
	}

	return &domain.SearchResult{
		Query:  res.Data.Query,
		Total:  res.Data.Total,
		Verses: hits,
	}, nil
}

// get issues an authenticated GET and decodes the JSON body into target.
// Network errors and 5xx responses are retried once, then surface as
// domain.ErrUpstreamUnavailable. A body that fails to decode surfaces as
// domain.ErrParse: the provider changed shape, not availability.
func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("scriptureapi: create request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		c.log.WarnContext(ctx, "upstream request failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("scriptureapi %s: %w", path, domain.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("scriptureapi %s: %w", path, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("scriptureapi %s: status %d: %w", path, resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("scriptureapi %s: read body: %w", path, domain.ErrUpstreamUnavailable)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("scriptureapi %s: decode: %w", path, domain.ErrParse)
	}

	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "upstream retry", slog.String("path", req.URL.Path), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	resp, err = c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// upstreamBookID converts a canonical book token to the provider's
// upper-case ID form.
func upstreamBookID(bookID string) string {
	return strings.ToUpper(domain.CanonicalBookID(bookID))
}
