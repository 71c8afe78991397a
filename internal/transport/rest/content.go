package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/openscripture/lectern/internal/domain"
)

// contentService defines the content operations the handlers need.
type contentService interface {
	ListTranslations(ctx context.Context) ([]domain.Translation, error)
	ListBooks(ctx context.Context, translationID string) ([]domain.BibleBook, error)
	GetChapter(ctx context.Context, bookID string, chapter int, translationID string) (*domain.Chapter, error)
	GetVerse(ctx context.Context, bookID string, chapter, verse int, translationID string) (*domain.Verse, error)
	Search(ctx context.Context, query string, limit int, translationID string) (*domain.SearchResult, error)
}

// ContentHandler serves the read-only scripture endpoints.
type ContentHandler struct {
	svc contentService
	log *slog.Logger
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(svc contentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{svc: svc, log: logger.With("handler", "content")}
}

// ListTranslations handles GET /api/v1/bibles.
func (h *ContentHandler) ListTranslations(w http.ResponseWriter, r *http.Request) {
	translations, err := h.svc.ListTranslations(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"translations": translations})
}

// ListBooks handles GET /api/v1/books?translation=.
func (h *ContentHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.ListBooks(r.Context(), r.URL.Query().Get("translation"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"books": books})
}

// GetChapter handles GET /api/v1/books/{bookID}/chapters/{chapter}?translation=.
func (h *ContentHandler) GetChapter(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("bookID")
	chapter, err := strconv.Atoi(r.PathValue("chapter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "chapter must be a number")
		return
	}

	ch, err := h.svc.GetChapter(r.Context(), bookID, chapter, r.URL.Query().Get("translation"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"book":    domain.CanonicalBookID(bookID),
		"chapter": ch.Number,
		"verses":  ch.Verses,
	})
}

// GetVerse handles GET /api/v1/verses/{ref} where ref is BOOK.CHAPTER.VERSE.
func (h *ContentHandler) GetVerse(w http.ResponseWriter, r *http.Request) {
	bookID, chapter, verse, ok := splitVerseRef(r.PathValue("ref"))
	if !ok {
		writeError(w, http.StatusBadRequest, "verse reference must be BOOK.CHAPTER.VERSE")
		return
	}

	v, err := h.svc.GetVerse(r.Context(), bookID, chapter, verse, r.URL.Query().Get("translation"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Search handles GET /api/v1/search?query=&limit=&translation=.
func (h *ContentHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative number")
			return
		}
		limit = n
	}

	result, err := h.svc.Search(r.Context(), q.Get("query"), limit, q.Get("translation"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func splitVerseRef(ref string) (bookID string, chapter, verse int, ok bool) {
	parts := strings.Split(ref, ".")
	if len(parts) != 3 || parts[0] == "" {
		return "", 0, 0, false
	}
	chapter, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, false
	}
	verse, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, false
	}
	return parts[0], chapter, verse, true
}
