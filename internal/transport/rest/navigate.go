package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/openscripture/lectern/internal/domain"
	"github.com/openscripture/lectern/internal/service/navigation"
)

type bookLister interface {
	ListBooks(ctx context.Context, translationID string) ([]domain.BibleBook, error)
}

// NavigateHandler steps a reading position forward or back through the
// canon, using the sized book list for the requested translation.
type NavigateHandler struct {
	books bookLister
	log   *slog.Logger
}

// NewNavigateHandler creates a NavigateHandler.
func NewNavigateHandler(books bookLister, logger *slog.Logger) *NavigateHandler {
	return &NavigateHandler{books: books, log: logger.With("handler", "navigate")}
}

// Step handles GET /api/v1/navigate/{direction}?book=&chapter=&translation=.
func (h *NavigateHandler) Step(w http.ResponseWriter, r *http.Request) {
	direction := r.PathValue("direction")
	if direction != "next" && direction != "previous" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	q := r.URL.Query()
	chapter, err := strconv.Atoi(q.Get("chapter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "chapter must be a number")
		return
	}

	ref, err := navigation.Resolve(q.Get("book"), chapter, nil)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	books, err := h.books.ListBooks(r.Context(), q.Get("translation"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var next domain.Reference
	if direction == "next" {
		next, err = navigation.Next(ref, books)
	} else {
		next, err = navigation.Previous(ref, books)
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, next)
}
