package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/openscripture/lectern/internal/domain"
	"github.com/openscripture/lectern/pkg/ctxutil"
)

// annotationService defines the per-user annotation operations.
type annotationService interface {
	Load(ctx context.Context, userID uuid.UUID) (*domain.UserBibleData, error)
	SetLastRead(ctx context.Context, userID uuid.UUID, ref domain.Reference) error
	AddBookmark(ctx context.Context, userID uuid.UUID, ref domain.Reference) error
	RemoveBookmark(ctx context.Context, userID uuid.UUID, ref domain.Reference) error
	AddHighlight(ctx context.Context, userID uuid.UUID, ref domain.Reference, color string, note *string) error
	SetReadingPlanProgress(ctx context.Context, userID uuid.UUID, planID string, progress float64) error
}

// UserDataHandler serves the authenticated /me endpoints.
type UserDataHandler struct {
	svc annotationService
	log *slog.Logger
}

// NewUserDataHandler creates a UserDataHandler.
func NewUserDataHandler(svc annotationService, logger *slog.Logger) *UserDataHandler {
	return &UserDataHandler{svc: svc, log: logger.With("handler", "userdata")}
}

type referenceRequest struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   *int   `json:"verse,omitempty"`
}

func (req referenceRequest) toReference() domain.Reference {
	return domain.Reference{Book: req.Book, Chapter: req.Chapter, Verse: req.Verse}
}

type highlightRequest struct {
	referenceRequest
	Color string  `json:"color"`
	Note  *string `json:"note,omitempty"`
}

type progressRequest struct {
	Progress float64 `json:"progress"`
}

// Load handles GET /api/v1/me/bible-data.
func (h *UserDataHandler) Load(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	data, err := h.svc.Load(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// SetLastRead handles PUT /api/v1/me/last-read.
func (h *UserDataHandler) SetLastRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req referenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SetLastRead(r.Context(), userID, req.toReference()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddBookmark handles POST /api/v1/me/bookmarks.
func (h *UserDataHandler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	h.bookmarkOp(w, r, h.svc.AddBookmark, http.StatusCreated)
}

// RemoveBookmark handles DELETE /api/v1/me/bookmarks.
func (h *UserDataHandler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	h.bookmarkOp(w, r, h.svc.RemoveBookmark, http.StatusNoContent)
}

func (h *UserDataHandler) bookmarkOp(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID uuid.UUID, ref domain.Reference) error,
	okStatus int,
) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req referenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := op(r.Context(), userID, req.toReference()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(okStatus)
}

// AddHighlight handles POST /api/v1/me/highlights.
func (h *UserDataHandler) AddHighlight(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req highlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.AddHighlight(r.Context(), userID, req.toReference(), req.Color, req.Note); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// SetReadingPlanProgress handles PUT /api/v1/me/reading-plans/{planID}/progress.
func (h *UserDataHandler) SetReadingPlanProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SetReadingPlanProgress(r.Context(), userID, r.PathValue("planID"), req.Progress); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserDataHandler) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}
