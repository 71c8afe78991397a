package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/openscripture/lectern/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleError maps domain errors to HTTP statuses. Upstream failures
// surface as 502 so clients can distinguish provider outages from
// engine bugs.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAtStart):
		writeError(w, http.StatusConflict, "at the start of the canon")
	case errors.Is(err, domain.ErrAtEnd):
		writeError(w, http.StatusConflict, "at the end of the canon")
	case errors.Is(err, domain.ErrUpstreamUnavailable), errors.Is(err, domain.ErrParse):
		log.ErrorContext(r.Context(), "upstream failure", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "scripture provider unavailable")
	case errors.Is(err, domain.ErrPersistence):
		log.ErrorContext(r.Context(), "storage failure", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
