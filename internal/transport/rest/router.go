package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/openscripture/lectern/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Deps carries everything the router needs.
type Deps struct {
	Logger      *slog.Logger
	Content     contentService
	Annotations annotationService
	Verifier    tokenValidator
	DB          dbPinger
	Version     string

	// Limiter is optional; when set, requests under /api/v1 are
	// rate-limited to RatePerMinute per client.
	Limiter       *middleware.RateLimiter
	RatePerMinute int
}

// NewRouter builds the HTTP handler tree with the standard middleware
// chain applied to the API surface. Probe endpoints stay outside the
// chain so load balancers are never rate-limited or logged as traffic.
func NewRouter(deps Deps) http.Handler {
	healthHandler := NewHealthHandler(deps.DB, deps.Version)
	contentHandler := NewContentHandler(deps.Content, deps.Logger)
	navigateHandler := NewNavigateHandler(deps.Content, deps.Logger)
	userDataHandler := NewUserDataHandler(deps.Annotations, deps.Logger)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/v1/bibles", contentHandler.ListTranslations)
	api.HandleFunc("GET /api/v1/books", contentHandler.ListBooks)
	api.HandleFunc("GET /api/v1/books/{bookID}/chapters/{chapter}", contentHandler.GetChapter)
	api.HandleFunc("GET /api/v1/verses/{ref}", contentHandler.GetVerse)
	api.HandleFunc("GET /api/v1/search", contentHandler.Search)
	api.HandleFunc("GET /api/v1/navigate/{direction}", navigateHandler.Step)

	api.HandleFunc("GET /api/v1/me/bible-data", userDataHandler.Load)
	api.HandleFunc("PUT /api/v1/me/last-read", userDataHandler.SetLastRead)
	api.HandleFunc("POST /api/v1/me/bookmarks", userDataHandler.AddBookmark)
	api.HandleFunc("DELETE /api/v1/me/bookmarks", userDataHandler.RemoveBookmark)
	api.HandleFunc("POST /api/v1/me/highlights", userDataHandler.AddHighlight)
	api.HandleFunc("PUT /api/v1/me/reading-plans/{planID}/progress", userDataHandler.SetReadingPlanProgress)

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.Auth(deps.Verifier),
	}
	if deps.Limiter != nil && deps.RatePerMinute > 0 {
		mws = append(mws, deps.Limiter.Limit(deps.RatePerMinute))
	}

	root := http.NewServeMux()
	root.HandleFunc("GET /health", healthHandler.Health)
	root.HandleFunc("GET /ready", healthHandler.Ready)
	root.HandleFunc("GET /live", healthHandler.Live)
	root.Handle("/api/v1/", middleware.Chain(mws...)(api))

	return root
}
