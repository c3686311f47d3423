package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PzNot2ndPlace/hints-service/internal/hintservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth
// group.
func NewRouter(svc *hintservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Hint recommendation.
	r.Post("/hints/text-based", h.TextBasedHint)

	// Temporal signature introspection.
	r.Post("/hints/signatures", h.Signatures)

	// Served-hint audit log.
	r.Get("/hints/recent", h.RecentHints)

	// SSE feed of served hints (same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
