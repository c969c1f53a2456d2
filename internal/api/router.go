package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lilianada/braindump/internal/gardenservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth
// group.
func NewRouter(svc *gardenservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)
	p := NewPreviewHandler()

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Corpus queries.
	r.Get("/items", h.ListItems)
	r.Get("/items/*", h.GetItem)
	r.Get("/tree", h.Tree)

	// Navigation.
	r.Get("/nav", h.Sequence)
	r.Get("/nav/*", h.Neighbors)

	// Link resolution.
	r.Get("/backlinks/*", h.Backlinks)
	r.Get("/related/*", h.Related)

	// Graph.
	r.Get("/graph", h.Graph)

	// Search.
	r.Get("/search", h.Search)

	// Link-metadata preview proxy for external URLs.
	r.Get("/preview", p.Preview)

	// Snapshot status.
	r.Get("/status", h.Status)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
