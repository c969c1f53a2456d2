package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lilianada/braindump/internal/apperr"
	"github.com/lilianada/braindump/internal/gardenservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *gardenservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *gardenservice.Service) *Handler {
	return &Handler{svc: svc}
}

// itemPath extracts the item path from the URL (everything after the
// wildcard mount). Supports encoded slashes from generated clients
// (e.g. topics%2Fnote).
func itemPath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListItems handles GET /api/items.
//
//	@Summary		List all items in the flat corpus, title-sorted
//	@Tags			items
//	@Produce		json
//	@Param			refresh	query		bool	false	"Force a corpus reload"
//	@Success		200		{object}	map[string]any
//	@Security		BearerAuth
//	@Router			/items [get]
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "true"
	items, err := h.svc.Items(r.Context(), force)
	if err != nil {
		slog.Error("list items failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": summarize(items),
		"total": len(items),
	})
}

// GetItem handles GET /api/items/*.
//
//	@Summary		Get a single item with backlinks, related items, and prev/next
//	@Tags			items
//	@Produce		json
//	@Param			path	path		string	true	"Item path"
//	@Success		200		{object}	gardenservice.ItemDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/items/{path} [get]
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	path := itemPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	detail, err := h.svc.Detail(r.Context(), path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get item failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Tree handles GET /api/tree.
//
//	@Summary		Get the folder hierarchy with synthesized folder nodes
//	@Tags			tree
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Security		BearerAuth
//	@Router			/tree [get]
func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "true"
	roots, err := h.svc.Tree(r.Context(), force)
	if err != nil {
		slog.Error("tree failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"roots": roots})
}

// Sequence handles GET /api/nav.
//
//	@Summary		Get the linear previous/next reading order
//	@Tags			nav
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Security		BearerAuth
//	@Router			/nav [get]
func (h *Handler) Sequence(w http.ResponseWriter, r *http.Request) {
	seq, err := h.svc.Sequence(r.Context(), false)
	if err != nil {
		slog.Error("sequence failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sequence": summarize(seq)})
}

// Neighbors handles GET /api/nav/*.
//
//	@Summary		Get the previous and next items around an item
//	@Tags			nav
//	@Produce		json
//	@Param			path	path		string	true	"Item path"
//	@Success		200		{object}	map[string]any
//	@Security		BearerAuth
//	@Router			/nav/{path} [get]
func (h *Handler) Neighbors(w http.ResponseWriter, r *http.Request) {
	path := itemPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}

	// A missing item is corpus drift, not an error: both sides null.
	var prevS, nextS *ItemSummary
	item, err := h.svc.FindByPath(r.Context(), path)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		slog.Error("neighbors failed", slog.String("path", path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if item != nil {
		prev, next, nerr := h.svc.Neighbors(r.Context(), item.ID)
		if nerr != nil {
			slog.Error("neighbors failed", slog.String("path", path), slog.String("error", nerr.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
			return
		}
		prevS, nextS = summarizeOne(prev), summarizeOne(next)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"prev": prevS,
		"next": nextS,
	})
}

// Backlinks handles GET /api/backlinks/*.
//
//	@Summary		List items that reference the given item
//	@Tags			links
//	@Produce		json
//	@Param			path	path		string	true	"Item path"
//	@Success		200		{object}	map[string]any
//	@Security		BearerAuth
//	@Router			/backlinks/{path} [get]
func (h *Handler) Backlinks(w http.ResponseWriter, r *http.Request) {
	path := itemPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	refs, err := h.svc.Backlinks(r.Context(), path)
	if err != nil {
		slog.Error("backlinks failed", slog.String("path", path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"backlinks": summarize(refs)})
}

// Related handles GET /api/related/*.
//
//	@Summary		List items sharing at least one tag with the given item
//	@Tags			links
//	@Produce		json
//	@Param			path	path		string	true	"Item path"
//	@Success		200		{object}	map[string]any
//	@Security		BearerAuth
//	@Router			/related/{path} [get]
func (h *Handler) Related(w http.ResponseWriter, r *http.Request) {
	path := itemPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	refs, err := h.svc.Related(r.Context(), path)
	if err != nil {
		slog.Error("related failed", slog.String("path", path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"related": summarize(refs)})
}

// Graph handles GET /api/graph.
//
//	@Summary		Get the node/edge graph for visualization
//	@Tags			graph
//	@Produce		json
//	@Success		200	{object}	graph.Graph
//	@Security		BearerAuth
//	@Router			/graph [get]
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.Graph(r.Context())
	if err != nil {
		slog.Error("graph failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across the corpus
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// Status handles GET /api/status.
//
//	@Summary		Report the number of loaded items and the snapshot fingerprint
//	@Tags			status
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Security		BearerAuth
//	@Router			/status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Items(r.Context(), false)
	if err != nil {
		slog.Error("status failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":       len(items),
		"fingerprint": h.svc.Fingerprint(),
	})
}
