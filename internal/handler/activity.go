package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matthewbaird/silic/internal/activity"
	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/types"
)

// ActivityHandler serves record histories from the activity store.
type ActivityHandler struct {
	store   activity.Store
	catalog *catalog.Store
}

func NewActivityHandler(store activity.Store, catalog *catalog.Store) *ActivityHandler {
	return &ActivityHandler{store: store, catalog: catalog}
}

type activityFeed struct {
	Activities []types.ActivityEntry `json:"activities"`
	NextCursor string                `json:"next_cursor,omitempty"`
	TotalCount int                   `json:"total_count"`
	Period     struct {
		Since *time.Time `json:"since,omitempty"`
		Until *time.Time `json:"until,omitempty"`
	} `json:"period"`
}

// GetPropertyActivity returns the history of one property.
// GET /v1/properties/{id}/activity
func (h *ActivityHandler) GetPropertyActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.catalog.Property(id); !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "property not found: "+id)
		return
	}
	h.feed(w, r, "property", id)
}

// GetEntityActivity returns the history of any indexed record.
// GET /v1/activity/{entity_type}/{entity_id}
func (h *ActivityHandler) GetEntityActivity(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entity_type")
	entityID := chi.URLParam(r, "entity_id")
	if entityType == "" || entityID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_PARAMS", "entity_type and entity_id are required")
		return
	}
	h.feed(w, r, entityType, entityID)
}

func (h *ActivityHandler) feed(w http.ResponseWriter, r *http.Request, entityType, entityID string) {
	q := r.URL.Query()
	opts := activity.DefaultQueryOptions()
	if s := q.Get("since"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			opts.Since = &t
		}
	}
	if u := q.Get("until"); u != "" {
		if t, err := time.Parse(time.RFC3339, u); err == nil {
			opts.Until = &t
		}
	}
	if cats := q.Get("categories"); cats != "" {
		opts.Categories = strings.Split(cats, ",")
	}
	if mw := q.Get("min_weight"); mw != "" {
		opts.MinWeight = mw
	}
	if l := q.Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			opts.Limit = min(n, 500)
		}
	}
	opts.Cursor = q.Get("cursor")

	entries, next, total, err := h.store.QueryByEntity(r.Context(), entityType, entityID, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}
	resp := activityFeed{Activities: entries, NextCursor: next, TotalCount: total}
	resp.Period.Since, resp.Period.Until = opts.Since, opts.Until
	if resp.Activities == nil {
		resp.Activities = []types.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// SearchActivity matches history summaries.
// POST /v1/activity/search
func (h *ActivityHandler) SearchActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query      string   `json:"query"`
		EntityType string   `json:"entity_type,omitempty"`
		Since      string   `json:"since,omitempty"`
		Categories []string `json:"categories,omitempty"`
		Limit      int      `json:"limit,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "MISSING_PARAMS", "query is required")
		return
	}

	opts := activity.DefaultSearchOptions()
	opts.EntityType = req.EntityType
	opts.Categories = req.Categories
	if req.Limit > 0 {
		opts.Limit = req.Limit
	}
	if req.Since != "" {
		if t, err := time.Parse(time.RFC3339, req.Since); err == nil {
			opts.Since = &t
		}
	}

	entries, total, err := h.store.Search(r.Context(), req.Query, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "SEARCH_FAILED", err.Error())
		return
	}
	if entries == nil {
		entries = []types.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": entries, "total_count": total})
}
