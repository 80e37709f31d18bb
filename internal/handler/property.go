package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/event"
	"github.com/matthewbaird/silic/internal/form"
	"github.com/matthewbaird/silic/internal/modal"
	"github.com/matthewbaird/silic/internal/query"
	"github.com/matthewbaird/silic/internal/types"
)

// PropertyHandler serves properties, their landlords and the modal edit
// tabs.
type PropertyHandler struct {
	store *catalog.Store
}

func NewPropertyHandler(store *catalog.Store) *PropertyHandler {
	return &PropertyHandler{store: store}
}

type propertyList struct {
	query.Page[types.Property]
	Source string `json:"source"`
	Notice string `json:"notice,omitempty"`
}

// ListProperties filters the originals snapshot and returns one page.
// GET /v1/properties?q=&status=&end_from=&end_to=&page=&page_size=
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	c, err := parseCriteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FILTER", err.Error())
		return
	}

	p := parsePagination(r)
	filtered := query.Filter(h.store.Originals(), c)
	source, notice := h.store.Source()
	writeJSON(w, http.StatusOK, propertyList{
		Page:   query.Paginate(filtered, p.Page, p.PageSize),
		Source: source,
		Notice: notice,
	})
}

// CreateProperty adds a property by hand.
// POST /v1/properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var in catalog.NewProperty
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	p, err := h.store.AddProperty(in)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	recordEvent(r.Context(), event.NewPropertyAdded(propertyPayload(p)))
	writeJSON(w, http.StatusCreated, p)
}

type propertyDetail struct {
	types.Property
	Landlords []types.Landlord `json:"landlords"`
}

// GetProperty returns a property with its landlords.
// GET /v1/properties/{id}
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.store.Property(id)
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "property not found: "+id)
		return
	}
	landlords, _ := h.store.LandlordsFor(id)
	writeJSON(w, http.StatusOK, propertyDetail{Property: p, Landlords: landlords})
}

// UpdateProperty replaces the editable fields of a property.
// PATCH /v1/properties/{id}
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in catalog.NewProperty
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	p, err := h.store.UpdateProperty(id, in)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	recordEvent(r.Context(), event.NewPropertyUpdated(propertyPayload(p)))
	writeJSON(w, http.StatusOK, p)
}

// ListPropertyLandlords returns the landlords of one property.
// GET /v1/properties/{id}/landlords
func (h *PropertyHandler) ListPropertyLandlords(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	landlords, ok := h.store.LandlordsFor(id)
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "property not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, landlords)
}

// GetEdit returns the values shown in a modal tab.
// GET /v1/properties/{id}/edits/{tab}
func (h *PropertyHandler) GetEdit(w http.ResponseWriter, r *http.Request) {
	id, tab := chi.URLParam(r, "id"), chi.URLParam(r, "tab")
	if _, ok := form.Tabs[tab]; !ok {
		writeError(w, http.StatusNotFound, "UNKNOWN_TAB", "unknown tab: "+tab)
		return
	}
	values, err := h.store.EditValues(id, tab)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

// SaveEdit validates and stores a modal tab. Invalid input answers 400
// with the same body shape as a success, fields marked in "invalid".
// PUT /v1/properties/{id}/edits/{tab}
func (h *PropertyHandler) SaveEdit(w http.ResponseWriter, r *http.Request) {
	id, tab := chi.URLParam(r, "id"), chi.URLParam(r, "tab")
	if _, ok := form.Tabs[tab]; !ok {
		writeError(w, http.StatusNotFound, "UNKNOWN_TAB", "unknown tab: "+tab)
		return
	}
	var values map[string]string
	if err := decodeJSON(r, &values); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	res, err := modal.SaveTab(h.store, id, tab, values, time.Now())
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	if len(res.Invalid) > 0 {
		recordEvent(r.Context(), event.NewEditRejected(event.EditPayload{PropertyID: id, Tab: tab, Errors: res.Invalid}))
		writeJSON(w, http.StatusBadRequest, res)
		return
	}
	recordEvent(r.Context(), event.NewEditSaved(event.EditPayload{PropertyID: id, Tab: tab, Values: res.Values}))
	writeJSON(w, http.StatusOK, res)
}

func propertyPayload(p types.Property) event.PropertyPayload {
	return event.PropertyPayload{PropertyID: p.ID, Code: p.Code, Denomination: p.Denomination, Status: p.Status}
}
