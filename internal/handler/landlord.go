package handler

import (
	"net/http"

	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/event"
	"github.com/matthewbaird/silic/internal/types"
)

// LandlordHandler serves landlords across properties.
type LandlordHandler struct {
	store *catalog.Store
}

func NewLandlordHandler(store *catalog.Store) *LandlordHandler {
	return &LandlordHandler{store: store}
}

// ListLandlords returns every landlord, optionally narrowed to one type.
// GET /v1/landlords?type=
func (h *LandlordHandler) ListLandlords(w http.ResponseWriter, r *http.Request) {
	all := h.store.Landlords()
	t := types.LandlordType(r.URL.Query().Get("type"))
	if t == "" {
		writeJSON(w, http.StatusOK, all)
		return
	}
	if !t.Valid() {
		writeError(w, http.StatusBadRequest, "INVALID_TYPE", "unknown landlord type: "+string(t))
		return
	}
	out := []types.Landlord{}
	for _, l := range all {
		if l.Type == t {
			out = append(out, l)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateLandlord links a new landlord to an existing property.
// POST /v1/landlords
func (h *LandlordHandler) CreateLandlord(w http.ResponseWriter, r *http.Request) {
	var in types.Landlord
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	l, err := h.store.AddLandlord(in)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	p, _ := h.store.Property(l.PropertyID)
	recordEvent(r.Context(), event.NewLandlordLinked(event.LandlordLinkedPayload{
		LandlordID: l.ID, PropertyID: l.PropertyID, PropertyCode: p.Code, Name: l.Name, Type: l.Type,
	}))
	writeJSON(w, http.StatusCreated, l)
}
