package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/event"
	"github.com/matthewbaird/silic/internal/kv"
	"github.com/matthewbaird/silic/internal/types"
)

// AppraisalHandler serves the appraisal record of each property.
type AppraisalHandler struct {
	store      *catalog.Store
	appraisals *kv.Appraisals
}

func NewAppraisalHandler(store *catalog.Store, appraisals *kv.Appraisals) *AppraisalHandler {
	return &AppraisalHandler{store: store, appraisals: appraisals}
}

// property writes a 404 and returns false for unknown ids.
func (h *AppraisalHandler) property(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, ok := h.store.Property(id); !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "property not found: "+id)
		return "", false
	}
	return id, true
}

// GetAppraisal returns the saved appraisal.
// GET /v1/properties/{id}/appraisal
func (h *AppraisalHandler) GetAppraisal(w http.ResponseWriter, r *http.Request) {
	id, ok := h.property(w, r)
	if !ok {
		return
	}
	ap, err := h.appraisals.Get(r.Context(), id)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ap)
}

// PutAppraisal validates and replaces the appraisal.
// PUT /v1/properties/{id}/appraisal
func (h *AppraisalHandler) PutAppraisal(w http.ResponseWriter, r *http.Request) {
	id, ok := h.property(w, r)
	if !ok {
		return
	}
	var in types.Appraisal
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	ap, err := h.appraisals.Save(r.Context(), id, in)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	recordEvent(r.Context(), event.NewAppraisalSaved(event.AppraisalPayload{
		PropertyID: id, DocumentNo: ap.DocumentNo, AvgRent: ap.AvgRent,
	}))
	writeJSON(w, http.StatusOK, ap)
}

// DeleteAppraisal removes the appraisal.
// DELETE /v1/properties/{id}/appraisal
func (h *AppraisalHandler) DeleteAppraisal(w http.ResponseWriter, r *http.Request) {
	id, ok := h.property(w, r)
	if !ok {
		return
	}
	if err := h.appraisals.Delete(r.Context(), id); err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	recordEvent(r.Context(), event.NewAppraisalDeleted(event.AppraisalPayload{PropertyID: id}))
	w.WriteHeader(http.StatusNoContent)
}
