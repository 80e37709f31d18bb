package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matthewbaird/silic/internal/edital"
	"github.com/matthewbaird/silic/internal/form"
)

// EditalHandler serves the adapted edital form.
type EditalHandler struct {
	form      *edital.Adapted
	validator *edital.Validator
}

func NewEditalHandler(form *edital.Adapted, validator *edital.Validator) *EditalHandler {
	return &EditalHandler{form: form, validator: validator}
}

// GetSchema returns sections, initial data, chips and drag modes.
// GET /v1/edital/schema
func (h *EditalHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.form)
}

// ValidateSection checks a section's data. A failed check is still a 200;
// the body lists the invalid fields.
// POST /v1/edital/sections/{id}/validate
func (h *EditalHandler) ValidateSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var data map[string]any
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	type result struct {
		Section string            `json:"section"`
		Valid   bool              `json:"valid"`
		Errors  map[string]string `json:"errors,omitempty"`
	}
	err := h.validator.Validate(id, data)
	var verr *form.ValidationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result{Section: id, Valid: true})
	case errors.As(err, &verr):
		writeJSON(w, http.StatusOK, result{Section: id, Errors: verr.Fields})
	default:
		catalogErrorToHTTP(w, err)
	}
}
