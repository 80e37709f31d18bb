package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/edital"
	"github.com/matthewbaird/silic/internal/form"
	"github.com/matthewbaird/silic/internal/kv"
	"github.com/matthewbaird/silic/internal/query"
	"github.com/matthewbaird/silic/internal/types"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON encode error: %v", err)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// writeValidation reports per-field messages with a 400.
func writeValidation(w http.ResponseWriter, verr *form.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  verr.Error(),
		"code":   "VALIDATION_ERROR",
		"fields": verr.Fields,
	})
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// parsePagination extracts page and page_size from query params. The size
// is clamped to query.MaxPageSize; the page is clamped later against the
// filtered total.
func parsePagination(r *http.Request) Pagination {
	p := Pagination{Page: 1, PageSize: query.DefaultPageSize}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.PageSize = n
		}
	}
	if p.PageSize > query.MaxPageSize {
		p.PageSize = query.MaxPageSize
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Page = n
		}
	}
	return p
}

// parseCriteria reads the list filter: q, status, end_from and end_to.
func parseCriteria(r *http.Request) (query.Criteria, error) {
	q := r.URL.Query()
	c := query.Criteria{Text: q.Get("q")}
	if s := q.Get("status"); s != "" {
		c.Status = types.PropertyStatus(s)
		if !c.Status.Valid() {
			return c, fmt.Errorf("unknown status: %s", s)
		}
	}
	var err error
	if c.EndFrom, err = parseDay(q.Get("end_from")); err != nil {
		return c, fmt.Errorf("invalid end_from: %s", q.Get("end_from"))
	}
	if c.EndTo, err = parseDay(q.Get("end_to")); err != nil {
		return c, fmt.Errorf("invalid end_to: %s", q.Get("end_to"))
	}
	return c, nil
}

// parseDay accepts YYYY-MM-DD or DD/MM/YYYY. An empty value is nil.
func parseDay(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t, nil
	}
	t, err := form.ParseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// catalogErrorToHTTP maps store and validation errors to HTTP responses.
func catalogErrorToHTTP(w http.ResponseWriter, err error) {
	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidation(w, verr)
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, kv.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, edital.ErrUnknownSection):
		writeError(w, http.StatusNotFound, "UNKNOWN_SECTION", err.Error())
	case errors.Is(err, catalog.ErrDuplicateCode):
		writeError(w, http.StatusConflict, "DUPLICATE_CODE", err.Error())
	case errors.Is(err, catalog.ErrUnknownProperty):
		writeError(w, http.StatusUnprocessableEntity, "UNKNOWN_PROPERTY", err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
